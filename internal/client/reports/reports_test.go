package reports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleSheet() Sheet {
	sw := &models.Subwork{Name: "Plaster / 1st coat", Unit: models.UnitSFT, DefaultRate: d("2")}
	entries := []*models.Entry{
		{Kind: models.KindDetails, Name: "wall", Number: d("1"), Length: d("10"), Breadth: d("3")},
		{Kind: models.KindDeductions, Name: "door", Number: d("1"), Length: d("2"), Breadth: d("1")},
	}
	for _, e := range entries {
		e.Recompute(sw.Unit, sw.DefaultRate)
	}
	return Sheet{
		Project: &models.Project{Name: "Harbor", Client: models.ClientDetails{Name: "ACME"}},
		Work:    &models.Work{Name: "Foundation"},
		Subwork: sw,
		Entries: entries,
		Totals:  models.SumTotals(entries),
	}
}

func TestSheet_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleSheet().Write(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	cell := func(ref string) string {
		v, err := f.GetCellValue(sheetName, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Harbor", cell("B1"))
	assert.Equal(t, "ACME", cell("D1"))
	assert.Equal(t, "Plaster / 1st coat", cell("B3"))
	assert.Equal(t, "Details", cell("A5"))
	assert.Equal(t, "wall", cell("A7"))
	assert.Equal(t, "60", cell("H7"))
	assert.Equal(t, "Total details", cell("A8"))
	assert.Equal(t, "door", cell("A12"))
	assert.Equal(t, "4", cell("H13"))
	assert.Equal(t, "Net", cell("A15"))
	assert.Equal(t, "56", cell("H15"))
}

func TestSheet_Filename(t *testing.T) {
	assert.Equal(t, "measurements-plaster-1st-coat.xlsx", sampleSheet().Filename())

	s := sampleSheet()
	s.Subwork = &models.Subwork{Name: "///"}
	assert.Equal(t, "measurements-subwork.xlsx", s.Filename())
}

type fakeS3 struct {
	putErr  error
	key     string
	body    []byte
	expires time.Duration
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.key = *in.Key
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	opts := s3.PresignOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://s3.local/" + *in.Bucket + "/" + *in.Key}, nil
}

func TestPublisher_Publish(t *testing.T) {
	fake := &fakeS3{}
	p := newPublisher(fake, fake, S3Config{Bucket: "sheets"})
	p.now = func() time.Time { return time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC) }

	key, url, err := p.Publish(context.Background(), "m.xlsx", []byte("xlsx"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "reports/2025/04/09/"), key)
	assert.True(t, strings.HasSuffix(key, "/m.xlsx"), key)
	assert.Equal(t, fake.key, key)
	assert.Equal(t, []byte("xlsx"), fake.body)
	assert.Equal(t, "https://s3.local/sheets/"+key, url)
	assert.Equal(t, 15*time.Minute, fake.expires)
}

func TestPublisher_UploadError(t *testing.T) {
	boom := errors.New("denied")
	fake := &fakeS3{putErr: boom}
	p := newPublisher(fake, fake, S3Config{Bucket: "sheets", LinkTTL: time.Hour})

	_, _, err := p.Publish(context.Background(), "m.xlsx", nil)
	assert.ErrorIs(t, err, boom)
}

func TestS3Config_Enabled(t *testing.T) {
	assert.False(t, S3Config{}.Enabled())
	assert.True(t, S3Config{Bucket: "b"}.Enabled())
}
