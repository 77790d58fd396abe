package reports

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// S3Config addresses an S3-compatible bucket (AWS, MinIO).
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// LinkTTL is how long a presigned download link stays valid.
	LinkTTL time.Duration
}

// Enabled reports whether publishing is configured.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Publisher uploads exported sheets and hands out download links.
type Publisher struct {
	client  putter
	presign presigner
	bucket  string
	ttl     time.Duration
	now     func() time.Time
}

// NewPublisher builds an S3 client with static credentials.
func NewPublisher(ctx context.Context, c S3Config) (*Publisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newPublisher(client, s3.NewPresignClient(client), c), nil
}

func newPublisher(client putter, presign presigner, c S3Config) *Publisher {
	ttl := c.LinkTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Publisher{client: client, presign: presign, bucket: c.Bucket, ttl: ttl, now: time.Now}
}

// storageKey is reports/yyyy/mm/dd/<uuid>/<name>.
func (p *Publisher) storageKey(name string) string {
	d := p.now()
	return path.Join("reports", fmt.Sprintf("%04d/%02d/%02d", d.Year(), d.Month(), d.Day()), uuid.NewString(), name)
}

// Publish uploads data under a fresh key and returns the key and a
// presigned GET link.
func (p *Publisher) Publish(ctx context.Context, name string, data []byte) (string, string, error) {
	key := p.storageKey(name)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeXLSX),
	})
	if err != nil {
		return "", "", fmt.Errorf("upload %s: %w", key, err)
	}

	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return key, "", fmt.Errorf("presign %s: %w", key, err)
	}
	return key, req.URL, nil
}
