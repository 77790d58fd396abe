package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\nb\n\n\n"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)

	got, err = GetMultiline(rdr("12 Dock Rd\r\nPort Town"), "Address", &out)
	require.NoError(t, err)
	assert.Equal(t, "12 Dock Rd\nPort Town", got)
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	require.Error(t, err)
}

func TestGetWithDefault(t *testing.T) {
	var out bytes.Buffer

	got, err := GetWithDefault(rdr("\n"), "Name", "Harbor", &out)
	require.NoError(t, err)
	assert.Equal(t, "Harbor", got)
	assert.Contains(t, out.String(), "Name [Harbor]")

	got, err = GetWithDefault(rdr("Dock\n"), "Name", "Harbor", &out)
	require.NoError(t, err)
	assert.Equal(t, "Dock", got)
}

func TestGetDecimal(t *testing.T) {
	var out bytes.Buffer

	got, err := GetDecimal(rdr("2.5\n"), "Length", decimal.Zero, &out)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("2.5")))

	got, err = GetDecimal(rdr("\n"), "Length", decimal.NewFromInt(4), &out)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(4)))

	_, err = GetDecimal(rdr("abc\n"), "Length", decimal.Zero, &out)
	require.ErrorContains(t, err, "not a number")
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false} {
		got, err := Confirm(rdr(in), "Sure?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}
