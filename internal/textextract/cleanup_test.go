package textextract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	in := "Date  |  Description\r\n01/15  STARBUCKS      -5.75   \n\n\n\n01/20  PAYROLL  2,500.00  "
	want := "Date I Description\n01/15 STARBUCKS -5.75\n\n01/20 PAYROLL 2,500.00"

	assert.Equal(t, want, CleanText(in))
}

func TestCleanTextTrimsTrailingWhitespace(t *testing.T) {
	assert.Equal(t, "a\nb", CleanText("a   \nb\t\t\n\n"))
}

func TestCleanTextEmpty(t *testing.T) {
	assert.Equal(t, "", CleanText("   \n\n  "))
}

func TestMockExtractor(t *testing.T) {
	mock := NewMockExtractor("hello")

	text, err := mock.ExtractText(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	mock.Err = errors.New("boom")
	_, err = mock.ExtractText(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, 2, mock.Calls)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 100, opts.MinTextLength)
	assert.True(t, opts.OCREnabled)
	assert.Equal(t, "pdftotext", opts.PdftotextBin)
}
