package chaseparser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow/internal/logging"
	"finflow/internal/models"
	"finflow/internal/textextract"
)

const sampleStatement = `CHASE COLLEGE CHECKING
Account Number: 123456789
Statement Period: Jan 01 - Jan 31, 2024

Beginning Balance: $1,240.25
Ending Balance: $3,734.50

TRANSACTION DETAIL
01/15 STARBUCKS STORE #123 -5.75 1,234.50
01/20 DIRECT DEPOSIT PAYROLL 2,500.00 3,734.50
some footer text that is not a transaction row
TOTAL DEPOSITS $2,500.00
`

func newAdapter(text string) *Adapter {
	return NewAdapter(textextract.NewMockExtractor(text), logging.NewMockLogger())
}

func TestParseStatement(t *testing.T) {
	result := newAdapter(sampleStatement).Parse(context.Background(), []byte("%PDF"))

	require.False(t, result.Failed(), "unexpected errors: %v", result.Errors)
	assert.Equal(t, "123456789", result.AccountNumber)

	require.NotNil(t, result.PeriodStart)
	require.NotNil(t, result.PeriodEnd)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *result.PeriodStart)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), *result.PeriodEnd)

	require.NotNil(t, result.OpeningBalance)
	assert.True(t, result.OpeningBalance.Equal(decimal.RequireFromString("1240.25")))
	require.NotNil(t, result.ClosingBalance)
	assert.True(t, result.ClosingBalance.Equal(decimal.RequireFromString("3734.50")))

	require.Len(t, result.Transactions, 2)

	coffee := result.Transactions[0]
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), coffee.Date)
	assert.Equal(t, "STARBUCKS STORE #123", coffee.Description)
	assert.True(t, coffee.Amount.Equal(decimal.RequireFromString("5.75")))
	assert.Equal(t, models.DirectionDebit, coffee.Direction)
	require.NotNil(t, coffee.Balance)
	assert.True(t, coffee.Balance.Equal(decimal.RequireFromString("1234.50")))

	payroll := result.Transactions[1]
	assert.Equal(t, "DIRECT DEPOSIT PAYROLL", payroll.Description)
	assert.True(t, payroll.Amount.Equal(decimal.RequireFromString("2500.00")))
	assert.Equal(t, models.DirectionCredit, payroll.Direction)
}

func TestParseMissingSection(t *testing.T) {
	result := newAdapter("Account Number: 1\nno transaction table here").Parse(context.Background(), nil)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Could not find TRANSACTION DETAIL section", result.Errors[0])
	assert.True(t, result.Failed())
	assert.Empty(t, result.Transactions)
}

func TestParseExtractionFailure(t *testing.T) {
	extractor := &textextract.MockExtractor{Err: errors.New("pdftotext exited 1")}
	result := NewAdapter(extractor, logging.NewMockLogger()).Parse(context.Background(), nil)

	require.True(t, result.Failed())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "text extraction failed")
	assert.Contains(t, result.Errors[0], "pdftotext exited 1")
}

func TestParseSameBufferTwice(t *testing.T) {
	adapter := newAdapter(sampleStatement)
	pdf := []byte("%PDF")

	first := adapter.Parse(context.Background(), pdf)
	second := adapter.Parse(context.Background(), pdf)

	assert.Equal(t, first, second)
}

func TestInstitution(t *testing.T) {
	assert.Equal(t, "Chase", newAdapter("").Institution())
}
