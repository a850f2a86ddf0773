package dcbparser

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow/internal/logging"
	"finflow/internal/models"
	"finflow/internal/textextract"
)

const sampleStatement = `DCB BANK LIMITED
Account Number: 98765432101
Statement Period: 01-Nov-2024 to 30-Nov-2024
Opening Balance: INR 10,000.00

ACCOUNT DETAILS
01-Nov-2024 NEFT CR ACME PAYROLL 0.00 45,000.00 55,000.00
10-Nov-2024 POS AMAZON RETAIL 1,500.00 0.00 53,500.00
15-Nov-2024 ADJUSTMENT BOTH SIDES 250.00 250.00 53,750.00
Closing Balance: INR 53,500.00
`

func newAdapter(text string) *Adapter {
	return NewAdapter(textextract.NewMockExtractor(text), logging.NewMockLogger())
}

func TestParseStatement(t *testing.T) {
	result := newAdapter(sampleStatement).Parse(context.Background(), []byte("%PDF"))

	assert.Equal(t, "98765432101", result.AccountNumber)
	require.NotNil(t, result.PeriodStart)
	require.NotNil(t, result.PeriodEnd)
	assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), *result.PeriodStart)
	assert.Equal(t, time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC), *result.PeriodEnd)

	require.Len(t, result.Transactions, 2)

	payroll := result.Transactions[0]
	assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), payroll.Date)
	assert.Equal(t, "NEFT CR ACME PAYROLL", payroll.Description)
	assert.True(t, payroll.Amount.Equal(decimal.RequireFromString("45000.00")))
	assert.Equal(t, models.DirectionCredit, payroll.Direction)
	require.NotNil(t, payroll.Balance)
	assert.True(t, payroll.Balance.Equal(decimal.RequireFromString("55000.00")))

	pos := result.Transactions[1]
	assert.Equal(t, "POS AMAZON RETAIL", pos.Description)
	assert.True(t, pos.Amount.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, models.DirectionDebit, pos.Direction)
}

func TestParseSkipsDualColumnRow(t *testing.T) {
	result := newAdapter(sampleStatement).Parse(context.Background(), nil)

	assert.False(t, result.Failed())
	skipped := result.SkippedLines()
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0], "both withdrawals and deposits columns populated")
	assert.Contains(t, skipped[0], "ADJUSTMENT BOTH SIDES")
}

func TestParseMissingSection(t *testing.T) {
	result := newAdapter("Account Number: 7\nanother bank entirely").Parse(context.Background(), nil)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Could not find ACCOUNT DETAILS section", result.Errors[0])
	assert.True(t, result.Failed())
}

func TestInstitution(t *testing.T) {
	assert.Equal(t, "DCB", newAdapter("").Institution())
}
