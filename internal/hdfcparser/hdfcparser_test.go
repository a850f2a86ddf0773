package hdfcparser

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

const sampleStatement = `HDFC BANK
Account Number: 50100123456
Statement of Account from 01/01/2024 to 31/01/2024
Opening Balance: Rs. 50,000.00

Statement of account
01/01/2024 UPI CR SALARY JANUARY 0.00 25,000.00 75,000.00
05/01/2024 ATM WITHDRAWAL MUMBAI 5,000.00 0.00 70,000.00
07/01/2024 CHARGE REVERSAL SAME ROW 100.00 200.00 70,100.00
Closing Balance: Rs. 70,100.00
`

func newAdapter(text string) *Adapter {
	return NewAdapter(textextract.NewMockExtractor(text), logging.NewMockLogger())
}

func TestParseStatement(t *testing.T) {
	result := newAdapter(sampleStatement).Parse(context.Background(), []byte("%PDF"))

	assert.Equal(t, "50100123456", result.AccountNumber)
	require.NotNil(t, result.PeriodStart)
	require.NotNil(t, result.PeriodEnd)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *result.PeriodStart)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), *result.PeriodEnd)
	require.NotNil(t, result.OpeningBalance)
	assert.True(t, result.OpeningBalance.Equal(decimal.RequireFromString("50000.00")))
	require.NotNil(t, result.ClosingBalance)
	assert.True(t, result.ClosingBalance.Equal(decimal.RequireFromString("70100.00")))

	require.Len(t, result.Transactions, 2)

	salary := result.Transactions[0]
	assert.Equal(t, "UPI CR SALARY JANUARY", salary.Description)
	assert.True(t, salary.Amount.Equal(decimal.RequireFromString("25000.00")))
	assert.Equal(t, models.DirectionCredit, salary.Direction)
	require.NotNil(t, salary.Balance)
	assert.True(t, salary.Balance.Equal(decimal.RequireFromString("75000.00")))

	atm := result.Transactions[1]
	assert.Equal(t, "ATM WITHDRAWAL MUMBAI", atm.Description)
	assert.True(t, atm.Amount.Equal(decimal.RequireFromString("5000.00")))
	assert.Equal(t, models.DirectionDebit, atm.Direction)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), atm.Date)
}

// A row with money in both the withdrawal and the deposit column is
// reported as a skipped line, not guessed at, and does not fail the parse.
func TestParseSkipsDualColumnRow(t *testing.T) {
	result := newAdapter(sampleStatement).Parse(context.Background(), nil)

	assert.False(t, result.Failed())
	skipped := result.SkippedLines()
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0], "both withdrawal and deposit columns populated")
	assert.Contains(t, skipped[0], "CHARGE REVERSAL SAME ROW")
}

func TestParseMissingSection(t *testing.T) {
	result := newAdapter("Account Number: 1\nsome other document").Parse(context.Background(), nil)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Could not find Statement of account section", result.Errors[0])
	assert.True(t, result.Failed())
}

func TestParseDashSeparatedDates(t *testing.T) {
	text := `Statement of account
15-02-2024 TRANSFER IN FROM SAVINGS 0.00 1,000.00 2,000.00
Closing Balance: 2,000.00
`
	result := newAdapter(text).Parse(context.Background(), nil)

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), result.Transactions[0].Date)
	assert.Equal(t, models.DirectionCredit, result.Transactions[0].Direction)
}

func TestInstitution(t *testing.T) {
	assert.Equal(t, "HDFC", newAdapter("").Institution())
}
