package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"$1,234.56":    "1234.56",
		"-5.75":        "-5.75",
		"Rs. 2,500.00": "2500.00",
		"INR 100.00":   "100.00",
		"garbage":      "0",
	}
	for input, want := range cases {
		got := ParseAmount(input)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "ParseAmount(%q) = %s", input, got)
	}
}

func TestSignedAmount(t *testing.T) {
	magnitude := decimal.RequireFromString("5.75")

	assert.True(t, SignedAmount(magnitude, DirectionDebit).Equal(decimal.RequireFromString("-5.75")))
	assert.True(t, SignedAmount(magnitude, DirectionCredit).Equal(magnitude))
}

func TestTransactionDirection(t *testing.T) {
	debit := Transaction{Amount: decimal.RequireFromString("-10")}
	credit := Transaction{Amount: decimal.RequireFromString("10")}

	assert.Equal(t, DirectionDebit, debit.Direction())
	assert.Equal(t, DirectionCredit, credit.Direction())
	assert.True(t, debit.AbsAmount().Equal(decimal.RequireFromString("10")))
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "STARBUCKS STORE #123", NormalizeDescription("  Starbucks   Store #123 "))
	assert.Equal(t, "", NormalizeDescription("   "))
}

func TestStatementResultFailed(t *testing.T) {
	ok := StatementResult{}
	assert.False(t, ok.Failed())

	warned := StatementResult{Errors: []string{LineSkippedPrefix + "ambiguous row"}}
	assert.False(t, warned.Failed())
	assert.Equal(t, []string{"ambiguous row"}, warned.SkippedLines())

	failed := StatementResult{Errors: []string{"Could not find TRANSACTIONS section"}}
	assert.True(t, failed.Failed())
	assert.Empty(t, failed.SkippedLines())
}

func TestFlowRuleWindow(t *testing.T) {
	assert.Equal(t, DefaultTimeWindowHours, (&FlowRule{}).Window())
	assert.Equal(t, 12, (&FlowRule{TimeWindowHours: 12}).Window())
}
