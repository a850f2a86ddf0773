package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a statement amount string to decimal.Decimal.
// It strips currency symbols, thousands separators and whitespace before
// conversion. Unparseable input yields decimal.Zero.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, "₹", "")
	amount = strings.ReplaceAll(amount, "Rs.", "")
	amount = strings.ReplaceAll(amount, "INR", "")
	amount = strings.ReplaceAll(amount, "USD", "")
	// Remove thousand separators
	amount = strings.ReplaceAll(amount, ",", "")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

// SignedAmount applies the persistence sign convention: credit positive,
// debit negative. magnitude must be non-negative.
func SignedAmount(magnitude decimal.Decimal, direction Direction) decimal.Decimal {
	if direction == DirectionDebit {
		return magnitude.Neg()
	}
	return magnitude
}
