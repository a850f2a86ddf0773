package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction is one recognized line of a bank statement. It is the
// ephemeral parser output, consumed immediately to build persisted
// Transaction rows and never stored itself.
type RawTransaction struct {
	Date        time.Time
	Description string
	// Amount is a non-negative magnitude; Direction carries the sign.
	Amount    decimal.Decimal
	Direction Direction
	// Balance is the running balance after this transaction, when the
	// statement layout includes one.
	Balance *decimal.Decimal
	// Raw holds opaque per-parser diagnostic fields for debugging.
	Raw map[string]string
}

// StatementResult aggregates everything a statement parser extracted.
// Metadata fields are independently optional; their absence does not make
// the result a failure.
type StatementResult struct {
	Transactions   []RawTransaction
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	AccountNumber  string
	OpeningBalance *decimal.Decimal
	ClosingBalance *decimal.Decimal
	Errors         []string
}

// LineSkippedPrefix marks non-fatal per-line warnings in Errors. A result
// whose only errors carry this prefix is still a trustworthy partial parse.
const LineSkippedPrefix = "line skipped: "

// Failed reports whether the result contains a fatal error. Callers must not
// persist transactions from a failed result.
func (r *StatementResult) Failed() bool {
	for _, e := range r.Errors {
		if !strings.HasPrefix(e, LineSkippedPrefix) {
			return true
		}
	}
	return false
}

// SkippedLines returns the per-line skip warnings, prefix stripped.
func (r *StatementResult) SkippedLines() []string {
	var skipped []string
	for _, e := range r.Errors {
		if strings.HasPrefix(e, LineSkippedPrefix) {
			skipped = append(skipped, strings.TrimPrefix(e, LineSkippedPrefix))
		}
	}
	return skipped
}
