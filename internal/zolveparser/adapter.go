// Package zolveparser parses Zolve credit card statements. The transaction
// table lives under a "TRANSACTIONS" heading with Date | Description |
// Amount columns, MM/DD dates and dollar amounts. Charges are debits;
// payments, credits and refunds are credits.
package zolveparser

import (
	"context"

	"finflow/internal/logging"
	"finflow/internal/models"
	"finflow/internal/parsererror"
	"finflow/internal/statement"
	"finflow/internal/textextract"
)

const institution = "Zolve"

// Adapter implements statement.Parser for Zolve statements.
type Adapter struct {
	extractor textextract.Extractor
	log       logging.Logger
}

// NewAdapter creates a Zolve statement parser using the given extractor.
func NewAdapter(extractor textextract.Extractor, log logging.Logger) *Adapter {
	if log == nil {
		log = logging.GetLogger()
	}
	return &Adapter{extractor: extractor, log: log}
}

// Institution implements statement.Parser.
func (a *Adapter) Institution() string {
	return institution
}

// Parse implements statement.Parser.
func (a *Adapter) Parse(ctx context.Context, pdf []byte) (result models.StatementResult) {
	defer statement.RecoverResult(&result)

	text, err := a.extractor.ExtractText(ctx, pdf)
	if err != nil {
		extErr := parsererror.NewExtractionError(institution, "extracting statement text", err)
		result.Errors = append(result.Errors, extErr.Error())
		return result
	}
	return parseText(text, a.log)
}
