// Package statement defines the parser contract for institution statement
// parsers and the registry that dispatches on institution name.
package statement

import (
	"context"

	"finflow/internal/models"
)

// Parser converts a raw PDF statement into a structured result. Parse never
// returns an error: failures are reported inside StatementResult.Errors so a
// caller always receives whatever transactions could be recovered.
type Parser interface {
	// Institution returns the name the parser is registered under.
	Institution() string
	// Parse extracts and parses the statement, honoring ctx deadlines
	// during text extraction.
	Parse(ctx context.Context, pdf []byte) models.StatementResult
}
