// Package parsererror defines the typed errors produced by statement
// parsing and text extraction.
package parsererror

import "fmt"

// ExtractionError represents a failure to get text out of a PDF buffer,
// including a corrupt document or an extraction tool timing out.
type ExtractionError struct {
	Institution string
	Msg         string
	Err         error
}

// NewExtractionError wraps err with the extraction step that failed. The
// institution may be empty when the failure predates parser selection.
func NewExtractionError(institution, msg string, err error) *ExtractionError {
	return &ExtractionError{Institution: institution, Msg: msg, Err: err}
}

func (e *ExtractionError) Error() string {
	if e.Institution == "" {
		return fmt.Sprintf("text extraction failed: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: text extraction failed: %s: %v", e.Institution, e.Msg, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// SectionNotFoundError is raised when a statement lacks the transaction
// table heading the institution's layout requires. There is no fallback
// strategy for a wholly different layout, so this is fatal per statement.
type SectionNotFoundError struct {
	Institution string
	Section     string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("Could not find %s section", e.Section)
}

// ParseError represents an unexpected structural failure inside a parser.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnknownInstitutionError is returned by the registry when no parser is
// registered under the requested institution name.
type UnknownInstitutionError struct {
	Institution string
}

func (e *UnknownInstitutionError) Error() string {
	return fmt.Sprintf("No parser available for institution: %s", e.Institution)
}
