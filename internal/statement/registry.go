package statement

import (
	"context"
	"sort"

	"finflow/internal/logging"
	"finflow/internal/models"
	"finflow/internal/parsererror"
)

// Registry maps institution names to parsers. Lookup is exact-match on the
// registered name.
type Registry struct {
	parsers map[string]Parser
	log     logging.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(log logging.Logger) *Registry {
	if log == nil {
		log = logging.GetLogger()
	}
	return &Registry{parsers: make(map[string]Parser), log: log}
}

// Register adds a parser under its institution name, replacing any previous
// registration for that name.
func (r *Registry) Register(p Parser) {
	r.parsers[p.Institution()] = p
}

// Has reports whether a parser is registered for the institution.
func (r *Registry) Has(institution string) bool {
	_, ok := r.parsers[institution]
	return ok
}

// Available returns the registered institution names in sorted order.
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseStatement dispatches to the parser registered for institution. An
// unknown institution yields an empty result carrying the lookup error in
// Errors rather than a Go error, matching the per-statement fault model.
func (r *Registry) ParseStatement(ctx context.Context, pdf []byte, institution string) models.StatementResult {
	p, ok := r.parsers[institution]
	if !ok {
		err := &parsererror.UnknownInstitutionError{Institution: institution}
		r.log.WithField(logging.FieldInstitution, institution).
			Warn("No parser registered for institution")
		return models.StatementResult{Errors: []string{err.Error()}}
	}

	r.log.WithField(logging.FieldInstitution, institution).Info("Parsing statement")
	result := p.Parse(ctx, pdf)
	r.log.WithFields(
		logging.Field{Key: logging.FieldInstitution, Value: institution},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: "errors", Value: len(result.Errors)},
	).Info("Statement parsed")
	return result
}
