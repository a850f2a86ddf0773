// Package factory assembles the statement parser registry from the
// institution parsers the module ships with.
package factory

import (
	"finflow/internal/chaseparser"
	"finflow/internal/dcbparser"
	"finflow/internal/hdfcparser"
	"finflow/internal/logging"
	"finflow/internal/statement"
	"finflow/internal/textextract"
	"finflow/internal/zolveparser"
)

// NewRegistry returns a registry with every supported institution parser
// registered, all sharing the given extractor.
func NewRegistry(extractor textextract.Extractor, log logging.Logger) *statement.Registry {
	if log == nil {
		log = logging.GetLogger()
	}
	r := statement.NewRegistry(log)
	r.Register(chaseparser.NewAdapter(extractor, log))
	r.Register(hdfcparser.NewAdapter(extractor, log))
	r.Register(dcbparser.NewAdapter(extractor, log))
	r.Register(zolveparser.NewAdapter(extractor, log))
	return r
}
