// Package ingest turns a parsed statement into persisted, categorized
// transactions for one account.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"finflow/internal/categorizer"
	"finflow/internal/database"
	"finflow/internal/logging"
	"finflow/internal/models"
	"finflow/internal/statement"
)

// Service wires the parser registry, the store and the categorization
// engine into the statement ingestion flow.
type Service struct {
	registry *statement.Registry
	store    *database.UserStore
	engine   *categorizer.Engine
	log      logging.Logger
}

// NewService creates an ingestion service for one user.
func NewService(registry *statement.Registry, store *database.UserStore, engine *categorizer.Engine, log logging.Logger) *Service {
	if log == nil {
		log = logging.GetLogger()
	}
	return &Service{registry: registry, store: store, engine: engine, log: log}
}

// Result reports what one statement ingestion did.
type Result struct {
	Statement   models.StatementResult
	Parsed      int
	Inserted    int
	Categorized int
	Skipped     []string
}

// IngestStatement parses the PDF with institution's parser, persists the
// recovered transactions into accountID with the signed-amount convention
// and categorizes the new rows. A statement with fatal parse errors is not
// persisted at all; line-level skip warnings are carried in Result.Skipped
// and do not block persisting.
func (s *Service) IngestStatement(ctx context.Context, accountID string, pdf []byte, institution string) (Result, error) {
	account, err := s.store.GetAccount(accountID)
	if err != nil {
		return Result{}, err
	}

	parsed := s.registry.ParseStatement(ctx, pdf, institution)
	result := Result{
		Statement: parsed,
		Parsed:    len(parsed.Transactions),
		Skipped:   parsed.SkippedLines(),
	}
	if parsed.Failed() {
		return result, fmt.Errorf("statement parsing failed: %s", parsed.Errors[0])
	}

	rows := make([]models.Transaction, 0, len(parsed.Transactions))
	for _, raw := range parsed.Transactions {
		rows = append(rows, models.Transaction{
			ID:                    uuid.NewString(),
			AccountID:             account.ID,
			PostedAt:              raw.Date,
			Amount:                models.SignedAmount(raw.Amount, raw.Direction),
			Currency:              account.Currency,
			RawDescription:        raw.Description,
			NormalizedDescription: models.NormalizeDescription(raw.Description),
			CategorizationSource:  models.SourceNone,
		})
	}

	inserted, err := s.store.InsertTransactions(rows)
	if err != nil {
		return result, err
	}
	result.Inserted = inserted

	report, err := s.engine.CategorizeAll()
	if err != nil {
		return result, err
	}
	result.Categorized = report.Categorized

	s.log.WithFields(
		logging.Field{Key: logging.FieldInstitution, Value: institution},
		logging.Field{Key: logging.FieldAccount, Value: account.ID},
		logging.Field{Key: "parsed", Value: result.Parsed},
		logging.Field{Key: "inserted", Value: result.Inserted},
		logging.Field{Key: "categorized", Value: result.Categorized},
	).Info("Statement ingested")
	return result, nil
}
