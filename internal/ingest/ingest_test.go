package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow/internal/categorizer"
	"finflow/internal/database"
	"finflow/internal/factory"
	"finflow/internal/logging"
	"finflow/internal/models"
	"finflow/internal/textextract"
)

const chaseStatement = `CHASE COLLEGE CHECKING
Account Number: 123456789
Statement Period: Jan 01 - Jan 31, 2024

TRANSACTION DETAIL
01/15 STARBUCKS STORE #123 -5.75 1,234.50
01/20 DIRECT DEPOSIT PAYROLL 2,500.00 3,734.50
TOTAL DEPOSITS $2,500.00
`

func newService(t *testing.T, text string) (*Service, *database.UserStore, string) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Init())
	require.NoError(t, db.Seed())
	require.NoError(t, db.EnsureUser("alice", "alice@example.com", "Alice", "USD"))

	store := db.ForUser("alice")
	accountID, err := store.CreateAccount("Checking", "USD", "Chase")
	require.NoError(t, err)

	log := logging.NewMockLogger()
	registry := factory.NewRegistry(textextract.NewMockExtractor(text), log)
	engine := categorizer.NewEngine(store, db, nil, log)
	return NewService(registry, store, engine, log), store, accountID
}

func TestIngestStatement(t *testing.T) {
	svc, store, accountID := newService(t, chaseStatement)

	result, err := svc.IngestStatement(context.Background(), accountID, []byte("%PDF"), "Chase")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Parsed)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 2, result.Categorized)
	assert.Empty(t, result.Skipped)

	txs, err := store.ListTransactions(&accountID)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// credits positive, debits negative
	coffee := txs[0]
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), coffee.PostedAt.UTC())
	assert.True(t, coffee.Amount.Equal(decimal.RequireFromString("-5.75")))
	assert.Equal(t, "STARBUCKS STORE #123", coffee.RawDescription)
	assert.Equal(t, "USD", coffee.Currency)
	require.NotNil(t, coffee.CategoryID)
	assert.Equal(t, database.SystemCategoryID("Food & Dining"), *coffee.CategoryID)

	payroll := txs[1]
	assert.True(t, payroll.Amount.Equal(decimal.RequireFromString("2500.00")))
	assert.Equal(t, models.DirectionCredit, payroll.Direction())
	require.NotNil(t, payroll.CategoryID)
	assert.Equal(t, database.SystemCategoryID("Income"), *payroll.CategoryID)
}

func TestIngestIsIdempotent(t *testing.T) {
	svc, store, accountID := newService(t, chaseStatement)

	_, err := svc.IngestStatement(context.Background(), accountID, []byte("%PDF"), "Chase")
	require.NoError(t, err)

	result, err := svc.IngestStatement(context.Background(), accountID, []byte("%PDF"), "Chase")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Parsed)
	assert.Equal(t, 0, result.Inserted)

	txs, err := store.ListTransactions(&accountID)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestIngestFailedStatementPersistsNothing(t *testing.T) {
	svc, store, accountID := newService(t, "not a chase statement at all")

	result, err := svc.IngestStatement(context.Background(), accountID, []byte("%PDF"), "Chase")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not find TRANSACTION DETAIL section")
	assert.Equal(t, 0, result.Inserted)

	txs, err := store.ListTransactions(nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestIngestUnknownInstitution(t *testing.T) {
	svc, _, accountID := newService(t, chaseStatement)

	_, err := svc.IngestStatement(context.Background(), accountID, []byte("%PDF"), "Acme Bank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No parser available for institution: Acme Bank")
}

func TestIngestUnknownAccount(t *testing.T) {
	svc, _, _ := newService(t, chaseStatement)

	_, err := svc.IngestStatement(context.Background(), "missing", []byte("%PDF"), "Chase")
	assert.ErrorIs(t, err, database.ErrAccountNotFound)
}
