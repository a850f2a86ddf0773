package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"finflow/internal/models"
)

// ErrTransactionNotFound is returned by transaction lookups that match nothing.
var ErrTransactionNotFound = errors.New("transaction not found")

const txColumns = `id, user_id, account_id, posted_at, amount, currency,
	raw_description, normalized_description, merchant,
	category_id, subcategory_id,
	is_internal_transfer, is_income, is_expense,
	transfer_group_id, counterparty_account_id, categorization_source`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var t models.Transaction
	var amount string
	var categoryID, subcategoryID, groupID, counterparty sql.NullString
	var source string

	err := row.Scan(&t.ID, &t.UserID, &t.AccountID, &t.PostedAt, &amount, &t.Currency,
		&t.RawDescription, &t.NormalizedDescription, &t.Merchant,
		&categoryID, &subcategoryID,
		&t.IsInternalTransfer, &t.IsIncome, &t.IsExpense,
		&groupID, &counterparty, &source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}

	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	t.CategoryID = stringPtr(categoryID)
	t.SubcategoryID = stringPtr(subcategoryID)
	t.TransferGroupID = stringPtr(groupID)
	t.CounterpartyAccountID = stringPtr(counterparty)
	t.CategorizationSource = models.Source(source)
	return &t, nil
}

func collectTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	var out []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// InsertTransactions persists a batch atomically and returns how many rows
// were actually inserted. Rows that collide with an already stored one
// (same account, date, amount and raw description) are silently skipped,
// which makes re-ingesting a statement idempotent.
func (s *UserStore) InsertTransactions(txs []models.Transaction) (int, error) {
	dbTx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	defer func() { _ = dbTx.Rollback() }()

	stmt, err := dbTx.Prepare(`
		INSERT OR IGNORE INTO transactions (
			id, user_id, account_id, posted_at, amount, currency,
			raw_description, normalized_description, merchant,
			category_id, subcategory_id,
			is_internal_transfer, is_income, is_expense,
			transfer_group_id, counterparty_account_id, categorization_source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range txs {
		res, err := stmt.Exec(t.ID, s.userID, t.AccountID, t.PostedAt, t.Amount.String(), t.Currency,
			t.RawDescription, t.NormalizedDescription, t.Merchant,
			nullString(t.CategoryID), nullString(t.SubcategoryID),
			t.IsInternalTransfer, t.IsIncome, t.IsExpense,
			nullString(t.TransferGroupID), nullString(t.CounterpartyAccountID),
			string(t.CategorizationSource))
		if err != nil {
			return 0, fmt.Errorf("insert transaction: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}
	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	return inserted, nil
}

// GetTransaction returns one of this user's transactions by id.
func (s *UserStore) GetTransaction(id string) (*models.Transaction, error) {
	return scanTransaction(s.db.QueryRow(`
		SELECT `+txColumns+` FROM transactions
		WHERE id = ? AND user_id = ?
	`, id, s.userID))
}

// ListTransactions returns this user's transactions, optionally limited to
// one account, ordered by posting date.
func (s *UserStore) ListTransactions(accountID *string) ([]models.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE user_id = ?`
	args := []any{s.userID}
	if accountID != nil {
		query += ` AND account_id = ?`
		args = append(args, *accountID)
	}
	query += ` ORDER BY posted_at, id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	return collectTransactions(rows)
}

// ListForCategorization returns every transaction the engine may touch,
// which excludes manually categorized rows.
func (s *UserStore) ListForCategorization() ([]models.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT `+txColumns+` FROM transactions
		WHERE user_id = ? AND categorization_source != ?
		ORDER BY posted_at, id
	`, s.userID, string(models.SourceManual))
	if err != nil {
		return nil, fmt.Errorf("query transactions for categorization: %w", err)
	}
	return collectTransactions(rows)
}

// ListUncategorized returns transactions with no category assigned.
func (s *UserStore) ListUncategorized() ([]models.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT `+txColumns+` FROM transactions
		WHERE user_id = ? AND category_id IS NULL
		ORDER BY posted_at, id
	`, s.userID)
	if err != nil {
		return nil, fmt.Errorf("query uncategorized transactions: %w", err)
	}
	return collectTransactions(rows)
}

// UpdateCategory sets the transaction's category, subcategory, merchant and
// categorization source.
func (s *UserStore) UpdateCategory(txID string, categoryID, subcategoryID *string, merchant string, source models.Source) error {
	res, err := s.db.Exec(`
		UPDATE transactions
		SET category_id = ?, subcategory_id = ?, merchant = ?, categorization_source = ?
		WHERE id = ? AND user_id = ?
	`, nullString(categoryID), nullString(subcategoryID), merchant, string(source), txID, s.userID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res)
}

// SetManualCategory records a user's explicit category choice, which locks
// the transaction against the engine.
func (s *UserStore) SetManualCategory(txID string, categoryID string, subcategoryID *string) error {
	res, err := s.db.Exec(`
		UPDATE transactions
		SET category_id = ?, subcategory_id = ?, categorization_source = ?
		WHERE id = ? AND user_id = ?
	`, categoryID, nullString(subcategoryID), string(models.SourceManual), txID, s.userID)
	if err != nil {
		return fmt.Errorf("set manual category: %w", err)
	}
	return requireRow(res)
}

// SetFlowFlags records the economic role a flow rule assigned.
func (s *UserStore) SetFlowFlags(txID string, internalTransfer, income, expense bool) error {
	res, err := s.db.Exec(`
		UPDATE transactions
		SET is_internal_transfer = ?, is_income = ?, is_expense = ?
		WHERE id = ? AND user_id = ?
	`, internalTransfer, income, expense, txID, s.userID)
	if err != nil {
		return fmt.Errorf("set flow flags: %w", err)
	}
	return requireRow(res)
}

// SetCounterpartyAccount records the account the transaction's money moved
// to or from, as declared by a flow rule's destination.
func (s *UserStore) SetCounterpartyAccount(txID, accountID string) error {
	res, err := s.db.Exec(`
		UPDATE transactions
		SET counterparty_account_id = ?
		WHERE id = ? AND user_id = ?
	`, accountID, txID, s.userID)
	if err != nil {
		return fmt.Errorf("set counterparty account: %w", err)
	}
	return requireRow(res)
}

// CountInternalTransfers returns how many of this user's transactions are
// flagged as internal transfers, paired or not.
func (s *UserStore) CountInternalTransfers() (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM transactions
		WHERE user_id = ? AND is_internal_transfer = 1
	`, s.userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count internal transfers: %w", err)
	}
	return n, nil
}

// ListUnpairedTransfers returns internal transfers that have not been
// grouped with their counterparty yet, most recent first. The pairing pass
// claims greedily in this order.
func (s *UserStore) ListUnpairedTransfers() ([]models.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT `+txColumns+` FROM transactions
		WHERE user_id = ? AND is_internal_transfer = 1 AND transfer_group_id IS NULL
		ORDER BY posted_at DESC, id
	`, s.userID)
	if err != nil {
		return nil, fmt.Errorf("query unpaired transfers: %w", err)
	}
	return collectTransactions(rows)
}

// FindPairCandidates returns unpaired transactions in other accounts moving
// the opposite direction within the window around the anchor. Candidates do
// not need to be pre-flagged as transfers; pairing stamps both legs.
func (s *UserStore) FindPairCandidates(anchor *models.Transaction, windowHours int) ([]models.Transaction, error) {
	window := time.Duration(windowHours) * time.Hour
	oppositeDebit := !anchor.Amount.IsNegative()

	rows, err := s.db.Query(`
		SELECT `+txColumns+` FROM transactions
		WHERE user_id = ?
		  AND id != ?
		  AND account_id != ?
		  AND transfer_group_id IS NULL
		  AND posted_at BETWEEN ? AND ?
		  AND (CAST(amount AS REAL) < 0) = ?
		ORDER BY posted_at, id
	`, s.userID, anchor.ID, anchor.AccountID,
		anchor.PostedAt.Add(-window), anchor.PostedAt.Add(window), oppositeDebit)
	if err != nil {
		return nil, fmt.Errorf("query pair candidates: %w", err)
	}
	return collectTransactions(rows)
}

// PairTransfers atomically stamps both legs of a matched transfer with a
// shared group id, the transfer flags, and each other's account as
// counterparty. Legs already claimed by another group abort the pairing.
func (s *UserStore) PairTransfers(groupID string, a, b *models.Transaction) error {
	dbTx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin pairing: %w", err)
	}
	defer func() { _ = dbTx.Rollback() }()

	stamp := func(txID, counterpartyAccount string) error {
		res, err := dbTx.Exec(`
			UPDATE transactions
			SET transfer_group_id = ?, counterparty_account_id = ?,
			    is_internal_transfer = 1, is_income = 0, is_expense = 0
			WHERE id = ? AND user_id = ? AND transfer_group_id IS NULL
		`, groupID, counterpartyAccount, txID, s.userID)
		if err != nil {
			return fmt.Errorf("stamp transfer leg: %w", err)
		}
		return requireRow(res)
	}
	if err := stamp(a.ID, b.AccountID); err != nil {
		return err
	}
	if err := stamp(b.ID, a.AccountID); err != nil {
		return err
	}
	return dbTx.Commit()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
