package database

import (
	"fmt"

	"github.com/google/uuid"

	"finflow/internal/models"
)

// RecordCorrection appends a manual override to the correction log.
func (s *UserStore) RecordCorrection(transactionID, field, oldValue, newValue string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO transaction_corrections (id, user_id, transaction_id, field, old_value, new_value)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, s.userID, transactionID, field, oldValue, newValue)
	if err != nil {
		return "", fmt.Errorf("insert correction: %w", err)
	}
	return id, nil
}

// ListRecentCorrections returns this user's most recent corrections to the
// given field, newest first, capped at limit.
func (s *UserStore) ListRecentCorrections(field string, limit int) ([]models.TransactionCorrection, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, transaction_id, field, old_value, new_value, created_at
		FROM transaction_corrections
		WHERE user_id = ? AND field = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, s.userID, field, limit)
	if err != nil {
		return nil, fmt.Errorf("query corrections: %w", err)
	}
	defer rows.Close()

	var corrections []models.TransactionCorrection
	for rows.Next() {
		var c models.TransactionCorrection
		if err := rows.Scan(&c.ID, &c.UserID, &c.TransactionID, &c.Field,
			&c.OldValue, &c.NewValue, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}
	return corrections, rows.Err()
}
