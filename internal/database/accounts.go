package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"finflow/internal/models"
)

// ErrAccountNotFound is returned by account lookups that match nothing.
var ErrAccountNotFound = errors.New("account not found")

// CreateAccount inserts a new account for this user and returns its id.
func (s *UserStore) CreateAccount(name, currency, institution string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO accounts (id, user_id, name, currency, institution)
		VALUES (?, ?, ?, ?, ?)
	`, id, s.userID, name, currency, institution)
	if err != nil {
		return "", fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

// GetAccount returns one of this user's accounts by id.
func (s *UserStore) GetAccount(id string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRow(`
		SELECT id, user_id, name, currency, institution
		FROM accounts
		WHERE id = ? AND user_id = ?
	`, id, s.userID).Scan(&a.ID, &a.UserID, &a.Name, &a.Currency, &a.Institution)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query account: %w", err)
	}
	return &a, nil
}

// ListAccounts returns all of this user's accounts ordered by name.
func (s *UserStore) ListAccounts() ([]models.Account, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, currency, institution
		FROM accounts
		WHERE user_id = ?
		ORDER BY name
	`, s.userID)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Currency, &a.Institution); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// EnsureAccount returns the id of this user's account with the given name,
// creating it when absent.
func (s *UserStore) EnsureAccount(name, currency, institution string) (string, error) {
	var id string
	err := s.db.QueryRow(`
		SELECT id FROM accounts WHERE user_id = ? AND name = ?
	`, s.userID, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return s.CreateAccount(name, currency, institution)
	}
	if err != nil {
		return "", fmt.Errorf("query account by name: %w", err)
	}
	return id, nil
}
