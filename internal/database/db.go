// Package database persists accounts, transactions, rules and corrections
// in SQLite. All user data access goes through UserStore so every query is
// scoped to one user by construction.
package database

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// listSeparator joins multi-valued keyword columns into a single TEXT cell.
const listSeparator = "\x1f"

type DB struct {
	*sql.DB
}

// Open opens or creates the database at the given path. Use ":memory:" for
// an ephemeral database.
func Open(dbPath string) (*DB, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each pooled connection would otherwise see its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{db}, nil
}

// Init creates tables if they don't exist.
func (db *DB) Init() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// ForUser returns a store handle bound to one user. Every method on the
// returned store filters by this user id.
func (db *DB) ForUser(userID string) *UserStore {
	return &UserStore{db: db, userID: userID}
}

// UserStore is a per-user view over the database.
type UserStore struct {
	db     *DB
	userID string
}

// UserID returns the user this store is bound to.
func (s *UserStore) UserID() string {
	return s.userID
}

// EnsureUser creates the user row if it does not exist yet.
func (db *DB) EnsureUser(id, email, name, baseCurrency string) error {
	_, err := db.Exec(`
		INSERT INTO users (id, email, name, base_currency)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, email, name, baseCurrency)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

func joinList(values []string) string {
	return strings.Join(values, listSeparator)
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, listSeparator)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
