package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"finflow/internal/models"
)

// seedCategory describes one top-level system category and its children.
type seedCategory struct {
	Name          string
	Icon          string
	Color         string
	Subcategories []string
}

var systemCatalog = []seedCategory{
	{"Food & Dining", "🍔", "#FF6B6B", []string{"Restaurants", "Groceries", "Coffee & Cafes", "Fast Food"}},
	{"Transportation", "🚗", "#4ECDC4", []string{"Uber/Lyft", "Gas", "Parking", "Public Transit", "Auto Insurance"}},
	{"Shopping", "🛍️", "#95E1D3", []string{"Clothing", "Electronics", "Home & Garden", "Personal Care"}},
	{"Housing", "🏠", "#F38181", []string{"Rent", "Utilities", "Internet", "Home Insurance", "Maintenance"}},
	{"Healthcare", "🏥", "#AA96DA", []string{"Doctor Visits", "Pharmacy", "Health Insurance", "Dental"}},
	{"Entertainment", "🎮", "#FCBAD3", []string{"Streaming Services", "Movies", "Games", "Hobbies"}},
	{"Education", "📚", "#A8D8EA", []string{"Tuition", "Books", "Courses", "Supplies"}},
	{"Subscriptions", "📱", "#FFD93D", []string{"Netflix", "Spotify", "Software", "Memberships"}},
	{"Travel", "✈️", "#6BCB77", []string{"Flights", "Hotels", "Activities", "Travel Insurance"}},
	{"Fees & Charges", "💳", "#FF6464", []string{"Bank Fees", "ATM Fees", "Late Fees", "Service Charges"}},
	{"Income", "💰", "#4CAF50", []string{"Salary", "Family Support", "Refunds", "Interest", "Other Income"}},
	{"Transfers", "🔄", "#9E9E9E", []string{"Internal Transfer", "Account Transfer"}},
	{"Miscellaneous", "📦", "#B0B0B0", []string{"Other", "Uncategorized"}},
}

func categorySlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// SystemCategoryID returns the deterministic id of a top-level system
// category, e.g. "system-food-&-dining".
func SystemCategoryID(name string) string {
	return "system-" + categorySlug(name)
}

// Seed inserts the system category catalog. Existing rows are left alone so
// seeding is idempotent.
func (db *DB) Seed() error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for order, cat := range systemCatalog {
		parentID := SystemCategoryID(cat.Name)
		_, err := tx.Exec(`
			INSERT INTO categories (id, name, parent_id, is_system, icon, color, sort_order)
			VALUES (?, ?, NULL, 1, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, parentID, cat.Name, cat.Icon, cat.Color, order)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", cat.Name, err)
		}
		for _, sub := range cat.Subcategories {
			subID := parentID + "-" + categorySlug(sub)
			_, err := tx.Exec(`
				INSERT INTO categories (id, name, parent_id, is_system, icon, color, sort_order)
				VALUES (?, ?, ?, 1, '', '', 0)
				ON CONFLICT(id) DO NOTHING
			`, subID, sub, parentID)
			if err != nil {
				return fmt.Errorf("seed subcategory %s/%s: %w", cat.Name, sub, err)
			}
		}
	}
	return tx.Commit()
}

// ErrCategoryNotFound is returned by category lookups that match nothing.
var ErrCategoryNotFound = errors.New("category not found")

func scanCategory(row *sql.Row) (*models.Category, error) {
	var c models.Category
	var parentID sql.NullString
	err := row.Scan(&c.ID, &c.Name, &parentID, &c.IsSystem, &c.Icon, &c.Color, &c.Order)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	c.ParentID = stringPtr(parentID)
	return &c, nil
}

// GetCategory returns a category by id.
func (db *DB) GetCategory(id string) (*models.Category, error) {
	return scanCategory(db.QueryRow(`
		SELECT id, name, parent_id, is_system, icon, color, sort_order
		FROM categories WHERE id = ?
	`, id))
}

// FindSystemCategory returns the top-level system category with the given
// name, e.g. "Transfers".
func (db *DB) FindSystemCategory(name string) (*models.Category, error) {
	return scanCategory(db.QueryRow(`
		SELECT id, name, parent_id, is_system, icon, color, sort_order
		FROM categories
		WHERE name = ? AND parent_id IS NULL AND is_system = 1
	`, name))
}

// FindChildCategory returns the subcategory with the given name under the
// given parent.
func (db *DB) FindChildCategory(parentID, name string) (*models.Category, error) {
	return scanCategory(db.QueryRow(`
		SELECT id, name, parent_id, is_system, icon, color, sort_order
		FROM categories
		WHERE name = ? AND parent_id = ?
	`, name, parentID))
}
