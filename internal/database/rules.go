package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finflow/internal/models"
)

// CreateCategoryRule inserts a user categorization rule and returns its id.
func (s *UserStore) CreateCategoryRule(rule models.UserCategoryRule) (string, error) {
	id := rule.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO user_category_rules (
			id, user_id, account_id, category_id, merchant, description_includes, priority
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, s.userID, nullString(rule.AccountID), rule.CategoryID,
		rule.Merchant, joinList(rule.DescriptionIncludes), rule.Priority)
	if err != nil {
		return "", fmt.Errorf("insert category rule: %w", err)
	}
	return id, nil
}

// ListCategoryRules returns this user's rules ordered by descending
// priority, ties broken by id for determinism.
func (s *UserStore) ListCategoryRules() ([]models.UserCategoryRule, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, account_id, category_id, merchant, description_includes, priority
		FROM user_category_rules
		WHERE user_id = ?
		ORDER BY priority DESC, id
	`, s.userID)
	if err != nil {
		return nil, fmt.Errorf("query category rules: %w", err)
	}
	defer rows.Close()

	var rules []models.UserCategoryRule
	for rows.Next() {
		var r models.UserCategoryRule
		var accountID sql.NullString
		var includes string
		if err := rows.Scan(&r.ID, &r.UserID, &accountID, &r.CategoryID,
			&r.Merchant, &includes, &r.Priority); err != nil {
			return nil, fmt.Errorf("scan category rule: %w", err)
		}
		r.AccountID = stringPtr(accountID)
		r.DescriptionIncludes = splitList(includes)
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// CreateFlowRule inserts a flow rule and returns its id.
func (s *UserStore) CreateFlowRule(rule models.FlowRule) (string, error) {
	id := rule.ID
	if id == "" {
		id = uuid.NewString()
	}
	var minAmount, maxAmount any
	if rule.MinAmount != nil {
		minAmount = rule.MinAmount.String()
	}
	if rule.MaxAmount != nil {
		maxAmount = rule.MaxAmount.String()
	}
	_, err := s.db.Exec(`
		INSERT INTO flow_rules (
			id, user_id, name, source_account_id, destination_account_id,
			match_direction, description_includes, description_regex,
			min_amount, max_amount, time_window_hours, handling, priority, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, s.userID, rule.Name, nullString(rule.SourceAccountID), nullString(rule.DestinationAccountID),
		string(rule.MatchDirection), joinList(rule.DescriptionIncludes), rule.DescriptionRegex,
		minAmount, maxAmount, rule.TimeWindowHours, string(rule.Handling), rule.Priority, rule.IsActive)
	if err != nil {
		return "", fmt.Errorf("insert flow rule: %w", err)
	}
	return id, nil
}

// ListActiveFlowRules returns this user's active flow rules ordered by
// descending priority.
func (s *UserStore) ListActiveFlowRules() ([]models.FlowRule, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, source_account_id, destination_account_id,
		       match_direction, description_includes, description_regex,
		       min_amount, max_amount, time_window_hours, handling, priority, is_active
		FROM flow_rules
		WHERE user_id = ? AND is_active = 1
		ORDER BY priority DESC, id
	`, s.userID)
	if err != nil {
		return nil, fmt.Errorf("query flow rules: %w", err)
	}
	defer rows.Close()

	var rules []models.FlowRule
	for rows.Next() {
		var r models.FlowRule
		var sourceID, destID, minAmount, maxAmount sql.NullString
		var direction, handling, includes string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &sourceID, &destID,
			&direction, &includes, &r.DescriptionRegex,
			&minAmount, &maxAmount, &r.TimeWindowHours, &handling, &r.Priority, &r.IsActive); err != nil {
			return nil, fmt.Errorf("scan flow rule: %w", err)
		}
		r.SourceAccountID = stringPtr(sourceID)
		r.DestinationAccountID = stringPtr(destID)
		r.MatchDirection = models.MatchDirection(direction)
		r.Handling = models.Handling(handling)
		r.DescriptionIncludes = splitList(includes)
		if minAmount.Valid {
			d, err := decimal.NewFromString(minAmount.String)
			if err != nil {
				return nil, fmt.Errorf("parse stored min amount %q: %w", minAmount.String, err)
			}
			r.MinAmount = &d
		}
		if maxAmount.Valid {
			d, err := decimal.NewFromString(maxAmount.String)
			if err != nil {
				return nil, fmt.Errorf("parse stored max amount %q: %w", maxAmount.String, err)
			}
			r.MaxAmount = &d
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}
