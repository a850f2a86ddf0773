// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a persisted, normalized bank transaction owned by a user
// and an account.
//
// Amount is signed: credits are positive, debits negative. The sign is fixed
// when the row is created from a RawTransaction and never flipped afterwards.
type Transaction struct {
	ID        string          `csv:"ID"`
	UserID    string          `csv:"-"`
	AccountID string          `csv:"AccountID"`
	PostedAt  time.Time       `csv:"PostedAt"`
	Amount    decimal.Decimal `csv:"Amount"`
	Currency  string          `csv:"Currency"`

	RawDescription        string `csv:"RawDescription"`
	NormalizedDescription string `csv:"NormalizedDescription"`
	Merchant              string `csv:"Merchant"`

	CategoryID    *string `csv:"CategoryID"`
	SubcategoryID *string `csv:"SubcategoryID"`

	IsInternalTransfer bool `csv:"IsInternalTransfer"`
	IsIncome           bool `csv:"IsIncome"`
	IsExpense          bool `csv:"IsExpense"`

	TransferGroupID       *string `csv:"TransferGroupID"`
	CounterpartyAccountID *string `csv:"CounterpartyAccountID"`

	// CategorizationSource gates re-categorization: "manual" is never
	// overwritten by the engine.
	CategorizationSource Source `csv:"CategorizationSource"`
}

// Direction derives the movement direction from the signed amount.
func (t *Transaction) Direction() Direction {
	if t.Amount.IsNegative() {
		return DirectionDebit
	}
	return DirectionCredit
}

// AbsAmount returns the unsigned magnitude of the transaction amount.
func (t *Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// IsCategorized reports whether a category has been assigned.
func (t *Transaction) IsCategorized() bool {
	return t.CategoryID != nil
}

// Account is a user-owned bank account a statement belongs to.
type Account struct {
	ID          string
	UserID      string
	Name        string
	Currency    string
	Institution string
}

// Category is one node of the two-level category catalog. System categories
// are seeded and shared; user categories carry the owning user's id.
type Category struct {
	ID       string
	Name     string
	ParentID *string
	IsSystem bool
	Icon     string
	Color    string
	Order    int
}

// UserCategoryRule maps description keywords or a merchant substring to a
// category. Higher priority rules are evaluated first.
type UserCategoryRule struct {
	ID                  string
	UserID              string
	AccountID           *string
	CategoryID          string
	Merchant            string
	DescriptionIncludes []string
	Priority            int
}

// FlowRule is a user-authored predicate classifying a transaction's
// economic role.
type FlowRule struct {
	ID                   string
	UserID               string
	Name                 string
	SourceAccountID      *string
	DestinationAccountID *string
	MatchDirection       MatchDirection
	DescriptionIncludes  []string
	DescriptionRegex     string
	MinAmount            *decimal.Decimal
	MaxAmount            *decimal.Decimal
	TimeWindowHours      int
	Handling             Handling
	Priority             int
	IsActive             bool
}

// Window returns the rule's pairing window, falling back to the default.
func (r *FlowRule) Window() int {
	if r.TimeWindowHours > 0 {
		return r.TimeWindowHours
	}
	return DefaultTimeWindowHours
}

// TransactionCorrection records a user's manual override of a transaction
// field. Append-only; consumed by the correction learner.
type TransactionCorrection struct {
	ID            string
	UserID        string
	TransactionID string
	Field         string
	OldValue      string
	NewValue      string
	CreatedAt     time.Time
}

// NormalizeDescription produces the stored normalized form of a raw
// statement description: trimmed, whitespace collapsed, uppercased.
func NormalizeDescription(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}
