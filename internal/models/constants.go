package models

// Direction marks which way money moved in a raw statement line.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Source records how a transaction's category was assigned.
type Source string

const (
	SourceManual Source = "manual"
	SourceRules  Source = "rules"
	SourceNone   Source = "none"
)

// Handling is the economic role a flow rule assigns to a transaction.
type Handling string

const (
	HandlingInternalTransfer Handling = "internal_transfer"
	HandlingIncome           Handling = "income"
	HandlingExpense          Handling = "expense"
	HandlingIgnore           Handling = "ignore"
)

// MatchDirection constrains which transaction directions a flow rule applies to.
type MatchDirection string

const (
	MatchIn   MatchDirection = "in"
	MatchOut  MatchDirection = "out"
	MatchBoth MatchDirection = "both"
)

// System category names the engines fall back to.
const (
	CategoryTransfers = "Transfers"
	CategoryIncome    = "Income"
)

// DefaultTimeWindowHours is the transfer-pairing search window used when a
// flow rule does not specify its own.
const DefaultTimeWindowHours = 48

// LearnedRulePriority is assigned to rules synthesized from corrections.
const LearnedRulePriority = 50
