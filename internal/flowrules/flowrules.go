// Package flowrules classifies transactions as internal transfers, income
// or expenses by evaluating user-authored flow rules, and pairs the two
// legs of an internal transfer across accounts.
package flowrules

import (
	"regexp"
	"sort"
	"strings"

	"finflow/internal/database"
	"finflow/internal/logging"
	"finflow/internal/models"
)

// maxConfidence caps a rule match score.
const maxConfidence = 100.0

// Match is one rule that matched a transaction, with its score.
type Match struct {
	Rule          models.FlowRule
	Confidence    float64
	MatchedFields []string
}

// Engine evaluates and applies flow rules for one user.
type Engine struct {
	store   *database.UserStore
	pairing PairingStrategy
	window  int
	log     logging.Logger
}

// SetTimeWindow overrides the default pairing window used by ProcessAll.
func (e *Engine) SetTimeWindow(hours int) {
	e.window = hours
}

// NewEngine creates a flow-rule engine. A nil pairing strategy selects the
// default greedy nearest-amount matcher.
func NewEngine(store *database.UserStore, pairing PairingStrategy, log logging.Logger) *Engine {
	if pairing == nil {
		pairing = GreedyPairing{}
	}
	if log == nil {
		log = logging.GetLogger()
	}
	return &Engine{store: store, pairing: pairing, log: log}
}

// Evaluate returns every active rule matching the transaction, in the
// rules' priority order.
func (e *Engine) Evaluate(txID string) ([]Match, error) {
	tx, err := e.store.GetTransaction(txID)
	if err != nil {
		return nil, err
	}
	rules, err := e.store.ListActiveFlowRules()
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, rule := range rules {
		if m, ok := e.matchRule(&rule, tx); ok {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// matchRule scores one rule against one transaction. Constrained fields
// veto on mismatch; matched fields add to the score: source account 30,
// description keywords up to 40 (scaled by the fraction matched), regex 40,
// amount range 15. A match with no discriminating field is rejected.
func (e *Engine) matchRule(rule *models.FlowRule, tx *models.Transaction) (Match, bool) {
	var matchedFields []string
	confidence := 0.0

	directionOK := rule.MatchDirection == models.MatchBoth ||
		(rule.MatchDirection == models.MatchIn && tx.Direction() == models.DirectionCredit) ||
		(rule.MatchDirection == models.MatchOut && tx.Direction() == models.DirectionDebit)
	if !directionOK {
		return Match{}, false
	}

	if rule.SourceAccountID != nil {
		if tx.AccountID != *rule.SourceAccountID {
			return Match{}, false
		}
		matchedFields = append(matchedFields, "sourceAccount")
		confidence += 30
	}

	if len(rule.DescriptionIncludes) > 0 {
		description := strings.ToLower(tx.RawDescription)
		hits := 0
		for _, substring := range rule.DescriptionIncludes {
			if strings.Contains(description, strings.ToLower(substring)) {
				hits++
			}
		}
		if hits == 0 {
			return Match{}, false
		}
		matchedFields = append(matchedFields, "description")
		confidence += float64(hits) / float64(len(rule.DescriptionIncludes)) * 40
	}

	if rule.DescriptionRegex != "" {
		re, err := regexp.Compile("(?i)" + rule.DescriptionRegex)
		if err != nil {
			e.log.WithError(err).
				WithField(logging.FieldRule, rule.ID).
				Error("Invalid regex in flow rule")
		} else if re.MatchString(tx.RawDescription) {
			matchedFields = append(matchedFields, "regex")
			confidence += 40
		} else {
			return Match{}, false
		}
	}

	if rule.MinAmount != nil || rule.MaxAmount != nil {
		amount := tx.AbsAmount()
		if rule.MinAmount != nil && amount.LessThan(*rule.MinAmount) {
			return Match{}, false
		}
		if rule.MaxAmount != nil && amount.GreaterThan(*rule.MaxAmount) {
			return Match{}, false
		}
		matchedFields = append(matchedFields, "amount")
		confidence += 15
	}

	if len(matchedFields) == 0 {
		return Match{}, false
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return Match{Rule: *rule, Confidence: confidence, MatchedFields: matchedFields}, true
}

// Apply stamps the transaction with the rule's handling. The three role
// flags are mutually exclusive; internal_transfer handling with a
// configured destination also records the counterparty account.
func (e *Engine) Apply(txID string, rule *models.FlowRule) error {
	if !rule.IsActive {
		return nil
	}

	var internalTransfer, income, expense bool
	switch rule.Handling {
	case models.HandlingInternalTransfer:
		internalTransfer = true
	case models.HandlingIncome:
		income = true
	case models.HandlingExpense:
		expense = true
	case models.HandlingIgnore:
		// all flags off
	}

	if err := e.store.SetFlowFlags(txID, internalTransfer, income, expense); err != nil {
		return err
	}
	if rule.Handling == models.HandlingInternalTransfer && rule.DestinationAccountID != nil {
		if err := e.store.SetCounterpartyAccount(txID, *rule.DestinationAccountID); err != nil {
			return err
		}
	}
	return nil
}

// Report summarizes a batch flow-rule run. Transfers is the user's total
// number of transfer-flagged transactions after the run, not just the ones
// this pass touched; Paired counts the pairs created by this pass.
type Report struct {
	Processed int
	Transfers int
	Paired    int
	Failed    []string
}

// ProcessAll evaluates flow rules against every transaction, applies the
// highest-confidence match per transaction, then runs one transfer-pairing
// pass. A failing transaction is recorded and skipped, not fatal.
func (e *Engine) ProcessAll() (Report, error) {
	txs, err := e.store.ListTransactions(nil)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, tx := range txs {
		matches, err := e.Evaluate(tx.ID)
		if err != nil {
			e.log.WithError(err).
				WithField(logging.FieldTransactionID, tx.ID).
				Warn("Flow rule evaluation failed for transaction")
			report.Failed = append(report.Failed, tx.ID)
			continue
		}
		if len(matches) == 0 {
			continue
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Confidence > matches[j].Confidence
		})
		if err := e.Apply(tx.ID, &matches[0].Rule); err != nil {
			e.log.WithError(err).
				WithField(logging.FieldTransactionID, tx.ID).
				Warn("Flow rule application failed for transaction")
			report.Failed = append(report.Failed, tx.ID)
			continue
		}
		report.Processed++
	}

	paired, err := e.FindTransferPairs(e.window)
	if err != nil {
		return report, err
	}
	report.Paired = paired

	transfers, err := e.store.CountInternalTransfers()
	if err != nil {
		return report, err
	}
	report.Transfers = transfers

	e.log.WithFields(
		logging.Field{Key: "processed", Value: report.Processed},
		logging.Field{Key: "transfers", Value: report.Transfers},
		logging.Field{Key: "paired", Value: report.Paired},
		logging.Field{Key: "failed", Value: len(report.Failed)},
	).Info("Flow rule batch finished")
	return report, nil
}
