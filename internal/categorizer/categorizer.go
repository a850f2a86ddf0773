// Package categorizer assigns categories to transactions using, in order,
// the user's own rules, the merchant pattern table and the flow-derived
// Transfers/Income defaults. Manually categorized transactions are never
// touched.
package categorizer

import (
	"errors"
	"strings"

	"finflow/internal/database"
	"finflow/internal/logging"
	"finflow/internal/merchants"
	"finflow/internal/models"
)

// Engine runs rule-driven categorization for one user.
type Engine struct {
	store   *database.UserStore
	catalog *database.DB
	matcher *merchants.Matcher
	log     logging.Logger
}

// NewEngine creates a categorization engine over the user's store. The
// catalog handle resolves system categories, which are shared across users.
func NewEngine(store *database.UserStore, catalog *database.DB, matcher *merchants.Matcher, log logging.Logger) *Engine {
	if matcher == nil {
		matcher = merchants.Default()
	}
	if log == nil {
		log = logging.GetLogger()
	}
	return &Engine{store: store, catalog: catalog, matcher: matcher, log: log}
}

// CategorizeTransaction applies the precedence chain to one transaction and
// reports whether a category was assigned.
func (e *Engine) CategorizeTransaction(txID string) (bool, error) {
	tx, err := e.store.GetTransaction(txID)
	if err != nil {
		return false, err
	}

	if tx.CategorizationSource == models.SourceManual {
		return false, nil
	}

	rules, err := e.store.ListCategoryRules()
	if err != nil {
		return false, err
	}
	for _, rule := range rules {
		if !ruleApplies(&rule, tx) {
			continue
		}
		// Rules set the category only; a subcategory assigned earlier
		// (e.g. by a merchant pattern) stays in place.
		if err := e.store.UpdateCategory(tx.ID, &rule.CategoryID, tx.SubcategoryID, tx.Merchant, models.SourceRules); err != nil {
			return false, err
		}
		e.log.WithFields(
			logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
			logging.Field{Key: logging.FieldRule, Value: rule.ID},
			logging.Field{Key: logging.FieldCategory, Value: rule.CategoryID},
		).Debug("Categorized by user rule")
		return true, nil
	}

	if match := e.matcher.Match(tx.RawDescription); match != nil {
		assigned, err := e.applyMerchantMatch(tx, match)
		if err != nil || assigned {
			return assigned, err
		}
	}

	if tx.IsInternalTransfer {
		return e.assignSystemCategory(tx, models.CategoryTransfers)
	}
	if tx.IsIncome {
		return e.assignSystemCategory(tx, models.CategoryIncome)
	}
	return false, nil
}

// ruleApplies reports whether the rule's scope and predicates hit the
// transaction. Keyword and merchant matching are case-insensitive substring
// checks against the raw description and normalized merchant.
func ruleApplies(rule *models.UserCategoryRule, tx *models.Transaction) bool {
	if rule.AccountID != nil && *rule.AccountID != tx.AccountID {
		return false
	}

	description := strings.ToLower(tx.RawDescription)
	for _, keyword := range rule.DescriptionIncludes {
		if strings.Contains(description, strings.ToLower(keyword)) {
			return true
		}
	}
	if rule.Merchant != "" && tx.Merchant != "" {
		if strings.Contains(strings.ToLower(tx.Merchant), strings.ToLower(rule.Merchant)) {
			return true
		}
	}
	return false
}

// applyMerchantMatch resolves the matched category names against the system
// catalog and stores the assignment together with the normalized merchant.
// A match naming a category absent from the catalog assigns nothing.
func (e *Engine) applyMerchantMatch(tx *models.Transaction, match *merchants.Match) (bool, error) {
	category, err := e.catalog.FindSystemCategory(match.CategoryName)
	if errors.Is(err, database.ErrCategoryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var subcategoryID *string
	if match.SubcategoryName != "" {
		sub, err := e.catalog.FindChildCategory(category.ID, match.SubcategoryName)
		switch {
		case errors.Is(err, database.ErrCategoryNotFound):
			// parent alone is still a valid assignment
		case err != nil:
			return false, err
		default:
			subcategoryID = &sub.ID
		}
	}

	if err := e.store.UpdateCategory(tx.ID, &category.ID, subcategoryID, match.Merchant, models.SourceRules); err != nil {
		return false, err
	}
	e.log.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: logging.FieldCategory, Value: category.ID},
		logging.Field{Key: logging.FieldConfidence, Value: match.Confidence},
	).Debug("Categorized by merchant pattern")
	return true, nil
}

func (e *Engine) assignSystemCategory(tx *models.Transaction, name string) (bool, error) {
	category, err := e.catalog.FindSystemCategory(name)
	if errors.Is(err, database.ErrCategoryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := e.store.UpdateCategory(tx.ID, &category.ID, nil, tx.Merchant, models.SourceRules); err != nil {
		return false, err
	}
	return true, nil
}

// Report summarizes a batch categorization run.
type Report struct {
	Total       int
	Categorized int
	Failed      []string
}

// CategorizeAll runs the engine over every uncategorized transaction. One
// failing row does not abort the batch; its id is collected in the report.
func (e *Engine) CategorizeAll() (Report, error) {
	txs, err := e.store.ListUncategorized()
	if err != nil {
		return Report{}, err
	}

	report := Report{Total: len(txs)}
	for _, tx := range txs {
		assigned, err := e.CategorizeTransaction(tx.ID)
		if err != nil {
			e.log.WithError(err).
				WithField(logging.FieldTransactionID, tx.ID).
				Warn("Categorization failed for transaction")
			report.Failed = append(report.Failed, tx.ID)
			continue
		}
		if assigned {
			report.Categorized++
		}
	}
	e.log.WithFields(
		logging.Field{Key: "total", Value: report.Total},
		logging.Field{Key: "categorized", Value: report.Categorized},
		logging.Field{Key: "failed", Value: len(report.Failed)},
	).Info("Batch categorization finished")
	return report, nil
}
