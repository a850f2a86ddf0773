package categorizer

import (
	"errors"
	"sort"
	"strings"

	"finflow/internal/database"
	"finflow/internal/logging"
	"finflow/internal/models"
)

const (
	correctionBatchSize = 100
	minExamplesPerRule  = 2
	minWordLength       = 4
	minWordFraction     = 0.5
)

// LearnFromCorrections mines the user's recent category corrections for
// recurring description keywords and turns them into category rules. It
// returns the number of rules created.
//
// A rule is only created when a category has at least two corrections whose
// descriptions share words (longer than three characters) present in at
// least half of them, and no existing rule for that category already uses
// one of those words.
func (e *Engine) LearnFromCorrections() (int, error) {
	corrections, err := e.store.ListRecentCorrections("category", correctionBatchSize)
	if err != nil {
		return 0, err
	}

	byCategory := make(map[string][]models.TransactionCorrection)
	for _, c := range corrections {
		if c.NewValue == "" {
			continue
		}
		byCategory[c.NewValue] = append(byCategory[c.NewValue], c)
	}

	existing, err := e.store.ListCategoryRules()
	if err != nil {
		return 0, err
	}

	categoryIDs := make([]string, 0, len(byCategory))
	for id := range byCategory {
		categoryIDs = append(categoryIDs, id)
	}
	sort.Strings(categoryIDs)

	created := 0
	for _, categoryID := range categoryIDs {
		group := byCategory[categoryID]
		if len(group) < minExamplesPerRule {
			continue
		}

		descriptions, err := e.correctionDescriptions(group)
		if err != nil {
			return created, err
		}
		if len(descriptions) < minExamplesPerRule {
			continue
		}

		commonWords := commonKeywords(descriptions)
		if len(commonWords) == 0 {
			continue
		}
		if ruleOverlaps(existing, categoryID, commonWords) {
			continue
		}

		rule := models.UserCategoryRule{
			CategoryID:          categoryID,
			DescriptionIncludes: commonWords,
			Priority:            models.LearnedRulePriority,
		}
		id, err := e.store.CreateCategoryRule(rule)
		if err != nil {
			return created, err
		}
		rule.ID = id
		rule.UserID = e.store.UserID()
		existing = append(existing, rule)
		created++

		e.log.WithFields(
			logging.Field{Key: logging.FieldRule, Value: id},
			logging.Field{Key: logging.FieldCategory, Value: categoryID},
			logging.Field{Key: "keywords", Value: strings.Join(commonWords, ",")},
		).Info("Learned category rule from corrections")
	}
	return created, nil
}

// correctionDescriptions loads the corrected transactions' raw descriptions,
// lowercased. Corrections pointing at deleted transactions are skipped.
func (e *Engine) correctionDescriptions(group []models.TransactionCorrection) ([]string, error) {
	descriptions := make([]string, 0, len(group))
	for _, c := range group {
		tx, err := e.store.GetTransaction(c.TransactionID)
		if errors.Is(err, database.ErrTransactionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		descriptions = append(descriptions, strings.ToLower(tx.RawDescription))
	}
	return descriptions, nil
}

// commonKeywords returns the words longer than three characters that appear
// in at least half of the descriptions, in first-seen order.
func commonKeywords(descriptions []string) []string {
	var order []string
	seen := make(map[string]bool)
	for _, desc := range descriptions {
		for _, word := range strings.Fields(desc) {
			if len(word) < minWordLength {
				continue
			}
			if !seen[word] {
				seen[word] = true
				order = append(order, word)
			}
		}
	}

	var common []string
	for _, word := range order {
		count := 0
		for _, desc := range descriptions {
			if strings.Contains(desc, word) {
				count++
			}
		}
		if float64(count)/float64(len(descriptions)) >= minWordFraction {
			common = append(common, word)
		}
	}
	return common
}

// ruleOverlaps reports whether an existing rule for the category already
// carries one of the candidate keywords.
func ruleOverlaps(rules []models.UserCategoryRule, categoryID string, words []string) bool {
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}
	for _, rule := range rules {
		if rule.CategoryID != categoryID {
			continue
		}
		for _, kw := range rule.DescriptionIncludes {
			if wordSet[strings.ToLower(kw)] {
				return true
			}
		}
	}
	return false
}
