package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow/internal/database"
	"finflow/internal/models"
)

func (f *fixture) correct(t *testing.T, description, categoryID string) {
	t.Helper()
	id := f.insert(t, models.Transaction{
		RawDescription: description,
		Amount:         amt("-50"),
	})
	_, err := f.store.RecordCorrection(id, "category", "", categoryID)
	require.NoError(t, err)
}

func TestLearnFromCorrections(t *testing.T) {
	f := newFixture(t)
	transfers := database.SystemCategoryID("Transfers")

	f.correct(t, "ZELLE PAYMENT TO JOHN", transfers)
	f.correct(t, "ZELLE PAYMENT TO MARY", transfers)
	f.correct(t, "ZELLE TRANSFER WEEKLY", transfers)

	created, err := f.engine.LearnFromCorrections()
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	rules, err := f.store.ListCategoryRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	rule := rules[0]
	assert.Equal(t, transfers, rule.CategoryID)
	assert.Equal(t, models.LearnedRulePriority, rule.Priority)
	// "zelle" in all three descriptions, "payment" in two of three;
	// the one-off names fall below the half threshold.
	assert.Equal(t, []string{"zelle", "payment"}, rule.DescriptionIncludes)

	// The learned rule categorizes future transactions.
	id := f.insert(t, models.Transaction{
		RawDescription: "ZELLE PAYMENT TO ALEX",
		Amount:         amt("-75"),
	})
	assigned, err := f.engine.CategorizeTransaction(id)
	require.NoError(t, err)
	assert.True(t, assigned)
	tx, err := f.store.GetTransaction(id)
	require.NoError(t, err)
	require.NotNil(t, tx.CategoryID)
	assert.Equal(t, transfers, *tx.CategoryID)
}

func TestLearnRequiresTwoExamples(t *testing.T) {
	f := newFixture(t)
	f.correct(t, "ZELLE PAYMENT TO JOHN", database.SystemCategoryID("Transfers"))

	created, err := f.engine.LearnFromCorrections()
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestLearnSkipsOverlappingRule(t *testing.T) {
	f := newFixture(t)
	transfers := database.SystemCategoryID("Transfers")

	_, err := f.store.CreateCategoryRule(models.UserCategoryRule{
		CategoryID:          transfers,
		DescriptionIncludes: []string{"zelle"},
		Priority:            80,
	})
	require.NoError(t, err)

	f.correct(t, "ZELLE PAYMENT TO JOHN", transfers)
	f.correct(t, "ZELLE PAYMENT TO MARY", transfers)

	created, err := f.engine.LearnFromCorrections()
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	rules, err := f.store.ListCategoryRules()
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestLearnRunsAreIdempotent(t *testing.T) {
	f := newFixture(t)
	transfers := database.SystemCategoryID("Transfers")
	f.correct(t, "ZELLE PAYMENT TO JOHN", transfers)
	f.correct(t, "ZELLE PAYMENT TO MARY", transfers)

	created, err := f.engine.LearnFromCorrections()
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// The rule created by the first run overlaps the same keywords, so a
	// second run over the same corrections creates nothing new.
	created, err = f.engine.LearnFromCorrections()
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}
