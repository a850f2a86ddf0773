package flowrules

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finflow/internal/logging"
	"finflow/internal/models"
)

// defaultPairTolerance is the fraction of the anchor amount the two legs of
// a transfer may differ by. The boundary is exclusive: a difference of
// exactly 1% does not pair.
var defaultPairTolerance = decimal.NewFromFloat(0.01)

// PairingStrategy selects the counterpart for an anchor transaction out of
// the window candidates, or nil when none qualifies.
type PairingStrategy interface {
	SelectCounterpart(anchor *models.Transaction, candidates []models.Transaction) *models.Transaction
}

// GreedyPairing picks the candidate with the smallest absolute amount
// difference, requiring opposite direction and a difference under the
// tolerance fraction of the anchor amount. It is a nearest-match heuristic,
// not a global optimal assignment: an earlier anchor can claim a candidate
// that would have paired better with a later one.
type GreedyPairing struct {
	// Tolerance overrides the default 1% bound when non-zero.
	Tolerance decimal.Decimal
}

// SelectCounterpart implements PairingStrategy.
func (g GreedyPairing) SelectCounterpart(anchor *models.Transaction, candidates []models.Transaction) *models.Transaction {
	tolerance := g.Tolerance
	if tolerance.IsZero() {
		tolerance = defaultPairTolerance
	}
	amount := anchor.AbsAmount()
	limit := amount.Mul(tolerance)

	var best *models.Transaction
	var smallestDiff decimal.Decimal
	for i := range candidates {
		c := &candidates[i]
		if c.Direction() == anchor.Direction() {
			continue
		}
		diff := amount.Sub(c.AbsAmount()).Abs()
		if !diff.LessThan(limit) {
			continue
		}
		if best == nil || diff.LessThan(smallestDiff) {
			best = c
			smallestDiff = diff
		}
	}
	return best
}

// FindTransferPairs links flagged-but-unpaired internal transfers with
// their counterpart in another account. Each pair gets a fresh shared group
// id and each leg records the other's account. Returns the number of pairs
// created.
func (e *Engine) FindTransferPairs(timeWindowHours int) (int, error) {
	if timeWindowHours <= 0 {
		timeWindowHours = models.DefaultTimeWindowHours
	}

	pending, err := e.store.ListUnpairedTransfers()
	if err != nil {
		return 0, err
	}

	paired := 0
	claimed := make(map[string]bool)
	for i := range pending {
		anchor := &pending[i]
		if claimed[anchor.ID] {
			continue
		}

		candidates, err := e.store.FindPairCandidates(anchor, timeWindowHours)
		if err != nil {
			return paired, err
		}
		unclaimed := candidates[:0]
		for _, c := range candidates {
			if !claimed[c.ID] {
				unclaimed = append(unclaimed, c)
			}
		}

		counterpart := e.pairing.SelectCounterpart(anchor, unclaimed)
		if counterpart == nil {
			continue
		}

		groupID := uuid.NewString()
		if err := e.store.PairTransfers(groupID, anchor, counterpart); err != nil {
			return paired, err
		}
		claimed[anchor.ID] = true
		claimed[counterpart.ID] = true
		paired++

		e.log.WithFields(
			logging.Field{Key: "group", Value: groupID},
			logging.Field{Key: "anchor", Value: anchor.ID},
			logging.Field{Key: "counterpart", Value: counterpart.ID},
		).Debug("Paired internal transfer")
	}
	return paired, nil
}
