package flowrules

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow/internal/models"
)

func (f *fixture) flagTransfer(t *testing.T, txID string) {
	t.Helper()
	require.NoError(t, f.store.SetFlowFlags(txID, true, false, false))
}

func TestFindTransferPairsLinksBothLegs(t *testing.T) {
	f := newFixture(t)
	out := f.insert(t, f.checking, "-500", "TRANSFER TO SAVINGS",
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	in := f.insert(t, f.savings, "500", "TRANSFER FROM CHECKING",
		time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC))
	f.flagTransfer(t, out)
	f.flagTransfer(t, in)

	paired, err := f.engine.FindTransferPairs(48)
	require.NoError(t, err)
	assert.Equal(t, 1, paired)

	gotOut, err := f.store.GetTransaction(out)
	require.NoError(t, err)
	gotIn, err := f.store.GetTransaction(in)
	require.NoError(t, err)

	require.NotNil(t, gotOut.TransferGroupID)
	require.NotNil(t, gotIn.TransferGroupID)
	assert.Equal(t, *gotOut.TransferGroupID, *gotIn.TransferGroupID)

	require.NotNil(t, gotOut.CounterpartyAccountID)
	assert.Equal(t, f.savings, *gotOut.CounterpartyAccountID)
	require.NotNil(t, gotIn.CounterpartyAccountID)
	assert.Equal(t, f.checking, *gotIn.CounterpartyAccountID)

	// A second pass finds nothing left to pair.
	paired, err = f.engine.FindTransferPairs(48)
	require.NoError(t, err)
	assert.Equal(t, 0, paired)
}

func TestFindTransferPairsCounterpartNeedNotBeFlagged(t *testing.T) {
	f := newFixture(t)
	out := f.insert(t, f.checking, "-250", "MOVE TO SAVINGS", day)
	in := f.insert(t, f.savings, "250", "DEPOSIT", day.Add(6*time.Hour))
	f.flagTransfer(t, out)

	paired, err := f.engine.FindTransferPairs(48)
	require.NoError(t, err)
	assert.Equal(t, 1, paired)

	gotIn, err := f.store.GetTransaction(in)
	require.NoError(t, err)
	assert.True(t, gotIn.IsInternalTransfer)
	require.NotNil(t, gotIn.TransferGroupID)
}

func TestFindTransferPairsRespectsWindow(t *testing.T) {
	f := newFixture(t)
	out := f.insert(t, f.checking, "-500", "TRANSFER OUT", day)
	f.insert(t, f.savings, "500", "TRANSFER IN", day.Add(72*time.Hour))
	f.flagTransfer(t, out)

	paired, err := f.engine.FindTransferPairs(48)
	require.NoError(t, err)
	assert.Equal(t, 0, paired)
}

func TestPairingToleranceBoundaryIsExclusive(t *testing.T) {
	f := newFixture(t)
	out := f.insert(t, f.checking, "-500", "TRANSFER OUT", day)
	// exactly 1% off the anchor amount: not close enough
	f.insert(t, f.savings, "495", "TRANSFER IN", day.Add(time.Hour))
	f.flagTransfer(t, out)

	paired, err := f.engine.FindTransferPairs(48)
	require.NoError(t, err)
	assert.Equal(t, 0, paired)
}

func TestPairingWithinTolerance(t *testing.T) {
	f := newFixture(t)
	out := f.insert(t, f.checking, "-500", "TRANSFER OUT", day)
	// 0.99% off: inside the exclusive 1% bound
	in := f.insert(t, f.savings, "495.05", "TRANSFER IN", day.Add(time.Hour))
	f.flagTransfer(t, out)

	paired, err := f.engine.FindTransferPairs(48)
	require.NoError(t, err)
	assert.Equal(t, 1, paired)

	gotIn, err := f.store.GetTransaction(in)
	require.NoError(t, err)
	require.NotNil(t, gotIn.TransferGroupID)
}

func TestGreedyPairingPicksSmallestDifference(t *testing.T) {
	anchor := models.Transaction{ID: "a", AccountID: "acc1", Amount: decimal.RequireFromString("-500")}
	near := models.Transaction{ID: "near", AccountID: "acc2", Amount: decimal.RequireFromString("500")}
	far := models.Transaction{ID: "far", AccountID: "acc2", Amount: decimal.RequireFromString("499")}
	sameDir := models.Transaction{ID: "dup", AccountID: "acc2", Amount: decimal.RequireFromString("-500")}

	got := GreedyPairing{}.SelectCounterpart(&anchor, []models.Transaction{far, sameDir, near})
	require.NotNil(t, got)
	assert.Equal(t, "near", got.ID)
}

func TestGreedyPairingCustomTolerance(t *testing.T) {
	anchor := models.Transaction{ID: "a", AccountID: "acc1", Amount: decimal.RequireFromString("-100")}
	candidate := models.Transaction{ID: "c", AccountID: "acc2", Amount: decimal.RequireFromString("96")}

	strict := GreedyPairing{}
	assert.Nil(t, strict.SelectCounterpart(&anchor, []models.Transaction{candidate}))

	loose := GreedyPairing{Tolerance: decimal.RequireFromString("0.05")}
	got := loose.SelectCounterpart(&anchor, []models.Transaction{candidate})
	require.NotNil(t, got)
	assert.Equal(t, "c", got.ID)
}

func TestFindTransferPairsClaimsEachLegOnce(t *testing.T) {
	f := newFixture(t)
	outA := f.insert(t, f.checking, "-500", "TRANSFER OUT ONE", day)
	outB := f.insert(t, f.checking, "-500", "TRANSFER OUT TWO", day.Add(time.Hour))
	in := f.insert(t, f.savings, "500", "TRANSFER IN", day.Add(2*time.Hour))
	f.flagTransfer(t, outA)
	f.flagTransfer(t, outB)

	paired, err := f.engine.FindTransferPairs(48)
	require.NoError(t, err)
	assert.Equal(t, 1, paired)

	gotIn, err := f.store.GetTransaction(in)
	require.NoError(t, err)
	require.NotNil(t, gotIn.TransferGroupID)

	aTx, err := f.store.GetTransaction(outA)
	require.NoError(t, err)
	bTx, err := f.store.GetTransaction(outB)
	require.NoError(t, err)
	grouped := 0
	if aTx.TransferGroupID != nil {
		grouped++
	}
	if bTx.TransferGroupID != nil {
		grouped++
	}
	assert.Equal(t, 1, grouped)
}
