package reward

import (
	"context"
	"errors"
	"testing"
	"time"

	"HBDSaver/internal/ledger"
	"HBDSaver/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)

func newLocator(l *ledger.MemoryLedger, limits ledger.Limits) *Locator {
	return NewLocator(l, NewChecker(l, "alice", limits), limits)
}

func TestFindPendingReward_Today(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddReward(now.Add(-time.Hour), "alice", "my-post", "12.345 HBD")

	ev, err := newLocator(l, ledger.DefaultLimits).FindPendingReward(context.Background(), "alice", model.NewScanWindow(now))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "my-post", ev.Permlink)
	assert.True(t, ev.Amount.Equal(decimal.RequireFromString("12.345")))
	assert.Equal(t, model.SymbolHBD, ev.Symbol)
}

func TestFindPendingReward_YesterdayBoundary(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddReward(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "alice", "leap-post", "3.000 HBD")

	ev, err := newLocator(l, ledger.DefaultLimits).FindPendingReward(context.Background(), "alice", model.NewScanWindow(now))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "leap-post", ev.Permlink)
}

func TestFindPendingReward_StopsAtWindowBoundary(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddReward(now.AddDate(0, 0, -5), "alice", "old-eligible", "5.000 HBD")
	l.Add(now.AddDate(0, 0, -2), "vote", map[string]string{"voter": "bob"})
	l.AddReward(now, "alice", "reply", "1.000 HBD")
	l.SetParent("alice", "reply", "bob")

	ev, err := newLocator(l, ledger.DefaultLimits).FindPendingReward(context.Background(), "alice", model.NewScanWindow(now))
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestFindPendingReward_TwoDaysAgoStops(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddReward(time.Date(2024, 2, 28, 23, 59, 59, 0, time.UTC), "alice", "too-old", "5.000 HBD")

	ev, err := newLocator(l, ledger.DefaultLimits).FindPendingReward(context.Background(), "alice", model.NewScanWindow(now))
	require.NoError(t, err)
	assert.Nil(t, ev)
	assert.Equal(t, 0, l.ContentCalls)
}

func TestFindPendingReward_SkipsReplies(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddReward(now.Add(-2*time.Hour), "alice", "top-level", "2.000 HBD")
	l.AddReward(now.Add(-time.Hour), "alice", "re-bob-post", "9.000 HBD")
	l.SetParent("alice", "re-bob-post", "bob")

	ev, err := newLocator(l, ledger.DefaultLimits).FindPendingReward(context.Background(), "alice", model.NewScanWindow(now))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "top-level", ev.Permlink)
}

func TestFindPendingReward_SkipsOtherAuthorsAndKinds(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddReward(now.Add(-time.Hour), "bob", "bobs-post", "9.000 HBD")
	l.Add(now.Add(-time.Minute), "curation_reward", map[string]string{"curator": "alice"})

	ev, err := newLocator(l, ledger.DefaultLimits).FindPendingReward(context.Background(), "alice", model.NewScanWindow(now))
	require.NoError(t, err)
	assert.Nil(t, ev)
	assert.Equal(t, 0, l.ContentCalls)
}

func TestFindPendingReward_ProcessedContinuesToOlder(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddReward(now.AddDate(0, 0, -1), "alice", "older", "4.000 HBD")
	l.AddReward(now.Add(-2*time.Hour), "alice", "newer", "6.000 HBD")
	l.AddSavingsTransfer(now.Add(-time.Hour), "alice", "1.000 HBD", "auto-save:newer")

	ev, err := newLocator(l, ledger.DefaultLimits).FindPendingReward(context.Background(), "alice", model.NewScanWindow(now))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "older", ev.Permlink)
}

func TestFindPendingReward_SkipsZeroPayout(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddReward(now.Add(-time.Hour), "alice", "hive-only", "0.000 HBD")

	ev, err := newLocator(l, ledger.DefaultLimits).FindPendingReward(context.Background(), "alice", model.NewScanWindow(now))
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestFindPendingReward_CapBoundsFetches(t *testing.T) {
	l := ledger.NewMemoryLedger()
	for i := 0; i < 200; i++ {
		l.Add(now.Add(-time.Duration(200-i)*time.Second), "vote", map[string]int{"weight": i})
	}
	limits := ledger.Limits{PageSize: 20, MaxOps: 60}

	ev, err := newLocator(l, limits).FindPendingReward(context.Background(), "alice", model.NewScanWindow(now))
	require.NoError(t, err)
	assert.Nil(t, ev)
	assert.Equal(t, 3, l.HistoryCalls)
}

func TestFindPendingReward_ContentErrorAborts(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddReward(now, "alice", "my-post", "1.000 HBD")
	l.ContentErr = errors.New("timeout")

	_, err := newLocator(l, ledger.DefaultLimits).FindPendingReward(context.Background(), "alice", model.NewScanWindow(now))
	var qe *model.LedgerQueryError
	require.ErrorAs(t, err, &qe)
}

func TestChecker_HasProcessed(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddSavingsTransfer(now.AddDate(0, -2, 0), "alice", "1.000 HBD", "auto-save:old-post")
	l.AddSavingsTransfer(now, "alice", "1.000 HBD", "auto-save:my-post-2")
	l.Add(now, model.KindTransferToSavings, map[string]string{"from": "bob", "to": "alice", "amount": "1.000 HBD", "memo": "auto-save:bobs"})

	c := NewChecker(l, "alice", ledger.DefaultLimits)
	ctx := context.Background()

	for permlink, want := range map[string]bool{
		"old-post":  true,
		"my-post-2": true,
		"my-post":   false,
		"bobs":      false,
	} {
		got, err := c.HasProcessed(ctx, permlink)
		require.NoError(t, err)
		assert.Equal(t, want, got, permlink)
	}
}

func TestChecker_RespectsCap(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.AddSavingsTransfer(now.AddDate(-1, 0, 0), "alice", "1.000 HBD", "auto-save:ancient")
	for i := 0; i < 50; i++ {
		l.Add(now, "vote", map[string]int{"i": i})
	}

	c := NewChecker(l, "alice", ledger.Limits{PageSize: 10, MaxOps: 50})
	done, err := c.HasProcessed(context.Background(), "ancient")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 5, l.HistoryCalls)
}
