package savings

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

func TestDispatch_SubmitsTaggedSelfTransfer(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.Now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	d := NewDispatcher(l, "5Jkey", false)

	r, err := d.Dispatch(context.Background(), "alice", decimal.RequireFromString("1.2345"), "my-post")
	require.NoError(t, err)
	require.Len(t, l.Submitted, 1)

	sent := l.Submitted[0]
	assert.Equal(t, "alice", sent.From)
	assert.Equal(t, "alice", sent.To)
	assert.Equal(t, "1.235 HBD", sent.Amount.String())
	assert.Equal(t, "auto-save:my-post", sent.Memo)
	assert.NotEmpty(t, r.TxID)
	assert.False(t, r.DryRun)
}

func TestDispatch_FailureIsDispatchError(t *testing.T) {
	l := ledger.NewMemoryLedger()
	l.SubmitErr = errors.New("missing required active authority")
	d := NewDispatcher(l, "5Jkey", false)

	_, err := d.Dispatch(context.Background(), "alice", decimal.NewFromInt(1), "my-post")
	var de *model.DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "auto-save:my-post", de.Memo)
	assert.Contains(t, err.Error(), "missing required active authority")
}

func TestDispatch_DryRunDoesNotSubmit(t *testing.T) {
	l := ledger.NewMemoryLedger()
	d := NewDispatcher(l, "5Jkey", true)

	r, err := d.Dispatch(context.Background(), "alice", decimal.NewFromInt(2), "my-post")
	require.NoError(t, err)
	assert.True(t, r.DryRun)
	assert.Empty(t, l.Submitted)
	assert.Equal(t, "2.000 HBD", r.Transfer.Amount.String())
}
