package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"HBDSaver/internal/model"
)

// MemoryLedger is an in-process ledger for development and testing. It answers
// history and content queries and accepts broadcasts, appending each submitted
// transfer to the history so later scans observe it.
type MemoryLedger struct {
	mu       sync.Mutex
	ops      []model.Operation
	contents map[string]*model.Content

	HistoryErr error
	ContentErr error
	SubmitErr  error
	Now        func() time.Time

	HistoryCalls int
	ContentCalls int
	Submitted    []model.SavingsTransfer
}

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{contents: make(map[string]*model.Content), Now: time.Now}
}

// Add appends an operation with the next index.
func (m *MemoryLedger) Add(ts time.Time, kind string, payload any) model.Operation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addLocked(ts, kind, payload)
}

func (m *MemoryLedger) addLocked(ts time.Time, kind string, payload any) model.Operation {
	raw, _ := json.Marshal(payload)
	op := model.Operation{
		Index:     int64(len(m.ops)),
		Timestamp: ts.UTC(),
		Kind:      kind,
		Payload:   raw,
		TrxID:     fmt.Sprintf("%040x", len(m.ops)),
	}
	m.ops = append(m.ops, op)
	return op
}

// AddReward appends an author_reward with the given HBD payout text.
func (m *MemoryLedger) AddReward(ts time.Time, author, permlink, hbdPayout string) model.Operation {
	return m.Add(ts, model.KindAuthorReward, map[string]string{
		"author":         author,
		"permlink":       permlink,
		"hbd_payout":     hbdPayout,
		"hive_payout":    "0.000 HIVE",
		"vesting_payout": "0.000000 VESTS",
	})
}

// AddSavingsTransfer appends a transfer_to_savings.
func (m *MemoryLedger) AddSavingsTransfer(ts time.Time, from, amount, memo string) model.Operation {
	return m.Add(ts, model.KindTransferToSavings, map[string]string{
		"from":   from,
		"to":     from,
		"amount": amount,
		"memo":   memo,
	})
}

// SetParent records the parent author of a post. Unknown posts are top-level.
func (m *MemoryLedger) SetParent(author, permlink, parentAuthor string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents[author+"/"+permlink] = &model.Content{Author: author, Permlink: permlink, ParentAuthor: parentAuthor}
}

func (m *MemoryLedger) GetAccountHistory(_ context.Context, _ string, start int64, limit int) ([]model.Operation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HistoryCalls++
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	end := int64(len(m.ops))
	if start >= 0 && start+1 < end {
		end = start + 1
	}
	begin := end - int64(limit)
	if begin < 0 {
		begin = 0
	}
	out := make([]model.Operation, end-begin)
	copy(out, m.ops[begin:end])
	return out, nil
}

func (m *MemoryLedger) GetContent(_ context.Context, author, permlink string) (*model.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ContentCalls++
	if m.ContentErr != nil {
		return nil, m.ContentErr
	}
	if c, ok := m.contents[author+"/"+permlink]; ok {
		cp := *c
		return &cp, nil
	}
	return &model.Content{Author: author, Permlink: permlink}, nil
}

// Submit records the transfers and appends them to the history.
func (m *MemoryLedger) Submit(_ context.Context, ops []model.SavingsTransfer, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SubmitErr != nil {
		return "", m.SubmitErr
	}
	var last model.Operation
	for _, t := range ops {
		m.Submitted = append(m.Submitted, t)
		last = m.addLocked(m.Now(), model.KindTransferToSavings, map[string]string{
			"from":   t.From,
			"to":     t.To,
			"amount": t.Amount.String(),
			"memo":   t.Memo,
		})
	}
	return last.TrxID, nil
}
