package ledger

import (
	"context"
	"fmt"
	"sort"

	"HBDSaver/internal/model"
)

// Paginator walks an account's history newest-first, one page at a time.
// A page is only fetched when Next is called. Each request uses the lowest
// index of the previous page minus one as its upper bound, so entries are
// neither skipped nor repeated.
type Paginator struct {
	q       Querier
	account string
	limits  Limits

	start     int64
	scanned   int
	fetches   int
	exhausted bool
	batch     []model.Operation
	err       error
}

// NewPaginator creates a cursor positioned before the most recent operation.
func NewPaginator(q Querier, account string, limits Limits) *Paginator {
	if limits.PageSize <= 0 {
		limits.PageSize = DefaultLimits.PageSize
	}
	if limits.MaxOps <= 0 {
		limits.MaxOps = DefaultLimits.MaxOps
	}
	return &Paginator{q: q, account: account, limits: limits, start: -1}
}

// Next fetches the next page. It returns false when the history is exhausted,
// the scan cap is reached or a request failed; check Err afterwards.
func (p *Paginator) Next(ctx context.Context) bool {
	p.batch = nil
	if p.exhausted || p.err != nil {
		return false
	}
	remaining := p.limits.MaxOps - p.scanned
	if remaining <= 0 {
		p.exhausted = true
		return false
	}

	limit := p.limits.PageSize
	if remaining < limit {
		limit = remaining
	}
	if p.start >= 0 && p.start+1 < int64(limit) {
		limit = int(p.start + 1)
	}

	p.fetches++
	ops, err := p.q.GetAccountHistory(ctx, p.account, p.start, limit)
	if err != nil {
		p.err = &model.LedgerQueryError{
			Op:  fmt.Sprintf("history %s@%d", p.account, p.start),
			Err: err,
		}
		return false
	}
	if len(ops) == 0 {
		p.exhausted = true
		return false
	}

	batch := make([]model.Operation, len(ops))
	copy(batch, ops)
	sort.Slice(batch, func(i, j int) bool { return batch[i].Index > batch[j].Index })
	if len(batch) > limit {
		batch = batch[:limit]
	}

	oldest := batch[len(batch)-1].Index
	p.scanned += len(batch)
	p.start = oldest - 1
	if oldest <= 0 {
		p.exhausted = true
	}
	p.batch = batch
	return true
}

// Batch returns the current page, newest first.
func (p *Paginator) Batch() []model.Operation { return p.batch }

// Err returns the first request failure, as a *model.LedgerQueryError.
func (p *Paginator) Err() error { return p.err }

// Fetches is the number of history requests made so far.
func (p *Paginator) Fetches() int { return p.fetches }

// Scanned is the number of operations yielded so far.
func (p *Paginator) Scanned() int { return p.scanned }

// Walk calls fn for every operation newest-first until fn returns false, the
// history ends or the cap is hit.
func (p *Paginator) Walk(ctx context.Context, fn func(op model.Operation) (bool, error)) error {
	for p.Next(ctx) {
		for _, op := range p.batch {
			more, err := fn(op)
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
	}
	return p.Err()
}
