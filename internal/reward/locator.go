package reward

import (
	"context"
	"fmt"
	"log"

	"HBDSaver/internal/ledger"
	"HBDSaver/internal/model"
)

// ProcessedChecker reports whether a post's reward was already saved.
type ProcessedChecker interface {
	HasProcessed(ctx context.Context, permlink string) (bool, error)
}

// Locator finds the most recent unprocessed author reward inside the scan
// window.
type Locator struct {
	Querier ledger.Querier
	Checker ProcessedChecker
	Limits  ledger.Limits
}

// NewLocator creates a Locator.
func NewLocator(q ledger.Querier, checker ProcessedChecker, limits ledger.Limits) *Locator {
	return &Locator{Querier: q, Checker: checker, Limits: limits}
}

// FindPendingReward scans the account's history newest-first and returns the
// first author reward that is inside the window, belongs to a top-level post
// and has not been processed. It returns nil when none qualifies. Scanning
// stops at the first operation dated before the window.
func (l *Locator) FindPendingReward(ctx context.Context, account string, window model.ScanWindow) (*model.RewardEvent, error) {
	var found *model.RewardEvent
	p := ledger.NewPaginator(l.Querier, account, l.Limits)
	err := p.Walk(ctx, func(op model.Operation) (bool, error) {
		if window.Expired(op.Timestamp) {
			return false, nil
		}
		if !window.Contains(op.Timestamp) {
			return true, nil
		}
		if op.Kind != model.KindAuthorReward || op.Field("author") != account {
			return true, nil
		}

		permlink := op.Field("permlink")
		content, err := l.Querier.GetContent(ctx, account, permlink)
		if err != nil {
			return false, &model.LedgerQueryError{Op: fmt.Sprintf("content %s/%s", account, permlink), Err: err}
		}
		if content.IsReply() {
			return true, nil
		}

		done, err := l.Checker.HasProcessed(ctx, permlink)
		if err != nil {
			return false, err
		}
		if done {
			log.Printf("[INFO] post %q already had HBD sent to savings", permlink)
			return true, nil
		}

		payout, err := op.AssetField("hbd_payout")
		if err != nil {
			log.Printf("[WARN] skip reward for %q: %v", permlink, err)
			return true, nil
		}
		if payout.Symbol != model.SymbolHBD || !payout.Amount.IsPositive() {
			return true, nil
		}

		found = &model.RewardEvent{
			Author:    account,
			Permlink:  permlink,
			Amount:    payout.Amount,
			Symbol:    payout.Symbol,
			Timestamp: op.Timestamp,
			Index:     op.Index,
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] scanned %d operations in %d requests (window %s)", p.Scanned(), p.Fetches(), window)
	return found, nil
}
