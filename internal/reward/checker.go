package reward

import (
	"context"

	"HBDSaver/internal/ledger"
	"HBDSaver/internal/model"
	"HBDSaver/internal/savings"
)

// Checker decides whether a post already triggered a savings transfer by
// looking for the tagged transfer in the account's own history. It keeps no
// state, so it is safe to call repeatedly and concurrently.
type Checker struct {
	Querier ledger.Querier
	Account string
	Limits  ledger.Limits
}

// NewChecker creates a Checker for account.
func NewChecker(q ledger.Querier, account string, limits ledger.Limits) *Checker {
	return &Checker{Querier: q, Account: account, Limits: limits}
}

// HasProcessed scans up to the cap, with no date filter, for a
// transfer_to_savings from the account whose memo is exactly the permlink's tag.
func (c *Checker) HasProcessed(ctx context.Context, permlink string) (bool, error) {
	memo := savings.BuildMemo(permlink)
	found := false
	p := ledger.NewPaginator(c.Querier, c.Account, c.Limits)
	err := p.Walk(ctx, func(op model.Operation) (bool, error) {
		if op.Kind != model.KindTransferToSavings {
			return true, nil
		}
		if op.Field("from") == c.Account && op.Field("memo") == memo {
			found = true
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
