package savings

import (
	"context"
	"log"

	"HBDSaver/internal/model"

	"github.com/shopspring/decimal"
)

// Broadcaster signs and submits operations to the chain.
type Broadcaster interface {
	Submit(ctx context.Context, ops []model.SavingsTransfer, signingKey string) (txID string, err error)
}

// Receipt describes a transfer that was submitted (or would have been, in dry
// run mode).
type Receipt struct {
	Transfer model.SavingsTransfer
	TxID     string
	DryRun   bool
}

// Dispatcher builds and submits the tagged transfer_to_savings.
type Dispatcher struct {
	Broadcaster Broadcaster
	SigningKey  string
	DryRun      bool
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(b Broadcaster, signingKey string, dryRun bool) *Dispatcher {
	return &Dispatcher{Broadcaster: b, SigningKey: signingKey, DryRun: dryRun}
}

// BuildTransfer returns the self-transfer to savings for a post.
func BuildTransfer(account string, amount decimal.Decimal, permlink string) model.SavingsTransfer {
	return model.SavingsTransfer{
		From:   account,
		To:     account,
		Amount: model.HBD(amount.Round(model.AssetPrecision)),
		Memo:   BuildMemo(permlink),
	}
}

// Dispatch submits the transfer once. A broadcast failure is returned as a
// *model.DispatchError and never retried.
func (d *Dispatcher) Dispatch(ctx context.Context, account string, amount decimal.Decimal, permlink string) (*Receipt, error) {
	t := BuildTransfer(account, amount, permlink)
	if d.DryRun {
		log.Printf("[INFO] dry run: would send %s to savings with memo %q", t.Amount, t.Memo)
		return &Receipt{Transfer: t, DryRun: true}, nil
	}

	txID, err := d.Broadcaster.Submit(ctx, []model.SavingsTransfer{t}, d.SigningKey)
	if err != nil {
		log.Printf("[ERROR] error sending to savings: %v", err)
		return nil, &model.DispatchError{Memo: t.Memo, Err: err}
	}
	log.Printf("[INFO] sent %s to savings with memo %q (tx %s)", t.Amount, t.Memo, txID)
	return &Receipt{Transfer: t, TxID: txID}, nil
}
