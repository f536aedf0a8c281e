package hive

import (
	"context"
	"log"
	"time"

	"HBDSaver/internal/model"

	"github.com/pkg/errors"
)

// txTTL is how long after the head block time a transaction stays valid.
const txTTL = time.Minute

// Submit signs ops with the WIF signingKey and broadcasts them in one
// transaction. It returns the transaction id. Nothing is retried.
func (c *Client) Submit(ctx context.Context, ops []model.SavingsTransfer, signingKey string) (string, error) {
	if len(ops) == 0 {
		return "", errors.New("submit: no operations")
	}
	key, err := DecodeWIF(signingKey)
	if err != nil {
		return "", err
	}

	props, err := c.GetDynamicGlobalProperties(ctx)
	if err != nil {
		return "", errors.Wrap(err, "submit: reference block")
	}
	tx, err := NewTransaction(props, txTTL, ops)
	if err != nil {
		return "", errors.Wrap(err, "submit")
	}
	if err := tx.Sign(key, c.ChainID); err != nil {
		return "", errors.Wrap(err, "submit")
	}
	id, err := tx.ID()
	if err != nil {
		return "", errors.Wrap(err, "submit")
	}

	if _, err := c.call(ctx, "condenser_api.broadcast_transaction", []any{tx}); err != nil {
		return "", err
	}
	log.Printf("[INFO] broadcast transaction %s (ref block %d)", id, tx.RefBlockNum)
	return id, nil
}
