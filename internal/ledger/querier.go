package ledger

import (
	"context"

	"HBDSaver/internal/model"
)

// Querier reads an account's operation history and post metadata.
//
// GetAccountHistory returns the operations with Index <= start, at most limit
// of them, in ascending index order. A start of -1 means "most recent".
type Querier interface {
	GetAccountHistory(ctx context.Context, account string, start int64, limit int) ([]model.Operation, error)
	GetContent(ctx context.Context, author, permlink string) (*model.Content, error)
}

// Limits bounds a history scan.
type Limits struct {
	PageSize int // operations per request
	MaxOps   int // hard cap on operations scanned
}

// DefaultLimits matches the largest page the public API nodes accept.
var DefaultLimits = Limits{PageSize: 1000, MaxOps: 5000}
