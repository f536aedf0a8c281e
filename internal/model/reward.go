package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RewardEvent is an unprocessed author reward found in the scan window.
type RewardEvent struct {
	Author    string
	Permlink  string
	Amount    decimal.Decimal
	Symbol    string
	Timestamp time.Time
	Index     int64
}

// SavingsTransfer is a transfer_to_savings operation. Memo carries the
// "auto-save:<permlink>" tag that marks a reward as processed.
type SavingsTransfer struct {
	From   string
	To     string
	Amount Asset
	Memo   string
}
