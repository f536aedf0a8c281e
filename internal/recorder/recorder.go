package recorder

import "time"

// Outcome is how a pipeline run ended.
type Outcome string

const (
	OutcomeNoReward       Outcome = "NO_REWARD"
	OutcomeDispatched     Outcome = "DISPATCHED"
	OutcomeDryRun         Outcome = "DRY_RUN"
	OutcomeAborted        Outcome = "ABORTED"
	OutcomeDispatchFailed Outcome = "DISPATCH_FAILED"
	OutcomeQueryFailed    Outcome = "QUERY_FAILED"
)

// RunRecord holds the result of one pipeline run.
type RunRecord struct {
	StartedAt time.Time
	Duration  time.Duration
	Account   string
	Outcome   Outcome
	Permlink  string
	Reward    string // e.g. "12.345 HBD"
	Amount    string
	TxID      string
	Note      string
}

// Recorder keeps an audit trail of runs. It is write-only: nothing in the
// pipeline reads it back, whether a reward was saved is always decided from
// the chain.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
