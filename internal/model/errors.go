package model

import "fmt"

// ConfigurationError reports a missing, invalid or placeholder setting. It is
// fatal and raised before any ledger access.
type ConfigurationError struct {
	Field string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Msg
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Msg)
}

// LedgerQueryError wraps a failed history or content read. It aborts the run.
type LedgerQueryError struct {
	Op  string
	Err error
}

func (e *LedgerQueryError) Error() string {
	return fmt.Sprintf("ledger query %s: %v", e.Op, e.Err)
}

func (e *LedgerQueryError) Unwrap() error { return e.Err }

// DispatchError wraps a failed broadcast of the savings transfer.
type DispatchError struct {
	Memo string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %q: %v", e.Memo, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// BusinessRuleAbort ends a run quietly without dispatching, e.g. when the fixed
// value exceeds the reward.
type BusinessRuleAbort struct {
	Reason string
}

func (e *BusinessRuleAbort) Error() string {
	return "aborted: " + e.Reason
}
