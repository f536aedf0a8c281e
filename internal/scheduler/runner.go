package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"HBDSaver/internal/calculator"
	"HBDSaver/internal/model"
	"HBDSaver/internal/notifier"
	"HBDSaver/internal/recorder"
	"HBDSaver/internal/savings"
)

// Notifier delivers a short run summary.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Locator finds the reward to save.
type Locator interface {
	FindPendingReward(ctx context.Context, account string, window model.ScanWindow) (*model.RewardEvent, error)
}

// Runner executes the locate, compute and dispatch pipeline once per call.
type Runner struct {
	Account    string
	Locator    Locator
	Policy     calculator.Policy
	Dispatcher *savings.Dispatcher
	Recorder   recorder.Recorder
	Notifier   Notifier
	Now        func() time.Time

	// mu serializes runs; last is read without waiting for a run to finish.
	mu   sync.Mutex
	last atomic.Pointer[recorder.RunRecord]
}

// NewRunner creates a Runner. Recorder and Notifier may be nil.
func NewRunner(account string, loc Locator, policy calculator.Policy, d *savings.Dispatcher, rec recorder.Recorder, n Notifier) *Runner {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	return &Runner{
		Account:    account,
		Locator:    loc,
		Policy:     policy,
		Dispatcher: d,
		Recorder:   rec,
		Notifier:   n,
		Now:        time.Now,
	}
}

// RunOnce runs the pipeline. Only configuration errors and ledger query
// failures are returned; a business abort or a failed broadcast is logged,
// recorded and reported through the outcome.
func (r *Runner) RunOnce(ctx context.Context) (recorder.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := r.Now().UTC()
	window := model.NewScanWindow(started)
	rec := &recorder.RunRecord{StartedAt: started, Account: r.Account}
	log.Printf("[INFO] checking rewards of @%s for %s", r.Account, window)

	outcome, err := r.run(ctx, window, rec)
	rec.Outcome = outcome
	rec.Duration = r.Now().Sub(started)
	r.finish(ctx, rec)
	return outcome, err
}

func (r *Runner) run(ctx context.Context, window model.ScanWindow, rec *recorder.RunRecord) (recorder.Outcome, error) {
	reward, err := r.Locator.FindPendingReward(ctx, r.Account, window)
	if err != nil {
		log.Printf("[ERROR] search reward: %v", err)
		rec.Note = err.Error()
		return recorder.OutcomeQueryFailed, err
	}
	if reward == nil {
		log.Println("[INFO] no rewards from new posts were found")
		return recorder.OutcomeNoReward, nil
	}
	rec.Permlink = reward.Permlink
	rec.Reward = model.Asset{Amount: reward.Amount, Symbol: reward.Symbol}.String()
	log.Printf("[INFO] found reward %s for post %q", rec.Reward, reward.Permlink)

	amount, err := calculator.ComputeTransferAmount(reward.Amount, r.Policy)
	if err != nil {
		var abort *model.BusinessRuleAbort
		if errors.As(err, &abort) {
			log.Printf("[WARN] %s, nothing sent", abort.Reason)
			rec.Note = abort.Reason
			return recorder.OutcomeAborted, nil
		}
		log.Printf("[ERROR] compute amount: %v", err)
		rec.Note = err.Error()
		return recorder.OutcomeAborted, err
	}
	rec.Amount = model.HBD(amount.Round(model.AssetPrecision)).String()

	receipt, err := r.Dispatcher.Dispatch(ctx, r.Account, amount, reward.Permlink)
	if err != nil {
		rec.Note = err.Error()
		return recorder.OutcomeDispatchFailed, nil
	}
	rec.TxID = receipt.TxID
	if receipt.DryRun {
		return recorder.OutcomeDryRun, nil
	}
	return recorder.OutcomeDispatched, nil
}

func (r *Runner) finish(ctx context.Context, rec *recorder.RunRecord) {
	r.last.Store(rec)
	if err := r.Recorder.RecordRun(rec); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	if rec.Outcome == recorder.OutcomeNoReward {
		return
	}
	if err := r.Notifier.Send(ctx, notifier.FormatRun(rec)); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}

// Last returns the record of the most recent run, or nil.
func (r *Runner) Last() *recorder.RunRecord {
	return r.last.Load()
}

// HandleCommand processes a chat command and returns a reply.
func (r *Runner) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/run":
		// The run sends its own summary when it does something.
		outcome, err := r.RunOnce(ctx)
		if err != nil {
			return fmt.Sprintf("❌ run failed: %v", err)
		}
		if outcome == recorder.OutcomeNoReward {
			return "No new post rewards found"
		}
		return ""
	case "/status":
		last := r.Last()
		if last == nil {
			return "No run yet"
		}
		return notifier.FormatRun(last)
	default:
		return "Commands:\n• /run\n• /status"
	}
}
