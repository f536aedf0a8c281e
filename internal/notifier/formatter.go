package notifier

import (
	"fmt"
	"strings"
	"time"

	"HBDSaver/internal/recorder"
)

// FormatRun formats a run record into a Telegram message.
func FormatRun(rec *recorder.RunRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("💰 <b>HBD auto-save</b> | @%s | %s\n\n", rec.Account, rec.StartedAt.UTC().Format("2006-01-02 15:04")))

	switch rec.Outcome {
	case recorder.OutcomeDispatched, recorder.OutcomeDryRun:
		if rec.Outcome == recorder.OutcomeDryRun {
			b.WriteString("🧪 Dry run, nothing was broadcast\n")
		} else {
			b.WriteString("✅ Sent to savings\n")
		}
		b.WriteString(fmt.Sprintf("Post: %s\n", rec.Permlink))
		b.WriteString(fmt.Sprintf("Reward: %s\n", rec.Reward))
		b.WriteString(fmt.Sprintf("Saved: %s\n", rec.Amount))
		if rec.TxID != "" {
			b.WriteString(fmt.Sprintf("Tx: <code>%s</code>\n", rec.TxID))
		}
	case recorder.OutcomeAborted:
		b.WriteString(fmt.Sprintf("⏸ Skipped %s: %s\n", rec.Permlink, rec.Note))
	case recorder.OutcomeDispatchFailed:
		b.WriteString(fmt.Sprintf("❌ Transfer for %s failed: %s\n", rec.Permlink, rec.Note))
	case recorder.OutcomeQueryFailed:
		b.WriteString(fmt.Sprintf("❌ History scan failed: %s\n", rec.Note))
	default:
		b.WriteString("No new post rewards found\n")
	}

	b.WriteString(fmt.Sprintf("\nRun took %s", rec.Duration.Round(time.Millisecond)))
	return b.String()
}
