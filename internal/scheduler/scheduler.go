package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the pipeline on a cron schedule.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *Runner
	Ctx    context.Context
}

// NewScheduler creates a Scheduler evaluating expressions in UTC. A tick that
// fires while the previous run is still going is skipped.
func NewScheduler(ctx context.Context, r *Runner) *Scheduler {
	logger := cron.PrintfLogger(log.Default())
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		Runner: r,
		Ctx:    ctx,
	}
}

// Register adds the run task under the given cron expression.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.task); err != nil {
		return fmt.Errorf("register run task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the task immediately.
func (s *Scheduler) RunNow() {
	s.task()
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	return s.Runner.HandleCommand(s.Ctx, command)
}

func (s *Scheduler) task() {
	outcome, err := s.Runner.RunOnce(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] scheduled run: %v", err)
		return
	}
	log.Printf("[INFO] scheduled run finished: %s", outcome)
}
