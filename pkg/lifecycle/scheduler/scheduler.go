package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"markhub-hq/custodian/pkg/lifecycle"
)

// Runner executes one coordinated lifecycle pass.
type Runner interface {
	Run(ctx context.Context) lifecycle.Outcome
}

// Scheduler runs the coordinator on a cron schedule for deployments without
// a host-level cron. Runs are serialized within the process: a slow pass
// cannot overlap the next tick. Across processes the engine's own state
// store is the only guard, same as externally scheduled invocations.
type Scheduler struct {
	runner   Runner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool

	// lastMu guards last separately from mu: Stop holds mu while waiting
	// for a running pass to finish, and that pass must still be able to
	// record its outcome.
	lastMu sync.Mutex
	last   *lifecycle.Outcome

	// runMu serializes lifecycle passes.
	runMu sync.Mutex
}

// New creates a scheduler that runs runner per the cron expression.
func New(runner Runner, schedule string) *Scheduler {
	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "lifecycle.scheduler"),
	}
}

// Start begins scheduled runs based on the cron expression.
//
// Common cron expressions:
//   - "30 2 * * *"   - Daily at 02:30
//   - "0 */6 * * *"  - Every 6 hours
//   - "0 0 * * 0"    - Weekly on Sunday at midnight
//
// If the schedule is empty, the scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runOnce(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule lifecycle runs: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("lifecycle scheduler started",
		"schedule", s.schedule,
	)

	// Wait for context cancellation in background
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runOnce executes a single scheduled lifecycle pass.
func (s *Scheduler) runOnce(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.logger.Info("starting scheduled lifecycle run")

	outcome := s.runner.Run(ctx)

	s.lastMu.Lock()
	s.last = &outcome
	s.lastMu.Unlock()

	if outcome.Success() {
		s.logger.Info("scheduled lifecycle run completed",
			"run_id", outcome.RunID,
			"status", outcome.Status,
		)
	} else {
		s.logger.Error("scheduled lifecycle run failed",
			"run_id", outcome.RunID,
			"phase", outcome.Phase,
			"status", outcome.Status,
		)
	}
}

// RunNow triggers one pass outside the schedule, still serialized against
// scheduled runs.
func (s *Scheduler) RunNow(ctx context.Context) lifecycle.Outcome {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	outcome := s.runner.Run(ctx)

	s.lastMu.Lock()
	s.last = &outcome
	s.lastMu.Unlock()

	return outcome
}

// Stop stops the scheduler and waits for any running pass to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("lifecycle scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled run time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}

// LastOutcome returns the outcome of the most recent pass, or nil before
// the first one.
func (s *Scheduler) LastOutcome() *lifecycle.Outcome {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()

	return s.last
}
