package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"markhub-hq/custodian/pkg/lifecycle/retention"
	"markhub-hq/custodian/pkg/lifecycle/rotation"
)

// Cleaner is the retention cleanup pass as the coordinator sees it.
type Cleaner interface {
	Clean(ctx context.Context) (retention.Report, error)
}

// Recorder receives phase outcomes and cleanup reports as they happen.
// The metrics collector implements it; a nil recorder is valid.
type Recorder interface {
	ObservePhase(phase Phase, status int, duration time.Duration)
	ObserveCleanup(report retention.Report)
}

// Coordinator sequences the two lifecycle phases: the external rotation
// engine first, then the retention cleanup pass, which runs only if
// rotation succeeded. A failed rotation is never followed by cleanup, so
// logs that were not safely rotated cannot be deleted.
//
// There is no retry within a run; the next externally scheduled invocation
// is the retry. Back-to-back runs with no new log growth succeed both
// times: the engine's state store makes repeated rotation a no-op, and
// cleanup is a pure scan over current artifact ages.
type Coordinator struct {
	engine   rotation.Engine
	store    *rotation.StateStore
	cleaner  Cleaner
	recorder Recorder
	logger   *slog.Logger

	// Now is the clock used for outcome timestamps. Overridable in tests.
	Now func() time.Time
}

// NewCoordinator creates a coordinator over the given collaborators.
func NewCoordinator(engine rotation.Engine, store *rotation.StateStore, cleaner Cleaner) *Coordinator {
	return &Coordinator{
		engine:  engine,
		store:   store,
		cleaner: cleaner,
		logger:  slog.Default().With("component", "lifecycle.coordinator"),
		Now:     time.Now,
	}
}

// WithRecorder attaches a metrics recorder and returns the coordinator.
func (c *Coordinator) WithRecorder(r Recorder) *Coordinator {
	c.recorder = r
	return c
}

// Run executes one coordinated lifecycle pass and returns the final
// outcome. The outcome's status is the pass-through exit status of
// whichever phase failed first, or ExitSuccess when both phases succeeded.
func (c *Coordinator) Run(ctx context.Context) Outcome {
	runID := uuid.NewString()
	logger := c.logger.With("run_id", runID)

	logger.Info("lifecycle run starting")

	// The storage location is verified before every engine invocation.
	// Content is never inspected; an absent file is the engine's to create.
	if err := c.store.EnsureReady(); err != nil {
		outcome := Outcome{
			RunID:     runID,
			Phase:     PhaseRotation,
			Status:    ExitStateUnreadable,
			Timestamp: c.Now(),
		}
		logger.Error("rotation state store not ready",
			"phase", PhaseRotation,
			"status", outcome.Status,
			"state_file", c.store.Path(),
			"error", err,
		)
		c.observePhase(PhaseRotation, outcome.Status, 0)
		return outcome
	}

	// Phase 1: rotation.
	start := c.Now()
	status, err := c.engine.Rotate(ctx)
	rotated := Outcome{
		RunID:     runID,
		Phase:     PhaseRotation,
		Status:    status,
		Timestamp: c.Now(),
	}
	c.observePhase(PhaseRotation, status, rotated.Timestamp.Sub(start))

	if !rotated.Success() {
		// Fail fast: cleanup must never follow a failed rotation.
		logger.Error("rotation failed",
			"phase", PhaseRotation,
			"status", rotated.Status,
			"error", err,
		)
		return rotated
	}
	logger.Info("rotation completed",
		"phase", PhaseRotation,
		"status", rotated.Status,
		"duration", rotated.Timestamp.Sub(start),
	)

	// Phase 2: retention cleanup.
	start = c.Now()
	report, cleanErr := c.cleaner.Clean(ctx)

	cleaned := Outcome{
		RunID:     runID,
		Phase:     PhaseCleanup,
		Status:    ExitSuccess,
		Timestamp: c.Now(),
	}
	if cleanErr != nil {
		cleaned.Status = ExitCleanupFailure
	}
	c.observePhase(PhaseCleanup, cleaned.Status, cleaned.Timestamp.Sub(start))
	c.observeCleanup(report)

	if cleanErr != nil {
		logger.Error("cleanup failed",
			"phase", PhaseCleanup,
			"status", cleaned.Status,
			"removed", report.Removed,
			"archived", report.Archived,
			"error", cleanErr,
		)
		return cleaned
	}

	logger.Info("cleanup completed",
		"phase", PhaseCleanup,
		"status", cleaned.Status,
		"scanned", report.Scanned,
		"removed", report.Removed,
		"archived", report.Archived,
		"bytes_reclaimed", report.BytesReclaimed,
		"duration", cleaned.Timestamp.Sub(start),
	)
	return cleaned
}

func (c *Coordinator) observePhase(phase Phase, status int, d time.Duration) {
	if c.recorder != nil {
		c.recorder.ObservePhase(phase, status, d)
	}
}

func (c *Coordinator) observeCleanup(report retention.Report) {
	if c.recorder != nil {
		c.recorder.ObserveCleanup(report)
	}
}
