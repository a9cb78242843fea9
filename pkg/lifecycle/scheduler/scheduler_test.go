package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"markhub-hq/custodian/pkg/lifecycle"
)

type fakeRunner struct {
	mu       sync.Mutex
	runs     int
	outcome  lifecycle.Outcome
	blockFor time.Duration
	started  chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context) lifecycle.Outcome {
	f.mu.Lock()
	f.runs++
	f.mu.Unlock()
	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.blockFor > 0 {
		time.Sleep(f.blockFor)
	}
	return f.outcome
}

func (f *fakeRunner) Runs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs
}

func TestScheduler_EmptyScheduleDoesNothing(t *testing.T) {
	s := New(&fakeRunner{}, "")

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() with empty schedule failed: %v", err)
	}
	if s.IsRunning() {
		t.Error("scheduler should not be running with an empty schedule")
	}
}

func TestScheduler_RejectsInvalidSchedule(t *testing.T) {
	s := New(&fakeRunner{}, "not a cron expression")

	if err := s.Start(context.Background()); err == nil {
		t.Fatal("Start() should reject an invalid cron expression")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(&fakeRunner{}, "30 2 * * *")
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !s.IsRunning() {
		t.Error("scheduler should be running after Start")
	}

	next := s.NextRun()
	if next == nil {
		t.Fatal("NextRun() = nil, want a scheduled time")
	}
	if !next.After(time.Now()) {
		t.Errorf("NextRun() = %v, want a future time", next)
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler should not be running after Stop")
	}

	// Stop again must be a no-op.
	s.Stop()
}

func TestScheduler_RunNowRecordsOutcome(t *testing.T) {
	runner := &fakeRunner{outcome: lifecycle.Outcome{
		RunID:  "run-1",
		Phase:  lifecycle.PhaseCleanup,
		Status: lifecycle.ExitSuccess,
	}}
	s := New(runner, "30 2 * * *")

	if s.LastOutcome() != nil {
		t.Error("LastOutcome() should be nil before the first pass")
	}

	outcome := s.RunNow(context.Background())
	if outcome.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", outcome.RunID)
	}
	if runner.Runs() != 1 {
		t.Errorf("runner ran %d times, want 1", runner.Runs())
	}

	last := s.LastOutcome()
	if last == nil || last.RunID != "run-1" {
		t.Errorf("LastOutcome() = %+v, want the recorded outcome", last)
	}
}

func TestScheduler_StopReturnsWhileRunning(t *testing.T) {
	runner := &fakeRunner{
		blockFor: 2 * time.Second,
		started:  make(chan struct{}, 1),
		outcome:  lifecycle.Outcome{RunID: "run-1", Status: lifecycle.ExitSuccess},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(runner, "@every 100ms")
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	select {
	case <-runner.started:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled pass never started")
	}

	// Stop must wait for the in-flight pass to finish, then return; the
	// pass records its outcome while Stop is waiting.
	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		t.Fatal("Stop() did not return while a pass was in flight")
	}

	last := s.LastOutcome()
	if last == nil || last.RunID != "run-1" {
		t.Errorf("LastOutcome() = %+v, want the interrupted pass's outcome", last)
	}
}

func TestScheduler_SerializesPasses(t *testing.T) {
	runner := &fakeRunner{blockFor: 50 * time.Millisecond}
	s := New(runner, "30 2 * * *")

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RunNow(context.Background())
		}()
	}
	wg.Wait()

	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("three passes finished in %v, want serialized execution", elapsed)
	}
	if runner.Runs() != 3 {
		t.Errorf("runner ran %d times, want 3", runner.Runs())
	}
}

func TestConfigWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custodian.yaml")
	if err := os.WriteFile(path, []byte("environment: production\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 1)
	watcher, err := NewConfigWatcher(path, func() error {
		select {
		case reloaded <- struct{}{}:
		default:
		}
		return nil
	})
	if err != nil {
		t.Fatalf("NewConfigWatcher() failed: %v", err)
	}
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Watch(ctx)

	// Give the watch loop a moment to start before touching the file.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("environment: development\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("config change did not trigger a reload")
	}
}

func TestConfigWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custodian.yaml")
	if err := os.WriteFile(path, []byte("environment: production\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 1)
	watcher, err := NewConfigWatcher(path, func() error {
		select {
		case reloaded <- struct{}{}:
		default:
		}
		return nil
	})
	if err != nil {
		t.Fatalf("NewConfigWatcher() failed: %v", err)
	}
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Watch(ctx)

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Fatal("change to an unrelated file triggered a reload")
	case <-time.After(configWatchDebounce + 200*time.Millisecond):
	}
}
