package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"markhub-hq/custodian/pkg/cli"
	"markhub-hq/custodian/pkg/config"
	"markhub-hq/custodian/pkg/lifecycle"
	"markhub-hq/custodian/pkg/lifecycle/scheduler"
	"markhub-hq/custodian/pkg/telemetry/health"
	"markhub-hq/custodian/pkg/telemetry/metrics"
)

var scheduleFlags struct {
	runNow bool
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run as a daemon with an in-process cron schedule",
	Long: `Run custodian as a daemon: lifecycle passes fire on the configured cron
schedule, and an HTTP endpoint serves Prometheus metrics plus liveness and
readiness probes.

Endpoints on schedule.listen_address:
  /metrics   Prometheus metrics
  /healthz   liveness probe
  /readyz    readiness probe (log directory writable, state store usable)
  /version   build information

With schedule.watch_config enabled, configuration changes on disk are
picked up without a restart; a config that fails to load keeps the
previous one.

The daemon stops on SIGINT or SIGTERM, waiting for a running pass to
finish.`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().BoolVar(&scheduleFlags.runNow, "run-now", false, "run one pass immediately on startup")
}

// reloadableRunner swaps its coordinator so config reloads take effect on
// the next pass. Passes hold the read lock for their whole duration, so a
// swap cannot close the previous components (and their archive index)
// while a pass is still using them.
type reloadableRunner struct {
	mu         sync.RWMutex
	components *lifecycleComponents
}

func (r *reloadableRunner) Run(ctx context.Context) lifecycle.Outcome {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.components.coordinator.Run(ctx)
}

// swap installs the next components and closes the previous ones. It
// blocks until any in-flight pass has finished with them.
func (r *reloadableRunner) swap(next *lifecycleComponents) {
	r.mu.Lock()
	prev := r.components
	r.components = next
	r.mu.Unlock()
	prev.close()
}

func (r *reloadableRunner) current() *lifecycleComponents {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.components
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := initCommand()
	if err != nil {
		return err
	}

	components, err := buildLifecycle(cfg)
	if err != nil {
		return cli.NewCommandError("schedule", err)
	}

	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
	components.coordinator.WithRecorder(collector)

	runner := &reloadableRunner{components: components}
	defer func() { runner.current().close() }()

	ctx := cli.SetupSignalHandler()

	sched := scheduler.New(runner, cfg.Schedule.Cron)
	if err := sched.Start(ctx); err != nil {
		return cli.NewCommandError("schedule", err)
	}
	defer sched.Stop()

	// Probe endpoints check what a pass actually needs.
	checker := health.New(0)
	checker.RegisterCheck("log_directory", health.LogDirectoryCheck(cfg.Logs.Directory))
	checker.RegisterCheck("state_store", health.StateStoreCheck(components.store))

	mux := http.NewServeMux()
	health.Register(mux, checker, Version, GitCommit, BuildDate)
	if cfg.Telemetry.Metrics.Enabled {
		mux.Handle("/metrics", collector.Handler())
	}

	server := &http.Server{
		Addr:              cfg.Schedule.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("telemetry endpoint listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	if cfg.Schedule.WatchConfig {
		watcher, err := scheduler.NewConfigWatcher(cfgFile, func() error {
			return reloadLifecycle(runner, collector)
		})
		if err != nil {
			return cli.NewCommandError("schedule", err)
		}
		defer watcher.Close()
		go watcher.Watch(ctx)
	}

	if scheduleFlags.runNow {
		outcome := sched.RunNow(ctx)
		if !outcome.Success() {
			slog.Error("startup pass failed",
				"phase", outcome.Phase,
				"status", outcome.Status,
			)
		}
	}

	select {
	case err := <-errChan:
		return cli.NewCommandError("schedule", fmt.Errorf("telemetry endpoint failed: %w", err))
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("telemetry endpoint shutdown failed", "error", err)
	}

	return nil
}

// reloadLifecycle rebuilds the coordinator from the config file and swaps
// it into the runner. A config that fails to load or validate leaves the
// running components in place.
func reloadLifecycle(runner *reloadableRunner, collector *metrics.Collector) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}

	next, err := buildLifecycle(cfg)
	if err != nil {
		return err
	}
	next.coordinator.WithRecorder(collector)

	config.SetConfig(cfg)
	runner.swap(next)
	return nil
}
