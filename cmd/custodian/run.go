package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"markhub-hq/custodian/pkg/cli"
	"markhub-hq/custodian/pkg/config"
	"markhub-hq/custodian/pkg/lifecycle"
	"markhub-hq/custodian/pkg/lifecycle/archive"
	"markhub-hq/custodian/pkg/lifecycle/retention"
	"markhub-hq/custodian/pkg/lifecycle/rotation"
	"markhub-hq/custodian/pkg/telemetry/logging"
)

var runFlags struct {
	dryRun bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one coordinated lifecycle pass",
	Long: `Run one coordinated lifecycle pass: invoke the rotation engine, and if
it succeeds, run the retention cleanup pass over the log directory.

The process exit code reports the first failing phase:
  0    both phases succeeded
  2    cleanup failed after a successful rotation
  10   the rotation state store location is unusable (engine not invoked)
  127  the rotation engine binary could not be started
  n    any other engine exit status, passed through untranslated

Examples:
  # One pass with the default config
  custodian run

  # From a scheduler entry
  custodian run --config /etc/custodian/custodian.yaml

  # Validate config without touching anything
  custodian run --dry-run`,
	RunE: runLifecycle,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without running any phase")
}

// lifecycleComponents bundles the collaborators one coordinator run needs.
type lifecycleComponents struct {
	coordinator *lifecycle.Coordinator
	cleaner     *retention.Cleaner
	store       *rotation.StateStore
	close       func()
}

// buildLifecycle wires the coordinator from configuration. The returned
// close func releases the archive index when archiving is enabled.
func buildLifecycle(cfg *config.Config) (*lifecycleComponents, error) {
	store := rotation.NewStateStore(cfg.Rotation.StateFile)
	engine := rotation.NewExecEngine(cfg.Rotation, store)

	policy, err := retention.NewPolicy(cfg)
	if err != nil {
		return nil, err
	}

	var archiver retention.Archiver
	closeFn := func() {}
	if cfg.Archive.Enabled {
		a, err := archive.New(cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize archive: %w", err)
		}
		archiver = a
		closeFn = func() { a.Close() }
	}

	cleaner := retention.NewCleaner(cfg.Logs.Directory, policy, archiver)

	return &lifecycleComponents{
		coordinator: lifecycle.NewCoordinator(engine, store, cleaner),
		cleaner:     cleaner,
		store:       store,
		close:       closeFn,
	}, nil
}

// initCommand loads configuration and the logger for a subcommand.
func initCommand() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if _, err := logging.Init(cfg.Telemetry.Logging); err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	return cfg, nil
}

func runLifecycle(cmd *cobra.Command, args []string) error {
	cfg, err := initCommand()
	if err != nil {
		return err
	}

	if runFlags.dryRun {
		fmt.Println("configuration valid")
		fmt.Printf("  environment:   %s\n", cfg.Environment)
		fmt.Printf("  log directory: %s\n", cfg.Logs.Directory)
		fmt.Printf("  engine:        %s\n", cfg.Rotation.EngineBinary)
		fmt.Printf("  state file:    %s\n", cfg.Rotation.StateFile)
		return nil
	}

	components, err := buildLifecycle(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer components.close()

	ctx := cli.SetupSignalHandler()

	outcome := components.coordinator.Run(ctx)
	if !outcome.Success() {
		return cli.NewExitError(outcome.Status, fmt.Errorf("%s phase failed", outcome.Phase))
	}
	return nil
}
