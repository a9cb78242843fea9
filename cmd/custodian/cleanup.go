package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"markhub-hq/custodian/pkg/cli"
	"markhub-hq/custodian/pkg/lifecycle"
)

var cleanupFlags struct {
	force bool
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Run the retention cleanup pass only",
	Long: `Run the retention cleanup pass without invoking the rotation engine.

Rotated artifacts past their class's environment-adjusted retention period
are deleted, or moved to the archive when archiving is enabled. Live log
files are never eligible. With --force, every rotated artifact is disposed
of regardless of age; live files still survive.

Exits 2 if the pass fails.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().BoolVar(&cleanupFlags.force, "force", false, "dispose of all rotated artifacts regardless of age")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := initCommand()
	if err != nil {
		return err
	}

	components, err := buildLifecycle(cfg)
	if err != nil {
		return cli.NewCommandError("cleanup", err)
	}
	defer components.close()

	ctx := cli.SetupSignalHandler()

	clean := components.cleaner.Clean
	if cleanupFlags.force {
		clean = components.cleaner.CleanAll
	}
	report, cleanErr := clean(ctx)
	if cleanErr != nil {
		return cli.NewExitError(lifecycle.ExitCleanupFailure, cleanErr)
	}

	fmt.Printf("scanned %d, removed %d, archived %d, reclaimed %d bytes\n",
		report.Scanned, report.Removed, report.Archived, report.BytesReclaimed)
	return nil
}
