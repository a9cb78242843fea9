package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"markhub-hq/custodian/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "custodian",
	Short: "Custodian - log lifecycle coordinator for the MarkHub conversion service",
	Long: `Custodian coordinates the two phases of the log lifecycle:

  1. Rotation: the external rotation engine renames live log files and
     compresses the results, tracked in its persisted state store.
  2. Cleanup: the in-app retention pass removes (or archives) rotated
     artifacts that have outlived their class's retention period.

Cleanup runs only after a successful rotation, so log data that was not
safely rotated is never deleted. Exit codes pass through untranslated:
the scheduler that invokes custodian sees the failing phase's own status.`,
	Version: Version,
}

// Execute runs the root command, mapping lifecycle failures to their
// pass-through process exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "custodian.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Phase failures carry meaningful exit codes; printing usage for them
	// would bury the status line the scheduler logs.
	rootCmd.SilenceUsage = true
}
