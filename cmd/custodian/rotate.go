package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"markhub-hq/custodian/pkg/cli"
	"markhub-hq/custodian/pkg/lifecycle"
	"markhub-hq/custodian/pkg/lifecycle/rotation"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Run the rotation phase only",
	Long: `Invoke the external rotation engine without the cleanup pass.

The engine's exit status becomes the process exit status, untranslated.
The rotation state store location is verified first; if it is unusable the
engine is not invoked and the command exits 10.`,
	RunE: runRotate,
}

func init() {
	rootCmd.AddCommand(rotateCmd)
}

func runRotate(cmd *cobra.Command, args []string) error {
	cfg, err := initCommand()
	if err != nil {
		return err
	}

	store := rotation.NewStateStore(cfg.Rotation.StateFile)
	if err := store.EnsureReady(); err != nil {
		return cli.NewExitError(lifecycle.ExitStateUnreadable, err)
	}

	ctx := cli.SetupSignalHandler()

	engine := rotation.NewExecEngine(cfg.Rotation, store)
	status, rotateErr := engine.Rotate(ctx)
	if status != lifecycle.ExitSuccess {
		if rotateErr == nil {
			rotateErr = fmt.Errorf("rotation engine exited with status %d", status)
		}
		return cli.NewExitError(status, rotateErr)
	}
	return nil
}
