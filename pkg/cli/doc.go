/*
Package cli provides command-line utilities shared by the custodian command.

It includes the typed errors used to carry configuration problems and phase
exit codes out of cobra RunE functions, output formatters for commands that
print artifact listings, and signal handling for the schedule daemon.

Exit codes:

The coordinator passes through the exit status of whichever lifecycle phase
failed first. ExitError carries that status from a RunE function to main,
which calls os.Exit with it:

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

Signal handling:

For graceful shutdown of the schedule daemon on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
