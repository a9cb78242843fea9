package rotation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"markhub-hq/custodian/pkg/config"
)

// Engine abstracts the external rotation engine. Implementations apply
// rotation rules to the log directory and report an exit status. The status
// is passed through to the scheduler untranslated, so no implementation may
// invent its own code taxonomy.
type Engine interface {
	// Rotate runs one rotation pass and returns the engine's exit status.
	// A non-nil error means the engine could not be invoked at all; in that
	// case the status is the conventional 127.
	Rotate(ctx context.Context) (int, error)
}

// ExecEngine invokes a logrotate-compatible binary as a subprocess. The
// engine is a black box: custodian supplies the rule file and the state
// store path and interprets nothing but the exit status. Repeated
// invocations with no new log growth are no-ops because the engine's own
// state file records what has already been rotated.
type ExecEngine struct {
	binary   string
	ruleFile string
	verbose  bool
	state    *StateStore
	logger   *slog.Logger

	// Stdout and Stderr receive the engine's own output. They default to
	// the process streams so the scheduler's log capture sees engine
	// narration alongside the coordinator's.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecEngine creates an engine wrapper from rotation configuration.
func NewExecEngine(cfg config.RotationConfig, state *StateStore) *ExecEngine {
	return &ExecEngine{
		binary:   cfg.EngineBinary,
		ruleFile: cfg.RuleFile,
		verbose:  cfg.Verbose,
		state:    state,
		logger:   slog.Default().With("component", "lifecycle.rotation"),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Rotate executes the rotation binary with the configured rule file and the
// injected state store. No timeout is enforced here; bounding a hung engine
// is the caller's concern (the external scheduler wraps invocations).
func (e *ExecEngine) Rotate(ctx context.Context) (int, error) {
	args := []string{"--state", e.state.Path()}
	if e.verbose {
		args = append(args, "--verbose")
	}
	args = append(args, e.ruleFile)

	e.logger.Debug("invoking rotation engine",
		"binary", e.binary,
		"rule_file", e.ruleFile,
		"state_file", e.state.Path(),
	)

	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The engine ran and failed; its status is the contract.
		return exitErr.ExitCode(), nil
	}

	// The engine never started (missing binary, permission problem).
	return 127, err
}
