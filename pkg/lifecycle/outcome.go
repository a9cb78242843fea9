package lifecycle

import "time"

// Phase identifies one of the two lifecycle phases.
type Phase string

const (
	// PhaseRotation is the external rotation engine invocation.
	PhaseRotation Phase = "rotation"
	// PhaseCleanup is the in-application retention cleanup pass.
	PhaseCleanup Phase = "cleanup"
)

// Exit statuses owned by custodian. The rotation engine's statuses are
// passed through untranslated; these cover the phases custodian itself owns.
const (
	// ExitSuccess is the status shared by both phases on success.
	ExitSuccess = 0

	// ExitCleanupFailure is reported when the retention cleanup pass fails.
	ExitCleanupFailure = 2

	// ExitStateUnreadable is reported when the rotation state store location
	// cannot be verified before the engine is invoked. It sits outside the
	// engine's own 0/1 range so scheduler alerting can tell a bookkeeping
	// problem apart from an engine failure.
	ExitStateUnreadable = 10

	// ExitEngineUnavailable is reported when the rotation engine binary
	// could not be started at all (shell convention for command not found).
	ExitEngineUnavailable = 127
)

// Outcome is the ephemeral record of a phase execution. It is produced once
// per phase per run, written to the log stream, and not persisted beyond it.
type Outcome struct {
	// RunID tags every outcome of one coordinator run.
	RunID string `json:"run_id"`

	// Phase is the lifecycle phase this outcome describes.
	Phase Phase `json:"phase"`

	// Status is the phase's exit status. For the rotation phase this is
	// the engine's own exit code, untranslated.
	Status int `json:"status"`

	// Timestamp is when the phase finished.
	Timestamp time.Time `json:"timestamp"`
}

// Success reports whether the phase exited with ExitSuccess.
func (o Outcome) Success() bool {
	return o.Status == ExitSuccess
}
