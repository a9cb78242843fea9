/*
Package lifecycle coordinates the two phases of the log lifecycle: delegated
rotation and in-application retention cleanup.

The coordinator invokes the external rotation engine with the injected state
store, inspects its exit status, and gates the cleanup pass on rotation
success. Outcomes are narrated to the log stream and the final status is
passed through to the process exit code, so the external scheduler that
triggered the run can tell "nothing to do", "rotation failed" and "cleanup
failed" apart without any visibility into the phases themselves.

Two error kinds exist: a rotation failure (first phase, engine's own status)
and a cleanup failure (second phase, ExitCleanupFailure). Neither is
recovered locally; the next scheduled invocation is the retry. No partial
state is representable because cleanup never runs after a failed rotation.
*/
package lifecycle
