// Custodian coordinates the log lifecycle for the MarkHub conversion
// service: it sequences the external rotation engine with the in-app
// retention cleanup pass, so rotated artifacts are cleaned up only after
// the engine reports a safe rotation.
//
// Usage:
//
//	# One coordinated lifecycle pass (rotation, then cleanup)
//	custodian run
//
//	# Individual phases
//	custodian rotate
//	custodian cleanup
//
//	# Inspect retention policy and rotated artifacts
//	custodian status
//	custodian list
//
//	# Query the archive index
//	custodian archives --class audit
//
//	# Run as a daemon with an in-process cron schedule
//	custodian schedule
//
// Exit codes are pass-through: a rotation engine failure surfaces the
// engine's own exit status, a cleanup failure exits 2, and an unusable
// rotation state store exits 10 without invoking the engine.
package main

func main() {
	Execute()
}
