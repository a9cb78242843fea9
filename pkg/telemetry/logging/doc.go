// Package logging builds the structured slog logger used by every custodian
// command. Log lines are timestamped and phase-labeled (via "component" and
// "phase" attributes) and written to stdout, where the external scheduler's
// log capture consumes them.
package logging
