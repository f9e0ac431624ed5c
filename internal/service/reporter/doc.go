// Package reporter prints the calibrated readings on a fixed cadence and
// formats the operator-facing alarm line. It only observes; it never changes
// alarm state.
package reporter
