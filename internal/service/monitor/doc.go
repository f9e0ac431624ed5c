// Package monitor runs the vibration monitoring engine.
//
// Engine owns the per-process state (calibration offset, alarm machine,
// reporter, latest reading) and executes one cycle per Step: read, analyze,
// evaluate the alarm, report. Run repeats Step with a fixed pause until the
// context ends. The latest reading and alarm state are published as an
// immutable Snapshot so other goroutines can observe a consistent pair.
//
// The package also holds the startup sequence (probe, calibration, fault
// indication) and the hardware wiring used by the CLI.
package monitor
