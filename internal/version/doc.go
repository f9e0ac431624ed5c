// Package version exposes build metadata of the vibration monitor.
//
// Version, Commit and BuildTime are injected with -ldflags at build time.
package version
