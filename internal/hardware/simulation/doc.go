// Package simulation provides a synthetic accelerometer and logged outputs
// so the monitor can run on machines without the sensor board.
package simulation
