// Package calibrator measures the resting bias of the accelerometer.
//
// Calibrate averages a fixed number of samples taken while the sensor is
// stationary and removes 1g from the vertical axis. It is the only phase of
// the monitor that blocks, once, before the monitoring loop starts.
package calibrator
