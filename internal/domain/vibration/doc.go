// Package vibration holds the accelerometer value types and the pure
// conversion from a raw sample to a calibrated reading.
//
// All quantities are in g. A RawSample is sensor-native counts; Analyze
// scales it with the LSB/g factor, removes the calibration Offset and derives
// the magnitude and the vibration intensity (deviation of magnitude from 1g).
package vibration
