package vibration

import "errors"

var (
	// ErrSensorUnavailable means the accelerometer could not be reached at startup.
	// Calibration and monitoring never start after it.
	ErrSensorUnavailable = errors.New("sensor unavailable")

	// ErrSampleReadFailed means a single read failed after the sensor was brought up.
	ErrSampleReadFailed = errors.New("sample read failed")
)
