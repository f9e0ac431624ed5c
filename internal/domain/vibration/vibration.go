package vibration

import (
	"fmt"
	"math"
)

const (
	// Gravity is the resting magnitude, in g, of a motionless sensor.
	Gravity = 1.0

	// DefaultScaleFactor is the MPU6050 sensitivity for the ±2g range (AFS_SEL = 0).
	DefaultScaleFactor = 16384.0
)

// RawSample is one 3-axis reading in sensor-native counts.
type RawSample struct {
	X int16
	Y int16
	Z int16
}

// Offset is the per-axis bias removed from every reading.
// Z already has Gravity subtracted, so the bias of a level sensor is zero on all axes.
type Offset struct {
	X float64
	Y float64
	Z float64
}

// Reading is a calibrated sample of a single cycle.
type Reading struct {
	// X, Y and Z are the corrected accelerations.
	X float64
	Y float64
	Z float64
	// Magnitude is the Euclidean norm of (X, Y, Z).
	Magnitude float64
	// Intensity is |Magnitude - Gravity|, the value compared against the threshold.
	Intensity float64
}

// ToG converts a raw axis value to g.
func ToG(raw int16, scale float64) float64 {
	return float64(raw) / scale
}

// Analyze converts sample into a Reading using the calibration offset.
// It never clamps: a zero scale yields infinities, which callers rule out at config time.
func Analyze(sample RawSample, offset Offset, scale float64) Reading {
	x := ToG(sample.X, scale) - offset.X
	y := ToG(sample.Y, scale) - offset.Y
	z := ToG(sample.Z, scale) - offset.Z

	magnitude := math.Sqrt(x*x + y*y + z*z)

	return Reading{
		X:         x,
		Y:         y,
		Z:         z,
		Magnitude: magnitude,
		Intensity: math.Abs(magnitude - Gravity),
	}
}

// ScaleForRange returns the MPU6050 LSB/g factor for a full-scale range in g.
func ScaleForRange(fullScale int) (float64, error) {
	switch fullScale {
	case 2:
		return DefaultScaleFactor, nil
	case 4:
		return 8192, nil
	case 8:
		return 4096, nil
	case 16:
		return 2048, nil
	default:
		return 0, fmt.Errorf("unsupported full-scale range ±%dg", fullScale)
	}
}
