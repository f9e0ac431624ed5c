package vibration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

// TestAnalyze_AtOffsetReadsOneG checks that a sample equal to the calibration point reads 1g and no vibration.
func TestAnalyze_AtOffsetReadsOneG(t *testing.T) {
	t.Parallel()

	samples := []RawSample{
		{X: 0, Y: 0, Z: 16384},
		{X: 120, Y: -340, Z: 16100},
		{X: -16384, Y: 0, Z: 0},
	}

	for _, sample := range samples {
		offset := Offset{
			X: ToG(sample.X, DefaultScaleFactor),
			Y: ToG(sample.Y, DefaultScaleFactor),
			Z: ToG(sample.Z, DefaultScaleFactor) - Gravity,
		}

		reading := Analyze(sample, offset, DefaultScaleFactor)
		require.InDelta(t, 1.0, reading.Magnitude, epsilon)
		require.InDelta(t, 0.0, reading.Intensity, epsilon)
		require.InDelta(t, 0.0, reading.X, epsilon)
		require.InDelta(t, 0.0, reading.Y, epsilon)
		require.InDelta(t, 1.0, reading.Z, epsilon)
	}
}

// TestAnalyze_Magnitude verifies the Euclidean norm and the gravity-removed intensity.
func TestAnalyze_Magnitude(t *testing.T) {
	t.Parallel()

	// 3.5g straight down the z axis with a zero offset.
	reading := Analyze(RawSample{Z: 28672}, Offset{}, 8192)
	require.InDelta(t, 3.5, reading.Magnitude, epsilon)
	require.InDelta(t, 2.5, reading.Intensity, epsilon)

	// Free fall reads zero magnitude, which is one full g of deviation.
	reading = Analyze(RawSample{}, Offset{}, DefaultScaleFactor)
	require.InDelta(t, 0.0, reading.Magnitude, epsilon)
	require.InDelta(t, 1.0, reading.Intensity, epsilon)

	// 3-4-5 triangle scaled to quarter g units.
	reading = Analyze(RawSample{X: 4096 * 3, Y: 4096 * 4}, Offset{}, 4096*4)
	require.InDelta(t, 1.25, reading.Magnitude, epsilon)
	require.InDelta(t, 0.25, reading.Intensity, epsilon)
}

// TestAnalyze_SubtractsOffset ensures each axis has its own bias removed.
func TestAnalyze_SubtractsOffset(t *testing.T) {
	t.Parallel()

	reading := Analyze(RawSample{X: 8192, Y: -8192, Z: 16384}, Offset{X: 0.5, Y: -0.5, Z: 0.25}, DefaultScaleFactor)
	require.InDelta(t, 0.0, reading.X, epsilon)
	require.InDelta(t, 0.0, reading.Y, epsilon)
	require.InDelta(t, 0.75, reading.Z, epsilon)
	require.InDelta(t, 0.25, reading.Intensity, epsilon)
}

// TestAnalyze_ZeroScale documents that no clamping happens.
func TestAnalyze_ZeroScale(t *testing.T) {
	t.Parallel()

	reading := Analyze(RawSample{Z: 1}, Offset{}, 0)
	require.True(t, math.IsInf(reading.Magnitude, 1))
}

// TestScaleForRange covers the supported MPU6050 ranges.
func TestScaleForRange(t *testing.T) {
	t.Parallel()

	cases := map[int]float64{2: 16384, 4: 8192, 8: 4096, 16: 2048}
	for fullScale, want := range cases {
		got, err := ScaleForRange(fullScale)
		require.NoError(t, err)
		require.InDelta(t, want, got, 0)
	}

	_, err := ScaleForRange(3)
	require.Error(t, err)
}
