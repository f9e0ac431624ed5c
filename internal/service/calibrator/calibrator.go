package calibrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/vibration-alarm/internal/domain/vibration"
	"github.com/oshokin/vibration-alarm/internal/logger"
)

// SampleSource delivers raw accelerometer samples.
type SampleSource interface {
	Read() (vibration.RawSample, error)
}

// Sleeper pauses between samples and gives up when ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Options controls a calibration run.
type Options struct {
	// Count is the number of samples to average; must be positive.
	Count int
	// Delay is the pause after each sample.
	Delay time.Duration
	// ScaleFactor is the sensor sensitivity in LSB/g; must be positive.
	ScaleFactor float64
	// Sleeper implements Delay.
	Sleeper Sleeper
}

var (
	// ErrInvalidSampleCount is returned when Count is not positive.
	ErrInvalidSampleCount = errors.New("calibration sample count must be positive")

	// errInvalidScale is returned when ScaleFactor is not positive.
	errInvalidScale = errors.New("scale factor must be positive")
	// errNoSleeper is returned when a delay is requested without a Sleeper.
	errNoSleeper = errors.New("sleeper is required for a non-zero delay")
)

// Calibrate returns the mean of opts.Count samples per axis, in g, with
// vibration.Gravity subtracted from Z. The sensor must be stationary.
// A failed read aborts with an error wrapping vibration.ErrSensorUnavailable.
func Calibrate(ctx context.Context, source SampleSource, opts Options) (vibration.Offset, error) {
	if opts.Count <= 0 {
		return vibration.Offset{}, ErrInvalidSampleCount
	}

	if opts.ScaleFactor <= 0 {
		return vibration.Offset{}, errInvalidScale
	}

	if opts.Delay > 0 && opts.Sleeper == nil {
		return vibration.Offset{}, errNoSleeper
	}

	var sumX, sumY, sumZ float64

	for i := range opts.Count {
		sample, err := source.Read()
		if err != nil {
			return vibration.Offset{}, fmt.Errorf("read calibration sample %d: %w: %w", i, vibration.ErrSensorUnavailable, err)
		}

		sumX += vibration.ToG(sample.X, opts.ScaleFactor)
		sumY += vibration.ToG(sample.Y, opts.ScaleFactor)
		sumZ += vibration.ToG(sample.Z, opts.ScaleFactor)

		if opts.Delay <= 0 {
			continue
		}

		if err := opts.Sleeper.Sleep(ctx, opts.Delay); err != nil {
			return vibration.Offset{}, fmt.Errorf("calibration interrupted: %w", err)
		}
	}

	n := float64(opts.Count)
	offset := vibration.Offset{
		X: sumX / n,
		Y: sumY / n,
		Z: sumZ/n - vibration.Gravity,
	}

	logger.DebugKV(ctx, "Calibration offsets computed",
		"samples", opts.Count,
		"x", offset.X,
		"y", offset.Y,
		"z", offset.Z,
	)

	return offset, nil
}
