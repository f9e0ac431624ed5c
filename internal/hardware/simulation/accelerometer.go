package simulation

import (
	"math"
	"math/rand"
	"sync"

	"github.com/oshokin/vibration-alarm/internal/domain/vibration"
)

// AccelerometerOptions tunes the synthetic signal.
type AccelerometerOptions struct {
	// NoiseG is the per-axis Gaussian noise, in g.
	NoiseG float64
	// ShockEvery makes every n-th read a shock; zero disables shocks.
	ShockEvery int
	// ShockG is the shock magnitude, in g, applied along the body diagonal.
	ShockG float64
	// Seed seeds the noise generator.
	Seed int64
	// Disconnected makes Probe fail, as an unwired sensor would.
	Disconnected bool
}

// Accelerometer is a level, resting sensor with noise and periodic shocks.
// Values saturate at the int16 limits like the real converter.
type Accelerometer struct {
	// opts is the signal configuration.
	opts AccelerometerOptions
	// scale is the LSB/g of the configured range.
	scale float64
	// rng generates the noise.
	rng *rand.Rand
	// reads counts Read calls.
	reads int
	// mu guards rng and reads.
	mu sync.Mutex
}

// NewAccelerometer creates a sensor in the ±2g range.
func NewAccelerometer(opts AccelerometerOptions) *Accelerometer {
	return &Accelerometer{
		opts:  opts,
		scale: vibration.DefaultScaleFactor,
		//nolint:gosec // Noise does not need a cryptographic generator.
		rng: rand.New(rand.NewSource(opts.Seed)),
	}
}

// Probe fails with vibration.ErrSensorUnavailable when the sensor is disconnected.
func (a *Accelerometer) Probe() error {
	if a.opts.Disconnected {
		return vibration.ErrSensorUnavailable
	}

	return nil
}

// Configure switches the full-scale range.
func (a *Accelerometer) Configure(fullScale int) error {
	scale, err := vibration.ScaleForRange(fullScale)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.scale = scale
	a.mu.Unlock()

	return nil
}

// Read returns the next synthetic sample.
func (a *Accelerometer) Read() (vibration.RawSample, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.reads++

	x := a.rng.NormFloat64() * a.opts.NoiseG
	y := a.rng.NormFloat64() * a.opts.NoiseG
	z := vibration.Gravity + a.rng.NormFloat64()*a.opts.NoiseG

	if a.opts.ShockEvery > 0 && a.reads%a.opts.ShockEvery == 0 {
		axis := a.opts.ShockG / math.Sqrt(3)
		x, y, z = axis, axis, axis
	}

	return vibration.RawSample{
		X: a.counts(x),
		Y: a.counts(y),
		Z: a.counts(z),
	}, nil
}

// counts converts g to saturated sensor counts.
func (a *Accelerometer) counts(g float64) int16 {
	v := math.Round(g * a.scale)

	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
