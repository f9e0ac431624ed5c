package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kidoman/embd"
	_ "github.com/kidoman/embd/host/all" // Registers the Raspberry Pi host descriptor.
	"go.uber.org/zap"

	"github.com/oshokin/vibration-alarm/internal/config"
	"github.com/oshokin/vibration-alarm/internal/domain/output"
	"github.com/oshokin/vibration-alarm/internal/domain/vibration"
	"github.com/oshokin/vibration-alarm/internal/hardware/gpio"
	"github.com/oshokin/vibration-alarm/internal/hardware/mpu6050"
	"github.com/oshokin/vibration-alarm/internal/hardware/simulation"
	"github.com/oshokin/vibration-alarm/internal/logger"
)

// Sensor is the accelerometer as seen by the startup sequence.
type Sensor interface {
	SampleSource
	// Probe checks that the device answers and wakes it up.
	Probe() error
	// Configure selects the full-scale range in ±g.
	Configure(fullScale int) error
}

// hardware is an opened driver set.
type hardware struct {
	// sensor is the accelerometer.
	sensor Sensor
	// out drives the alarm LED, buzzer and status LED.
	out output.DigitalOutput
	// close releases the drivers.
	close func() error
}

// openHardware opens the backend selected by cfg.Driver.
func openHardware(ctx context.Context, cfg *config.Config) (*hardware, error) {
	log := hardwareLogger(ctx, cfg)

	switch cfg.Driver {
	case config.DriverRaspberryPi:
		return openRaspberryPi(cfg, log)
	case config.DriverSimulation:
		return openSimulation(cfg, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}
}

// hardwareLogger returns the driver logger at cfg.HardwareLogLevel.
func hardwareLogger(ctx context.Context, cfg *config.Config) *zap.SugaredLogger {
	level, _ := logger.ParseLogLevel(cfg.HardwareLogLevel)

	return logger.FromContext(ctx).
		Desugar().
		WithOptions(logger.WithLevel(level)).
		Sugar().
		Named("hardware")
}

// openRaspberryPi opens the I2C bus and the GPIO lines of a Raspberry Pi.
func openRaspberryPi(cfg *config.Config, log *zap.SugaredLogger) (*hardware, error) {
	if err := embd.InitI2C(); err != nil {
		return nil, fmt.Errorf("init i2c: %w: %w", vibration.ErrSensorUnavailable, err)
	}

	bus := embd.NewI2CBus(cfg.Sensor.I2CBus)

	board, err := gpio.Open(log.Named("gpio"), outputPins(cfg)...)
	if err != nil {
		return nil, errors.Join(err, embd.CloseI2C())
	}

	return &hardware{
		sensor: mpu6050.New(bus, cfg.Sensor.Address, log.Named("mpu6050")),
		out:    board,
		close: func() error {
			return errors.Join(board.Close(), embd.CloseI2C())
		},
	}, nil
}

// openSimulation builds the synthetic sensor and logged outputs.
func openSimulation(cfg *config.Config, log *zap.SugaredLogger) *hardware {
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &hardware{
		sensor: simulation.NewAccelerometer(simulation.AccelerometerOptions{
			NoiseG:     cfg.Simulation.NoiseG,
			ShockEvery: cfg.Simulation.ShockEvery,
			ShockG:     cfg.Simulation.ShockG,
			Seed:       seed,
		}),
		out: simulation.NewOutputs(log.Named("outputs"), map[output.Pin]string{
			output.Pin(cfg.Pins.AlarmLED):  "alarm_led",
			output.Pin(cfg.Pins.Buzzer):    "buzzer",
			output.Pin(cfg.Pins.StatusLED): "status_led",
		}),
		close: func() error { return nil },
	}
}

// outputPins lists the configured output lines.
func outputPins(cfg *config.Config) []output.Pin {
	return []output.Pin{
		output.Pin(cfg.Pins.AlarmLED),
		output.Pin(cfg.Pins.Buzzer),
		output.Pin(cfg.Pins.StatusLED),
	}
}
