package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/oshokin/vibration-alarm/internal/config"
	"github.com/oshokin/vibration-alarm/internal/domain/alarm"
	"github.com/oshokin/vibration-alarm/internal/domain/output"
	"github.com/oshokin/vibration-alarm/internal/domain/vibration"
	"github.com/oshokin/vibration-alarm/internal/logger"
	"github.com/oshokin/vibration-alarm/internal/service/calibrator"
	"github.com/oshokin/vibration-alarm/internal/service/common"
)

// Options controls the vibration-monitor process.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// LogLevel overrides the configured log level when set.
	LogLevel string
	// Driver overrides the configured hardware driver when set.
	Driver string
	// Threshold overrides the configured alarm threshold when non-zero.
	Threshold float64
	// SkipInstanceCheck allows several monitors on one host.
	SkipInstanceCheck bool
}

// separator closes the startup banner.
const separator = "----------------------------------------"

// Run loads settings, opens the hardware and monitors until ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name and a session ID for tracking.
	ctx = logger.WithName(ctx, "vibration-monitor")
	ctx = logger.WithKV(ctx, "session", uuid.NewString())

	cfg, err := loadSettings(ctx, opts)
	if err != nil {
		return err
	}

	if !opts.SkipInstanceCheck {
		if err = common.EnsureSingleInstance(); err != nil {
			return fmt.Errorf("check running instances: %w", err)
		}
	}

	hw, err := openHardware(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s hardware: %w", cfg.Driver, err)
	}

	defer func() {
		if closeErr := hw.close(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to release hardware", "error", closeErr)
		}
	}()

	return run(ctx, cfg, hw, SystemClock{})
}

// loadSettings reads the config file and applies command line overrides.
// A missing file is not an error: the factory settings are used instead.
func loadSettings(ctx context.Context, opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)

	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		logger.WarnKV(ctx, "Settings file not found, using defaults", "path", opts.ConfigPath)

		cfg = config.Default()
	default:
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if opts.Driver != "" {
		cfg.Driver = opts.Driver
	}

	if opts.Threshold != 0 {
		cfg.Threshold = opts.Threshold
	}

	if err = config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)

	return cfg, nil
}

// run is the startup sequence followed by the monitoring loop.
// A sensor that stops answering before monitoring starts (probe, range
// setup or calibration) puts the status LED into fault blinking until ctx
// ends; the error is returned afterwards.
//
//nolint:funlen // The sequence reads top to bottom like the operator log.
func run(ctx context.Context, cfg *config.Config, hw *hardware, clock Clock) error {
	statusPin := output.Pin(cfg.Pins.StatusLED)

	logger.Info(ctx, "Sistema di Rilevamento Vibrazioni - Avvio...")
	logger.Info(ctx, "Inizializzazione MPU6050...")

	if err := hw.sensor.Probe(); err != nil {
		logger.Error(ctx, "Errore: Impossibile connettersi al MPU6050!")

		return sensorFault(ctx, hw, statusPin, clock, fmt.Errorf("probe sensor: %w", err))
	}

	logger.Info(ctx, "Connessione MPU6050 riuscita!")

	hw.out.Set(statusPin, output.On)
	defer hw.out.Set(statusPin, output.Off)

	if err := hw.sensor.Configure(cfg.Sensor.FullScale); err != nil {
		err = fmt.Errorf("configure sensor: %w", err)
		if errors.Is(err, vibration.ErrSensorUnavailable) {
			return sensorFault(ctx, hw, statusPin, clock, err)
		}

		return err
	}

	logger.Info(ctx, "Calibrazione in corso... Mantenere il sensore fermo!")

	offset, err := calibrator.Calibrate(ctx, hw.sensor, calibrator.Options{
		Count:       cfg.CalibrationSamples,
		Delay:       cfg.CalibrationSampleDelay,
		ScaleFactor: cfg.AccelScaleFactor,
		Sleeper:     clock,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Info(ctx, "Calibration interrupted, shutting down")

			return nil
		}

		err = fmt.Errorf("calibrate: %w", err)
		if errors.Is(err, vibration.ErrSensorUnavailable) {
			return sensorFault(ctx, hw, statusPin, clock, err)
		}

		return err
	}

	logger.Info(ctx, "Calibrazione completata!")
	logger.Infof(ctx, "Offset X: %.2f", offset.X)
	logger.Infof(ctx, "Offset Y: %.2f", offset.Y)
	logger.Infof(ctx, "Offset Z: %.2f", offset.Z)

	machine := alarm.NewMachine(alarm.Options{
		Threshold: cfg.Threshold,
		Duration:  cfg.AlarmDuration,
		Pins: alarm.Pins{
			Indicator: output.Pin(cfg.Pins.AlarmLED),
			Buzzer:    output.Pin(cfg.Pins.Buzzer),
		},
		Pattern: alarm.Pattern{
			Beeps: cfg.Buzzer.Beeps,
			On:    cfg.Buzzer.BeepOn,
			Off:   cfg.Buzzer.BeepOff,
		},
	}, hw.out)

	engine := NewEngine(EngineOptions{
		Offset:          offset,
		ScaleFactor:     cfg.AccelScaleFactor,
		CycleDelay:      cfg.CycleDelay,
		ReportInterval:  cfg.ReportInterval,
		MaxReadFailures: cfg.MaxReadFailures,
	}, hw.sensor, machine, clock)

	logger.Info(ctx, "Sistema pronto per il rilevamento vibrazioni!")
	logger.Infof(ctx, "Soglia vibrazione impostata a: %.2f g", cfg.Threshold)
	logger.Info(ctx, separator)

	runErr := engine.Run(ctx)

	snap := engine.Snapshot()
	logger.InfoKV(ctx, "Monitoring stopped",
		"cycles", snap.Cycle,
		"activations", snap.Alarm.Activations,
		"reports", snap.Reports,
		"read_failures", snap.ReadFailures,
	)

	if runErr != nil {
		return fmt.Errorf("monitor: %w", runErr)
	}

	return nil
}

// sensorFault blinks the status LED until ctx ends and returns err.
func sensorFault(ctx context.Context, hw *hardware, statusPin output.Pin, clock Clock, err error) error {
	logger.ErrorKV(ctx, "Sensor unavailable, entering fault mode", "error", err)

	Fault(ctx, hw.out, statusPin, clock, faultBlinkPeriod)

	return err
}
