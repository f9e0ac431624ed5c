package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/vibration-alarm/internal/domain/vibration"
	"github.com/oshokin/vibration-alarm/internal/logger"
)

// Config holds every tunable of the vibration monitor.
// It is read once at startup and never changed while the monitor runs.
type Config struct {
	// Threshold is the vibration intensity, in g, above which the alarm fires.
	Threshold float64 `yaml:"threshold"`
	// AlarmDuration is how long the alarm stays on after it fires.
	AlarmDuration time.Duration `yaml:"alarm_duration"`
	// CalibrationSamples is the number of samples averaged at startup.
	CalibrationSamples int `yaml:"calibration_samples"`
	// CalibrationSampleDelay is the pause after each calibration sample.
	CalibrationSampleDelay time.Duration `yaml:"calibration_sample_delay"`
	// ReportInterval is the cadence of the reading report lines.
	ReportInterval time.Duration `yaml:"report_interval"`
	// CycleDelay is the pause at the end of every monitoring cycle.
	CycleDelay time.Duration `yaml:"cycle_delay"`
	// AccelScaleFactor is the sensor sensitivity in LSB per g.
	// Zero derives it from Sensor.FullScale; an explicit value must stay
	// within the datasheet tolerance of that range.
	AccelScaleFactor float64 `yaml:"accel_scale_factor"`
	// MaxReadFailures stops monitoring after this many consecutive failed reads.
	MaxReadFailures int `yaml:"max_read_failures"`
	// LogLevel is the minimum level of the process logger.
	LogLevel string `yaml:"log_level"`
	// HardwareLogLevel is the minimum level of the bus and pin traces.
	HardwareLogLevel string `yaml:"hardware_log_level"`
	// Driver selects the hardware backend: "rpi" or "simulation".
	Driver string `yaml:"driver"`
	// Sensor describes the accelerometer on the I2C bus.
	Sensor Sensor `yaml:"sensor"`
	// Pins maps the output lines to GPIO numbers.
	Pins Pins `yaml:"pins"`
	// Buzzer is the beep pattern played when the alarm fires.
	Buzzer Buzzer `yaml:"buzzer"`
	// Simulation tunes the synthetic sensor of the simulation driver.
	Simulation Simulation `yaml:"simulation"`
}

// Sensor describes the MPU6050 connection.
type Sensor struct {
	// I2CBus is the bus number (1 on Raspberry Pi models since rev 2).
	I2CBus byte `yaml:"i2c_bus"`
	// Address is the 7-bit device address.
	Address byte `yaml:"address"`
	// FullScale is the accelerometer range in ±g: 2, 4, 8 or 16.
	FullScale int `yaml:"full_scale_g"`
}

// Pins are BCM GPIO numbers (0-27) of the output lines.
type Pins struct {
	AlarmLED  int `yaml:"alarm_led"`
	Buzzer    int `yaml:"buzzer"`
	StatusLED int `yaml:"status_led"`
}

// Buzzer is the activation beep pattern.
type Buzzer struct {
	Beeps   int           `yaml:"beeps"`
	BeepOn  time.Duration `yaml:"beep_on"`
	BeepOff time.Duration `yaml:"beep_off"`
}

// Simulation tunes the synthetic accelerometer.
type Simulation struct {
	// NoiseG is the standard deviation of the per-axis noise, in g.
	NoiseG float64 `yaml:"noise_g"`
	// ShockEvery injects a shock once per this many reads.
	ShockEvery int `yaml:"shock_every"`
	// ShockG is the peak acceleration of an injected shock, in g.
	ShockG float64 `yaml:"shock_g"`
	// Seed makes the noise reproducible. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`
}

const (
	// DefaultConfigFilename is the default filename for monitor settings.
	DefaultConfigFilename = "vibration-monitor.yaml"

	// DefaultFilePermissions is the permission of saved config files.
	DefaultFilePermissions = 0o600

	// DriverRaspberryPi drives a real MPU6050 and GPIO lines.
	DriverRaspberryPi = "rpi"
	// DriverSimulation runs against a synthetic sensor and logged outputs.
	DriverSimulation = "simulation"

	defaultThreshold              = 2.0
	defaultAlarmDuration          = 3 * time.Second
	defaultCalibrationSamples     = 100
	defaultCalibrationSampleDelay = 10 * time.Millisecond
	defaultReportInterval         = 500 * time.Millisecond
	defaultCycleDelay             = 50 * time.Millisecond
	defaultMaxReadFailures        = 20
	defaultLogLevel               = "info"
	defaultI2CBus                 = 1
	defaultSensorAddress          = 0x68
	defaultFullScale              = 2
	defaultAlarmLEDPin            = 13
	defaultBuzzerPin              = 12
	defaultStatusLEDPin           = 11
	defaultBeeps                  = 3
	defaultBeepOn                 = 200 * time.Millisecond
	defaultBeepOff                = 100 * time.Millisecond
	defaultNoiseG                 = 0.01
	defaultShockEvery             = 200
	defaultShockG                 = 3.5

	// maxGPIOPin is the highest BCM line on the 40-pin header.
	maxGPIOPin = 27
	// sensitivityTolerance is the MPU6050 initial sensitivity tolerance.
	sensitivityTolerance = 0.03
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeValue is returned for negative thresholds, counts and durations.
	errNegativeValue = errors.New("value must not be negative")
	// errUnknownLevel is returned for log levels zap does not know.
	errUnknownLevel = errors.New("unknown log level")
	// errDuplicatePin is returned when two output lines share a GPIO.
	errDuplicatePin = errors.New("output pins must be distinct")
	// errPinOutOfRange is returned for pins that are not header GPIO lines.
	errPinOutOfRange = errors.New("pin is outside the GPIO range 0-27")
	// errScaleMismatch is returned when the scale factor contradicts the sensor range.
	errScaleMismatch = errors.New("scale factor does not match the sensor range")

	// ErrUnknownDriver is returned for an unsupported hardware driver name.
	ErrUnknownDriver = errors.New("unknown driver")
)

// Default returns the factory configuration.
func Default() *Config {
	cfg := new(Config)

	// Validate only fills zero values here, it cannot fail.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save validates cfg and writes it to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate rejects invalid settings and fills defaults for zero values.
//
//nolint:cyclop,funlen // One flat list of field rules reads better than helpers.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	for name, value := range map[string]float64{
		"threshold":                cfg.Threshold,
		"accel_scale_factor":       cfg.AccelScaleFactor,
		"alarm_duration":           cfg.AlarmDuration.Seconds(),
		"calibration_samples":      float64(cfg.CalibrationSamples),
		"calibration_sample_delay": cfg.CalibrationSampleDelay.Seconds(),
		"report_interval":          cfg.ReportInterval.Seconds(),
		"cycle_delay":              cfg.CycleDelay.Seconds(),
		"max_read_failures":        float64(cfg.MaxReadFailures),
		"buzzer.beeps":             float64(cfg.Buzzer.Beeps),
		"buzzer.beep_on":           cfg.Buzzer.BeepOn.Seconds(),
		"buzzer.beep_off":          cfg.Buzzer.BeepOff.Seconds(),
		"simulation.noise_g":       cfg.Simulation.NoiseG,
		"simulation.shock_every":   float64(cfg.Simulation.ShockEvery),
		"simulation.shock_g":       cfg.Simulation.ShockG,
	} {
		if value < 0 {
			return fmt.Errorf("invalid %s: %w", name, errNegativeValue)
		}
	}

	setDefault(&cfg.Threshold, defaultThreshold)
	setDefault(&cfg.AlarmDuration, defaultAlarmDuration)
	setDefault(&cfg.CalibrationSamples, defaultCalibrationSamples)
	setDefault(&cfg.CalibrationSampleDelay, defaultCalibrationSampleDelay)
	setDefault(&cfg.ReportInterval, defaultReportInterval)
	setDefault(&cfg.CycleDelay, defaultCycleDelay)
	setDefault(&cfg.MaxReadFailures, defaultMaxReadFailures)
	setDefault(&cfg.LogLevel, defaultLogLevel)
	setDefault(&cfg.HardwareLogLevel, cfg.LogLevel)
	setDefault(&cfg.Driver, DriverRaspberryPi)
	setDefault(&cfg.Sensor.I2CBus, defaultI2CBus)
	setDefault(&cfg.Sensor.Address, defaultSensorAddress)
	setDefault(&cfg.Sensor.FullScale, defaultFullScale)
	setDefault(&cfg.Pins.AlarmLED, defaultAlarmLEDPin)
	setDefault(&cfg.Pins.Buzzer, defaultBuzzerPin)
	setDefault(&cfg.Pins.StatusLED, defaultStatusLEDPin)
	setDefault(&cfg.Buzzer.Beeps, defaultBeeps)
	setDefault(&cfg.Buzzer.BeepOn, defaultBeepOn)
	setDefault(&cfg.Buzzer.BeepOff, defaultBeepOff)
	setDefault(&cfg.Simulation.NoiseG, defaultNoiseG)
	setDefault(&cfg.Simulation.ShockEvery, defaultShockEvery)
	setDefault(&cfg.Simulation.ShockG, defaultShockG)

	scale, err := vibration.ScaleForRange(cfg.Sensor.FullScale)
	if err != nil {
		return fmt.Errorf("invalid sensor.full_scale_g: %w", err)
	}

	setDefault(&cfg.AccelScaleFactor, scale)

	if math.Abs(cfg.AccelScaleFactor-scale) > scale*sensitivityTolerance {
		return fmt.Errorf("invalid accel_scale_factor %g for ±%dg, expected about %g: %w",
			cfg.AccelScaleFactor, cfg.Sensor.FullScale, scale, errScaleMismatch)
	}

	for name, level := range map[string]string{
		"log_level":          cfg.LogLevel,
		"hardware_log_level": cfg.HardwareLogLevel,
	} {
		if _, ok := logger.ParseLogLevel(level); !ok {
			return fmt.Errorf("invalid %s %q: %w", name, level, errUnknownLevel)
		}
	}

	switch cfg.Driver {
	case DriverRaspberryPi, DriverSimulation:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	for name, pin := range map[string]int{
		"pins.alarm_led":  cfg.Pins.AlarmLED,
		"pins.buzzer":     cfg.Pins.Buzzer,
		"pins.status_led": cfg.Pins.StatusLED,
	} {
		if pin < 0 || pin > maxGPIOPin {
			return fmt.Errorf("invalid %s %d: %w", name, pin, errPinOutOfRange)
		}
	}

	if cfg.Pins.AlarmLED == cfg.Pins.Buzzer ||
		cfg.Pins.AlarmLED == cfg.Pins.StatusLED ||
		cfg.Pins.Buzzer == cfg.Pins.StatusLED {
		return errDuplicatePin
	}

	return nil
}

// setDefault replaces a zero value with def.
func setDefault[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}
