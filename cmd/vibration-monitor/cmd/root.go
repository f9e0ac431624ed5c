package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/vibration-alarm/internal/config"
	"github.com/oshokin/vibration-alarm/internal/logger"
	"github.com/oshokin/vibration-alarm/internal/service/monitor"
	"github.com/oshokin/vibration-alarm/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string
	// driver overrides the configured hardware driver.
	driver string
	// threshold overrides the configured alarm threshold.
	threshold float64
	// skipInstanceCheck disables the running instance check.
	skipInstanceCheck bool

	// rootCmd represents the base command for running the vibration monitor.
	rootCmd = &cobra.Command{
		Use:   "vibration-monitor",
		Short: "Watch an MPU6050 accelerometer and raise an alarm on strong vibrations.",
		Long: `Calibrates the accelerometer while it rests, then samples it continuously.

When the vibration intensity (|acceleration| - 1g) exceeds the threshold, the
alarm LED lights up and the buzzer beeps; both clear once the alarm duration
has passed. Readings are printed on a fixed cadence.

Use --driver simulation to run without the sensor board.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()
			defer logger.Sync()

			options := &monitor.Options{
				ConfigPath:        configPath,
				LogLevel:          logLevel,
				Driver:            driver,
				Threshold:         threshold,
				SkipInstanceCheck: skipInstanceCheck,
			}

			return monitor.Run(ctx, options)
		},
	}
)

// Execute runs the vibration-monitor CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(newConfigCommand())

	if err := rootCmd.Execute(); err != nil {
		logger.Errorf(context.Background(), "vibration-monitor: %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&logLevel, "log-level", "", "log level override: debug, info, warn, error")
	flags.StringVar(&driver, "driver", "", "hardware driver override: rpi or simulation")
	flags.Float64Var(&threshold, "threshold", 0, "alarm threshold override in g")
	flags.BoolVar(&skipInstanceCheck, "skip-instance-check", false, "allow several monitors on this host")

	_ = flags.MarkHidden("skip-instance-check")
}
