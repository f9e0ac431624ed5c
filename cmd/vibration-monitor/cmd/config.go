package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/vibration-alarm/internal/config"
)

// newConfigCommand builds the `config` command group.
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the monitor configuration file.",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a file.",
		Long:  "Write every setting with its default value, ready to be edited. The path defaults to " + config.DefaultConfigFilename + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigFilename
			if len(args) > 0 {
				path = args[0]
			}

			if err := config.Save(path, config.Default()); err != nil {
				return fmt.Errorf("save default settings: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default settings written to %s\n", path)

			return nil
		},
	})

	return configCmd
}
