package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: ~/.ecotrack/config.yaml, any
--config overlay and ECOTRACK_* environment variables.

This includes:
- YAML syntax of the configuration file
- Allowed values for output, logging and history settings
- Air quality URL, radius, limit and timeout ranges
- Coordinate ranges, and that latitude and longitude are set together`,
		Example: `  # Validate current configuration
  ecotrack config validate

  # Show the validated settings
  ecotrack config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if err := cfg.LoadErr(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			cmd.Println("Configuration is valid")
			if verbose {
				cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
				cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
				cmd.Printf("  Logging: %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
				cmd.Printf("  History: %s at %s\n", cfg.History.Backend, cfg.HistoryPath())
				cmd.Printf("  Air quality: %s (radius %dm, timeout %s)\n",
					cfg.AirQuality.BaseURL, cfg.AirQuality.RadiusMeters, cfg.AirQuality.Timeout)
				if cfg.Location.IsSet() {
					cmd.Printf("  Location: %.4f,%.4f\n", *cfg.Location.Latitude, *cfg.Location.Longitude)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the validated settings")

	return cmd
}
