package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ecotrack/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the ecotrack CLI.
// It wires up configuration, logging and tracing before any subcommand runs.
func NewRootCmd(ver string) *cobra.Command {
	var session *logSession

	cmd := &cobra.Command{
		Use:     "ecotrack",
		Short:   "Personal carbon footprint and air quality tracker",
		Long:    "EcoTrack: estimate your annual carbon footprint, track it over time and check local air quality",
		Version: ver,
		Example: rootCmdExample,
		// Errors are printed by main with the right exit code.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			session = setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, session)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().Bool("no-color", false, "disable colors and box drawing")
	cmd.PersistentFlags().String("config", "", "additional config file merged over ~/.ecotrack/config.yaml")
	cmd.AddCommand(
		NewFootprintCmd(),
		NewAQICmd(),
		NewHistoryCmd(),
		NewTrendCmd(),
		NewDashboardCmd(),
		newConfigCmd(),
		NewSetupCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Estimate a footprint and save it to history
  ecotrack footprint --car-km 8000 --air-hours 12 --kwh 250 --waste-kg 20 --diet medium --save

  # Check air quality near a location
  ecotrack aqi --lat 52.52 --lon 13.405

  # Show progress toward the 2 t/yr goal
  ecotrack trend

  # Browse saved calculations interactively
  ecotrack history --tui

  # Set configuration values
  ecotrack config set history.backend sqlite`

// lenientConfigAnnotation marks commands that run with an invalid
// configuration so the user can inspect and repair it.
const lenientConfigAnnotation = "ecotrack/lenient-config"

// loadConfig builds the global configuration, merging --config if given.
// A broken global config file is reported but not fatal.
func loadConfig(cmd *cobra.Command) error {
	overlay, _ := cmd.Flags().GetString("config")

	cfg, err := config.NewWithOverlay(overlay)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if loadErr := cfg.LoadErr(); loadErr != nil {
		cmd.PrintErrf("Warning: %v (using defaults)\n", loadErr)
	}
	if err = cfg.Validate(); err != nil {
		if !isLenient(cmd) {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cmd.PrintErrf("Warning: invalid configuration: %v\n", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// isLenient reports whether cmd or one of its parents carries
// lenientConfigAnnotation.
func isLenient(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[lenientConfigAnnotation]; ok {
			return true
		}
	}
	return false
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Configuration management commands",
		Annotations: map[string]string{lenientConfigAnnotation: "true"},
	}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(), NewConfigPathCmd(),
	)
	return cmd
}
