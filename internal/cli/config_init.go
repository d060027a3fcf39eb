package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates ~/.ecotrack/config.yaml with default values.

Set ECOTRACK_HOME to use a different directory.`,
		Example: `  # Create the configuration file
  ecotrack config init

  # Replace an existing configuration with defaults
  ecotrack config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// initGlobalConfig writes the default configuration to the global path.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	cfg := config.Default()
	cfg.SetConfigPath(filepath.Join(dir, "config.yaml"))

	// Check if config already exists and force isn't set
	if !force {
		if _, statErr := os.Stat(cfg.ConfigPath()); statErr == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(statErr) {
			return fmt.Errorf("cannot access config path %s: %w", cfg.ConfigPath(), statErr)
		}
	}

	if err = cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())

	return nil
}
