package cli

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Long: `Prints the effective value of a dotted key, after the config file,
any --config overlay and environment variables are applied.

Keys: ` + strings.Join(config.Keys(), ", "),
		Example: `  ecotrack config get history.backend
  ecotrack config get air_quality.radius_meters`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value in the config file",
		Long: `Sets a dotted key in ~/.ecotrack/config.yaml. Environment variables are
not written to the file.

An empty value clears location.latitude and location.longitude.`,
		Example: `  ecotrack config set history.backend sqlite
  ecotrack config set air_quality.api_key "$OPENAQ_API_KEY"
  ecotrack config set location.latitude 52.52`,
		Args:              cobra.ExactArgs(2), //nolint:mnd // key and value.
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewFromFile()
			if err != nil {
				return fmt.Errorf("loading config file: %w", err)
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s in %s\n", args[0], cfg.ConfigPath())
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long:  "Lists every key with its effective value. Secrets are masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := config.GetGlobalConfig().List()
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			slices.Sort(keys)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			for _, k := range keys {
				fmt.Fprintf(tw, "%s\t%s\n", k, values[k])
			}
			return tw.Flush()
		},
	}
}

// NewConfigPathCmd creates the config path command.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration and history file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			fmt.Fprintf(cmd.OutOrStdout(), "config:  %s\n", cfg.ConfigPath())
			fmt.Fprintf(cmd.OutOrStdout(), "history: %s (%s)\n", cfg.HistoryPath(), cfg.History.Backend)
			return nil
		},
	}
}

func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}
