package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/history"
	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/pkg/version"
)

// StepStatus represents the outcome of a single setup step.
type StepStatus int

const (
	// StepSuccess indicates the step completed successfully.
	StepSuccess StepStatus = iota
	// StepWarning indicates the step completed with a non-fatal issue.
	StepWarning
	// StepSkipped indicates the step was intentionally skipped via flag.
	StepSkipped
	// StepError indicates the step failed.
	StepError
)

// StepResult describes the outcome of executing a single setup step.
type StepResult struct {
	Name     string
	Status   StepStatus
	Message  string
	Critical bool
	Err      error
}

// SetupOptions holds the configuration for the setup command, derived from CLI flags.
type SetupOptions struct {
	SkipHistoryCheck bool
	NonInteractive   bool
}

// SetupResult is the aggregate outcome of all setup steps.
type SetupResult struct {
	Steps       []StepResult
	HasErrors   bool
	HasWarnings bool
}

// dirPermBase is the permission mode for the base and log directories.
const dirPermBase = 0o700

// formatStatus returns a status marker appropriate for the output mode.
func formatStatus(status StepStatus, nonInteractive bool) string {
	if nonInteractive {
		switch status {
		case StepSuccess:
			return "[OK]"
		case StepWarning:
			return "[WARN]"
		case StepSkipped:
			return "[SKIP]"
		case StepError:
			return "[ERR]"
		default:
			return "[??]"
		}
	}

	switch status {
	case StepSuccess:
		return "\u2713" // ✓
	case StepWarning:
		return "!"
	case StepSkipped:
		return "-"
	case StepError:
		return "\u2717" // ✗
	default:
		return "?"
	}
}

// NewSetupCmd creates the top-level setup command that prepares the EcoTrack
// home directory.
func NewSetupCmd() *cobra.Command {
	var opts SetupOptions

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Prepare the EcoTrack home directory",
		Long: `Creates the EcoTrack directories, writes a default configuration and
checks that saved history can be read.

It is safe to run more than once. An existing configuration is kept.`,
		Example: `  # Full setup
  ecotrack setup

  # CI setup (plain status markers)
  ecotrack setup --non-interactive

  # Directories and config only
  ecotrack setup --skip-history-check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NonInteractive, "non-interactive", false,
		"Disable TTY-dependent output (status symbols, color)")
	cmd.Flags().BoolVar(&opts.SkipHistoryCheck, "skip-history-check", false,
		"Skip opening the history store")

	return cmd
}

// runSetup runs every step in order and keeps going after failures. It
// returns an error only if a critical step fails.
func runSetup(cmd *cobra.Command, opts *SetupOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := logging.FromContext(ctx)

	// Auto-detect non-interactive mode when stdin is not a TTY
	if !opts.NonInteractive && !isTerminal(os.Stdin) {
		opts.NonInteractive = true
	}

	result := &SetupResult{}
	record := func(steps ...StepResult) {
		for _, s := range steps {
			printStep(cmd, s, opts.NonInteractive)
			result.Steps = append(result.Steps, s)
		}
	}

	record(stepDisplayVersion())
	record(stepCreateDirectories()...)
	record(stepInitConfig())

	if opts.SkipHistoryCheck {
		record(StepResult{
			Name:    "History check",
			Status:  StepSkipped,
			Message: "Skipped history check",
		})
	} else {
		record(stepCheckHistory(ctx))
	}
	record(stepCheckLocation())

	for _, s := range result.Steps {
		if s.Status == StepError && s.Critical {
			result.HasErrors = true
		}
		if s.Status == StepWarning {
			result.HasWarnings = true
		}
	}

	printSummary(cmd, result)

	if result.HasErrors {
		log.Error().
			Ctx(ctx).
			Str("component", "setup").
			Msg("setup completed with critical errors")
		return errors.New("setup failed: one or more critical steps failed")
	}

	return nil
}

// printStep outputs a single step's status line.
func printStep(cmd *cobra.Command, step StepResult, nonInteractive bool) {
	marker := formatStatus(step.Status, nonInteractive)
	cmd.Printf("%s %s\n", marker, step.Message)
}

// printSummary outputs the final completion message.
func printSummary(cmd *cobra.Command, result *SetupResult) {
	cmd.Println()
	if result.HasErrors {
		cmd.Println("Setup completed with errors. Review the messages above for remediation steps.")
	} else {
		cmd.Println("Setup complete! Run 'ecotrack footprint --help' to get started.")
	}
}

// stepDisplayVersion reports the EcoTrack version and Go runtime.
func stepDisplayVersion() StepResult {
	return StepResult{
		Name:    "Version display",
		Status:  StepSuccess,
		Message: fmt.Sprintf("EcoTrack v%s (%s)", version.GetVersion(), runtime.Version()),
	}
}

// stepCreateDirectories creates the home and log directories.
// Returns one StepResult per directory.
func stepCreateDirectories() []StepResult {
	baseDir, err := config.GetConfigDir()
	if err != nil {
		return []StepResult{{
			Name:     "Directory creation",
			Status:   StepError,
			Message:  fmt.Sprintf("Cannot resolve home directory: %v\n  Try: export ECOTRACK_HOME=/path/to/dir", err),
			Critical: true,
			Err:      err,
		}}
	}

	var results []StepResult
	for _, dir := range []string{baseDir, filepath.Join(baseDir, "logs")} {
		info, statErr := os.Stat(dir)
		if statErr == nil && info.IsDir() {
			results = append(results, StepResult{
				Name:     "Directory creation",
				Status:   StepSuccess,
				Message:  fmt.Sprintf("Directory exists: %s", dir),
				Critical: true,
			})
			continue
		}

		if mkErr := os.MkdirAll(dir, dirPermBase); mkErr != nil {
			results = append(results, StepResult{
				Name:   "Directory creation",
				Status: StepError,
				Message: fmt.Sprintf(
					"Failed to create %s: %v\n  Try: export ECOTRACK_HOME=/path/to/writable/directory",
					dir,
					mkErr,
				),
				Critical: true,
				Err:      mkErr,
			})
			continue
		}

		results = append(results, StepResult{
			Name:     "Directory creation",
			Status:   StepSuccess,
			Message:  fmt.Sprintf("Created %s", dir),
			Critical: true,
		})
	}

	return results
}

// stepInitConfig writes the default config file if one does not exist.
func stepInitConfig() StepResult {
	baseDir, err := config.GetConfigDir()
	if err != nil {
		return StepResult{
			Name:     "Config initialization",
			Status:   StepError,
			Message:  fmt.Sprintf("Failed to initialize config: %v", err),
			Critical: true,
			Err:      err,
		}
	}
	configPath := filepath.Join(baseDir, "config.yaml")

	if _, statErr := os.Stat(configPath); statErr == nil {
		return StepResult{
			Name:     "Config initialization",
			Status:   StepSuccess,
			Message:  fmt.Sprintf("Config already exists (%s)", configPath),
			Critical: true,
		}
	}

	cfg := config.Default()
	cfg.SetConfigPath(configPath)
	if err = cfg.Save(); err != nil {
		return StepResult{
			Name:     "Config initialization",
			Status:   StepError,
			Message:  fmt.Sprintf("Failed to initialize config: %v", err),
			Critical: true,
			Err:      err,
		}
	}

	return StepResult{
		Name:     "Config initialization",
		Status:   StepSuccess,
		Message:  fmt.Sprintf("Initialized config (%s)", configPath),
		Critical: true,
	}
}

// strictReader is implemented by stores that can report unreadable data
// instead of hiding it.
type strictReader interface {
	ReadAll(ctx context.Context) ([]history.Entry, error)
}

// stepCheckHistory opens the configured history store and counts entries.
// An unreadable store is a warning: commands treat it as empty.
func stepCheckHistory(ctx context.Context) StepResult {
	cfg := config.GetGlobalConfig()
	path := cfg.HistoryPath()

	store, closeFn, err := history.Open(ctx, cfg.History.Backend, path)
	if err != nil {
		return StepResult{
			Name:    "History check",
			Status:  StepError,
			Message: fmt.Sprintf("Cannot open %s history at %s: %v", cfg.History.Backend, path, err),
			Err:     err,
		}
	}
	defer closeStore(ctx, closeFn)

	var entries []history.Entry
	if sr, ok := store.(strictReader); ok {
		entries, err = sr.ReadAll(ctx)
		if err != nil {
			return StepResult{
				Name:   "History check",
				Status: StepWarning,
				Message: fmt.Sprintf(
					"History at %s is unreadable and will be moved aside on the next save: %v", path, err),
				Err: err,
			}
		}
	} else {
		entries = store.Load(ctx)
	}

	return StepResult{
		Name:    "History check",
		Status:  StepSuccess,
		Message: fmt.Sprintf("History ready: %d saved calculations (%s, %s)", len(entries), cfg.History.Backend, path),
	}
}

// stepCheckLocation reports whether a default location is configured.
func stepCheckLocation() StepResult {
	cfg := config.GetGlobalConfig()
	if !cfg.Location.IsSet() {
		return StepResult{
			Name:   "Location",
			Status: StepWarning,
			Message: "No default location. 'ecotrack aqi' needs --lat/--lon, or run:\n" +
				"  ecotrack config set location.latitude <lat>\n" +
				"  ecotrack config set location.longitude <lon>",
		}
	}
	return StepResult{
		Name:    "Location",
		Status:  StepSuccess,
		Message: fmt.Sprintf("Default location %.4f,%.4f", *cfg.Location.Latitude, *cfg.Location.Longitude),
	}
}
