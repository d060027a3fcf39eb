package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/trend"
	"github.com/rshade/ecotrack/internal/tui"
)

// ExitCodeGoalMissed is the default exit code of --exit-on-goal-miss.
const ExitCodeGoalMissed = 2

// GoalExitError carries the exit code for a missed footprint goal.
type GoalExitError struct {
	ExitCode int
	Reason   string
}

func (e *GoalExitError) Error() string {
	return e.Reason
}

type trendFlags struct {
	exitOnMiss bool
	exitCode   int
	output     string
}

// trendReport is the JSON shape of the trend command.
type trendReport struct {
	Goal           float64       `json:"goal"`
	Entries        int           `json:"entries"`
	Sufficient     bool          `json:"sufficient"`
	Latest         *float64      `json:"latest"`
	PercentChange  *float64      `json:"percent_change"`
	DistanceToGoal *float64      `json:"distance_to_goal"`
	GoalMet        bool          `json:"goal_met"`
	Series         []trend.Point `json:"series"`
}

// NewTrendCmd creates the trend command, which summarizes saved history
// against the 2 t/yr goal.
func NewTrendCmd() *cobra.Command {
	var flags trendFlags

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show progress toward the 2 t/yr goal",
		Long: `Summarizes saved calculations: the change from the first to the latest
total, the distance to the 2 t/yr goal and the per-category series.

At least two saved calculations are needed for a percent change.`,
		Example: `  # Summary and series
  ecotrack trend

  # Fail a script when the latest footprint is above the goal
  ecotrack trend --exit-on-goal-miss --exit-code 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrend(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.exitOnMiss, "exit-on-goal-miss", false,
		"exit non-zero when the latest total is above the goal")
	cmd.Flags().IntVar(&flags.exitCode, "exit-code", ExitCodeGoalMissed, "exit code used by --exit-on-goal-miss")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output format: table, json, ndjson (default from config)")

	return cmd
}

func runTrend(cmd *cobra.Command, flags trendFlags) error {
	ctx := cmd.Context()

	format, err := resolveOutputFormat(flags.output)
	if err != nil {
		return err
	}

	store, closeFn, err := openHistoryStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(ctx, closeFn)

	entries := store.Load(ctx)
	stats := trend.Derive(entries)

	switch format {
	case OutputJSON:
		err = writeJSON(cmd.OutOrStdout(), newTrendReport(stats))
	case OutputNDJSON:
		err = writeNDJSON(cmd.OutOrStdout(), stats.Series)
	case OutputTable:
		if styledOutput(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTrend(stats, terminalWidth()))
		} else {
			err = renderTrendTable(cmd.OutOrStdout(), stats)
		}
	default:
		err = fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return err
	}

	return checkGoalExit(flags, stats)
}

func newTrendReport(stats trend.Stats) trendReport {
	return trendReport{
		Goal:           trend.Goal,
		Entries:        len(stats.Series),
		Sufficient:     stats.Sufficient,
		Latest:         stats.Latest,
		PercentChange:  stats.PercentChange,
		DistanceToGoal: stats.DistanceToGoal,
		GoalMet:        stats.GoalMet(),
		Series:         stats.Series,
	}
}

// checkGoalExit returns a GoalExitError when --exit-on-goal-miss is set and
// the latest total is above the goal. Empty history never fails.
func checkGoalExit(flags trendFlags, stats trend.Stats) error {
	if !flags.exitOnMiss || stats.DistanceToGoal == nil || stats.GoalMet() {
		return nil
	}
	return &GoalExitError{
		ExitCode: flags.exitCode,
		Reason: fmt.Sprintf("latest footprint %s t is %s t above the %g t goal",
			footprint.FormatValue(*stats.Latest), footprint.FormatValue(*stats.DistanceToGoal), trend.Goal),
	}
}

func renderTrendTable(w io.Writer, stats trend.Stats) error {
	if len(stats.Series) == 0 {
		_, err := fmt.Fprintln(w, "No saved calculations. Run 'ecotrack footprint --save' to add one.")
		return err
	}

	summary := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(summary, "Latest:\t%s t/yr\n", footprint.FormatValue(*stats.Latest))
	if stats.PercentChange != nil {
		fmt.Fprintf(summary, "Change:\t%+.1f%%\n", *stats.PercentChange)
	} else {
		fmt.Fprintln(summary, "Change:\t-")
	}
	if stats.GoalMet() {
		fmt.Fprintf(summary, "Goal (%g t):\tMet\n", trend.Goal)
	} else {
		fmt.Fprintf(summary, "Goal (%g t):\t%s t to go\n", trend.Goal, footprint.FormatValue(*stats.DistanceToGoal))
	}
	if err := summary.Flush(); err != nil {
		return err
	}
	if !stats.Sufficient {
		fmt.Fprintln(w, tui.InsufficientHistoryMessage)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTOTAL\tTRANSPORT\tENERGY\tDIET\tWASTE")
	for _, p := range stats.Series {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			p.Date.Local().Format(historyDateLayout), p.Total, p.Transport, p.Energy, p.Diet, p.Waste)
	}
	return tw.Flush()
}
