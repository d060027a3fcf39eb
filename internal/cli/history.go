package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/history"
	"github.com/rshade/ecotrack/internal/tui"
)

// historyDateLayout is the timestamp format of history and trend tables.
const historyDateLayout = "2006-01-02 15:04"

type historyFlags struct {
	limit       int
	interactive bool
	output      string
}

// NewHistoryCmd creates the history command, which lists saved calculations.
func NewHistoryCmd() *cobra.Command {
	var flags historyFlags

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved footprint calculations",
		Long: `Lists calculations saved with 'ecotrack footprint --save', oldest first.

A history file that cannot be read is treated as empty. It is moved aside
the next time a calculation is saved.`,
		Example: `  # All saved calculations
  ecotrack history

  # The five most recent, as NDJSON
  ecotrack history --limit 5 --output ndjson

  # Browse interactively
  ecotrack history --tui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.limit, "limit", 0, "show only the N most recent entries (0 for all)")
	cmd.Flags().BoolVar(&flags.interactive, "tui", false, "browse entries in an interactive table")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output format: table, json, ndjson (default from config)")

	return cmd
}

func runHistory(cmd *cobra.Command, flags historyFlags) error {
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

	if flags.interactive && outputMode(cmd, true) == tui.OutputModeInteractive {
		return runHistoryTUI(ctx, store, flags.limit)
	}

	entries := lastN(store.Load(ctx), flags.limit)

	switch format {
	case OutputJSON:
		return writeJSON(cmd.OutOrStdout(), entries)
	case OutputNDJSON:
		return writeNDJSON(cmd.OutOrStdout(), entries)
	case OutputTable:
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved calculations. Run 'ecotrack footprint --save' to add one.")
			return nil
		}
		return renderHistoryTable(cmd.OutOrStdout(), entries)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func runHistoryTUI(ctx context.Context, store history.Store, limit int) error {
	model := tui.NewHistoryModelWithLoading(ctx, func(ctx context.Context) ([]history.Entry, error) {
		return lastN(store.Load(ctx), limit), nil
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running history browser: %w", err)
	}
	return model.Err()
}

// lastN returns the n most recent entries, or all of them when n <= 0.
func lastN(entries []history.Entry, n int) []history.Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}

func renderHistoryTable(w io.Writer, entries []history.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(tw, "DATE\tID\tTOTAL\tTRANSPORT\tENERGY\tDIET\tWASTE")
	fmt.Fprintln(tw, "----\t--\t-----\t---------\t------\t----\t-----")
	for _, e := range entries {
		r := e.Results
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format(historyDateLayout),
			e.ID,
			footprint.FormatValue(r.Total),
			footprint.FormatValue(r.Transport()),
			footprint.FormatValue(r.Energy),
			footprint.FormatValue(r.Diet),
			footprint.FormatValue(r.Waste),
		)
	}
	return tw.Flush()
}
