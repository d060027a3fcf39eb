package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/history"
	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/internal/tui"
)

// footprintFlags holds the raw, unsanitized flag values.
type footprintFlags struct {
	raw    footprint.RawInputs
	save   bool
	output string
}

// footprintReport is the JSON shape of one calculation.
type footprintReport struct {
	ID              string                  `json:"id,omitempty"`
	Inputs          footprint.Inputs        `json:"inputs"`
	Results         footprint.Result        `json:"results"`
	Breakdown       []footprint.Category    `json:"breakdown"`
	Comparison      footprint.Comparison    `json:"comparison"`
	Equivalencies   []footprint.Equivalency `json:"equivalencies,omitempty"`
	Recommendations []string                `json:"recommendations"`
}

// NewFootprintCmd creates the footprint command, which estimates annual
// emissions from activity amounts.
func NewFootprintCmd() *cobra.Command {
	var flags footprintFlags

	cmd := &cobra.Command{
		Use:   "footprint",
		Short: "Estimate your annual carbon footprint",
		Long: `Estimates annual emissions in tonnes CO2e from car travel, flights,
household electricity, waste and diet, compares the total with the global
average of 4.7 t/yr and suggests where to cut.

Amounts that are empty, negative or not numbers count as zero. An unknown
diet counts as medium.`,
		Example: `  # Typical commuter
  ecotrack footprint --car-km 8000 --air-hours 12 --kwh 250 --waste-kg 20 --diet medium

  # Save the calculation to history
  ecotrack footprint --car-km 3000 --kwh 180 --diet vegetarian --save

  # Machine-readable output
  ecotrack footprint --car-km 8000 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFootprint(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.raw.CarKmPerYear, "car-km", "", "kilometres driven per year")
	cmd.Flags().StringVar(&flags.raw.AirHoursPerYear, "air-hours", "", "hours flown per year")
	cmd.Flags().StringVar(&flags.raw.ElectricityKWhPerMonth, "kwh", "", "household electricity in kWh per month")
	cmd.Flags().StringVar(&flags.raw.WasteKgPerMonth, "waste-kg", "", "waste in kg per month")
	cmd.Flags().StringVar(&flags.raw.Diet, "diet", string(footprint.DefaultDiet),
		"diet: "+joinDiets())
	cmd.Flags().BoolVar(&flags.save, "save", false, "append the calculation to history")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output format: table, json (default from config)")

	return cmd
}

func joinDiets() string {
	diets := footprint.Diets()
	names := make([]string, len(diets))
	for i, d := range diets {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

func runFootprint(cmd *cobra.Command, flags footprintFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := resolveOutputFormat(flags.output)
	if err != nil {
		return err
	}

	inputs := footprint.SanitizeInputs(flags.raw)
	warnSanitized(cmd, flags.raw, inputs)

	result := footprint.Compute(inputs)
	report := footprintReport{
		Inputs:          inputs,
		Results:         result,
		Breakdown:       footprint.Breakdown(result),
		Comparison:      footprint.CompareToGlobalAverage(result),
		Equivalencies:   footprint.Equivalencies(result),
		Recommendations: footprint.Recommend(result, inputs.Diet),
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "footprint").
		Float64("total", result.Total).
		Str("diet", string(inputs.Diet)).
		Msg("footprint computed")

	if flags.save {
		entry := history.NewEntry(inputs, result, time.Now())
		store, closeFn, openErr := openHistoryStore(ctx)
		if openErr != nil {
			return openErr
		}
		defer closeStore(ctx, closeFn)
		if appendErr := store.Append(ctx, entry); appendErr != nil {
			return fmt.Errorf("saving calculation: %w", appendErr)
		}
		report.ID = entry.ID
		log.Info().Ctx(ctx).Str("component", "footprint").Str("entry_id", entry.ID).Msg("calculation saved")
	}

	switch format {
	case OutputJSON:
		return writeJSON(cmd.OutOrStdout(), report)
	case OutputNDJSON:
		return writeNDJSON(cmd.OutOrStdout(), []footprintReport{report})
	case OutputTable:
		if styledOutput(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderFootprintSummary(result, report.Recommendations, terminalWidth()))
		} else if renderErr := renderFootprintTable(cmd.OutOrStdout(), report); renderErr != nil {
			return renderErr
		}
		if report.ID != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\nSaved to history (%s)\n", report.ID)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// warnSanitized tells the user which typed values were replaced.
func warnSanitized(cmd *cobra.Command, raw footprint.RawInputs, in footprint.Inputs) {
	checks := []struct {
		flag  string
		raw   string
		value float64
	}{
		{"--car-km", raw.CarKmPerYear, in.CarKmPerYear},
		{"--air-hours", raw.AirHoursPerYear, in.AirHoursPerYear},
		{"--kwh", raw.ElectricityKWhPerMonth, in.ElectricityKWhPerMonth},
		{"--waste-kg", raw.WasteKgPerMonth, in.WasteKgPerMonth},
	}
	for _, c := range checks {
		trimmed := strings.TrimSpace(c.raw)
		if trimmed != "" && c.value == 0 && !isZeroLiteral(trimmed) {
			cmd.PrintErrf("Warning: %s %q is not a non-negative number, using 0\n", c.flag, c.raw)
		}
	}
	if raw.Diet != "" && !footprint.Diet(strings.ToLower(strings.TrimSpace(raw.Diet))).Valid() {
		cmd.PrintErrf("Warning: unknown diet %q, using %s\n", raw.Diet, footprint.DefaultDiet)
	}
}

func isZeroLiteral(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f == 0
}

func renderFootprintTable(w io.Writer, report footprintReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(tw, "CATEGORY\tTONNES CO2E/YR\tSHARE")
	fmt.Fprintln(tw, "--------\t--------------\t-----")
	for _, c := range report.Breakdown {
		share := "-"
		if report.Results.Total > 0 {
			share = fmt.Sprintf("%.0f%%", c.Value/report.Results.Total*100) //nolint:mnd // Percentage.
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, footprint.FormatValue(c.Value), share)
	}
	fmt.Fprintf(tw, "Total\t%s\t\n", footprint.FormatValue(report.Results.Total))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", report.Comparison.Summary())
	if len(report.Equivalencies) > 0 {
		parts := make([]string, len(report.Equivalencies))
		for i, eq := range report.Equivalencies {
			parts[i] = eq.FormattedValue + " " + eq.Label
		}
		fmt.Fprintf(w, "Equivalent to %s.\n", strings.Join(parts, " or "))
	}

	fmt.Fprintln(w, "\nRecommendations:")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(w, "  - %s\n", rec)
	}
	return nil
}
