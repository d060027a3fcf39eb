package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/ecotrack/internal/airquality"
	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/history"
	"github.com/rshade/ecotrack/internal/trend"
	"github.com/rshade/ecotrack/internal/tui"
)

type dashboardFlags struct {
	lat    float64
	lon    float64
	output string
}

// dashboardReport is the JSON shape of the dashboard command. AirQuality
// is nil when no location is known or the lookup failed.
type dashboardReport struct {
	Trend           trendReport        `json:"trend"`
	AirQuality      *airquality.Report `json:"air_quality,omitempty"`
	AirQualityError string             `json:"air_quality_error,omitempty"`
}

// NewDashboardCmd creates the dashboard command, which combines the trend
// summary with current air quality.
func NewDashboardCmd() *cobra.Command {
	var flags dashboardFlags

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show footprint progress and local air quality together",
		Long: `Loads saved history and looks up air quality at the same time.

An air quality failure is reported but does not fail the command. Without a
location from --lat/--lon or the configuration, air quality is skipped.`,
		Example: `  ecotrack dashboard
  ecotrack dashboard --lat 48.85 --lon 2.35 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.lat, "lat", 0, "latitude in decimal degrees")
	cmd.Flags().Float64Var(&flags.lon, "lon", 0, "longitude in decimal degrees")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output format: table, json (default from config)")
	cmd.MarkFlagsRequiredTogether("lat", "lon")

	return cmd
}

func runDashboard(cmd *cobra.Command, flags dashboardFlags) error {
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

	cfg := config.GetGlobalConfig()
	wantAQ := cmd.Flags().Changed("lat") || cfg.Location.IsSet()

	var (
		entries []history.Entry
		report  airquality.Report
		aqErr   error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries = store.Load(gCtx)
		return nil
	})
	if wantAQ {
		g.Go(func() error {
			// Lookup failures are reported alongside the trend.
			report, aqErr = airquality.Lookup(gCtx, locatorFor(cmd, flags.lat, flags.lon),
				newAirQualityClient(cfg), cfg.AirQuality.RadiusMeters, cfg.AirQuality.Limit)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	stats := trend.Derive(entries)
	out := dashboardReport{Trend: newTrendReport(stats)}
	switch {
	case !wantAQ:
	case aqErr != nil:
		logAQIFailure(cmd, aqErr)
		out.AirQualityError = aqErr.Error()
	default:
		out.AirQuality = &report
	}

	switch format {
	case OutputJSON:
		return writeJSON(cmd.OutOrStdout(), out)
	case OutputNDJSON:
		return writeNDJSON(cmd.OutOrStdout(), []dashboardReport{out})
	case OutputTable:
		return renderDashboard(cmd, out, stats)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderDashboard(cmd *cobra.Command, out dashboardReport, stats trend.Stats) error {
	w := cmd.OutOrStdout()
	styled := styledOutput(cmd)

	if styled {
		fmt.Fprintln(w, tui.RenderTrend(stats, terminalWidth()))
	} else if err := renderTrendTable(w, stats); err != nil {
		return err
	}
	fmt.Fprintln(w)

	switch {
	case out.AirQuality != nil && styled:
		fmt.Fprintln(w, tui.RenderAQIReport(*out.AirQuality, terminalWidth()))
	case out.AirQuality != nil:
		return renderAQITable(w, *out.AirQuality)
	case out.AirQualityError != "":
		writeAirQualityUnavailable(w, out.AirQualityError)
	default:
		fmt.Fprintln(w, "Air quality: no location set (use --lat/--lon or 'ecotrack config set location.latitude ...')")
	}
	return nil
}

func writeAirQualityUnavailable(w io.Writer, reason string) {
	fmt.Fprintf(w, "Air quality unavailable: %s\n", strings.TrimSpace(reason))
}
