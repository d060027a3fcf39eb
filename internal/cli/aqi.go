package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/airquality"
	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/internal/tui"
)

type aqiFlags struct {
	lat    float64
	lon    float64
	radius int
	limit  int
	legend bool
	output string
}

// NewAQICmd creates the aqi command, which reports the air quality index at
// the nearest monitoring station.
func NewAQICmd() *cobra.Command {
	var flags aqiFlags

	cmd := &cobra.Command{
		Use:   "aqi",
		Short: "Show the air quality index near a location",
		Long: `Fetches the latest PM2.5 and PM10 measurements from the nearest OpenAQ
station and reports the US EPA air quality index, its category and the
pollutant driving it.

The location comes from --lat/--lon, or from location.latitude and
location.longitude in the configuration.`,
		Example: `  # Look up a location directly
  ecotrack aqi --lat 52.52 --lon 13.405

  # Use the saved location with a wider search radius
  ecotrack config set location.latitude 40.71
  ecotrack config set location.longitude -74.01
  ecotrack aqi --radius 25000

  # Print the category scale
  ecotrack aqi --legend`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAQI(cmd, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.lat, "lat", 0, "latitude in decimal degrees")
	cmd.Flags().Float64Var(&flags.lon, "lon", 0, "longitude in decimal degrees")
	cmd.Flags().IntVar(&flags.radius, "radius", 0, "search radius in metres (default from config)")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "number of stations to consider (default from config)")
	cmd.Flags().BoolVar(&flags.legend, "legend", false, "print the AQI category scale and exit")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output format: table, json (default from config)")
	cmd.MarkFlagsRequiredTogether("lat", "lon")

	return cmd
}

func runAQI(cmd *cobra.Command, flags aqiFlags) error {
	if flags.legend {
		fmt.Fprintln(cmd.OutOrStdout(), tui.CategoryLegend())
		return nil
	}

	format, err := resolveOutputFormat(flags.output)
	if err != nil {
		return err
	}

	cfg := config.GetGlobalConfig()
	radius, limit := flags.radius, flags.limit
	if radius <= 0 {
		radius = cfg.AirQuality.RadiusMeters
	}
	if limit <= 0 {
		limit = cfg.AirQuality.Limit
	}

	locator := locatorFor(cmd, flags.lat, flags.lon)
	report, err := airquality.Lookup(cmd.Context(), locator, newAirQualityClient(cfg), radius, limit)
	if err != nil {
		return explainAQIError(err)
	}

	switch format {
	case OutputJSON:
		return writeJSON(cmd.OutOrStdout(), report)
	case OutputNDJSON:
		return writeNDJSON(cmd.OutOrStdout(), []airquality.Report{report})
	case OutputTable:
		if styledOutput(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderAQIReport(report, terminalWidth()))
			return nil
		}
		return renderAQITable(cmd.OutOrStdout(), report)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// locatorFor prefers explicit flags over the configured location.
func locatorFor(cmd *cobra.Command, lat, lon float64) airquality.Locator {
	if cmd.Flags().Changed("lat") {
		return airquality.StaticLocator{
			Coordinates: &airquality.Coordinates{Latitude: lat, Longitude: lon},
		}
	}
	cfg := config.GetGlobalConfig()
	if !cfg.Location.IsSet() {
		return airquality.StaticLocator{}
	}
	return airquality.StaticLocator{
		Coordinates: &airquality.Coordinates{
			Latitude:  *cfg.Location.Latitude,
			Longitude: *cfg.Location.Longitude,
		},
	}
}

// newAirQualityClient builds the OpenAQ client from configuration.
func newAirQualityClient(cfg *config.Config) *airquality.OpenAQClient {
	return airquality.NewOpenAQClient(
		airquality.WithBaseURL(cfg.AirQuality.BaseURL),
		airquality.WithAPIKey(cfg.AirQuality.APIKey),
		airquality.WithHTTPClient(&http.Client{Timeout: cfg.AirQuality.Timeout}),
	)
}

// explainAQIError adds a hint for failures the user can fix.
func explainAQIError(err error) error {
	switch {
	case errors.Is(err, airquality.ErrLocationUnavailable):
		return fmt.Errorf("%w (pass --lat and --lon, or set location.latitude and location.longitude)", err)
	case errors.Is(err, airquality.ErrNoDataFound):
		return fmt.Errorf("%w (try a larger --radius)", err)
	default:
		return err
	}
}

func renderAQITable(w io.Writer, report airquality.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintf(tw, "Location:\t%s\n", report.Station.DisplayLocation())
	if report.Station.Name != "" {
		fmt.Fprintf(tw, "Station:\t%s\n", report.Station.Name)
	}
	if !report.HasIndex || report.Result == nil {
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, tui.NoDataMessage)
		return err
	}

	res := report.Result
	fmt.Fprintf(tw, "AQI:\t%d (%s)\n", res.Index, res.Category.Label())
	fmt.Fprintf(tw, "Main pollutant:\t%s\n", res.Dominant.DisplayName())
	fmt.Fprintf(tw, "PM2.5:\t%s\n", plainReading(res.PM25, res.PM25Index))
	fmt.Fprintf(tw, "PM10:\t%s\n", plainReading(res.PM10, res.PM10Index))
	return tw.Flush()
}

func plainReading(concentration *float64, index *int) string {
	if concentration == nil || index == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f µg/m³ (AQI %d)", *concentration, *index)
}

// logAQIFailure records a non-fatal lookup failure.
func logAQIFailure(cmd *cobra.Command, err error) {
	logging.FromContext(cmd.Context()).Warn().
		Ctx(cmd.Context()).
		Str("component", "airquality").
		Err(err).
		Msg("air quality lookup failed")
}
