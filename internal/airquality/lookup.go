package airquality

import (
	"context"
	"fmt"

	"github.com/rshade/ecotrack/internal/aqi"
	"github.com/rshade/ecotrack/internal/logging"
)

// Report is the outcome of a successful lookup.
type Report struct {
	Station Station `json:"station"`

	// Result is nil when the station reported neither PM2.5 nor PM10.
	Result *aqi.Result `json:"result,omitempty"`

	HasIndex bool `json:"has_index"`
}

// Lookup locates the user, fetches the nearest station and computes its AQI.
// A non-positive radius or limit selects the default.
func Lookup(ctx context.Context, loc Locator, p Provider, radius, limit int) (Report, error) {
	log := logging.FromContext(ctx)

	coords, err := loc.Locate(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("locating: %w", err)
	}

	station, err := p.Nearest(ctx, Query{Coordinates: coords, RadiusMeters: radius, Limit: limit}.withDefaults())
	if err != nil {
		return Report{}, fmt.Errorf("querying provider: %w", err)
	}

	report := Report{Station: *station}
	result, ok := aqi.Compute(station.Readings())
	if !ok {
		log.Debug().
			Str("component", "airquality").
			Str("station", station.Name).
			Msg("station reported no particulate measurements")
		return report, nil
	}
	report.Result = &result
	report.HasIndex = true
	return report, nil
}
