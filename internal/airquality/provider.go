package airquality

import (
	"context"
	"maps"
	"math"
	"slices"

	"github.com/rshade/ecotrack/internal/aqi"
)

// Defaults for a nearest-station query.
const (
	DefaultRadiusMeters = 10000
	DefaultLimit        = 1
)

// Query asks for monitoring stations around a point.
type Query struct {
	Coordinates  Coordinates
	RadiusMeters int
	Limit        int
}

// NewQuery returns a query at c with the default radius and limit.
func NewQuery(c Coordinates) Query {
	return Query{Coordinates: c, RadiusMeters: DefaultRadiusMeters, Limit: DefaultLimit}
}

func (q Query) withDefaults() Query {
	if q.RadiusMeters <= 0 {
		q.RadiusMeters = DefaultRadiusMeters
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	return q
}

// Station is a monitoring location and its latest measurements, keyed by
// the provider's parameter name (for example "pm25").
type Station struct {
	Name         string             `json:"name"`
	City         string             `json:"city,omitempty"`
	Country      string             `json:"country,omitempty"`
	Coordinates  Coordinates        `json:"coordinates"`
	Measurements map[string]float64 `json:"measurements"`
}

// DisplayLocation is the best human-readable place name for s.
func (s Station) DisplayLocation() string {
	place := s.City
	if place == "" {
		place = s.Name
	}
	if place == "" {
		place = "Unknown"
	}
	if s.Country == "" {
		return place
	}
	return place + ", " + s.Country
}

// Readings extracts the particulate concentrations the AQI model understands.
// Unknown parameters and non-finite values are dropped. When aliases of the
// same pollutant collide ("pm25" and "pm2.5"), the lexically last one wins.
func (s Station) Readings() aqi.Readings {
	out := make(aqi.Readings, len(s.Measurements))
	for _, param := range slices.Sorted(maps.Keys(s.Measurements)) {
		v := s.Measurements[param]
		p, ok := aqi.ParsePollutant(param)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[p] = v
	}
	return out
}

// Provider returns the nearest station with current measurements.
type Provider interface {
	// Nearest returns the first station matching q, or ErrNetwork /
	// ErrNoDataFound.
	Nearest(ctx context.Context, q Query) (*Station, error)
}
