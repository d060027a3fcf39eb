// Package aqi derives a US EPA Air Quality Index from particulate matter
// concentrations using piecewise-linear interpolation over fixed
// breakpoint tables.
package aqi

import (
	"fmt"
	"strings"
)

// Pollutant identifies a pollutant that contributes to the index.
type Pollutant string

// Supported pollutants.
const (
	PM25 Pollutant = "pm25"
	PM10 Pollutant = "pm10"
	// None is the dominant pollutant when no reading is available.
	None Pollutant = "none"
)

// ParsePollutant maps a provider parameter name to a Pollutant.
// It accepts "pm25", "pm2.5" and "pm10" in any case; other parameters
// (o3, no2, ...) are reported as not recognized.
func ParsePollutant(s string) (Pollutant, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pm25", "pm2.5", "pm2_5":
		return PM25, true
	case "pm10":
		return PM10, true
	default:
		return None, false
	}
}

// DisplayName returns the conventional name, e.g. "PM2.5".
func (p Pollutant) DisplayName() string {
	switch p {
	case PM25:
		return "PM2.5"
	case PM10:
		return "PM10"
	default:
		return "N/A"
	}
}

// Category is the health category of an index value.
type Category int

// Categories in increasing order of severity.
const (
	Good Category = iota
	Moderate
	UnhealthySensitive
	Unhealthy
	VeryUnhealthy
	Hazardous
)

// String returns the identifier form of the category.
func (c Category) String() string {
	switch c {
	case Good:
		return "Good"
	case Moderate:
		return "Moderate"
	case UnhealthySensitive:
		return "UnhealthySensitive"
	case Unhealthy:
		return "Unhealthy"
	case VeryUnhealthy:
		return "VeryUnhealthy"
	case Hazardous:
		return "Hazardous"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Label returns the human-readable category label.
func (c Category) Label() string {
	switch c {
	case UnhealthySensitive:
		return "Unhealthy for Sensitive"
	case VeryUnhealthy:
		return "Very Unhealthy"
	default:
		return c.String()
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Readings maps each pollutant to its concentration in µg/m³.
type Readings map[Pollutant]float64

// Result is the index derived from one set of readings.
type Result struct {
	// Index is the overall index, rounded to the nearest integer.
	Index int `json:"index"`

	// Dominant is the pollutant whose index equals Index.
	Dominant Pollutant `json:"dominant_pollutant"`

	// Category is the health category of Index.
	Category Category `json:"category"`

	// PM25 and PM10 are the source concentrations, nil when absent.
	PM25 *float64 `json:"pm25,omitempty"`
	PM10 *float64 `json:"pm10,omitempty"`

	// PM25Index and PM10Index are the per-pollutant indices, nil when absent.
	PM25Index *int `json:"pm25_index,omitempty"`
	PM10Index *int `json:"pm10_index,omitempty"`
}
