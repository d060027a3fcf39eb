// Package footprint estimates an annual carbon footprint from lifestyle metrics.
//
// The model is a fixed linear emission-factor aggregation: each activity is
// multiplied by a constant factor and the diet category contributes a fixed
// baseline. All values are expressed in tonnes CO2e per year.
package footprint

import (
	"fmt"
	"strings"
)

// Diet is the dietary category of the person being assessed.
type Diet string

// Recognized diet categories.
const (
	DietVegan      Diet = "vegan"
	DietVegetarian Diet = "vegetarian"
	DietLight      Diet = "light"
	DietMedium     Diet = "medium"
	DietHeavy      Diet = "heavy"
)

// DefaultDiet is used whenever a diet category is missing or unrecognized.
const DefaultDiet = DietMedium

// Diets lists the diet categories from lowest to highest baseline.
func Diets() []Diet {
	return []Diet{DietVegan, DietVegetarian, DietLight, DietMedium, DietHeavy}
}

// ParseDiet maps a user-supplied category to a Diet.
// Matching is case-insensitive and ignores surrounding whitespace. Unknown
// values fall back to DefaultDiet rather than failing.
func ParseDiet(s string) Diet {
	d := Diet(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := dietBaselines[d]; ok {
		return d
	}
	return DefaultDiet
}

// Valid reports whether d is one of the recognized categories.
func (d Diet) Valid() bool {
	_, ok := dietBaselines[d]
	return ok
}

// Baseline returns the annual diet emissions in tonnes CO2e.
// Unrecognized categories return the DefaultDiet baseline.
func (d Diet) Baseline() float64 {
	if v, ok := dietBaselines[d]; ok {
		return v
	}
	return dietBaselines[DefaultDiet]
}

// Label returns a display label such as "Medium Meat (3.6 t/yr)".
func (d Diet) Label() string {
	var name string
	switch d {
	case DietVegan:
		name = "Vegan"
	case DietVegetarian:
		name = "Vegetarian"
	case DietLight:
		name = "Light Meat"
	case DietMedium:
		name = "Medium Meat"
	case DietHeavy:
		name = "Heavy Meat"
	default:
		return fmt.Sprintf("Diet(%s)", string(d))
	}
	return fmt.Sprintf("%s (%.1f t/yr)", name, d.Baseline())
}

//nolint:gochecknoglobals // Fixed lookup table.
var dietBaselines = map[Diet]float64{
	DietVegan:      DietVeganT,
	DietVegetarian: DietVegetarianT,
	DietLight:      DietLightT,
	DietMedium:     DietMediumT,
	DietHeavy:      DietHeavyT,
}

// Inputs holds one calculation request. Numeric fields are non-negative
// once passed through Sanitize.
type Inputs struct {
	CarKmPerYear           float64 `json:"carKmYear"`
	AirHoursPerYear        float64 `json:"airHoursYear"`
	ElectricityKWhPerMonth float64 `json:"kwhMonth"`
	WasteKgPerMonth        float64 `json:"wasteKgMonth"`
	Diet                   Diet    `json:"diet"`
}

// RawInputs holds inputs as typed by a user, before sanitization.
type RawInputs struct {
	CarKmPerYear           string
	AirHoursPerYear        string
	ElectricityKWhPerMonth string
	WasteKgPerMonth        string
	Diet                   string
}

// Result is the per-category breakdown in tonnes CO2e per year.
// It is never mutated after Compute returns it.
type Result struct {
	Car    float64 `json:"car"`
	Air    float64 `json:"air"`
	Energy float64 `json:"energy"`
	Waste  float64 `json:"waste"`
	Diet   float64 `json:"diet"`
	Total  float64 `json:"total"`
}

// Transport returns the combined car and air emissions.
func (r Result) Transport() float64 {
	return r.Car + r.Air
}

// Category is a single named slice of a footprint breakdown.
type Category struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Comparison describes a footprint relative to the global average.
type Comparison struct {
	// Average is the reference value in tonnes CO2e per year.
	Average float64 `json:"average"`

	// Difference is the absolute distance from the average.
	Difference float64 `json:"difference"`

	// Below is true when the footprint is at or below the average.
	Below bool `json:"below"`
}

// Equivalency expresses a footprint as a relatable real-world quantity.
type Equivalency struct {
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formatted_value"`
	Label          string  `json:"label"`
}
