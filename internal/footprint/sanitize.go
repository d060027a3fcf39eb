package footprint

import (
	"math"
	"strconv"
	"strings"
)

// SanitizeInputs converts raw user input into well-typed Inputs.
// Empty, non-numeric, negative, NaN and infinite values become 0; an
// unrecognized diet becomes DefaultDiet. It never rejects input.
func SanitizeInputs(raw RawInputs) Inputs {
	return Inputs{
		CarKmPerYear:           parseAmount(raw.CarKmPerYear),
		AirHoursPerYear:        parseAmount(raw.AirHoursPerYear),
		ElectricityKWhPerMonth: parseAmount(raw.ElectricityKWhPerMonth),
		WasteKgPerMonth:        parseAmount(raw.WasteKgPerMonth),
		Diet:                   ParseDiet(raw.Diet),
	}
}

// Sanitize applies the same coercion rules as SanitizeInputs to typed values.
func Sanitize(in Inputs) Inputs {
	return Inputs{
		CarKmPerYear:           clampAmount(in.CarKmPerYear),
		AirHoursPerYear:        clampAmount(in.AirHoursPerYear),
		ElectricityKWhPerMonth: clampAmount(in.ElectricityKWhPerMonth),
		WasteKgPerMonth:        clampAmount(in.WasteKgPerMonth),
		Diet:                   ParseDiet(string(in.Diet)),
	}
}

// parseAmount parses a user-entered quantity, returning 0 for anything
// that is not a finite non-negative number.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return clampAmount(v)
}

func clampAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
