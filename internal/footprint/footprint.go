package footprint

import (
	"fmt"
	"math"
)

// Compute estimates the annual footprint for the given inputs.
//
// Inputs are sanitized first, so Compute is total: negative or non-finite
// amounts count as 0 and an unknown diet counts as DefaultDiet. The result
// is a pure function of its input.
//
//	car    = km/yr × 0.0002
//	air    = h/yr × 0.09
//	energy = kWh/month × 12 × 0.0007
//	waste  = kg/month × 12 × 0.0012
//	diet   = baseline for the diet category
//	total  = car + air + energy + waste + diet
func Compute(in Inputs) Result {
	in = Sanitize(in)

	// Explicit conversions keep each product rounded on its own so the
	// total is bit-identical to summing the stored category values.
	car := float64(in.CarKmPerYear * CarPerKmT)
	air := float64(in.AirHoursPerYear * AirPerHourT)
	energy := float64(in.ElectricityKWhPerMonth * MonthsPerYear * ElectricityPerKWhT)
	waste := float64(in.WasteKgPerMonth * MonthsPerYear * WastePerKgT)
	diet := in.Diet.Baseline()

	return Result{
		Car:    car,
		Air:    air,
		Energy: energy,
		Waste:  waste,
		Diet:   diet,
		Total:  car + air + energy + waste + diet,
	}
}

// Breakdown returns the five categories in display order.
func Breakdown(r Result) []Category {
	return []Category{
		{Name: "Transportation (Car)", Value: r.Car},
		{Name: "Air Travel", Value: r.Air},
		{Name: "Household Energy", Value: r.Energy},
		{Name: "Waste", Value: r.Waste},
		{Name: "Diet", Value: r.Diet},
	}
}

// CompareToGlobalAverage reports how far the total is from GlobalAverageT.
// The difference is rounded to two decimals as displayed.
func CompareToGlobalAverage(r Result) Comparison {
	diff := math.Round((r.Total-GlobalAverageT)*100) / 100 //nolint:mnd // Two decimal places.
	return Comparison{
		Average:    GlobalAverageT,
		Difference: math.Abs(diff),
		Below:      r.Total <= GlobalAverageT,
	}
}

// Summary returns a sentence such as
// "This is above the global average of 4.7 t/yr by 3.97 t.".
func (c Comparison) Summary() string {
	dir := "above"
	if c.Below {
		dir = "below"
	}
	return fmt.Sprintf("This is %s the global average of %g t/yr by %g t.", dir, c.Average, c.Difference)
}

// Equivalencies expresses the total footprint as miles driven and tree
// seedlings needed to absorb it. A zero total yields no equivalencies.
func Equivalencies(r Result) []Equivalency {
	kg := r.Total * TonnesToKg
	if kg <= 0 || math.IsInf(kg, 0) || math.IsNaN(kg) {
		return nil
	}

	miles := kg / EPAMilesDrivenFactor
	trees := kg / EPATreeSeedlingFactor

	return []Equivalency{
		{Value: miles, FormattedValue: FormatNumber(int64(math.Round(miles))), Label: "miles driven"},
		{Value: trees, FormattedValue: FormatNumber(int64(math.Round(trees))), Label: "tree seedlings grown for 10 years"},
	}
}
