package footprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		input      Inputs
		wantCar    float64
		wantAir    float64
		wantEnergy float64
		wantWaste  float64
		wantDiet   float64
		wantTotal  float64
	}{
		{
			name: "reference household",
			input: Inputs{
				CarKmPerYear:           8000,
				AirHoursPerYear:        12,
				ElectricityKWhPerMonth: 250,
				WasteKgPerMonth:        20,
				Diet:                   DietMedium,
			},
			wantCar:    1.6,
			wantAir:    1.08,
			wantEnergy: 2.1,
			wantWaste:  0.288,
			wantDiet:   3.6,
			wantTotal:  8.668,
		},
		{
			name:      "all zero vegan",
			input:     Inputs{Diet: DietVegan},
			wantDiet:  1.5,
			wantTotal: 1.5,
		},
		{
			name:      "negative amounts count as zero",
			input:     Inputs{CarKmPerYear: -100, AirHoursPerYear: -1, Diet: DietHeavy},
			wantDiet:  5.0,
			wantTotal: 5.0,
		},
		{
			name:      "unknown diet falls back to medium",
			input:     Inputs{Diet: Diet("carnivore")},
			wantDiet:  3.6,
			wantTotal: 3.6,
		},
		{
			name:      "empty diet falls back to medium",
			input:     Inputs{},
			wantDiet:  3.6,
			wantTotal: 3.6,
		},
		{
			name:      "non-finite amounts count as zero",
			input:     Inputs{CarKmPerYear: math.Inf(1), WasteKgPerMonth: math.NaN(), Diet: DietLight},
			wantDiet:  2.8,
			wantTotal: 2.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.input)

			assert.InDelta(t, tt.wantCar, got.Car, 1e-9)
			assert.InDelta(t, tt.wantAir, got.Air, 1e-9)
			assert.InDelta(t, tt.wantEnergy, got.Energy, 1e-9)
			assert.InDelta(t, tt.wantWaste, got.Waste, 1e-9)
			assert.InDelta(t, tt.wantDiet, got.Diet, 1e-9)
			assert.InDelta(t, tt.wantTotal, got.Total, 1e-9)
		})
	}
}

func TestCompute_SumInvariant(t *testing.T) {
	amounts := []float64{0, 0.5, 1, 12, 250, 8000, 123456.789}
	for _, car := range amounts {
		for _, kwh := range amounts {
			for _, d := range Diets() {
				got := Compute(Inputs{
					CarKmPerYear:           car,
					AirHoursPerYear:        kwh / 10,
					ElectricityKWhPerMonth: kwh,
					WasteKgPerMonth:        car / 100,
					Diet:                   d,
				})
				sum := got.Car + got.Air + got.Energy + got.Waste + got.Diet
				require.Equal(t, sum, got.Total, "car=%v kwh=%v diet=%s", car, kwh, d)
			}
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	in := Inputs{CarKmPerYear: 8000, AirHoursPerYear: 12, ElectricityKWhPerMonth: 250, WasteKgPerMonth: 20, Diet: DietMedium}
	first := Compute(in)
	second := Compute(in)
	assert.Equal(t, first, second)
	assert.Equal(t, math.Float64bits(first.Total), math.Float64bits(second.Total))
}

func TestSanitizeInputs(t *testing.T) {
	tests := []struct {
		name string
		raw  RawInputs
		want Inputs
	}{
		{
			name: "numeric strings",
			raw:  RawInputs{CarKmPerYear: "8000", AirHoursPerYear: " 12 ", ElectricityKWhPerMonth: "250.5", WasteKgPerMonth: "1e1", Diet: "Vegan"},
			want: Inputs{CarKmPerYear: 8000, AirHoursPerYear: 12, ElectricityKWhPerMonth: 250.5, WasteKgPerMonth: 10, Diet: DietVegan},
		},
		{
			name: "empty strings",
			raw:  RawInputs{},
			want: Inputs{Diet: DietMedium},
		},
		{
			name: "garbage and negatives",
			raw:  RawInputs{CarKmPerYear: "lots", AirHoursPerYear: "-3", ElectricityKWhPerMonth: "NaN", WasteKgPerMonth: "Inf", Diet: "keto"},
			want: Inputs{Diet: DietMedium},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInputs(tt.raw))
		})
	}
}

func TestParseDiet(t *testing.T) {
	assert.Equal(t, DietVegetarian, ParseDiet("vegetarian"))
	assert.Equal(t, DietHeavy, ParseDiet("  HEAVY "))
	assert.Equal(t, DietMedium, ParseDiet("pescatarian"))
	assert.Equal(t, DietMedium, ParseDiet(""))
	assert.True(t, DietLight.Valid())
	assert.False(t, Diet("x").Valid())
	assert.InDelta(t, DietMediumT, Diet("x").Baseline(), 1e-12)
}

func TestDiet_Label(t *testing.T) {
	assert.Equal(t, "Vegan (1.5 t/yr)", DietVegan.Label())
	assert.Equal(t, "Heavy Meat (5.0 t/yr)", DietHeavy.Label())
	assert.Equal(t, "Diet(raw)", Diet("raw").Label())
}

func TestBreakdown(t *testing.T) {
	r := Compute(Inputs{CarKmPerYear: 8000, Diet: DietVegan})
	cats := Breakdown(r)
	require.Len(t, cats, 5)
	assert.Equal(t, "Transportation (Car)", cats[0].Name)
	assert.InDelta(t, 1.6, cats[0].Value, 1e-9)
	assert.Equal(t, "Diet", cats[4].Name)
	assert.InDelta(t, 1.5, cats[4].Value, 1e-9)
}

func TestCompareToGlobalAverage(t *testing.T) {
	above := CompareToGlobalAverage(Result{Total: 8.668})
	assert.False(t, above.Below)
	assert.InDelta(t, 3.97, above.Difference, 1e-9)
	assert.Equal(t, "This is above the global average of 4.7 t/yr by 3.97 t.", above.Summary())

	below := CompareToGlobalAverage(Result{Total: 1.5})
	assert.True(t, below.Below)
	assert.InDelta(t, 3.2, below.Difference, 1e-9)

	equal := CompareToGlobalAverage(Result{Total: GlobalAverageT})
	assert.True(t, equal.Below)
	assert.InDelta(t, 0, equal.Difference, 1e-9)
}

func TestEquivalencies(t *testing.T) {
	got := Equivalencies(Result{Total: 1.5})
	require.Len(t, got, 2)
	// 1500 kg / 0.192 = 7812.5 miles
	assert.InDelta(t, 7812.5, got[0].Value, 0.01)
	assert.Equal(t, "miles driven", got[0].Label)
	assert.Equal(t, "7,813", got[0].FormattedValue)
	// 1500 kg / 60 = 25 seedlings
	assert.InDelta(t, 25.0, got[1].Value, 0.01)

	assert.Empty(t, Equivalencies(Result{}))
}
