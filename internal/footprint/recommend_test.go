package footprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		diet   Diet
		want   []string
	}{
		{
			name:   "nothing triggers",
			result: Result{Car: 0.5, Air: 0.2, Energy: 0.3, Waste: 0.1, Diet: 1.5},
			diet:   DietVegan,
			want:   []string{AdviceMaintain},
		},
		{
			name:   "all triggers in priority order",
			result: Result{Car: 1.6, Air: 1.08, Energy: 2.1, Waste: 0.6, Diet: 3.6},
			diet:   DietMedium,
			want:   []string{AdviceCar, AdviceAir, AdviceEnergy, AdviceDiet, AdviceWaste},
		},
		{
			name:   "reference household",
			result: Compute(Inputs{CarKmPerYear: 8000, AirHoursPerYear: 12, ElectricityKWhPerMonth: 250, WasteKgPerMonth: 20, Diet: DietMedium}),
			diet:   DietMedium,
			want:   []string{AdviceCar, AdviceAir, AdviceEnergy, AdviceDiet},
		},
		{
			name:   "thresholds are strict",
			result: Result{Car: 1, Air: 1, Energy: 1, Waste: 0.5, Diet: 2.5},
			diet:   DietLight,
			want:   []string{AdviceMaintain},
		},
		{
			name:   "vegan never gets diet advice",
			result: Result{Diet: 5},
			diet:   DietVegan,
			want:   []string{AdviceMaintain},
		},
		{
			name:   "waste only",
			result: Result{Waste: 0.51, Diet: 2.0},
			diet:   DietVegetarian,
			want:   []string{AdviceWaste},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.result, tt.diet)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
			assert.LessOrEqual(t, len(got), 5)
		})
	}
}
