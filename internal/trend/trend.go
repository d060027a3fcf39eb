// Package trend derives progress statistics from a footprint history.
package trend

import (
	"math"
	"time"

	"github.com/rshade/ecotrack/internal/history"
)

// Goal is the Paris-aligned per-capita target in tonnes CO2e per year.
const Goal = 2.0

// MinEntries is the number of entries needed for a meaningful trend.
const MinEntries = 2

// Point is one entry projected for charting, values rounded to 2 decimals.
type Point struct {
	Date      time.Time `json:"date"`
	Total     float64   `json:"total"`
	Transport float64   `json:"transport"`
	Energy    float64   `json:"energy"`
	Diet      float64   `json:"diet"`
	Waste     float64   `json:"waste"`
}

// Stats summarizes a history. Nil pointers mean "undefined"; they are never
// reported as zero.
type Stats struct {
	// Series has one point per entry in chronological order.
	Series []Point `json:"series"`

	// Sufficient is true when the history holds at least MinEntries entries.
	Sufficient bool `json:"sufficient"`

	// Latest is the most recent total; nil for an empty history.
	Latest *float64 `json:"latest,omitempty"`

	// PercentChange is (latest - first) / first × 100; nil with fewer than
	// MinEntries entries or when the first total is zero.
	PercentChange *float64 `json:"percent_change,omitempty"`

	// DistanceToGoal is latest - Goal; nil for an empty history.
	DistanceToGoal *float64 `json:"distance_to_goal,omitempty"`
}

// GoalMet reports whether the latest total is at or below Goal.
func (s Stats) GoalMet() bool {
	return s.DistanceToGoal != nil && *s.DistanceToGoal <= 0
}

// Derive computes trend statistics for entries, which must be in
// chronological order. The slice is not modified.
func Derive(entries []history.Entry) Stats {
	stats := Stats{
		Series:     make([]Point, 0, len(entries)),
		Sufficient: len(entries) >= MinEntries,
	}

	for _, e := range entries {
		r := e.Results
		stats.Series = append(stats.Series, Point{
			Date:      e.Timestamp,
			Total:     round2(r.Total),
			Transport: round2(r.Car + r.Air),
			Energy:    round2(r.Energy),
			Diet:      round2(r.Diet),
			Waste:     round2(r.Waste),
		})
	}

	if len(entries) == 0 {
		return stats
	}

	first := entries[0].Results.Total
	latest := entries[len(entries)-1].Results.Total
	stats.Latest = &latest

	distance := latest - Goal
	stats.DistanceToGoal = &distance

	if stats.Sufficient && first != 0 && isFinite(first) && isFinite(latest) {
		pct := (latest - first) / first * 100 //nolint:mnd // Percentage.
		stats.PercentChange = &pct
	}

	return stats
}

func round2(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return math.Round(v*100) / 100 //nolint:mnd // Two decimal places.
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
