package aqi

import "math"

// Category thresholds (inclusive upper bounds).
const (
	goodMax               = 50
	moderateMax           = 100
	unhealthySensitiveMax = 150
	unhealthyMax          = 200
	veryUnhealthyMax      = 300
)

// ConcentrationToIndex converts a concentration to an index value using t.
//
// The first breakpoint whose inclusive range contains c is interpolated:
//
//	index = (IHigh - ILow) / (CHigh - CLow) × (c - CLow) + ILow
//
// Concentrations below the first range clamp to its ILow. Concentrations
// matching no range, including those above the last range and those that
// fall into a gap between ranges, clamp to the last IHigh. An empty table
// yields 0.
func ConcentrationToIndex(c float64, t Table) float64 {
	if len(t) == 0 {
		return 0
	}
	for _, bp := range t {
		if c >= bp.CLow && c <= bp.CHigh {
			return (bp.IHigh-bp.ILow)/(bp.CHigh-bp.CLow)*(c-bp.CLow) + bp.ILow
		}
	}
	if c < t[0].CLow {
		return t[0].ILow
	}
	return t[len(t)-1].IHigh
}

// Compute derives the overall index from the PM2.5 and PM10 readings.
//
// Each present pollutant is indexed with its own table and rounded to the
// nearest integer; the overall index is the larger of the two. On a tie the
// dominant pollutant is PM2.5. A NaN or infinite concentration counts as
// absent. The boolean is false when neither pollutant is present: there is
// no index for that case, and callers must not show it as good air.
func Compute(r Readings) (Result, bool) {
	var res Result

	if c, ok := finiteReading(r, PM25); ok {
		idx := roundIndex(ConcentrationToIndex(c, PM25Table))
		res.PM25 = &c
		res.PM25Index = &idx
	}
	if c, ok := finiteReading(r, PM10); ok {
		idx := roundIndex(ConcentrationToIndex(c, PM10Table))
		res.PM10 = &c
		res.PM10Index = &idx
	}

	if res.PM25Index == nil && res.PM10Index == nil {
		res.Dominant = None
		return res, false
	}

	pm25, pm10 := 0, 0
	if res.PM25Index != nil {
		pm25 = *res.PM25Index
	}
	if res.PM10Index != nil {
		pm10 = *res.PM10Index
	}

	res.Index = max(pm25, pm10)
	switch {
	case res.PM25Index != nil && pm25 == res.Index:
		res.Dominant = PM25
	case res.PM10Index != nil && pm10 == res.Index:
		res.Dominant = PM10
	default:
		res.Dominant = None
	}
	res.Category = Classify(res.Index)

	return res, true
}

// Classify returns the health category for an index value.
func Classify(index int) Category {
	switch {
	case index <= goodMax:
		return Good
	case index <= moderateMax:
		return Moderate
	case index <= unhealthySensitiveMax:
		return UnhealthySensitive
	case index <= unhealthyMax:
		return Unhealthy
	case index <= veryUnhealthyMax:
		return VeryUnhealthy
	default:
		return Hazardous
	}
}

func finiteReading(r Readings, p Pollutant) (float64, bool) {
	c, ok := r[p]
	if !ok || math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, false
	}
	return c, true
}

// roundIndex rounds half away from zero. Non-finite values become 0.
func roundIndex(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
