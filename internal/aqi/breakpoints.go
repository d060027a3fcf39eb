package aqi

import (
	"fmt"
)

// Breakpoint maps the inclusive concentration range [CLow, CHigh] (µg/m³)
// onto the index range [ILow, IHigh].
type Breakpoint struct {
	CLow  float64 `json:"c_low"`
	CHigh float64 `json:"c_high"`
	ILow  float64 `json:"i_low"`
	IHigh float64 `json:"i_high"`
}

// Table is an ordered breakpoint table for one pollutant.
//
// Lookups scan in table order and the first matching range wins. The fixed
// tables below are ascending and disjoint, which makes the scan order
// irrelevant; a table with overlaps would resolve them by position.
type Table []Breakpoint

// US EPA breakpoint tables.
//
//nolint:gochecknoglobals // Fixed constant data.
var (
	PM25Table = Table{
		{CLow: 0.0, CHigh: 12.0, ILow: 0, IHigh: 50},
		{CLow: 12.1, CHigh: 35.4, ILow: 51, IHigh: 100},
		{CLow: 35.5, CHigh: 55.4, ILow: 101, IHigh: 150},
		{CLow: 55.5, CHigh: 150.4, ILow: 151, IHigh: 200},
		{CLow: 150.5, CHigh: 250.4, ILow: 201, IHigh: 300},
		{CLow: 250.5, CHigh: 500.4, ILow: 301, IHigh: 500},
	}

	PM10Table = Table{
		{CLow: 0, CHigh: 54, ILow: 0, IHigh: 50},
		{CLow: 55, CHigh: 154, ILow: 51, IHigh: 100},
		{CLow: 155, CHigh: 254, ILow: 101, IHigh: 150},
		{CLow: 255, CHigh: 354, ILow: 151, IHigh: 200},
		{CLow: 355, CHigh: 424, ILow: 201, IHigh: 300},
		{CLow: 425, CHigh: 604, ILow: 301, IHigh: 500},
	}
)

// TableFor returns the breakpoint table for p.
func TableFor(p Pollutant) (Table, bool) {
	switch p {
	case PM25:
		return PM25Table, true
	case PM10:
		return PM10Table, true
	default:
		return nil, false
	}
}

// Validate checks that every range is well formed and that ranges are
// ascending and non-overlapping in both concentration and index.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	for i, bp := range t {
		if bp.CHigh <= bp.CLow || bp.IHigh < bp.ILow {
			return fmt.Errorf("%w: breakpoint %d has inverted range", ErrMalformedTable, i)
		}
		if i == 0 {
			continue
		}
		prev := t[i-1]
		if bp.CLow <= prev.CHigh {
			return fmt.Errorf("%w: breakpoint %d overlaps breakpoint %d", ErrMalformedTable, i, i-1)
		}
		if bp.ILow <= prev.IHigh {
			return fmt.Errorf("%w: breakpoint %d index range overlaps breakpoint %d", ErrMalformedTable, i, i-1)
		}
	}
	return nil
}
