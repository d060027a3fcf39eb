package aqi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcentrationToIndex(t *testing.T) {
	tests := []struct {
		name  string
		c     float64
		table Table
		want  float64
	}{
		{name: "pm25 zero", c: 0, table: PM25Table, want: 0},
		{name: "pm25 top of good", c: 12.0, table: PM25Table, want: 50},
		{name: "pm25 bottom of moderate", c: 12.1, table: PM25Table, want: 51},
		{name: "pm25 top of moderate", c: 35.4, table: PM25Table, want: 100},
		{name: "pm25 mid good", c: 6.0, table: PM25Table, want: 25},
		{name: "pm25 top of table", c: 500.4, table: PM25Table, want: 500},
		{name: "pm25 clamp high", c: 600, table: PM25Table, want: 500},
		{name: "pm25 clamp low", c: -5, table: PM25Table, want: 0},
		{name: "pm25 between ranges clamps high", c: 12.05, table: PM25Table, want: 500},
		{name: "pm10 zero", c: 0, table: PM10Table, want: 0},
		{name: "pm10 top of good", c: 54, table: PM10Table, want: 50},
		{name: "pm10 top of moderate", c: 154, table: PM10Table, want: 100},
		{name: "pm10 top of table", c: 604, table: PM10Table, want: 500},
		{name: "pm10 between ranges clamps high", c: 54.5, table: PM10Table, want: 500},
		{name: "pm10 bottom of moderate", c: 55, table: PM10Table, want: 51},
		{name: "pm10 clamp high", c: 1000, table: PM10Table, want: 500},
		{name: "empty table", c: 10, table: Table{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConcentrationToIndex(tt.c, tt.table)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConcentrationToIndex_FirstMatchWins(t *testing.T) {
	overlapping := Table{
		{CLow: 0, CHigh: 10, ILow: 0, IHigh: 10},
		{CLow: 5, CHigh: 20, ILow: 100, IHigh: 200},
	}
	assert.InDelta(t, 7.0, ConcentrationToIndex(7, overlapping), 1e-9)
	assert.InDelta(t, 160.0, ConcentrationToIndex(14, overlapping), 1e-9)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		readings     Readings
		wantIndex    int
		wantDominant Pollutant
		wantCategory Category
	}{
		{
			name:         "pm25 moderate",
			readings:     Readings{PM25: 35.4},
			wantIndex:    100,
			wantDominant: PM25,
			wantCategory: Moderate,
		},
		{
			name:         "pm10 only",
			readings:     Readings{PM10: 200},
			wantIndex:    123,
			wantDominant: PM10,
			wantCategory: UnhealthySensitive,
		},
		{
			name:         "pm10 dominates",
			readings:     Readings{PM25: 5, PM10: 160},
			wantIndex:    103,
			wantDominant: PM10,
			wantCategory: UnhealthySensitive,
		},
		{
			name:         "pm25 dominates",
			readings:     Readings{PM25: 60, PM10: 40},
			wantIndex:    153,
			wantDominant: PM25,
			wantCategory: Unhealthy,
		},
		{
			name:         "tie goes to pm25",
			readings:     Readings{PM25: 12.0, PM10: 54},
			wantIndex:    50,
			wantDominant: PM25,
			wantCategory: Good,
		},
		{
			name:         "zero pm25 only",
			readings:     Readings{PM25: 0},
			wantIndex:    0,
			wantDominant: PM25,
			wantCategory: Good,
		},
		{
			name:         "hazardous",
			readings:     Readings{PM25: 900},
			wantIndex:    500,
			wantDominant: PM25,
			wantCategory: Hazardous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compute(tt.readings)
			require.True(t, ok)
			assert.Equal(t, tt.wantIndex, got.Index)
			assert.Equal(t, tt.wantDominant, got.Dominant)
			assert.Equal(t, tt.wantCategory, got.Category)
		})
	}
}

func TestCompute_NoData(t *testing.T) {
	for name, r := range map[string]Readings{
		"nil":          nil,
		"empty":        {},
		"other params": {Pollutant("o3"): 40},
		"nan pm25":     {PM25: math.NaN()},
		"infinite":     {PM25: math.Inf(1), PM10: math.Inf(-1)},
	} {
		t.Run(name, func(t *testing.T) {
			got, ok := Compute(r)
			assert.False(t, ok)
			assert.Equal(t, None, got.Dominant)
			assert.Nil(t, got.PM25Index)
			assert.Nil(t, got.PM10Index)
		})
	}
}

func TestCompute_SkipsNonFiniteReading(t *testing.T) {
	got, ok := Compute(Readings{PM25: math.NaN(), PM10: 20})
	require.True(t, ok)
	assert.Nil(t, got.PM25)
	assert.Nil(t, got.PM25Index)
	assert.Equal(t, PM10, got.Dominant)
	assert.Equal(t, 19, got.Index)
	assert.Equal(t, Good, got.Category)
}

func TestCompute_KeepsSourceValues(t *testing.T) {
	got, ok := Compute(Readings{PM25: 35.4, PM10: 20})
	require.True(t, ok)
	require.NotNil(t, got.PM25)
	require.NotNil(t, got.PM10)
	assert.InDelta(t, 35.4, *got.PM25, 1e-12)
	assert.InDelta(t, 20.0, *got.PM10, 1e-12)
	require.NotNil(t, got.PM10Index)
	assert.Equal(t, 19, *got.PM10Index)
}

func TestCompute_Idempotent(t *testing.T) {
	r := Readings{PM25: 42.7, PM10: 88}
	a, okA := Compute(r)
	b, okB := Compute(r)
	assert.Equal(t, okA, okB)
	assert.Equal(t, a, b)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		index int
		want  Category
	}{
		{0, Good}, {50, Good}, {51, Moderate}, {100, Moderate},
		{101, UnhealthySensitive}, {150, UnhealthySensitive},
		{151, Unhealthy}, {200, Unhealthy},
		{201, VeryUnhealthy}, {300, VeryUnhealthy},
		{301, Hazardous}, {500, Hazardous},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.index), "index %d", tt.index)
	}
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Unhealthy for Sensitive", UnhealthySensitive.Label())
	assert.Equal(t, "Very Unhealthy", VeryUnhealthy.Label())
	assert.Equal(t, "Hazardous", Hazardous.Label())
	assert.Equal(t, "Category(9)", Category(9).String())
}

func TestParsePollutant(t *testing.T) {
	p, ok := ParsePollutant("PM2.5")
	assert.True(t, ok)
	assert.Equal(t, PM25, p)

	p, ok = ParsePollutant("pm10")
	assert.True(t, ok)
	assert.Equal(t, PM10, p)

	_, ok = ParsePollutant("no2")
	assert.False(t, ok)
}

func TestTable_Validate(t *testing.T) {
	require.NoError(t, PM25Table.Validate())
	require.NoError(t, PM10Table.Validate())

	assert.ErrorIs(t, Table{}.Validate(), ErrEmptyTable)
	assert.ErrorIs(t, Table{{CLow: 10, CHigh: 5}}.Validate(), ErrMalformedTable)
	assert.ErrorIs(t, Table{
		{CLow: 0, CHigh: 10, ILow: 0, IHigh: 50},
		{CLow: 8, CHigh: 20, ILow: 51, IHigh: 100},
	}.Validate(), ErrMalformedTable)
}

func TestRoundIndex(t *testing.T) {
	assert.Equal(t, 51, roundIndex(50.5))
	assert.Equal(t, 0, roundIndex(math.NaN()))
}

// BenchmarkCompute benchmarks a lookup with both particulates present.
func BenchmarkCompute(b *testing.B) {
	b.ReportAllocs()
	r := Readings{PM25: 35.5, PM10: 160}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := Compute(r); !ok {
			b.Fatal("expected an index")
		}
	}
}
