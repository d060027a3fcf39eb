package cli_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardJSON struct {
	Trend           trendJSON      `json:"trend"`
	AirQuality      *aqiReportJSON `json:"air_quality"`
	AirQualityError string         `json:"air_quality_error"`
}

func TestDashboard_CombinesTrendAndAirQuality(t *testing.T) {
	dir := useTempHome(t)
	seedHistory(t, dir, 5, 3)
	_, queries := newOpenAQServer(t, http.StatusOK, berlinLatest)

	stdout, _, err := execute(t, "dashboard", "--lat", "52.52", "--lon", "13.405", "--output", "json")
	require.NoError(t, err)
	<-queries

	var got dashboardJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 2, got.Trend.Entries)
	require.NotNil(t, got.AirQuality)
	assert.Equal(t, 101, got.AirQuality.Result.Index)
	assert.Empty(t, got.AirQualityError)
}

func TestDashboard_AirQualityFailureIsNotFatal(t *testing.T) {
	dir := useTempHome(t)
	seedHistory(t, dir, 4)
	newOpenAQServer(t, http.StatusBadGateway, "")

	stdout, _, err := execute(t, "dashboard", "--lat", "1", "--lon", "2", "--output", "json")
	require.NoError(t, err)

	var got dashboardJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 1, got.Trend.Entries)
	assert.Nil(t, got.AirQuality)
	assert.Contains(t, got.AirQualityError, "failed to fetch air quality")

	stdout, _, err = execute(t, "dashboard", "--lat", "1", "--lon", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Air quality unavailable")
}

func TestDashboard_NoLocationSkipsAirQuality(t *testing.T) {
	dir := useTempHome(t)
	seedHistory(t, dir, 3)

	stdout, _, err := execute(t, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no location set")
	assert.Contains(t, stdout, "Latest:")
}

func TestDashboard_NoParticulateDataHasNoCategory(t *testing.T) {
	dir := useTempHome(t)
	seedHistory(t, dir, 3)
	newOpenAQServer(t, http.StatusOK, `{"results":[{"location":"Quiet","measurements":[{"parameter":"o3","value":30}]}]}`)

	stdout, _, err := execute(t, "dashboard", "--lat", "1", "--lon", "2", "--output", "json")
	require.NoError(t, err)

	var got dashboardJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.NotNil(t, got.AirQuality)
	assert.False(t, got.AirQuality.HasIndex)
	assert.NotContains(t, stdout, `"category"`)
}
