package cli_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/aqi"
)

const berlinLatest = `{
  "results": [{
    "location": "Berlin Mitte",
    "city": "Berlin",
    "country": "DE",
    "coordinates": {"latitude": 52.52, "longitude": 13.405},
    "measurements": [
      {"parameter": "pm25", "value": 35.5, "unit": "µg/m³"},
      {"parameter": "pm10", "value": 40, "unit": "µg/m³"},
      {"parameter": "no2", "value": 12, "unit": "µg/m³"}
    ]
  }]
}`

// newOpenAQServer serves body for /v2/latest and reports each query.
func newOpenAQServer(t *testing.T, status int, body string) (*httptest.Server, <-chan url.Values) {
	t.Helper()
	queries := make(chan url.Values, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/latest" {
			http.NotFound(w, r)
			return
		}
		queries <- r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("ECOTRACK_AIR_QUALITY_BASE_URL", srv.URL)
	return srv, queries
}

type aqiReportJSON struct {
	Station struct {
		Name string `json:"name"`
		City string `json:"city"`
	} `json:"station"`
	Result struct {
		Index     int    `json:"index"`
		Dominant  string `json:"dominant_pollutant"`
		Category  string `json:"category"`
		PM25Index *int   `json:"pm25_index"`
	} `json:"result"`
	HasIndex bool `json:"has_index"`
}

func TestAQI_JSON(t *testing.T) {
	useTempHome(t)
	_, queries := newOpenAQServer(t, http.StatusOK, berlinLatest)

	stdout, _, err := execute(t, "aqi", "--lat", "52.52", "--lon", "13.405", "--radius", "5000", "--output", "json")
	require.NoError(t, err)

	q := <-queries
	assert.Equal(t, "52.5200,13.4050", q.Get("coordinates"))
	assert.Equal(t, "5000", q.Get("radius"))
	assert.Equal(t, "1", q.Get("limit"), "limit falls back to config")

	var got aqiReportJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.True(t, got.HasIndex)
	assert.Equal(t, "Berlin Mitte", got.Station.Name)
	assert.Equal(t, 101, got.Result.Index)
	assert.Equal(t, aqi.UnhealthySensitive.String(), got.Result.Category)
}

func TestAQI_PlainTable(t *testing.T) {
	useTempHome(t)
	newOpenAQServer(t, http.StatusOK, berlinLatest)

	stdout, _, err := execute(t, "aqi", "--lat", "52.52", "--lon", "13.405")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Berlin, DE")
	assert.Contains(t, stdout, "101 (Unhealthy for Sensitive)")
	assert.Contains(t, stdout, "PM2.5")
}

func TestAQI_NoParticulateData(t *testing.T) {
	useTempHome(t)
	newOpenAQServer(t, http.StatusOK, `{"results":[{"location":"Quiet","measurements":[{"parameter":"o3","value":30}]}]}`)

	stdout, _, err := execute(t, "aqi", "--lat", "1", "--lon", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No PM2.5 or PM10 data")
	assert.NotContains(t, stdout, "Good")

	stdout, _, err = execute(t, "aqi", "--lat", "1", "--lon", "2", "--output", "json")
	require.NoError(t, err)
	var got aqiReportJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.False(t, got.HasIndex)
	assert.Equal(t, "Quiet", got.Station.Name)
	assert.NotContains(t, stdout, `"result"`)
	assert.NotContains(t, stdout, `"category"`)
}

func TestAQI_UsesConfiguredLocation(t *testing.T) {
	useTempHome(t)
	_, queries := newOpenAQServer(t, http.StatusOK, berlinLatest)
	t.Setenv("ECOTRACK_LOCATION_LATITUDE", "40.7128")
	t.Setenv("ECOTRACK_LOCATION_LONGITUDE", "-74.006")

	_, _, err := execute(t, "aqi")
	require.NoError(t, err)
	assert.Equal(t, "40.7128,-74.0060", (<-queries).Get("coordinates"))
}

func TestAQI_Errors(t *testing.T) {
	t.Run("no location", func(t *testing.T) {
		useTempHome(t)
		newOpenAQServer(t, http.StatusOK, berlinLatest)
		_, _, err := execute(t, "aqi")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--lat and --lon")
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		useTempHome(t)
		newOpenAQServer(t, http.StatusOK, berlinLatest)
		_, _, err := execute(t, "aqi", "--lat", "95", "--lon", "0")
		require.Error(t, err)
	})

	t.Run("lat without lon", func(t *testing.T) {
		useTempHome(t)
		_, _, err := execute(t, "aqi", "--lat", "10")
		require.Error(t, err)
	})

	t.Run("provider failure", func(t *testing.T) {
		useTempHome(t)
		newOpenAQServer(t, http.StatusInternalServerError, `{}`)
		_, _, err := execute(t, "aqi", "--lat", "1", "--lon", "2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch air quality")
	})

	t.Run("no stations", func(t *testing.T) {
		useTempHome(t)
		newOpenAQServer(t, http.StatusOK, `{"results":[]}`)
		_, _, err := execute(t, "aqi", "--lat", "1", "--lon", "2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "larger --radius")
	})
}

func TestAQI_Legend(t *testing.T) {
	useTempHome(t)
	stdout, _, err := execute(t, "aqi", "--legend")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Hazardous")
}
