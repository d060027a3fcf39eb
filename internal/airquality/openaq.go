package airquality

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/pkg/version"
)

// DefaultBaseURL is the public OpenAQ API.
const DefaultBaseURL = "https://api.openaq.org"

// DefaultTimeout bounds a single lookup.
const DefaultTimeout = 10 * time.Second

const (
	latestPath      = "/v2/latest"
	apiKeyHeader    = "X-API-Key"
	maxResponseBody = 4 << 20
	breakerFailures = 5
)

// OpenAQClient is a Provider backed by the OpenAQ v2 "latest" endpoint.
//
// Each Nearest call issues exactly one request. Calls run through a circuit
// breaker so that a dead upstream fails fast instead of waiting out the
// timeout on every invocation.
type OpenAQClient struct {
	baseURL   string
	apiKey    string
	userAgent string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[*http.Response]
}

// OpenAQOption configures an OpenAQClient.
type OpenAQOption func(*OpenAQClient)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) OpenAQOption {
	return func(c *OpenAQClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithAPIKey sends key in the X-API-Key header.
func WithAPIKey(key string) OpenAQOption {
	return func(c *OpenAQClient) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) OpenAQOption {
	return func(c *OpenAQClient) {
		c.client = hc
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(cb *gobreaker.CircuitBreaker[*http.Response]) OpenAQOption {
	return func(c *OpenAQClient) {
		c.breaker = cb
	}
}

// NewOpenAQClient creates a client with a 10s timeout and a breaker that
// opens after five consecutive failures.
func NewOpenAQClient(opts ...OpenAQOption) *OpenAQClient {
	c := &OpenAQClient{
		baseURL:   DefaultBaseURL,
		userAgent: "ecotrack/" + version.GetVersion(),
		client:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = NewBreaker("openaq")
	}
	return c
}

// NewBreaker returns the circuit breaker settings used for provider calls.
func NewBreaker(name string) *gobreaker.CircuitBreaker[*http.Response] {
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second, //nolint:mnd // Counting window.
		Timeout:     30 * time.Second, //nolint:mnd // Open-state cool down.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
	})
}

// Nearest implements Provider.
func (c *OpenAQClient) Nearest(ctx context.Context, q Query) (*Station, error) {
	q = q.withDefaults()
	log := logging.FromContext(ctx)

	req, err := c.newRequest(ctx, q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		r, doErr := c.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if r.StatusCode < 200 || r.StatusCode >= 300 {
			return r, fmt.Errorf("upstream returned %d", r.StatusCode)
		}
		return r, nil
	})
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		log.Debug().
			Str("component", "airquality").
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("openaq request failed")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open: %w", ErrNetwork, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	var payload latestResponse
	if decErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&payload); decErr != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrNetwork, decErr)
	}

	log.Debug().
		Str("component", "airquality").
		Int("results", len(payload.Results)).
		Dur("duration", time.Since(start)).
		Msg("openaq request completed")

	if len(payload.Results) == 0 {
		return nil, ErrNoDataFound
	}
	station := payload.Results[0].toStation()
	return &station, nil
}

func (c *OpenAQClient) newRequest(ctx context.Context, q Query) (*http.Request, error) {
	params := url.Values{}
	params.Set("coordinates", q.Coordinates.String())
	params.Set("radius", strconv.Itoa(q.RadiusMeters))
	params.Set("limit", strconv.Itoa(q.Limit))

	endpoint := c.baseURL + latestPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Request-Id", traceID)
	}
	return req, nil
}

type latestResponse struct {
	Results []latestResult `json:"results"`
}

type latestResult struct {
	Location     string               `json:"location"`
	Name         string               `json:"name"`
	City         string               `json:"city"`
	Country      string               `json:"country"`
	Coordinates  *latestCoordinates   `json:"coordinates"`
	Measurements []latestMeasurements `json:"measurements"`
}

type latestCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type latestMeasurements struct {
	Parameter string   `json:"parameter"`
	Value     *float64 `json:"value"`
	Unit      string   `json:"unit"`
}

func (r latestResult) toStation() Station {
	s := Station{
		Name:         r.Location,
		City:         r.City,
		Country:      r.Country,
		Measurements: make(map[string]float64, len(r.Measurements)),
	}
	if s.Name == "" {
		s.Name = r.Name
	}
	if r.Coordinates != nil {
		s.Coordinates = Coordinates{Latitude: r.Coordinates.Latitude, Longitude: r.Coordinates.Longitude}
	}
	// Later duplicates overwrite earlier ones.
	for _, m := range r.Measurements {
		if m.Parameter == "" || m.Value == nil {
			continue
		}
		s.Measurements[m.Parameter] = *m.Value
	}
	return s
}
