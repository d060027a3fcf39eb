package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// field binds a dotted key such as "history.backend" to a Config field.
type field struct {
	get    func(c *Config) string
	set    func(c *Config, v string) error
	secret bool
}

//nolint:gochecknoglobals // Static key table.
var fields = map[string]field{
	"output.default_format": stringField(func(c *Config) *string { return &c.Output.DefaultFormat }),
	"logging.level":         stringField(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format":        stringField(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":          stringField(func(c *Config) *string { return &c.Logging.File }),
	"history.backend":       stringField(func(c *Config) *string { return &c.History.Backend }),
	"history.path":          stringField(func(c *Config) *string { return &c.History.Path }),
	"air_quality.base_url":  stringField(func(c *Config) *string { return &c.AirQuality.BaseURL }),
	"air_quality.api_key": {
		get:    func(c *Config) string { return c.AirQuality.APIKey },
		set:    func(c *Config, v string) error { c.AirQuality.APIKey = v; return nil },
		secret: true,
	},
	"air_quality.radius_meters": intField(func(c *Config) *int { return &c.AirQuality.RadiusMeters }),
	"air_quality.limit":         intField(func(c *Config) *int { return &c.AirQuality.Limit }),
	"air_quality.timeout": {
		get: func(c *Config) string { return c.AirQuality.Timeout.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			c.AirQuality.Timeout = d
			return nil
		},
	},
	"location.latitude":  coordField(func(c *Config) **float64 { return &c.Location.Latitude }),
	"location.longitude": coordField(func(c *Config) **float64 { return &c.Location.Longitude }),
}

func stringField(ptr func(c *Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error { *ptr(c) = v; return nil },
	}
}

func intField(ptr func(c *Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*ptr(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			*ptr(c) = n
			return nil
		},
	}
}

// coordField accepts an empty value to clear the coordinate.
func coordField(ptr func(c *Config) **float64) field {
	return field{
		get: func(c *Config) string {
			if p := *ptr(c); p != nil {
				return strconv.FormatFloat(*p, 'f', -1, 64)
			}
			return ""
		},
		set: func(c *Config, v string) error {
			if v == "" {
				*ptr(c) = nil
				return nil
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			*ptr(c) = &f
			return nil
		},
	}
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the value of a dotted key.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[normalizeKey(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set parses value into the field named by key. The change is rejected and
// the previous value kept when the field would not validate. Cross-field
// rules are left to Validate so a location can be set one coordinate at a
// time.
func (c *Config) Set(key, value string) error {
	k := normalizeKey(key)
	f, ok := fields[k]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	prev := f.get(c)
	if err := f.set(c, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidValue, key, err)
	}
	if err := c.validateFields(); err != nil {
		_ = f.set(c, prev)
		return err
	}
	return nil
}

// List returns all keys and values. Secrets are masked.
func (c *Config) List() map[string]string {
	out := make(map[string]string, len(fields))
	for k, f := range fields {
		v := f.get(c)
		if f.secret && v != "" {
			v = "********"
		}
		out[k] = v
	}
	return out
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}
