// Package config loads ecotrack settings from ~/.ecotrack/config.yaml and
// ECOTRACK_* environment variables.
//
// Precedence, lowest first: built-in defaults, the global config file, an
// optional overlay file, environment variables. CLI flags are applied by the
// commands themselves on top of the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "ECOTRACK"

const configFileName = "config.yaml"

// Config is the complete ecotrack configuration.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	History    HistoryConfig    `yaml:"history"`
	AirQuality AirQualityConfig `yaml:"air_quality" split_words:"true"`
	Location   LocationConfig   `yaml:"location"`

	configPath string
	loadErr    error
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" split_words:"true" validate:"oneof=table json ndjson"`
}

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	Level  string `yaml:"level"  validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
	File   string `yaml:"file,omitempty"`
}

// HistoryConfig selects where calculations are saved.
type HistoryConfig struct {
	Backend string `yaml:"backend" validate:"oneof=json sqlite memory"`
	Path    string `yaml:"path,omitempty"`
}

// AirQualityConfig configures the OpenAQ provider.
type AirQualityConfig struct {
	BaseURL      string        `yaml:"base_url"          split_words:"true" validate:"required,url"`
	APIKey       string        `yaml:"api_key,omitempty" split_words:"true"`
	RadiusMeters int           `yaml:"radius_meters"     split_words:"true" validate:"min=1,max=100000"`
	Limit        int           `yaml:"limit"                                validate:"min=1,max=100"`
	Timeout      time.Duration `yaml:"timeout"                              validate:"min=1s"`
}

// LocationConfig is a fallback position used when none is given on the
// command line. Both coordinates must be set for it to apply.
type LocationConfig struct {
	Latitude  *float64 `yaml:"latitude,omitempty"  validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `yaml:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
}

// IsSet reports whether both coordinates are configured.
func (l LocationConfig) IsSet() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	return &Config{
		Output: OutputConfig{DefaultFormat: "table"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		History: HistoryConfig{Backend: "json"},
		AirQuality: AirQualityConfig{
			BaseURL:      "https://api.openaq.org",
			RadiusMeters: 10000, //nolint:mnd // 10 km search radius.
			Limit:        1,
			Timeout:      10 * time.Second, //nolint:mnd // Provider timeout.
		},
	}
}

// New returns the effective configuration: defaults, then the global config
// file, then environment overrides. It never fails; a problem reading the
// file is reported by LoadErr and the remaining layers still apply.
func New() *Config {
	cfg := Default()

	dir, err := GetConfigDir()
	if err != nil {
		cfg.loadErr = err
		return cfg
	}
	cfg.configPath = filepath.Join(dir, configFileName)

	if err = cfg.loadFile(cfg.configPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		cfg.loadErr = err
	}
	if err = cfg.applyEnv(); err != nil {
		cfg.loadErr = errors.Join(cfg.loadErr, err)
	}
	return cfg
}

// NewFromFile returns the defaults overlaid with the global config file
// only. Edits saved from it do not capture environment overrides. A
// missing file yields the defaults.
func NewFromFile() (*Config, error) {
	cfg := Default()

	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	cfg.configPath = filepath.Join(dir, configFileName)

	if err = cfg.loadFile(cfg.configPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return cfg, nil
}

// Load reads path strictly: a missing, malformed or invalid file is an error.
// Environment overrides are applied as in New.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadErr returns the error, if any, encountered while New read the config
// file or environment.
func (c *Config) LoadErr() error {
	return c.loadErr
}

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("%w: environment: %w", ErrInvalidValue, err)
	}
	return nil
}

// Save writes the configuration as YAML to ConfigPath, creating the
// directory if needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return err
		}
		c.configPath = filepath.Join(dir, configFileName)
	}

	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	tmp := c.configPath + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if err = os.Rename(tmp, c.configPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}

//nolint:gochecknoglobals // validator caches struct metadata; one instance is the documented usage.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints and that the
// location is either fully set or unset.
func (c *Config) Validate() error {
	if err := c.validateFields(); err != nil {
		return err
	}
	if (c.Location.Latitude == nil) != (c.Location.Longitude == nil) {
		return fmt.Errorf("%w: location requires both latitude and longitude", ErrInvalidValue)
	}
	return nil
}

func (c *Config) validateFields() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidValue, fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("%w: %w", ErrInvalidValue, err)
}

// HistoryPath returns the store location, defaulting by backend to
// history.json or history.db in the config directory.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	if c.History.Backend == "sqlite" {
		return filepath.Join(dir, "history.db")
	}
	return filepath.Join(dir, "history.json")
}
