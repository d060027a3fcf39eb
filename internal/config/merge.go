package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names understood by MergeYAML.
const (
	keyOutput     = "output"
	keyLogging    = "logging"
	keyHistory    = "history"
	keyAirQuality = "air_quality"
	keyLocation   = "location"
)

// NewWithOverlay returns New() with the file at overlayPath merged on top and environment overrides re-applied so they keep precedence.
// An empty overlayPath behaves like New.
func NewWithOverlay(overlayPath string) (*Config, error) {
	cfg := New()
	if overlayPath == "" {
		return cfg, nil
	}
	if err := MergeYAML(cfg, overlayPath); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeYAML loads a YAML file and merges it onto target section by
// section. Fields the overlay does not mention keep their current value;
// unknown top-level keys are ignored.
func MergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in MergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// unmarshalSection decodes one section over the current values, so only
// the fields the overlay names change.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyOutput:
		return node.Decode(&target.Output)
	case keyLogging:
		return node.Decode(&target.Logging)
	case keyHistory:
		return node.Decode(&target.History)
	case keyAirQuality:
		return node.Decode(&target.AirQuality)
	case keyLocation:
		return node.Decode(&target.Location)
	default:
		return nil
	}
}
