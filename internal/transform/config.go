package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config construction errors. These are contract violations: a
// transformer cannot be built from a config missing its required
// sections.
var (
	ErrMissingCollege  = errors.New("institution config missing required section: college")
	ErrMissingFeatures = errors.New("institution config missing required section: features")
)

// Config is a parsed institution configuration document. College and
// Features are required; DataMappings drives the mapping-based section
// transform and may be empty for transformers that hardcode their
// field layout.
type Config struct {
	College      map[string]any
	Features     map[string]any
	DataMappings map[string]any
}

// ParseConfig decodes an institution configuration document and checks
// the required sections are present.
func ParseConfig(data []byte) (*Config, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse institution config: %w", err)
	}

	college, ok := raw["college"].(map[string]any)
	if !ok {
		return nil, ErrMissingCollege
	}
	features, ok := raw["features"].(map[string]any)
	if !ok {
		return nil, ErrMissingFeatures
	}

	cfg := &Config{College: college, Features: features}
	if mappings, ok := raw["data_mappings"].(map[string]any); ok {
		cfg.DataMappings = mappings
	} else {
		cfg.DataMappings = map[string]any{}
	}
	return cfg, nil
}

// LoadConfig reads and parses an institution configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read institution config: %w", err)
	}
	return ParseConfig(data)
}

// SectionMappings returns the "section" subtree of the data mappings,
// or an empty map when the config does not define one.
func (c *Config) SectionMappings() map[string]any {
	if m, ok := c.DataMappings["section"].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
