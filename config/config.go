// Package config provides configuration loading and management for tagripper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/tagripper/index"
	"github.com/viant/tagripper/token"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tagripper configuration
type Config struct {
	// OnlyTags is the tag allow-list (empty = accept all tags)
	OnlyTags []string `yaml:"only_tags"`
	// Include lists doublestar patterns of files to scan, relative to the scanned root
	Include []string `yaml:"include"`
	// Exclude lists doublestar patterns of files to skip
	Exclude []string `yaml:"exclude"`
	// Strict fails a file on its first illegal transition instead of skipping the token; nil inherits
	Strict *bool `yaml:"strict,omitempty"`
	// Concurrency is the number of files scanned in parallel
	Concurrency int `yaml:"concurrency"`
	// CacheSize is the number of scan results cached by content hash
	CacheSize int `yaml:"cache_size"`
	// Format is the report format: yaml or json
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OnlyTags:    nil, // Accept all
		Include:     index.DefaultInclude(),
		Exclude:     []string{"vendor/**", ".git/**"},
		Concurrency: 4,
		CacheSize:   1024,
		Format:      "yaml",
	}
}

// IsStrict reports whether strict mode is set
func (c *Config) IsStrict() bool {
	return c.Strict != nil && *c.Strict
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if len(c.Include) == 0 {
		return fmt.Errorf("include requires at least one pattern")
	}
	for _, pattern := range append(append([]string{}, c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid pattern: %q", pattern)
		}
	}
	for _, name := range c.OnlyTags {
		if tag, ok := token.ParseTag("@" + name + ": x"); !ok || tag.Name != name {
			return fmt.Errorf("invalid tag name: %q", name)
		}
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache_size must be positive")
	}
	switch c.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("unsupported format: %q", c.Format)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	config, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	ret := DefaultConfig()
	ret.Merge(config)
	return ret, nil
}

func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if len(other.OnlyTags) > 0 {
		c.OnlyTags = other.OnlyTags
	}
	if len(other.Include) > 0 {
		c.Include = other.Include
	}
	if len(other.Exclude) > 0 {
		c.Exclude = other.Exclude
	}
	if other.Strict != nil {
		strict := *other.Strict
		c.Strict = &strict
	}
	if other.Concurrency != 0 {
		c.Concurrency = other.Concurrency
	}
	if other.CacheSize != 0 {
		c.CacheSize = other.CacheSize
	}
	if other.Format != "" {
		c.Format = other.Format
	}
}
