// Package config loads tool configuration from a YAML file, layering
// file values over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/codeGROOVE-dev/namehunt/pkg/result"
	"github.com/codeGROOVE-dev/namehunt/pkg/score"
)

// Config is the top-level configuration structure.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Google GoogleConfig `yaml:"google"`
	Cache  CacheConfig  `yaml:"cache"`
	Score  score.Params `yaml:"score"`
}

// SearchConfig controls which backends run and how much output to keep.
type SearchConfig struct {
	MaxResults       int  `yaml:"max_results"`
	EnableGoogle     bool `yaml:"enable_google"`
	EnableDuckDuckGo bool `yaml:"enable_duckduckgo"`
}

// GoogleConfig holds Custom Search API credentials. Values set here take
// precedence over the GOOGLE_API_KEY and GOOGLE_CSE_ID environment
// variables.
type GoogleConfig struct {
	APIKey string `yaml:"api_key"`
	CSEID  string `yaml:"cse_id"`
}

// CacheConfig controls the HTTP response cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	TTLHours int    `yaml:"ttl_hours"`
	Dir      string `yaml:"dir"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			MaxResults:       25,
			EnableGoogle:     true,
			EnableDuckDuckGo: true,
		},
		Cache: CacheConfig{
			Enabled:  true,
			TTLHours: 168,
		},
		Score: score.DefaultParams(),
	}
}

// DefaultPath returns the default config file location,
// ~/.config/namehunt/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "namehunt", "config.yaml")
}

// Load reads configuration from path. An empty path means the default
// location. A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks for values that would make a search misbehave.
func (c *Config) Validate() error {
	if c.Search.MaxResults < 1 {
		return fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if !c.Search.EnableGoogle && !c.Search.EnableDuckDuckGo {
		return errors.New("at least one search backend must be enabled")
	}
	if c.Cache.TTLHours < 0 {
		return fmt.Errorf("cache.ttl_hours must not be negative, got %d", c.Cache.TTLHours)
	}
	if c.Score.UsernameThreshold < 0 || c.Score.UsernameThreshold > 1 {
		return fmt.Errorf("score.username_threshold must be in [0, 1], got %v", c.Score.UsernameThreshold)
	}
	if c.Score.TextThreshold < 0 || c.Score.TextThreshold > 1 {
		return fmt.Errorf("score.text_threshold must be in [0, 1], got %v", c.Score.TextThreshold)
	}
	for platform, weight := range c.Score.PlatformWeights {
		if weight < 0 {
			return fmt.Errorf("score.platform_weights.%s must not be negative, got %v", platform, weight)
		}
	}
	if _, ok := c.Score.PlatformWeights[result.PlatformGeneric]; !ok && len(c.Score.PlatformWeights) > 0 {
		return errors.New("score.platform_weights must include a generic entry")
	}
	return nil
}
