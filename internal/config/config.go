// Package config provides configuration management for Roamscope.
//
// The config file carries deployment identity (where captures land,
// which network is under study, reference baselines); survey knowledge
// lives in the database and can be reset without touching the config.
//
// Config file locations (priority order):
//  1. $ROAMSCOPE_CONFIG
//  2. ./roamscope.yaml
//  3. ~/.config/roamscope/config.yaml
//  4. /etc/roamscope/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"roamscope/internal/domain"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{Path: "./roamscope.db"},
		Analysis: AnalysisConfig{
			HandoverThreshold: domain.DefaultHandoverThreshold,
			TopNetworks:       10,
		},
		Watch:   WatchConfig{Dir: "./drop"},
		PiFetch: PiFetchConfig{Port: 22, User: "pi", RemoteDir: "~/wifi-survey"},
		Kafka:   KafkaConfig{Topic: "roamscope.analysis"},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./roamscope.db"
	}
	if c.Analysis.HandoverThreshold == 0 {
		c.Analysis.HandoverThreshold = domain.DefaultHandoverThreshold
	}
	if c.Analysis.TopNetworks == 0 {
		c.Analysis.TopNetworks = 10
	}
	if c.Watch.Dir == "" {
		c.Watch.Dir = "./drop"
	}
	if c.PiFetch.Port == 0 {
		c.PiFetch.Port = 22
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "roamscope.analysis"
	}
}

// WatchDebounce returns the drop-directory debounce window
func (c *Config) WatchDebounce() time.Duration {
	if c.Watch.Debounce != nil {
		return c.Watch.Debounce.Duration()
	}
	return 2 * time.Second
}

// PiFetchTimeout returns the SSH dial/command timeout
func (c *Config) PiFetchTimeout() time.Duration {
	if c.PiFetch.Timeout != nil {
		return c.PiFetch.Timeout.Duration()
	}
	return 30 * time.Second
}

// BaselineFor looks up the reference baseline for a floor
func (c *Config) BaselineFor(floor string) (domain.ReferenceBaseline, bool) {
	for _, b := range c.Baselines {
		if b.Floor == floor {
			return b, true
		}
	}
	return domain.ReferenceBaseline{}, false
}
