package config

import (
	"time"

	"roamscope/internal/domain"
)

// Config is the root configuration structure
type Config struct {
	Version   int                        `yaml:"version"`
	Server    ServerConfig               `yaml:"server"`
	Database  DatabaseConfig             `yaml:"database"`
	Analysis  AnalysisConfig             `yaml:"analysis"`
	Watch     WatchConfig                `yaml:"watch"`
	PiFetch   PiFetchConfig              `yaml:"pi_fetch"`
	Kafka     KafkaConfig                `yaml:"kafka"`
	Baselines []domain.ReferenceBaseline `yaml:"baselines,omitempty"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AnalysisConfig tunes the analysis pipeline
type AnalysisConfig struct {
	// TargetSSID selects the network under study; observations are
	// matched by case-insensitive substring. Empty matches everything.
	TargetSSID        string    `yaml:"target_ssid"`
	HandoverThreshold float64   `yaml:"handover_threshold"`
	TopNetworks       int       `yaml:"top_networks"`
	StaleAfter        *Duration `yaml:"stale_after,omitempty"`
}

// WatchConfig holds drop-directory auto-import settings
type WatchConfig struct {
	Enabled  bool      `yaml:"enabled"`
	Dir      string    `yaml:"dir"`
	Debounce *Duration `yaml:"debounce,omitempty"`
}

// PiFetchConfig holds SSH settings for pulling captures off the
// survey Pi. The key path is a reference, never the key itself.
type PiFetchConfig struct {
	Enabled   bool      `yaml:"enabled"`
	Host      string    `yaml:"host"`
	Port      int       `yaml:"port"`
	User      string    `yaml:"user"`
	KeyPath   string    `yaml:"key_path"`
	RemoteDir string    `yaml:"remote_dir"`
	Timeout   *Duration `yaml:"timeout,omitempty"`
}

// KafkaConfig holds optional analysis-event publishing settings
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers,omitempty"`
	Topic   string   `yaml:"topic"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
