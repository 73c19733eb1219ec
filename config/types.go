package config

import (
	"time"
)

// Config is the top-level configuration for the fetch engine: transport
// settings, retry policy, cache policy, and logging preferences.
type Config struct {
	HTTP  HTTPConfig  `koanf:"http" json:"http" yaml:"http"`
	Retry RetryConfig `koanf:"retry" json:"retry" yaml:"retry"`
	Cache CacheConfig `koanf:"cache" json:"cache" yaml:"cache"`
	Log   LogConfig   `koanf:"log" json:"log" yaml:"log"`
}

// HTTPConfig holds transport settings.
type HTTPConfig struct {
	// Timeout is the per-request deadline of the default transport.
	Timeout time.Duration `koanf:"timeout" json:"timeout" yaml:"timeout"`

	// Headers are sent with every request unless overridden per request.
	Headers map[string]string `koanf:"headers" json:"headers" yaml:"headers"`
}

// RetryConfig holds retry policy settings.
type RetryConfig struct {
	Attempts   int              `koanf:"attempts" json:"attempts" yaml:"attempts"`
	Delay      RetryDelayConfig `koanf:"delay" json:"delay" yaml:"delay"`
	Multiplier float64          `koanf:"multiplier" json:"multiplier" yaml:"multiplier"`
	Jitter     float64          `koanf:"jitter" json:"jitter" yaml:"jitter"`
}

// RetryDelayConfig holds the backoff delay bounds.
type RetryDelayConfig struct {
	Initial time.Duration `koanf:"initial" json:"initial" yaml:"initial"`
	Max     time.Duration `koanf:"max" json:"max" yaml:"max"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled" json:"enabled" yaml:"enabled"`
	TTL     time.Duration `koanf:"ttl" json:"ttl" yaml:"ttl"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Pretty bool   `koanf:"pretty" json:"pretty" yaml:"pretty"`
}
