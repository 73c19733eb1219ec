package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Validate checks the configuration for internal consistency. It returns
// an error describing the first failed validation, or nil if valid.
func Validate(cfg *Config) error {
	if err := validateHTTP(&cfg.HTTP); err != nil {
		return fmt.Errorf("http config: %w", err)
	}

	if err := validateRetry(&cfg.Retry); err != nil {
		return fmt.Errorf("retry config: %w", err)
	}

	if err := validateCache(&cfg.Cache); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	return nil
}

func validateHTTP(cfg *HTTPConfig) error {
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

func validateRetry(cfg *RetryConfig) error {
	if cfg.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1")
	}

	if cfg.Delay.Initial < 0 {
		return fmt.Errorf("initial delay must not be negative")
	}

	if cfg.Delay.Max < cfg.Delay.Initial {
		return fmt.Errorf("max delay must be at least the initial delay")
	}

	if cfg.Multiplier < 1 {
		return fmt.Errorf("multiplier must be at least 1")
	}

	if cfg.Jitter < 0 || cfg.Jitter > 1 {
		return fmt.Errorf("jitter must be within [0, 1]")
	}

	return nil
}

func validateCache(cfg *CacheConfig) error {
	if cfg.Enabled && cfg.TTL <= 0 {
		return fmt.Errorf("ttl must be positive when caching is enabled")
	}
	return nil
}

func validateLog(cfg *LogConfig) error {
	if _, err := zerolog.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}
	return nil
}
