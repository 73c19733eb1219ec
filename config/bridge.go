package config

import (
	nethttp "net/http"

	"github.com/gomez1112/eznetworking/httpclient"
	"github.com/gomez1112/eznetworking/logger"
	"github.com/gomez1112/eznetworking/retry"
)

// Policy converts the retry section into a retry policy.
func (c *RetryConfig) Policy() retry.Policy {
	return retry.Policy{
		MaxAttempts:  c.Attempts,
		InitialDelay: c.Delay.Initial,
		MaxDelay:     c.Delay.Max,
		Multiplier:   c.Multiplier,
		Jitter:       c.Jitter,
	}
}

// NewLogger builds a logger from the log section.
func (c *LogConfig) NewLogger() logger.Logger {
	return logger.New(c.Level, c.Pretty)
}

// NewClient assembles a fetch client from the configuration. The log
// argument may be nil to build one from the log section.
func NewClient(cfg *Config, log logger.Logger) httpclient.Client {
	if log == nil {
		log = cfg.Log.NewLogger()
	}

	b := httpclient.NewBuilder().
		WithLogger(log).
		WithHTTPClient(&nethttp.Client{Timeout: cfg.HTTP.Timeout})

	for key, value := range cfg.HTTP.Headers {
		b.WithDefaultHeader(key, value)
	}

	if cfg.Cache.Enabled {
		b.WithCache(cfg.Cache.TTL)
	}

	return b.Build()
}
