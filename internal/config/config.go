// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package config

import (
	"time"

	"github.com/tomtom215/orbital/internal/fetch"
)

// Config holds all application configuration.
// Loaded by LoadWithKoanf: defaults, then YAML file, then environment.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	SpaceDevs SpaceDevsConfig `koanf:"spacedevs"`
	NASA      NASAConfig      `koanf:"nasa"`
	Fetch     FetchConfig     `koanf:"fetch"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Probe     ProbeConfig     `koanf:"probe"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development" or "production"
}

// SpaceDevsConfig holds TheSpaceDevs API endpoints.
// Launches are served by a different API version than the other resources.
type SpaceDevsConfig struct {
	LaunchBaseURL string `koanf:"launch_base_url"`
	BaseURL       string `koanf:"base_url"`
}

// NASAConfig holds NASA API settings.
// An empty APIKey is valid at load time; NASA calls fail individually.
type NASAConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
}

// FetchConfig holds the upstream retry policy and client-side limits
type FetchConfig struct {
	MaxRetries        int           `koanf:"max_retries"`
	BaseDelay         time.Duration `koanf:"base_delay"`
	MaxDelay          time.Duration `koanf:"max_delay"`
	RateLimitDefault  time.Duration `koanf:"rate_limit_default"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"` // 0 disables the limiter
	Burst             int           `koanf:"burst"`
}

// BreakerConfig holds circuit breaker settings shared by all upstreams
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// CacheConfig holds response cache settings.
// PersistentPath empty means memory-only caching.
type CacheConfig struct {
	TTL            time.Duration `koanf:"ttl"`
	PersistentPath string        `koanf:"persistent_path"`
	PersistentTTL  time.Duration `koanf:"persistent_ttl"`
}

// SecurityConfig holds inbound request protection settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// ProbeConfig controls the background upstream availability probe
type ProbeConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
	Timeout  time.Duration `koanf:"timeout"`
}

// FetchPolicy converts the fetch section into a retry policy.
func (c *Config) FetchPolicy() fetch.Policy {
	return fetch.Policy{
		MaxRetries:       c.Fetch.MaxRetries,
		BaseDelay:        c.Fetch.BaseDelay,
		MaxDelay:         c.Fetch.MaxDelay,
		RateLimitDefault: c.Fetch.RateLimitDefault,
	}
}

// FetchBreaker converts the breaker section, returning nil when disabled.
func (c *Config) FetchBreaker() *fetch.BreakerConfig {
	if !c.Breaker.Enabled {
		return nil
	}
	return &fetch.BreakerConfig{
		MaxRequests:  c.Breaker.MaxRequests,
		Interval:     c.Breaker.Interval,
		Timeout:      c.Breaker.Timeout,
		MinRequests:  c.Breaker.MinRequests,
		FailureRatio: c.Breaker.FailureRatio,
	}
}

// FetchClientConfig builds the shared fetch client configuration for one upstream.
func (c *Config) FetchClientConfig(name string) fetch.Config {
	return fetch.Config{
		Name:              name,
		Policy:            c.FetchPolicy(),
		Timeout:           c.Fetch.RequestTimeout,
		RequestsPerSecond: c.Fetch.RequestsPerSecond,
		Burst:             c.Fetch.Burst,
		Breaker:           c.FetchBreaker(),
	}
}

// HasNASAKey reports whether NASA endpoints can be served.
func (c *Config) HasNASAKey() bool {
	return c.NASA.APIKey != ""
}

// Load loads configuration using Koanf (defaults, config file, environment).
func Load() (*Config, error) {
	return LoadWithKoanf()
}
