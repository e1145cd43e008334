// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/orbital/config.yaml",
	"/etc/orbital/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Public upstream endpoints.
const (
	DefaultLaunchBaseURL = "https://ll.thespacedevs.com/2.2.0"
	DefaultSpaceDevsURL  = "https://ll.thespacedevs.com/2.3.0"
	DefaultNASABaseURL   = "https://api.nasa.gov"
)

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3857,
			Host:            "0.0.0.0",
			Timeout:         60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		SpaceDevs: SpaceDevsConfig{
			LaunchBaseURL: DefaultLaunchBaseURL,
			BaseURL:       DefaultSpaceDevsURL,
		},
		NASA: NASAConfig{
			APIKey:  "",
			BaseURL: DefaultNASABaseURL,
		},
		Fetch: FetchConfig{
			MaxRetries:        3,
			BaseDelay:         time.Second,
			MaxDelay:          10 * time.Second,
			RateLimitDefault:  30 * time.Second,
			RequestTimeout:    15 * time.Second,
			RequestsPerSecond: 0,
			Burst:             1,
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      2 * time.Minute,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		Cache: CacheConfig{
			TTL:            5 * time.Minute,
			PersistentPath: "",
			PersistentTTL:  6 * time.Hour,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Probe: ProbeConfig{
			Enabled:  true,
			Interval: 5 * time.Minute,
			Timeout:  10 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	return loadFrom(findConfigFile())
}

// LoadFile loads configuration with an explicit YAML file in layer 2.
// An empty path falls back to the normal search.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return LoadWithKoanf()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return loadFrom(path)
}

func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// NASA_API_KEY -> nasa.api_key
	// FETCH_MAX_RETRIES -> fetch.max_retries
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// NASA_API_KEY wins over the browser-style alias when both are set
	if key := os.Getenv("NASA_API_KEY"); key != "" {
		if err := k.Set("nasa.api_key", key); err != nil {
			return nil, fmt.Errorf("failed to set nasa.api_key: %w", err)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// normalize trims trailing slashes so URL joins stay predictable.
func (c *Config) normalize() {
	c.SpaceDevs.LaunchBaseURL = strings.TrimRight(c.SpaceDevs.LaunchBaseURL, "/")
	c.SpaceDevs.BaseURL = strings.TrimRight(c.SpaceDevs.BaseURL, "/")
	c.NASA.BaseURL = strings.TrimRight(c.NASA.BaseURL, "/")
	c.NASA.APIKey = strings.TrimSpace(c.NASA.APIKey)
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":        "server.port",
	"port":             "server.port",
	"http_host":        "server.host",
	"host":             "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Upstream mappings
	"spacedevs_launch_base_url": "spacedevs.launch_base_url",
	"spacedevs_base_url":        "spacedevs.base_url",
	"nasa_api_key":              "nasa.api_key",
	"next_public_nasa_api_key":  "nasa.api_key",
	"nasa_base_url":             "nasa.base_url",

	// Fetch mappings
	"fetch_max_retries":         "fetch.max_retries",
	"fetch_base_delay":          "fetch.base_delay",
	"fetch_max_delay":           "fetch.max_delay",
	"fetch_rate_limit_default":  "fetch.rate_limit_default",
	"fetch_request_timeout":     "fetch.request_timeout",
	"fetch_requests_per_second": "fetch.requests_per_second",
	"fetch_burst":               "fetch.burst",

	// Circuit breaker mappings
	"breaker_enabled":       "breaker.enabled",
	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_min_requests":  "breaker.min_requests",
	"breaker_failure_ratio": "breaker.failure_ratio",

	// Cache mappings
	"cache_ttl":            "cache.ttl",
	"cache_path":           "cache.persistent_path",
	"cache_persistent_ttl": "cache.persistent_ttl",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Probe mappings
	"probe_enabled":  "probe.enabled",
	"probe_interval": "probe.interval",
	"probe_timeout":  "probe.timeout",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - NASA_API_KEY -> nasa.api_key
//   - NEXT_PUBLIC_NASA_API_KEY -> nasa.api_key
//   - FETCH_MAX_RETRIES -> fetch.max_retries
//   - PORT -> server.port
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// never pollute the config.
	return ""
}
