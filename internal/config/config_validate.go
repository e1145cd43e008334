// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateUpstreams(); err != nil {
		return err
	}

	if err := c.validateFetch(); err != nil {
		return err
	}

	if err := c.validateBreaker(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateProbe(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Environment != "" && c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("ENVIRONMENT must be one of: development, production")
	}
	return nil
}

// validateUpstreams validates upstream base URLs.
// The NASA key is intentionally not checked here; NASA calls report it.
func (c *Config) validateUpstreams() error {
	if err := validateHTTPURL(c.SpaceDevs.LaunchBaseURL, "SPACEDEVS_LAUNCH_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.SpaceDevs.BaseURL, "SPACEDEVS_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.NASA.BaseURL, "NASA_BASE_URL"); err != nil {
		return err
	}
	if c.NASA.APIKey != "" && containsPlaceholder(c.NASA.APIKey) {
		return fmt.Errorf("NASA_API_KEY looks like a placeholder value")
	}
	return nil
}

// Fetch bounds
const (
	maxFetchRetries = 10
	maxFetchDelay   = 5 * time.Minute
)

// validateFetch validates the retry policy and client-side limiter
func (c *Config) validateFetch() error {
	f := c.Fetch
	if f.MaxRetries < 1 || f.MaxRetries > maxFetchRetries {
		return fmt.Errorf("FETCH_MAX_RETRIES must be between 1 and %d", maxFetchRetries)
	}
	if f.BaseDelay <= 0 || f.BaseDelay > maxFetchDelay {
		return fmt.Errorf("FETCH_BASE_DELAY must be between 1ns and %v", maxFetchDelay)
	}
	if f.MaxDelay < f.BaseDelay || f.MaxDelay > maxFetchDelay {
		return fmt.Errorf("FETCH_MAX_DELAY must be between FETCH_BASE_DELAY and %v", maxFetchDelay)
	}
	if f.RateLimitDefault <= 0 || f.RateLimitDefault > maxFetchDelay {
		return fmt.Errorf("FETCH_RATE_LIMIT_DEFAULT must be between 1ns and %v", maxFetchDelay)
	}
	if f.RequestTimeout <= 0 {
		return fmt.Errorf("FETCH_REQUEST_TIMEOUT must be positive")
	}
	if f.RequestsPerSecond < 0 {
		return fmt.Errorf("FETCH_REQUESTS_PER_SECOND must not be negative")
	}
	if f.RequestsPerSecond > 0 && f.Burst < 1 {
		return fmt.Errorf("FETCH_BURST must be at least 1 when FETCH_REQUESTS_PER_SECOND is set")
	}
	return nil
}

// validateBreaker validates circuit breaker settings (only if enabled)
func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validateCache validates cache settings
func (c *Config) validateCache() error {
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	if c.Cache.PersistentPath != "" && c.Cache.PersistentTTL <= 0 {
		return fmt.Errorf("CACHE_PERSISTENT_TTL must be positive when CACHE_PATH is set")
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects empty origin entries.
func (c *Config) validateCORS() error {
	for _, origin := range c.Security.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("CORS_ORIGINS must not contain empty entries")
		}
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if wildcard CORS is used in production,
// which should be logged at startup.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates inbound rate limiting bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateProbe validates the upstream probe (only if enabled)
func (c *Config) validateProbe() error {
	if !c.Probe.Enabled {
		return nil
	}
	if c.Probe.Interval < time.Second {
		return fmt.Errorf("PROBE_INTERVAL must be at least 1s")
	}
	if c.Probe.Timeout <= 0 {
		return fmt.Errorf("PROBE_TIMEOUT must be positive")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"YOUR_KEY",
	"PLACEHOLDER",
}

// containsPlaceholder checks if a value contains common placeholder patterns.
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
