// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

/*
Package config provides centralized configuration management for Orbital.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, ./config.yaml, /etc/orbital/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

# Sections

  - server: bind address, port, request timeout, environment
  - spacedevs: TheSpaceDevs base URLs (launches use 2.2.0, the rest 2.3.0)
  - nasa: api.nasa.gov base URL and API key
  - fetch: retry policy and client-side request rate
  - breaker: per-upstream circuit breaker
  - cache: response TTLs and the optional Badger directory
  - security: CORS origins and inbound rate limiting
  - logging: zerolog level, format, caller
  - probe: background upstream availability checks

# Environment Variables

Upstreams:
  - NASA_API_KEY: NASA API key (NEXT_PUBLIC_NASA_API_KEY is accepted too)
  - SPACEDEVS_LAUNCH_BASE_URL, SPACEDEVS_BASE_URL, NASA_BASE_URL

Retry policy:
  - FETCH_MAX_RETRIES: attempts per call (default: 3)
  - FETCH_BASE_DELAY / FETCH_MAX_DELAY: backoff bounds (default: 1s / 10s)
  - FETCH_RATE_LIMIT_DEFAULT: wait after a 429 without Retry-After (default: 30s)

Server:
  - HTTP_PORT or PORT (default: 3857), HTTP_HOST or HOST (default: 0.0.0.0)
  - CORS_ORIGINS: comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

A missing NASA key is not a load error. The server starts and NASA routes
answer 503 until a key is configured.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	client := fetch.New(cfg.FetchClientConfig("spacedevs"))
*/
package config
