// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

/*
Package metrics holds the Prometheus collectors for Orbital.

All collectors register with the default registry through promauto and are
exposed at /metrics by the API router.

# Metric Families

  - orbital_api_*: gateway requests, latency, in-flight count
  - orbital_upstream_*: one sample per upstream HTTP attempt, retries by
    reason (rate_limit or backoff) and the seconds spent waiting, probe state
  - orbital_cache_*: hits and misses per tier (memory, persistent)
  - orbital_circuit_breaker_*: state gauge, request results, transitions

Useful queries:

	# share of upstream attempts that were rate limited
	sum(rate(orbital_upstream_requests_total{outcome="rate_limited"}[5m]))
	  / sum(rate(orbital_upstream_requests_total[5m]))

	# time spent sleeping on Retry-After
	rate(orbital_upstream_retry_wait_seconds_total{reason="rate_limit"}[15m])
*/
package metrics
