// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "orbital"

var (
	// Gateway API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of gateway API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Gateway API request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Current number of in-flight gateway API requests",
		},
	)

	// Upstream fetches. One observation per HTTP attempt.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream HTTP attempts",
		},
		[]string{"upstream", "outcome"}, // outcome: success, rate_limited, http_error, transport_error, decode_error
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of a single upstream HTTP attempt",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"upstream"},
	)

	UpstreamRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_retries_total",
			Help:      "Total number of upstream retries",
		},
		[]string{"upstream", "reason"}, // reason: rate_limit, backoff
	)

	UpstreamRetryWaitSeconds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_retry_wait_seconds_total",
			Help:      "Total time spent waiting between upstream attempts",
		},
		[]string{"upstream", "reason"},
	)

	UpstreamUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "upstream_up",
			Help:      "Whether the last upstream probe succeeded (1) or failed (0)",
		},
		[]string{"upstream"},
	)

	// Response cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of response cache hits",
		},
		[]string{"tier"}, // memory, persistent
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of response cache misses",
		},
		[]string{"tier"},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state_transitions_total",
			Help:      "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records a gateway API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamAttempt records one upstream HTTP attempt.
func RecordUpstreamAttempt(upstream, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(upstream, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(upstream).Observe(duration.Seconds())
}

// RecordUpstreamRetry records a scheduled retry and the wait before it.
func RecordUpstreamRetry(upstream, reason string, wait time.Duration) {
	UpstreamRetriesTotal.WithLabelValues(upstream, reason).Inc()
	UpstreamRetryWaitSeconds.WithLabelValues(upstream, reason).Add(wait.Seconds())
}

// SetUpstreamUp records a probe result.
func SetUpstreamUp(upstream string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	UpstreamUp.WithLabelValues(upstream).Set(v)
}

// RecordCacheLookup records a hit or miss for a cache tier.
func RecordCacheLookup(tier string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(tier).Inc()
		return
	}
	CacheMisses.WithLabelValues(tier).Inc()
}
