// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package fetch

import (
	"context"
	"errors"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/orbital/internal/logging"
	"github.com/tomtom215/orbital/internal/metrics"
)

// BreakerConfig configures the per-upstream circuit breaker.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval is the closed-state window after which counts reset.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
	// MinRequests in a window before the failure ratio is considered.
	MinRequests uint32
	// FailureRatio at or above which the breaker opens.
	FailureRatio float64
}

// DefaultBreakerConfig opens at >= 60% failures over at least 10 calls and
// probes again after 2 minutes.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// breaker wraps one logical Get, retries included. Upstream trouble counts
// as failure: transport errors, 5xx and exhausted rate limits. Client-side
// problems (4xx, bad JSON, config, caller cancellation) do not.
type breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func newBreaker(upstream string, cfg BreakerConfig) *breaker {
	d := DefaultBreakerConfig()
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = d.MaxRequests
	}
	if cfg.Interval <= 0 {
		cfg.Interval = d.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = d.Timeout
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = d.MinRequests
	}
	if cfg.FailureRatio <= 0 || cfg.FailureRatio > 1 {
		cfg.FailureRatio = d.FailureRatio
	}

	name := upstream + "-api"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.FailureRatio {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: countsAsSuccess,
	})

	return &breaker{name: name, cb: cb}
}

func (b *breaker) execute(fn func() error, safeURL string) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	if err == nil {
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		return nil
	}
	if IsCircuitOpen(err) {
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		logging.Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
		return &Error{Kind: KindTransport, URL: safeURL, Cause: err}
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	return err
}

func (b *breaker) state() gobreaker.State {
	return b.cb.State()
}

func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var fe *Error
	if !errors.As(err, &fe) {
		return false
	}
	switch fe.Kind {
	case KindConfig, KindDecode:
		return true
	case KindHTTP:
		return fe.StatusCode < http.StatusInternalServerError
	default:
		return false
	}
}

// BreakerState returns "closed", "half-open" or "open", or "" when the client
// has no breaker.
func (c *Client) BreakerState() string {
	if c.breaker == nil {
		return ""
	}
	return c.breaker.state().String()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// IsCircuitOpen reports whether err is a breaker rejection: the call never
// reached the upstream.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
