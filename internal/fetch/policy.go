// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package fetch

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxRetries is the attempt budget when a caller passes < 1.
const DefaultMaxRetries = 3

// Policy controls how long the client waits between attempts.
type Policy struct {
	// MaxRetries is the total number of attempts, 429s included.
	MaxRetries int

	// BaseDelay and MaxDelay bound the exponential backoff used for every
	// failure except 429: min(BaseDelay*2^i, MaxDelay).
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// RateLimitDefault is the wait after a 429 without a usable Retry-After.
	RateLimitDefault time.Duration
}

// DefaultPolicy returns 3 attempts, 1s..10s backoff and a 30s 429 wait.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:       DefaultMaxRetries,
		BaseDelay:        time.Second,
		MaxDelay:         10 * time.Second,
		RateLimitDefault: 30 * time.Second,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.MaxRetries < 1 {
		p.MaxRetries = d.MaxRetries
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = d.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = d.MaxDelay
	}
	if p.RateLimitDefault <= 0 {
		p.RateLimitDefault = d.RateLimitDefault
	}
	return p
}

// Backoff returns the wait after failed attempt i (0-indexed).
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	// 2^30 seconds already exceeds any sane cap; stop shifting before overflow.
	if attempt > 30 {
		return p.MaxDelay
	}
	d := p.BaseDelay * time.Duration(1<<uint(attempt))
	if d > p.MaxDelay || d <= 0 {
		return p.MaxDelay
	}
	return d
}

// RateLimitWait returns the wait after a 429, given the Retry-After value.
func (p Policy) RateLimitWait(retryAfter string, now time.Time) time.Duration {
	if d, ok := parseRetryAfter(retryAfter, now); ok {
		return d
	}
	return p.RateLimitDefault
}

// parseRetryAfter accepts delay-seconds or an HTTP-date (RFC 9110 10.2.3).
// Dates in the past yield zero.
func parseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(value); err == nil {
		d := t.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
