// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package fetch

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	// KindTransport covers network failures, breaker rejections and cancellation.
	KindTransport Kind = iota
	// KindHTTP is a non-2xx response other than 429.
	KindHTTP
	// KindRateLimit means every attempt was answered with 429.
	KindRateLimit
	// KindDecode means a 2xx body was not the expected JSON.
	KindDecode
	// KindConfig means the call was refused before any request was made.
	KindConfig
)

// String returns the kind name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindRateLimit:
		return "rate_limit"
	case KindDecode:
		return "decode"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// RateLimitMessage is the user-facing text for an exhausted rate limit.
const RateLimitMessage = "Rate limit exceeded. Please try again in a few minutes."

// Error is the single error type returned by Client. Use errors.As to
// inspect it; domain clients wrap it with Describe.
type Error struct {
	Kind       Kind
	StatusCode int
	// URL has credentials redacted.
	URL        string
	Attempts   int
	RetryAfter time.Duration
	// Body holds at most 64KB of a non-2xx response body.
	Body []byte
	// Message replaces the generated text when set.
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindRateLimit:
		return fmt.Sprintf("HTTP error! status: %d (rate limited after %d attempts)", http.StatusTooManyRequests, e.Attempts)
	case KindHTTP:
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	case KindDecode:
		return fmt.Sprintf("invalid JSON response: %v", e.Cause)
	default:
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return e.Kind.String() + " error"
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewConfigError returns a KindConfig error for a call that must not reach
// the network.
func NewConfigError(cause error) *Error {
	return &Error{Kind: KindConfig, Cause: cause, Message: cause.Error()}
}

// KindOf returns the kind of err, or KindTransport for foreign errors.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindTransport
}

// IsRateLimited reports whether err came from an exhausted 429 loop. A
// *Error is judged by its kind alone, since transport messages embed the
// request URL. Foreign errors that mention 429 also count.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == KindRateLimit
	}
	return strings.Contains(err.Error(), "429")
}

// IsConfigError reports whether err is a configuration failure.
func IsConfigError(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindConfig
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}

// Describe wraps err with the resource being fetched:
//
//	rate limit  -> "Rate limit exceeded. Please try again in a few minutes."
//	anything    -> "error fetching <action>: <cause>"
//
// Config errors pass through untouched. The returned error keeps the kind,
// status and body of the original and unwraps to it.
func Describe(action string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if !errors.As(err, &fe) {
		return fmt.Errorf("error fetching %s: %w", action, err)
	}
	if fe.Kind == KindConfig {
		return err
	}

	out := *fe
	out.Cause = err
	if fe.Kind == KindRateLimit {
		out.Message = RateLimitMessage
	} else {
		out.Message = fmt.Sprintf("error fetching %s: %s", action, err.Error())
	}
	return &out
}
