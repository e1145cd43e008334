// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/orbital/internal/logging"
	"github.com/tomtom215/orbital/internal/metrics"
)

// maxErrorBodySize bounds how much of a failed response is kept on the error.
const maxErrorBodySize = 64 * 1024

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestOptions are per-call request settings.
type RequestOptions struct {
	Header http.Header
}

// Config configures a Client.
type Config struct {
	// Name labels logs, metrics and the circuit breaker ("spacedevs", "nasa").
	Name string

	Policy Policy

	// Timeout applies to each HTTP attempt when HTTPClient is nil.
	Timeout time.Duration

	// RequestsPerSecond enables a client-side token bucket. Zero disables it.
	RequestsPerSecond float64
	Burst             int

	// Breaker enables a circuit breaker around each logical call.
	Breaker *BreakerConfig

	UserAgent string

	// HTTPClient overrides the default *http.Client.
	HTTPClient Doer

	// Sleep overrides the context-aware timer used between attempts.
	Sleep SleepFunc

	// Now overrides time.Now for Retry-After dates.
	Now func() time.Time
}

// Client performs GET requests with bounded retries.
//
// Attempt i that fails is followed by:
//   - 429: a wait of Retry-After (seconds or HTTP date), else Policy.RateLimitDefault
//   - anything else: a wait of Policy.Backoff(i)
//
// Every attempt, 429s included, consumes the retry budget. The final attempt
// never sleeps; its error is returned.
type Client struct {
	name      string
	http      Doer
	policy    Policy
	limiter   *rate.Limiter
	breaker   *breaker
	userAgent string
	sleep     SleepFunc
	now       func() time.Time
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	if cfg.Name == "" {
		cfg.Name = "upstream"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Client{
		name:      cfg.Name,
		http:      cfg.HTTPClient,
		policy:    cfg.Policy.withDefaults(),
		userAgent: cfg.UserAgent,
		sleep:     cfg.Sleep,
		now:       cfg.Now,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	if c.sleep == nil {
		c.sleep = sleep
	}
	if c.now == nil {
		c.now = time.Now
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	if cfg.Breaker != nil {
		c.breaker = newBreaker(cfg.Name, *cfg.Breaker)
	}
	return c
}

// Name returns the upstream label.
func (c *Client) Name() string {
	return c.name
}

// Policy returns the effective retry policy.
func (c *Client) Policy() Policy {
	return c.policy
}

// Get fetches rawURL and returns the body once it is known to be valid JSON.
// maxRetries < 1 uses the policy default.
func (c *Client) Get(ctx context.Context, rawURL string, opts *RequestOptions, maxRetries int) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, rawURL, opts, maxRetries, func(body []byte) error {
		if !json.Valid(body) {
			return errors.New("body is not valid JSON")
		}
		out = json.RawMessage(body)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchJSON fetches rawURL and decodes it into T. A body that does not decode
// counts as a failed attempt and is retried like a network error.
func FetchJSON[T any](ctx context.Context, c *Client, rawURL string, opts *RequestOptions, maxRetries int) (T, error) {
	var out T
	err := c.do(ctx, rawURL, opts, maxRetries, func(body []byte) error {
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

func (c *Client) do(ctx context.Context, rawURL string, opts *RequestOptions, maxRetries int, decode func([]byte) error) error {
	if maxRetries < 1 {
		maxRetries = c.policy.MaxRetries
	}
	if c.breaker == nil {
		return c.retry(ctx, rawURL, opts, maxRetries, decode)
	}
	return c.breaker.execute(func() error {
		return c.retry(ctx, rawURL, opts, maxRetries, decode)
	}, redactURL(rawURL))
}

func (c *Client) retry(ctx context.Context, rawURL string, opts *RequestOptions, maxRetries int, decode func([]byte) error) error {
	safeURL := redactURL(rawURL)

	for attempt := 0; attempt < maxRetries; attempt++ {
		fe := c.attempt(ctx, rawURL, safeURL, opts, decode)
		if fe == nil {
			return nil
		}
		fe.Attempts = attempt + 1

		if ctx.Err() != nil || attempt == maxRetries-1 {
			return fe
		}

		wait, reason := c.policy.Backoff(attempt), "backoff"
		if fe.Kind == KindRateLimit {
			wait, reason = fe.RetryAfter, "rate_limit"
		}

		logging.Ctx(ctx).Warn().
			Err(fe).
			Str("upstream", c.name).
			Str("url", safeURL).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Dur("delay", wait).
			Str("reason", reason).
			Msg("Retry attempt")
		metrics.RecordUpstreamRetry(c.name, reason, wait)

		if err := c.sleep(ctx, wait); err != nil {
			return &Error{Kind: KindTransport, URL: safeURL, Attempts: attempt + 1, Cause: err}
		}
	}

	// maxRetries >= 1, so the loop always returns.
	return &Error{Kind: KindTransport, URL: safeURL, Cause: errors.New("no attempts made")}
}

// attempt performs one HTTP round trip. It returns nil on success.
func (c *Client) attempt(ctx context.Context, rawURL, safeURL string, opts *RequestOptions, decode func([]byte) error) *Error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindTransport, URL: safeURL, Cause: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return &Error{Kind: KindTransport, URL: safeURL, Cause: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if opts != nil {
		for k, vs := range opts.Header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstreamAttempt(c.name, "transport_error", time.Since(start))
		return &Error{Kind: KindTransport, URL: safeURL, Cause: scrubURLError(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
		metrics.RecordUpstreamAttempt(c.name, "rate_limited", time.Since(start))
		return &Error{
			Kind:       KindRateLimit,
			StatusCode: resp.StatusCode,
			URL:        safeURL,
			RetryAfter: c.policy.RateLimitWait(resp.Header.Get("Retry-After"), c.now()),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body := readBodyForError(resp.Body)
		metrics.RecordUpstreamAttempt(c.name, "http_error", time.Since(start))
		return &Error{Kind: KindHTTP, StatusCode: resp.StatusCode, URL: safeURL, Body: body}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordUpstreamAttempt(c.name, "transport_error", time.Since(start))
		return &Error{Kind: KindTransport, StatusCode: resp.StatusCode, URL: safeURL, Cause: fmt.Errorf("failed to read response body: %w", err)}
	}
	if err := decode(body); err != nil {
		metrics.RecordUpstreamAttempt(c.name, "decode_error", time.Since(start))
		return &Error{Kind: KindDecode, StatusCode: resp.StatusCode, URL: safeURL, Cause: err}
	}

	metrics.RecordUpstreamAttempt(c.name, "success", time.Since(start))
	return nil
}

// readBodyForError reads at most maxErrorBodySize bytes.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return nil
	}
	return body
}

// sensitiveParams are query parameters that never reach logs or errors.
var sensitiveParams = []string{"api_key", "apikey", "token"}

func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "(unparseable url)"
	}
	q := u.Query()
	changed := false
	for _, p := range sensitiveParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// scrubURLError replaces the URL inside a *url.Error so keys are not leaked
// through err.Error().
func scrubURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: redactURL(ue.URL), Err: ue.Err}
	}
	return err
}
