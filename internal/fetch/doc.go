// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

/*
Package fetch is the resilient HTTP client shared by every upstream API
client (TheSpaceDevs, NASA).

A call is a bounded loop of GET attempts:

	attempt i ok          -> decode and return
	attempt i = 429       -> wait Retry-After (seconds or HTTP date), else 30s
	attempt i failed      -> wait min(1s * 2^i, 10s)
	last attempt failed   -> return *Error without waiting

Every attempt counts against maxRetries, 429s included, so a caller that
keeps getting rate limited still terminates. Waits honor context
cancellation.

Failures are returned as *Error with a Kind:

	KindConfig     refused before any request (missing API key)
	KindRateLimit  exhausted on 429; Error() contains "429"
	KindHTTP       other non-2xx; Error() is "HTTP error! status: N"
	KindTransport  network failure, cancellation, breaker open
	KindDecode     2xx body that is not the expected JSON

Domain clients wrap failures with Describe so callers see "error fetching
missions: ..." or RateLimitMessage.

Optional layers, all configured through Config:

  - a golang.org/x/time/rate token bucket checked before every attempt
  - a sony/gobreaker circuit breaker around each logical call
  - Prometheus counters per attempt and per retry (internal/metrics)

Example:

	c := fetch.New(fetch.Config{Name: "spacedevs", Policy: fetch.DefaultPolicy()})
	page, err := fetch.FetchJSON[Page](ctx, c, url, nil, 3)
	if fetch.IsRateLimited(err) {
	    // tell the user to come back later
	}

Credentials in query strings (api_key) are redacted from logs and errors.
*/
package fetch
