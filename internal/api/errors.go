// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/orbital/internal/fetch"
	"github.com/tomtom215/orbital/internal/nasa"
	"github.com/tomtom215/orbital/internal/spacedevs"
)

// defaultRetryAfter is sent with 429 responses when the upstream gave no
// usable hint.
const defaultRetryAfter = 60 * time.Second

// Input errors the clients return before any request is made.
var inputErrors = []error{
	spacedevs.ErrInvalidID,
	nasa.ErrInvalidDate,
	nasa.ErrInvalidCamera,
	nasa.ErrInvalidSol,
}

// upstreamErrorStatus maps a client error to an HTTP status and error code:
//
//	invalid input        -> 400 VALIDATION_ERROR
//	configuration        -> 503 SERVICE_UNAVAILABLE
//	circuit open         -> 503 SERVICE_UNAVAILABLE
//	rate limit exhausted -> 429 TOO_MANY_REQUESTS
//	upstream 404         -> 404 NOT_FOUND
//	deadline exceeded    -> 504 GATEWAY_TIMEOUT
//	anything else        -> 502 EXTERNAL_SERVICE_ERROR
func upstreamErrorStatus(err error) (int, string) {
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, ErrCodeValidation
		}
	}
	switch {
	case fetch.IsConfigError(err), fetch.IsCircuitOpen(err):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable
	case fetch.IsRateLimited(err):
		return http.StatusTooManyRequests, ErrCodeTooManyRequests
	case fetch.StatusCode(err) == http.StatusNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeGatewayTimeout
	default:
		return http.StatusBadGateway, ErrCodeExternalService
	}
}

// respondUpstreamError writes the envelope for an error returned by the
// SpaceDevs or NASA clients. Their messages are already user-facing.
func respondUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := upstreamErrorStatus(err)

	if status == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(err)))
	}

	var details interface{}
	if upstream := fetch.StatusCode(err); upstream != 0 && status == http.StatusBadGateway {
		details = map[string]interface{}{"upstream_status": upstream}
	}

	// Client-side problems and a missing key are not worth an error log line
	var logErr error
	if (status >= http.StatusInternalServerError && !fetch.IsConfigError(err)) || status == http.StatusTooManyRequests {
		logErr = err
	}
	respondError(w, r, status, code, err.Error(), details, logErr)
}

// retryAfterSeconds rounds the upstream's last Retry-After up to whole
// seconds.
func retryAfterSeconds(err error) int {
	var fe *fetch.Error
	if errors.As(err, &fe) && fe.RetryAfter > 0 {
		return int(math.Ceil(fe.RetryAfter.Seconds()))
	}
	return int(defaultRetryAfter.Seconds())
}
