// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

/*
Package middleware provides HTTP middleware for the gateway router.

Key Components:

  - RequestID: request id tracking, shared with the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation

Both have the chi middleware shape (func(http.Handler) http.Handler):

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

Request IDs:

An incoming X-Request-ID is kept when it is at most 128 printable ASCII
characters; otherwise a UUID is generated. The id is echoed in the response
header and is available through GetRequestID, logging.RequestIDFromContext
and chi's middleware.GetReqID.

Metrics:

Requests are labeled by method, chi route pattern and status code:

	orbital_api_requests_total{method="GET",endpoint="/api/v1/missions/{id}",status_code="200"}
	orbital_api_request_duration_seconds{method="GET",endpoint="/api/v1/missions/{id}"}
	orbital_api_active_requests

Requests that match no route are labeled endpoint="unmatched".
*/
package middleware
