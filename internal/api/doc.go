// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

/*
Package api provides the HTTP gateway in front of the Launch Library 2 and
NASA APIs.

Key Components:

  - Router: chi route table and middleware stack
  - Handler: request handlers, one per route
  - Response formatting: one JSON envelope for every response
  - Error mapping: client errors translated to HTTP status codes

Routes:

	GET /metrics                          Prometheus exposition
	GET /api/v1/health[/live|/ready]      version, uptime, probes, breakers
	GET /api/v1/apod?date=
	GET /api/v1/astronauts?page=&limit=&status=
	GET /api/v1/astronauts/{id}
	GET /api/v1/missions?page=&search=
	GET /api/v1/missions/upcoming?page=
	GET /api/v1/missions/previous?page=
	GET /api/v1/missions/{uuid}
	GET /api/v1/rockets?page=&search=
	GET /api/v1/rockets/{id}
	GET /api/v1/space-stations?page=&limit=&status=
	GET /api/v1/space-stations/{id}
	GET /api/v1/mars-rovers
	GET /api/v1/mars-rovers/photos?page=&camera=&earth_date=&sol=
	GET /api/v1/mars-rovers/cameras

Response Format:

	{
	  "success": true,
	  "data": {"results": [...], "count": 42, "statuses": ["all", "Active"]},
	  "meta": {
	    "timestamp": "2026-01-01T00:00:00Z",
	    "request_id": "8c2f...",
	    "pagination": {"page": 1, "page_size": 9, "total_count": 42, "total_pages": 5, "has_next": true, "has_prev": false}
	  }
	}

Errors replace data with error{code, message, details}:

	VALIDATION_ERROR        400  bad query or path parameter
	NOT_FOUND               404  upstream 404 or unknown route
	TOO_MANY_REQUESTS       429  upstream rate limit exhausted, or local limiter
	SERVICE_UNAVAILABLE     503  NASA key missing or circuit open
	GATEWAY_TIMEOUT         504  request deadline exceeded
	EXTERNAL_SERVICE_ERROR  502  any other upstream failure

Caching:

Successful upstream payloads are cached (cache.Tiered) under
cache.GenerateKey(endpoint, params). Status filtering runs after the cache,
so every status view of a page shares one upstream call. 200 responses carry
an ETag over the data payload and honor If-None-Match with 304.

Middleware Stack:

Request ID, RealIP, Recoverer, Prometheus metrics, CORS and gzip apply to
every route. /api/v1 adds the per-IP limiter (go-chi/httprate), security
headers and a request timeout; health routes use a more permissive limiter.
*/
package api
