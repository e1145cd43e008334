// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator with custom validators
// for the gateway's query parameters and translates failures into the
// VALIDATION_ERROR API format.
//
// # Request Structs
//
//	APODRequest        date (YYYY-MM-DD, optional)
//	PagedListRequest   page, limit (1-100), status
//	SearchListRequest  page, search (max 100 characters)
//	NumericIDRequest   id (positive integer, astronauts/rockets/stations)
//	UUIDRequest        id (missions)
//	PhotosRequest      page, camera, earth_date, sol
//
// # Custom Validators
//
//   - spacedevs_id: positive decimal id without leading zeros
//   - rover_camera: one of the Curiosity cameras, case-insensitive
//
// Fields are reported by their query tag, so a bad earth date reads
// "earth_date must be a date in YYYY-MM-DD format".
//
// # API Error Integration
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "camera must be a Curiosity camera (...)",
//	    "details": {"field": "camera", "tag": "rover_camera", "value": "PANCAM"}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "page: page must be at least 1; limit: limit must be at most 100",
//	    "details": {"fields": [{"field": "page", ...}, {"field": "limit", ...}]}
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use.
// It caches struct reflection information per type.
package validation
