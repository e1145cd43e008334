// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package validation

// Query parameter structs for the gateway routes. The query tag names the
// parameter in error messages.

// APODRequest selects a picture of the day. Empty Date means today.
type APODRequest struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

// PagedListRequest is a page of astronauts or space stations with an
// optional status filter.
type PagedListRequest struct {
	Page   int    `query:"page" validate:"min=1,max=10000"`
	Limit  int    `query:"limit" validate:"min=1,max=100"`
	Status string `query:"status" validate:"max=64"`
}

// SearchListRequest is a page of missions or rockets with an optional search.
type SearchListRequest struct {
	Page   int    `query:"page" validate:"min=1,max=10000"`
	Search string `query:"search" validate:"max=100"`
}

// NumericIDRequest is a path id for astronauts, rockets and space stations.
type NumericIDRequest struct {
	ID string `query:"id" validate:"required,spacedevs_id"`
}

// UUIDRequest is a path id for missions.
type UUIDRequest struct {
	ID string `query:"id" validate:"required,uuid"`
}

// PhotosRequest selects Curiosity photos.
type PhotosRequest struct {
	Page      int    `query:"page" validate:"min=1,max=10000"`
	Camera    string `query:"camera" validate:"omitempty,rover_camera"`
	EarthDate string `query:"earth_date" validate:"omitempty,datetime=2006-01-02"`
	Sol       *int   `query:"sol" validate:"omitempty,min=0,max=100000"`
}
