// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/orbital/internal/cache"
	"github.com/tomtom215/orbital/internal/fetch"
	"github.com/tomtom215/orbital/internal/nasa"
	"github.com/tomtom215/orbital/internal/validation"
)

// APOD handles GET /api/v1/apod?date=YYYY-MM-DD. No date means today.
func (h *Handler) APOD(w http.ResponseWriter, r *http.Request) {
	req := validation.APODRequest{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}
	if !h.requireNASA(w, r) {
		return
	}

	picture, err := cachedFetch(r.Context(), h, cache.GenerateKey("apod", req.Date), func(ctx context.Context) (json.RawMessage, error) {
		return h.nasa.APOD(ctx, req.Date)
	})
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondSuccess(w, r, picture, nil)
}

// MarsRovers handles GET /api/v1/mars-rovers
func (h *Handler) MarsRovers(w http.ResponseWriter, r *http.Request) {
	if !h.requireNASA(w, r) {
		return
	}

	rovers, err := cachedFetch(r.Context(), h, cache.GenerateKey("mars-rovers", nasa.Rover), h.nasa.Rovers)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondSuccess(w, r, rovers, nil)
}

// MarsRoverPhotos handles
// GET /api/v1/mars-rovers/photos?page=&camera=&earth_date=&sol=
//
// Without earth_date and sol the latest photos are returned.
func (h *Handler) MarsRoverPhotos(w http.ResponseWriter, r *http.Request) {
	sol, err := getOptionalIntParam(r, "sol")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(),
			map[string]interface{}{"field": "sol", "tag": "integer"}, nil)
		return
	}

	req := validation.PhotosRequest{
		Page:      getIntParam(r, "page", 1),
		Camera:    strings.TrimSpace(r.URL.Query().Get("camera")),
		EarthDate: strings.TrimSpace(r.URL.Query().Get("earth_date")),
		Sol:       sol,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}
	if !h.requireNASA(w, r) {
		return
	}

	query := nasa.PhotoQuery{
		Page:      req.Page,
		Camera:    strings.ToUpper(req.Camera),
		EarthDate: req.EarthDate,
		Sol:       req.Sol,
	}
	photos, err := cachedFetch(r.Context(), h, cache.GenerateKey("mars-rover-photos", query), func(ctx context.Context) ([]json.RawMessage, error) {
		return h.nasa.RoverPhotos(ctx, query)
	})
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondSuccess(w, r, photos, nil)
}

// MarsRoverCameras handles GET /api/v1/mars-rovers/cameras. The list is
// static and needs no API key.
func (h *Handler) MarsRoverCameras(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, nasa.Cameras(), nil)
}

// requireNASA answers 503 without touching the cache when no API key is
// configured.
func (h *Handler) requireNASA(w http.ResponseWriter, r *http.Request) bool {
	if h.nasa != nil && h.nasa.Configured() {
		return true
	}
	respondUpstreamError(w, r, fetch.NewConfigError(nasa.ErrAPIKeyMissing))
	return false
}
