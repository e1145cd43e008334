// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/orbital/internal/cache"
	"github.com/tomtom215/orbital/internal/spacedevs"
	"github.com/tomtom215/orbital/internal/validation"
)

// ListData is the payload of every list endpoint.
type ListData struct {
	Results []json.RawMessage `json:"results"`
	// Count is the upstream total before status filtering.
	Count int `json:"count"`
	// Statuses lists the status names on the current page, "all" first.
	// Only astronaut and space station lists carry it.
	Statuses []string `json:"statuses,omitempty"`
}

// detailFunc loads one upstream record.
type detailFunc func(ctx context.Context) (json.RawMessage, error)

// Astronauts handles GET /api/v1/astronauts?page=&limit=&status=
func (h *Handler) Astronauts(w http.ResponseWriter, r *http.Request) {
	h.statusList(w, r, "astronauts", h.spacedevs.Astronauts)
}

// SpaceStations handles GET /api/v1/space-stations?page=&limit=&status=
func (h *Handler) SpaceStations(w http.ResponseWriter, r *http.Request) {
	h.statusList(w, r, "space-stations", h.spacedevs.SpaceStations)
}

// Missions handles GET /api/v1/missions?page=&search=
func (h *Handler) Missions(w http.ResponseWriter, r *http.Request) {
	h.searchList(w, r, "missions", spacedevs.MissionPageSize, h.spacedevs.Missions)
}

// Rockets handles GET /api/v1/rockets?page=&search=
func (h *Handler) Rockets(w http.ResponseWriter, r *http.Request) {
	h.searchList(w, r, "rockets", spacedevs.RocketPageSize, h.spacedevs.Rockets)
}

// UpcomingMissions handles GET /api/v1/missions/upcoming?page=
func (h *Handler) UpcomingMissions(w http.ResponseWriter, r *http.Request) {
	h.pagedList(w, r, "missions-upcoming", h.spacedevs.UpcomingMissions)
}

// PreviousMissions handles GET /api/v1/missions/previous?page=
func (h *Handler) PreviousMissions(w http.ResponseWriter, r *http.Request) {
	h.pagedList(w, r, "missions-previous", h.spacedevs.PreviousMissions)
}

// Astronaut handles GET /api/v1/astronauts/{id}
func (h *Handler) Astronaut(w http.ResponseWriter, r *http.Request) {
	h.numericDetail(w, r, "astronaut", h.spacedevs.Astronaut)
}

// Rocket handles GET /api/v1/rockets/{id}
func (h *Handler) Rocket(w http.ResponseWriter, r *http.Request) {
	h.numericDetail(w, r, "rocket", h.spacedevs.Rocket)
}

// SpaceStation handles GET /api/v1/space-stations/{id}
func (h *Handler) SpaceStation(w http.ResponseWriter, r *http.Request) {
	h.numericDetail(w, r, "space-station", h.spacedevs.SpaceStation)
}

// Mission handles GET /api/v1/missions/{id}. Mission ids are UUIDs.
func (h *Handler) Mission(w http.ResponseWriter, r *http.Request) {
	req := validation.UUIDRequest{ID: chi.URLParam(r, "id")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}
	id := strings.ToLower(req.ID)
	h.detail(w, r, cache.GenerateKey("mission", id), func(ctx context.Context) (json.RawMessage, error) {
		return h.spacedevs.Mission(ctx, id)
	})
}

// statusList serves a limit/offset listing with client-side status filtering.
func (h *Handler) statusList(w http.ResponseWriter, r *http.Request, endpoint string,
	load func(ctx context.Context, limit, offset int) (*spacedevs.Page, error)) {
	req := validation.PagedListRequest{
		Page:   getIntParam(r, "page", 1),
		Limit:  getIntParam(r, "limit", spacedevs.DefaultPageSize),
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	offset := spacedevs.Offset(req.Page, req.Limit)
	key := cache.GenerateKey(endpoint, map[string]int{"limit": req.Limit, "offset": offset})
	page, err := cachedFetch(r.Context(), h, key, func(ctx context.Context) (*spacedevs.Page, error) {
		return load(ctx, req.Limit, offset)
	})
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	status := req.Status
	if status == "" {
		status = spacedevs.StatusAll
	}
	results := spacedevs.FilterByStatus(page.Results, status)
	if results == nil {
		results = []json.RawMessage{}
	}
	pagination := spacedevs.NewPagination(page.Count, req.Page, req.Limit)
	respondSuccess(w, r, ListData{
		Results:  results,
		Count:    page.Count,
		Statuses: spacedevs.Statuses(page.Results),
	}, &pagination)
}

// searchList serves a page/search listing with a fixed upstream page size.
func (h *Handler) searchList(w http.ResponseWriter, r *http.Request, endpoint string, pageSize int,
	load func(ctx context.Context, page int, search string) (*spacedevs.Page, error)) {
	req := validation.SearchListRequest{
		Page:   getIntParam(r, "page", 1),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	key := cache.GenerateKey(endpoint, req)
	page, err := cachedFetch(r.Context(), h, key, func(ctx context.Context) (*spacedevs.Page, error) {
		return load(ctx, req.Page, req.Search)
	})
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	respondPage(w, r, page, req.Page, pageSize)
}

// pagedList serves a page-only listing.
func (h *Handler) pagedList(w http.ResponseWriter, r *http.Request, endpoint string,
	load func(ctx context.Context, page int) (*spacedevs.Page, error)) {
	req := validation.SearchListRequest{Page: getIntParam(r, "page", 1)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	key := cache.GenerateKey(endpoint, req.Page)
	page, err := cachedFetch(r.Context(), h, key, func(ctx context.Context) (*spacedevs.Page, error) {
		return load(ctx, req.Page)
	})
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	respondPage(w, r, page, req.Page, spacedevs.MissionPageSize)
}

func (h *Handler) numericDetail(w http.ResponseWriter, r *http.Request, endpoint string,
	load func(ctx context.Context, id string) (json.RawMessage, error)) {
	req := validation.NumericIDRequest{ID: chi.URLParam(r, "id")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}
	h.detail(w, r, cache.GenerateKey(endpoint, req.ID), func(ctx context.Context) (json.RawMessage, error) {
		return load(ctx, req.ID)
	})
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request, key string, load detailFunc) {
	record, err := cachedFetch(r.Context(), h, key, load)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondSuccess(w, r, record, nil)
}

func respondPage(w http.ResponseWriter, r *http.Request, page *spacedevs.Page, pageNum, pageSize int) {
	results := page.Results
	if results == nil {
		results = []json.RawMessage{}
	}
	pagination := spacedevs.NewPagination(page.Count, pageNum, pageSize)
	respondSuccess(w, r, ListData{Results: results, Count: page.Count}, &pagination)
}
