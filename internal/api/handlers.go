// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/orbital/internal/cache"
	"github.com/tomtom215/orbital/internal/logging"
	"github.com/tomtom215/orbital/internal/nasa"
	"github.com/tomtom215/orbital/internal/probe"
	"github.com/tomtom215/orbital/internal/spacedevs"
)

// SpaceDevsClient is the subset of *spacedevs.Client the handlers use.
type SpaceDevsClient interface {
	Astronauts(ctx context.Context, limit, offset int) (*spacedevs.Page, error)
	Astronaut(ctx context.Context, id string) (json.RawMessage, error)
	Missions(ctx context.Context, page int, search string) (*spacedevs.Page, error)
	Mission(ctx context.Context, id string) (json.RawMessage, error)
	UpcomingMissions(ctx context.Context, page int) (*spacedevs.Page, error)
	PreviousMissions(ctx context.Context, page int) (*spacedevs.Page, error)
	Rockets(ctx context.Context, page int, search string) (*spacedevs.Page, error)
	Rocket(ctx context.Context, id string) (json.RawMessage, error)
	SpaceStations(ctx context.Context, limit, offset int) (*spacedevs.Page, error)
	SpaceStation(ctx context.Context, id string) (json.RawMessage, error)
}

// NASAClient is the subset of *nasa.Client the handlers use.
type NASAClient interface {
	Configured() bool
	APOD(ctx context.Context, date string) (json.RawMessage, error)
	Rovers(ctx context.Context) ([]json.RawMessage, error)
	RoverPhotos(ctx context.Context, q nasa.PhotoQuery) ([]json.RawMessage, error)
}

// UpstreamReporter exposes the latest upstream probe results.
// Satisfied by *probe.Monitor.
type UpstreamReporter interface {
	Snapshot() []probe.Status
	Healthy() bool
}

// BreakerReporter exposes a fetch client's circuit breaker state.
// Satisfied by *fetch.Client.
type BreakerReporter interface {
	Name() string
	BreakerState() string
}

// HandlerDeps are the dependencies of Handler. SpaceDevs and NASA are
// required; the rest are optional.
type HandlerDeps struct {
	SpaceDevs SpaceDevsClient
	NASA      NASAClient
	// Cache stores successful upstream payloads; nil disables caching.
	Cache     *cache.Tiered
	Upstreams UpstreamReporter
	Breakers  []BreakerReporter
	Version   string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, cache access (this file)
//   - handlers_helpers.go: query parsing and validation helpers
//   - handlers_health.go: health endpoints
//   - handlers_spacedevs.go: astronauts, missions, rockets, space stations
//   - handlers_nasa.go: APOD and Mars rover endpoints
type Handler struct {
	spacedevs SpaceDevsClient
	nasa      NASAClient
	cache     *cache.Tiered
	upstreams UpstreamReporter
	breakers  []BreakerReporter
	version   string
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(api.HandlerDeps{SpaceDevs: sd, NASA: n, Cache: tc})
//	router := api.NewRouter(handler, api.RouterConfigFromConfig(cfg))
//	http.ListenAndServe(":3857", router.SetupChi())
func NewHandler(deps HandlerDeps) *Handler {
	if deps.Version == "" {
		deps.Version = "dev"
	}
	return &Handler{
		spacedevs: deps.SpaceDevs,
		nasa:      deps.NASA,
		cache:     deps.Cache,
		upstreams: deps.Upstreams,
		breakers:  deps.Breakers,
		version:   deps.Version,
		startTime: time.Now(),
	}
}

// ClearCache drops every cached upstream payload.
//
// Thread Safety: Safe for concurrent access.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Info().Msg("Response cache cleared")
	}
}

// cachedFetch returns the cached payload for key or calls load and caches
// its result. Errors are never cached. A cached payload that no longer
// decodes is dropped and reloaded.
func cachedFetch[T any](ctx context.Context, h *Handler, key string, load func(context.Context) (T, error)) (T, error) {
	if h.cache != nil {
		if data, ok := h.cache.Get(key); ok {
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				return v, nil
			}
			logging.Ctx(ctx).Warn().Str("key", key).Msg("Dropping undecodable cache entry")
			h.cache.Delete(key)
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if h.cache != nil {
		if data, err := json.Marshal(v); err == nil {
			h.cache.Set(key, data)
		}
	}
	return v, nil
}
