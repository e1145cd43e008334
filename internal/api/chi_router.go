// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/orbital/internal/config"
	"github.com/tomtom215/orbital/internal/middleware"
)

// RouterConfig configures the router's middleware.
type RouterConfig struct {
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
	// RequestTimeout bounds a whole request including upstream retries.
	// Zero disables the timeout.
	RequestTimeout time.Duration
}

// RouterConfigFromConfig maps the security and server sections.
func RouterConfigFromConfig(cfg *config.Config) RouterConfig {
	return RouterConfig{
		CORSOrigins:       cfg.Security.CORSOrigins,
		RateLimitRequests: cfg.Security.RateLimitReqs,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
		RequestTimeout:    cfg.Server.Timeout,
	}
}

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	timeout       time.Duration
}

// NewRouter creates a Router for handler.
func NewRouter(handler *Handler, cfg RouterConfig) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.CORSOrigins
	mwConfig.RateLimitRequests = cfg.RateLimitRequests
	mwConfig.RateLimitWindow = cfg.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.RateLimitDisabled

	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
		timeout:       cfg.RequestTimeout,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)        // X-Request-ID with logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil, nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Data Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		if router.timeout > 0 {
			r.Use(chimiddleware.Timeout(router.timeout))
		}

		r.Get("/apod", router.handler.APOD)

		r.Get("/astronauts", router.handler.Astronauts)
		r.Get("/astronauts/{id}", router.handler.Astronaut)

		r.Get("/missions", router.handler.Missions)
		r.Get("/missions/upcoming", router.handler.UpcomingMissions)
		r.Get("/missions/previous", router.handler.PreviousMissions)
		r.Get("/missions/{id}", router.handler.Mission)

		r.Get("/rockets", router.handler.Rockets)
		r.Get("/rockets/{id}", router.handler.Rocket)

		r.Get("/space-stations", router.handler.SpaceStations)
		r.Get("/space-stations/{id}", router.handler.SpaceStation)

		r.Get("/mars-rovers", router.handler.MarsRovers)
		r.Get("/mars-rovers/photos", router.handler.MarsRoverPhotos)
		r.Get("/mars-rovers/cameras", router.handler.MarsRoverCameras)
	})

	return r
}
