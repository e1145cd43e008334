// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/orbital/internal/api"
	"github.com/tomtom215/orbital/internal/cache"
	"github.com/tomtom215/orbital/internal/config"
	"github.com/tomtom215/orbital/internal/logging"
	"github.com/tomtom215/orbital/internal/probe"
	"github.com/tomtom215/orbital/internal/supervisor"
	"github.com/tomtom215/orbital/internal/supervisor/services"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts.cfg, opts.version)
		},
	}
}

// gateway holds everything serve wires together.
type gateway struct {
	cfg     *config.Config
	clients *clients
	cache   *cache.Tiered
	store   *cache.BadgerStore
	monitor *probe.Monitor
	handler *api.Handler
	server  *http.Server
}

// newGateway builds the gateway without starting anything.
func newGateway(cfg *config.Config, version string) *gateway {
	g := &gateway{
		cfg:     cfg,
		clients: newClients(cfg, userAgent(version)),
	}

	if cfg.Cache.PersistentPath != "" {
		store, err := cache.OpenBadger(cache.BadgerConfig{
			Path: cfg.Cache.PersistentPath,
			TTL:  cfg.Cache.PersistentTTL,
		})
		if err != nil {
			// Serving from memory beats not serving at all
			logging.Error().Err(err).Str("path", cfg.Cache.PersistentPath).
				Msg("Persistent cache unavailable, continuing with memory cache only")
		} else {
			g.store = store
		}
	}
	g.cache = cache.NewTiered(cache.New(cfg.Cache.TTL), g.store)

	var upstreams api.UpstreamReporter
	if cfg.Probe.Enabled {
		g.monitor = probe.New(probe.Config{
			Targets: []probe.Target{
				{Name: "spacedevs-launch", URL: cfg.SpaceDevs.LaunchBaseURL + "/"},
				{Name: upstreamSpaceDevs, URL: cfg.SpaceDevs.BaseURL + "/"},
				{Name: upstreamNASA, URL: cfg.NASA.BaseURL + "/"},
			},
			Timeout: cfg.Probe.Timeout,
		})
		upstreams = g.monitor
	}

	g.handler = api.NewHandler(api.HandlerDeps{
		SpaceDevs: g.clients.spaceDevs,
		NASA:      g.clients.nasa,
		Cache:     g.cache,
		Upstreams: upstreams,
		Breakers:  []api.BreakerReporter{g.clients.spaceDevsFetch, g.clients.nasaFetch},
		Version:   version,
	})

	router := api.NewRouter(g.handler, api.RouterConfigFromConfig(cfg))
	g.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Leave room past the request timeout for the 504 envelope
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return g
}

// services adds the gateway's long-running parts to tree.
func (g *gateway) services(tree *supervisor.SupervisorTree) {
	if g.monitor != nil {
		tree.AddUpstreamService(services.NewProbeService(g.monitor, g.cfg.Probe.Interval, logging.Logger()))
	}
	if g.store != nil {
		tree.AddUpstreamService(services.NewCacheGCService(g.store, logging.Logger()))
	}
	tree.AddAPIService(services.NewHTTPServerService(g.server, g.cfg.Server.ShutdownTimeout))
}

func (g *gateway) close() {
	if err := g.cache.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing cache")
	}
}

func runServe(ctx context.Context, cfg *config.Config, version string) error {
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Bool("nasa_configured", cfg.HasNASAKey()).
		Bool("breaker", cfg.Breaker.Enabled).
		Bool("persistent_cache", cfg.Cache.PersistentPath != "").
		Bool("probe", cfg.Probe.Enabled).
		Msg("Starting Orbital")

	if !cfg.HasNASAKey() {
		logging.Warn().Msg("NASA_API_KEY is not set; APOD and Mars rover endpoints will answer 503")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	g := newGateway(cfg, version)
	defer g.close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	g.services(tree)

	logging.Info().Str("addr", g.server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	logging.Info().Msg("Orbital stopped gracefully")
	return nil
}
