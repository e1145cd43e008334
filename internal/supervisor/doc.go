// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

/*
Package supervisor runs Orbital's long-lived services under a suture v4 tree.

# Layout

	RootSupervisor ("orbital")
	├── UpstreamSupervisor ("upstream-layer")
	│   ├── ProbeService (if PROBE_ENABLED)
	│   └── CacheGCService (if CACHE_PATH is set)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures on its own, so a probe that keeps failing backs
off without restarting the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddUpstreamService(services.NewProbeService(monitor, cfg.Probe.Interval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Supervisor events (starts, failures, backoff) go through sutureslog to the
slog logger, which logging.NewSlogLogger bridges into zerolog.

# Configuration

TreeConfig zero values fall back to DefaultTreeConfig: threshold 5, decay
30s, backoff 15s, shutdown timeout 10s.
*/
package supervisor
