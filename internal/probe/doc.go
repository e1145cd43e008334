// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

// Package probe tracks upstream reachability for the health endpoint.
//
// A Monitor issues one GET per target per round, concurrently, and keeps the
// last Status of each. Results feed the orbital_upstream_up gauge and
// GET /api/v1/health. Reachability changes are logged once per transition.
//
//	mon := probe.New(probe.Config{Targets: []probe.Target{
//	    {Name: "spacedevs", URL: "https://ll.thespacedevs.com/2.3.0/"},
//	}})
//	go mon.Run(ctx, 5*time.Minute)
package probe
