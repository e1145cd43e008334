// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

/*
Package cache stores upstream response bodies so repeated page views do not
spend the upstream rate limit.

# Tiers

  - Cache: thread-safe in-memory map with per-entry TTL and a background
    sweeper (default TTL 5 minutes)
  - BadgerStore: optional BadgerDB directory with native TTL (default 1 hour),
    surviving restarts
  - Tiered: memory first, then Badger; Badger hits are copied into memory

Values are raw JSON bodies ([]byte). Keys come from GenerateKey, which hashes
the endpoint parameters with SHA-256:

	key := cache.GenerateKey("missions", map[string]any{"page": 2, "search": "falcon"})
	if body, ok := tc.Get(key); ok {
	    // serve cached body
	}

Hits and misses are exported as orbital_cache_hits_total and
orbital_cache_misses_total, labeled by tier.

# Persistent Tier

Enabled with cache.persistent_path (CACHE_PATH). BadgerStore.RunGC reclaims
value log space and runs under the supervisor. Read and write failures are
logged and treated as misses.
*/
package cache
