// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

// Package main is the entry point for the orbital command.
//
// Orbital serves space-exploration data from TheSpaceDevs (Launch Library 2)
// and api.nasa.gov. Every upstream call goes through a retrying fetch client
// that honors 429 Retry-After hints, so a busy upstream slows Orbital down
// instead of failing it.
//
// # Commands
//
//	orbital serve                      run the HTTP gateway on :3857
//	orbital astronauts --status Active print one page of astronauts
//	orbital photos --sol 1000          print Curiosity photos for a sol
//	orbital --help                     list everything else
//
// # Configuration
//
// Layered with koanf (highest priority wins):
//   - Environment variables (NASA_API_KEY, FETCH_MAX_RETRIES, CACHE_PATH, ...)
//   - Config file (--config, ./config.yaml or /etc/orbital/config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// serve shuts down on SIGINT and SIGTERM: the HTTP server stops accepting
// connections and drains for SHUTDOWN_TIMEOUT, then the probe and
// cache GC stop and the persistent cache is closed.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tomtom215/orbital/internal/cli"
)

// Set by -ldflags "-X main.version=..."
var version = "dev"

func main() {
	root := cli.NewRootCmd(version, os.Stdout)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "orbital:", err)
		os.Exit(1)
	}
}
