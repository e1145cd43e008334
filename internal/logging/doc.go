// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

// Package logging provides the process-wide zerolog logger for Orbital.
//
// The logger is usable before Init is called (JSON to stderr at info level).
// main() reconfigures it from the logging section of the config:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//
// Request handlers and upstream clients log through Ctx so request and
// correlation ids follow every retry attempt:
//
//	logging.Ctx(ctx).Warn().Err(err).Int("attempt", 1).Msg("Retry attempt")
//
// NewSlogLogger bridges to log/slog for the suture supervisor tree.
//
// Always terminate event chains with Msg or Send, otherwise nothing is written.
package logging
