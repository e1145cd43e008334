// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

// Package spacedevs is a client for TheSpaceDevs Launch Library.
//
// Launches (missions) are read from the 2.2.0 API in detailed mode.
// Astronauts, launcher configurations (rockets) and space stations come from
// 2.3.0. Lists return *Page with results untouched; details return the raw
// JSON document. All requests go through a shared fetch.Client, so retries,
// rate-limit waits and the circuit breaker apply uniformly.
//
// Status filtering and page math for the listing views live here too:
// FilterByStatus, Statuses and NewPagination.
package spacedevs
