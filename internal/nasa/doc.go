// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

// Package nasa reads the Astronomy Picture of the Day and Curiosity rover
// photos from api.nasa.gov.
//
// Every call checks the API key first; without one it returns a
// fetch.KindConfig error wrapping ErrAPIKeyMissing and sends nothing.
// The key travels as the api_key query parameter and is redacted from logs
// and errors by the fetch client.
package nasa
