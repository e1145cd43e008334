// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package cli

import (
	"github.com/tomtom215/orbital/internal/config"
	"github.com/tomtom215/orbital/internal/fetch"
	"github.com/tomtom215/orbital/internal/nasa"
	"github.com/tomtom215/orbital/internal/spacedevs"
)

// Upstream names used in logs, metrics and breaker reports.
const (
	upstreamSpaceDevs = "spacedevs"
	upstreamNASA      = "nasa"
)

// clients are the upstream clients shared by serve and the data commands.
// Each upstream gets its own fetch client so one tripped breaker or
// exhausted limiter does not block the other.
type clients struct {
	spaceDevsFetch *fetch.Client
	nasaFetch      *fetch.Client
	spaceDevs      *spacedevs.Client
	nasa           *nasa.Client
}

func newClients(cfg *config.Config, userAgent string) *clients {
	sdCfg := cfg.FetchClientConfig(upstreamSpaceDevs)
	sdCfg.UserAgent = userAgent
	nasaCfg := cfg.FetchClientConfig(upstreamNASA)
	nasaCfg.UserAgent = userAgent

	sdFetch := fetch.New(sdCfg)
	nasaFetch := fetch.New(nasaCfg)

	return &clients{
		spaceDevsFetch: sdFetch,
		nasaFetch:      nasaFetch,
		spaceDevs: spacedevs.New(sdFetch, spacedevs.Config{
			LaunchBaseURL: cfg.SpaceDevs.LaunchBaseURL,
			BaseURL:       cfg.SpaceDevs.BaseURL,
			MaxRetries:    cfg.Fetch.MaxRetries,
		}),
		nasa: nasa.New(nasaFetch, nasa.Config{
			BaseURL:    cfg.NASA.BaseURL,
			APIKey:     cfg.NASA.APIKey,
			MaxRetries: cfg.Fetch.MaxRetries,
		}),
	}
}

func userAgent(version string) string {
	return "orbital/" + version
}
