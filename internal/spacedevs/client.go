// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package spacedevs

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/orbital/internal/fetch"
)

// Page sizes used by the listing endpoints.
const (
	// MissionPageSize is fixed by the launch listing.
	MissionPageSize = 10
	// RocketPageSize is fixed by the launcher listing.
	RocketPageSize = 10
	// DefaultPageSize is used by the astronaut and station listings.
	DefaultPageSize = 9
	// MaxPageSize is the largest limit TheSpaceDevs accepts.
	MaxPageSize = 100
)

// ErrInvalidID is returned before any request when a resource id is malformed.
var ErrInvalidID = errors.New("invalid resource id")

// Page is one page of a TheSpaceDevs list endpoint.
// Results are passed through without reshaping.
type Page struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

// Config holds the two API roots. Launches live on an older API version.
type Config struct {
	LaunchBaseURL string
	BaseURL       string
	// MaxRetries per call; zero uses the fetch client's policy.
	MaxRetries int
}

// Client reads astronauts, launches, launchers and space stations.
type Client struct {
	fetch         *fetch.Client
	launchBaseURL string
	baseURL       string
	maxRetries    int
}

// New creates a Client on top of a shared fetch client.
func New(fc *fetch.Client, cfg Config) *Client {
	return &Client{
		fetch:         fc,
		launchBaseURL: cfg.LaunchBaseURL,
		baseURL:       cfg.BaseURL,
		maxRetries:    cfg.MaxRetries,
	}
}

// Astronauts returns one page of astronauts.
func (c *Client) Astronauts(ctx context.Context, limit, offset int) (*Page, error) {
	req := newAPIRequest("astronauts").
		addIntParam("limit", clampLimit(limit)).
		addIntParam("offset", max(offset, 0)).
		addParam("format", "json")
	return c.page(ctx, c.baseURL, req, "astronauts")
}

// Astronaut returns one astronaut by numeric id.
func (c *Client) Astronaut(ctx context.Context, id string) (json.RawMessage, error) {
	if err := validateNumericID(id); err != nil {
		return nil, err
	}
	req := newAPIRequest("astronauts", id).addParam("format", "json")
	return c.detail(ctx, c.baseURL, req, "astronaut")
}

// Missions returns one page of launches, optionally filtered by search.
func (c *Client) Missions(ctx context.Context, page int, search string) (*Page, error) {
	req := newAPIRequest("launch").
		paginate(page, MissionPageSize).
		addParam("search", search).
		addParam("mode", "detailed")
	return c.page(ctx, c.launchBaseURL, req, "missions")
}

// Mission returns one launch by UUID.
func (c *Client) Mission(ctx context.Context, id string) (json.RawMessage, error) {
	if err := validateUUID(id); err != nil {
		return nil, err
	}
	req := newAPIRequest("launch", id).addParam("mode", "detailed")
	return c.detail(ctx, c.launchBaseURL, req, "mission")
}

// UpcomingMissions returns one page of upcoming launches.
func (c *Client) UpcomingMissions(ctx context.Context, page int) (*Page, error) {
	req := newAPIRequest("launch", "upcoming").
		paginate(page, MissionPageSize).
		addParam("mode", "detailed")
	return c.page(ctx, c.launchBaseURL, req, "upcoming missions")
}

// PreviousMissions returns one page of past launches.
func (c *Client) PreviousMissions(ctx context.Context, page int) (*Page, error) {
	req := newAPIRequest("launch", "previous").
		paginate(page, MissionPageSize).
		addParam("mode", "detailed")
	return c.page(ctx, c.launchBaseURL, req, "previous missions")
}

// Rockets returns one page of launcher configurations.
func (c *Client) Rockets(ctx context.Context, page int, search string) (*Page, error) {
	req := newAPIRequest("launcher_configurations").
		paginate(page, RocketPageSize).
		addParam("search", search).
		addParam("format", "json")
	return c.page(ctx, c.baseURL, req, "rockets")
}

// Rocket returns one launcher configuration by numeric id.
func (c *Client) Rocket(ctx context.Context, id string) (json.RawMessage, error) {
	if err := validateNumericID(id); err != nil {
		return nil, err
	}
	req := newAPIRequest("launcher_configurations", id).addParam("format", "json")
	return c.detail(ctx, c.baseURL, req, "rocket")
}

// SpaceStations returns one page of space stations.
func (c *Client) SpaceStations(ctx context.Context, limit, offset int) (*Page, error) {
	req := newAPIRequest("space_stations").
		addIntParam("limit", clampLimit(limit)).
		addIntParam("offset", max(offset, 0)).
		addParam("format", "json")
	return c.page(ctx, c.baseURL, req, "space stations")
}

// SpaceStation returns one space station by numeric id.
func (c *Client) SpaceStation(ctx context.Context, id string) (json.RawMessage, error) {
	if err := validateNumericID(id); err != nil {
		return nil, err
	}
	req := newAPIRequest("space_stations", id).addParam("format", "json")
	return c.detail(ctx, c.baseURL, req, "space station details")
}

func (c *Client) page(ctx context.Context, baseURL string, req *apiRequest, action string) (*Page, error) {
	p, err := fetch.FetchJSON[*Page](ctx, c.fetch, req.buildURL(baseURL), nil, c.maxRetries)
	if err != nil {
		return nil, fetch.Describe(action, err)
	}
	if p == nil {
		return nil, fetch.Describe(action, &fetch.Error{Kind: fetch.KindDecode, Cause: errors.New("null page")})
	}
	return p, nil
}

func (c *Client) detail(ctx context.Context, baseURL string, req *apiRequest, action string) (json.RawMessage, error) {
	body, err := c.fetch.Get(ctx, req.buildURL(baseURL), nil, c.maxRetries)
	if err != nil {
		return nil, fetch.Describe(action, err)
	}
	return body, nil
}

func clampLimit(limit int) int {
	if limit < 1 {
		return DefaultPageSize
	}
	return min(limit, MaxPageSize)
}

func validateNumericID(id string) error {
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func validateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
