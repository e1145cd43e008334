// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package nasa

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/orbital/internal/fetch"
)

// DateLayout is the date format NASA APIs accept.
const DateLayout = "2006-01-02"

// Rover is the only rover this client reads.
const Rover = "curiosity"

var (
	// ErrAPIKeyMissing is returned, without any request, when no key is configured.
	ErrAPIKeyMissing = errors.New("NASA API key is not configured")
	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")
	// ErrInvalidCamera is returned for camera ids not in Cameras().
	ErrInvalidCamera = errors.New("unknown rover camera")
	// ErrInvalidSol is returned for negative sols.
	ErrInvalidSol = errors.New("sol must not be negative")
)

// Config holds the API root and key.
type Config struct {
	BaseURL string
	APIKey  string
	// MaxRetries per call; zero uses the fetch client's policy.
	MaxRetries int
}

// Client reads APOD and Mars rover data from api.nasa.gov.
type Client struct {
	fetch      *fetch.Client
	baseURL    string
	apiKey     string
	maxRetries int
}

// New creates a Client on top of a shared fetch client. An empty APIKey is
// accepted; every call then fails with ErrAPIKeyMissing.
func New(fc *fetch.Client, cfg Config) *Client {
	return &Client{
		fetch:      fc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// APOD returns the Astronomy Picture of the Day. An empty date means today.
func (c *Client) APOD(ctx context.Context, date string) (json.RawMessage, error) {
	if err := c.checkKey(); err != nil {
		return nil, err
	}
	params := url.Values{}
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		params.Set("date", date)
	}

	body, err := c.fetch.Get(ctx, c.buildURL("planetary/apod", params), nil, c.maxRetries)
	if err != nil {
		return nil, fetch.Describe("APOD", preferUpstreamMessage(err))
	}
	return body, nil
}

// Rovers returns the Curiosity rover manifest as a one-element list.
func (c *Client) Rovers(ctx context.Context) ([]json.RawMessage, error) {
	if err := c.checkKey(); err != nil {
		return nil, err
	}

	type roverResponse struct {
		Rover json.RawMessage `json:"rover"`
	}
	resp, err := fetch.FetchJSON[roverResponse](ctx, c.fetch, c.buildURL("mars-photos/api/v1/rovers/"+Rover, nil), nil, c.maxRetries)
	if err != nil {
		return nil, fetch.Describe("rover", preferUpstreamMessage(err))
	}
	if len(resp.Rover) == 0 {
		return []json.RawMessage{}, nil
	}
	return []json.RawMessage{resp.Rover}, nil
}

// PhotoQuery selects rover photos. With neither EarthDate nor Sol set the
// latest photos are returned and Page is ignored.
type PhotoQuery struct {
	Page      int
	Camera    string
	EarthDate string
	// Sol is a Martian day; nil means unset, 0 is the landing sol.
	Sol *int
}

// Latest reports whether the query asks for the latest photos.
func (q PhotoQuery) Latest() bool {
	return q.EarthDate == "" && q.Sol == nil
}

// Validate checks the camera, date and sol.
func (q PhotoQuery) Validate() error {
	if q.Camera != "" && !IsCamera(q.Camera) {
		return fmt.Errorf("%w: %q", ErrInvalidCamera, q.Camera)
	}
	if q.EarthDate != "" {
		if _, err := time.Parse(DateLayout, q.EarthDate); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, q.EarthDate)
		}
	}
	if q.Sol != nil && *q.Sol < 0 {
		return ErrInvalidSol
	}
	return nil
}

// RoverPhotos returns Curiosity photos for q. The result is never nil.
func (c *Client) RoverPhotos(ctx context.Context, q PhotoQuery) ([]json.RawMessage, error) {
	if err := c.checkKey(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	path := "mars-photos/api/v1/rovers/" + Rover + "/latest_photos"
	params := url.Values{}
	if !q.Latest() {
		path = "mars-photos/api/v1/rovers/" + Rover + "/photos"
		params.Set("page", strconv.Itoa(max(q.Page, 1)))
		if q.EarthDate != "" {
			params.Set("earth_date", q.EarthDate)
		}
		if q.Sol != nil {
			params.Set("sol", strconv.Itoa(*q.Sol))
		}
	}
	if q.Camera != "" {
		params.Set("camera", strings.ToLower(q.Camera))
	}

	type photosResponse struct {
		LatestPhotos []json.RawMessage `json:"latest_photos"`
		Photos       []json.RawMessage `json:"photos"`
	}
	resp, err := fetch.FetchJSON[photosResponse](ctx, c.fetch, c.buildURL(path, params), nil, c.maxRetries)
	if err != nil {
		return nil, fetch.Describe("rover photos", preferUpstreamMessage(err))
	}
	switch {
	case resp.LatestPhotos != nil:
		return resp.LatestPhotos, nil
	case resp.Photos != nil:
		return resp.Photos, nil
	default:
		return []json.RawMessage{}, nil
	}
}

func (c *Client) checkKey() error {
	if c.apiKey == "" {
		return fetch.NewConfigError(ErrAPIKeyMissing)
	}
	return nil
}

func (c *Client) buildURL(path string, params url.Values) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	return c.baseURL + "/" + path + "?" + q.Encode()
}

// upstreamError is the error shape api.nasa.gov returns: either a top-level
// msg or an api.data.gov error object.
type upstreamError struct {
	Msg   string `json:"msg"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// preferUpstreamMessage replaces the generic HTTP status text with the
// message NASA put in the body, when there is one. Rate limits keep their
// classification.
func preferUpstreamMessage(err error) error {
	var fe *fetch.Error
	if !errors.As(err, &fe) || fe.Kind != fetch.KindHTTP || len(fe.Body) == 0 {
		return err
	}
	var body upstreamError
	if json.Unmarshal(fe.Body, &body) != nil {
		return err
	}
	msg := body.Msg
	if msg == "" && body.Error != nil {
		msg = body.Error.Message
	}
	if msg == "" {
		return err
	}
	out := *fe
	out.Message = msg
	return &out
}
