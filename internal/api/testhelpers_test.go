// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/orbital/internal/cache"
	"github.com/tomtom215/orbital/internal/fetch"
	"github.com/tomtom215/orbital/internal/nasa"
	"github.com/tomtom215/orbital/internal/spacedevs"
)

// upstream fakes both Launch Library and api.nasa.gov and records what it saw.
type upstream struct {
	*httptest.Server
	hits atomic.Int32
	mu   sync.Mutex
	urls []*url.URL
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *upstream {
	t.Helper()
	up := &upstream{}
	up.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up.hits.Add(1)
		up.mu.Lock()
		up.urls = append(up.urls, r.URL)
		up.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(up.Close)
	return up
}

func (up *upstream) last() *url.URL {
	up.mu.Lock()
	defer up.mu.Unlock()
	if len(up.urls) == 0 {
		return nil
	}
	return up.urls[len(up.urls)-1]
}

// staticUpstream answers every request with status and body.
func staticUpstream(t *testing.T, status int, body string) *upstream {
	return newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

type testEnv struct {
	handler *Handler
	router  http.Handler
	up      *upstream
}

type envConfig struct {
	nasaKey string
	router  RouterConfig
	deps    func(*HandlerDeps)
}

type envOption func(*envConfig)

func withNASAKey(key string) envOption {
	return func(c *envConfig) { c.nasaKey = key }
}

func withRouterConfig(f func(*RouterConfig)) envOption {
	return func(c *envConfig) { f(&c.router) }
}

func withDeps(f func(*HandlerDeps)) envOption {
	return func(c *envConfig) { c.deps = f }
}

func newTestEnv(t *testing.T, up *upstream, opts ...envOption) *testEnv {
	t.Helper()

	ec := envConfig{router: RouterConfig{RateLimitDisabled: true, CORSOrigins: []string{"*"}}}
	for _, opt := range opts {
		opt(&ec)
	}

	tc := cache.NewTiered(cache.New(time.Minute), nil)
	t.Cleanup(func() { _ = tc.Close() })

	deps := HandlerDeps{
		SpaceDevs: spacedevs.New(
			fetch.New(fetch.Config{Name: "spacedevs-test", HTTPClient: up.Client(), Sleep: noSleep}),
			spacedevs.Config{LaunchBaseURL: up.URL + "/2.2.0", BaseURL: up.URL + "/2.3.0"},
		),
		NASA: nasa.New(
			fetch.New(fetch.Config{Name: "nasa-test", HTTPClient: up.Client(), Sleep: noSleep}),
			nasa.Config{BaseURL: up.URL, APIKey: ec.nasaKey},
		),
		Cache:   tc,
		Version: "test",
	}
	if ec.deps != nil {
		ec.deps(&deps)
	}

	h := NewHandler(deps)
	return &testEnv{handler: h, router: NewRouter(h, ec.router).SetupChi(), up: up}
}

func (e *testEnv) get(t *testing.T, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope is the decoded response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    struct {
		Timestamp  time.Time             `json:"timestamp"`
		RequestID  string                `json:"request_id"`
		Pagination *spacedevs.Pagination `json:"pagination"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope %q: %v", rec.Body.String(), err)
	}
	return env
}

func decodeList(t *testing.T, env envelope) ListData {
	t.Helper()
	var list ListData
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("invalid list payload %s: %v", env.Data, err)
	}
	return list
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
	return env
}
