// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package nasa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/orbital/internal/fetch"
)

type fakeNASA struct {
	*httptest.Server
	hits atomic.Int32
	mu   sync.Mutex
	last *url.URL
}

func newFakeNASA(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *fakeNASA {
	t.Helper()
	f := &fakeNASA{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.mu.Lock()
		f.last = r.URL
		f.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeNASA) lastURL() *url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func jsonHandler(status int, body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newTestClient(f *fakeNASA, key string) *Client {
	fc := fetch.New(fetch.Config{
		Name:       "nasa-test",
		HTTPClient: f.Client(),
		Sleep:      func(ctx context.Context, _ time.Duration) error { return ctx.Err() },
	})
	return New(fc, Config{BaseURL: f.URL + "/", APIKey: key})
}

func TestMissingKeySkipsNetwork(t *testing.T) {
	t.Parallel()

	f := newFakeNASA(t, jsonHandler(http.StatusOK, `{}`))
	c := newTestClient(f, "")
	ctx := context.Background()

	if c.Configured() {
		t.Error("Configured() should be false without a key")
	}

	errs := map[string]error{}
	_, errs["apod"] = c.APOD(ctx, "")
	_, errs["rovers"] = c.Rovers(ctx)
	_, errs["photos"] = c.RoverPhotos(ctx, PhotoQuery{})

	for name, err := range errs {
		if !errors.Is(err, ErrAPIKeyMissing) {
			t.Errorf("%s: expected ErrAPIKeyMissing, got %v", name, err)
		}
		if !fetch.IsConfigError(err) {
			t.Errorf("%s: expected config error kind", name)
		}
		if err != nil && err.Error() != "NASA API key is not configured" {
			t.Errorf("%s: Error() = %q", name, err.Error())
		}
	}
	if f.hits.Load() != 0 {
		t.Errorf("upstream contacted %d times without a key", f.hits.Load())
	}
}

func TestAPOD(t *testing.T) {
	t.Parallel()

	body := `{"date":"2024-01-01","title":"Pillars","url":"https://apod.nasa.gov/x.jpg","media_type":"image"}`
	f := newFakeNASA(t, jsonHandler(http.StatusOK, body))
	c := newTestClient(f, "secret")

	got, err := c.APOD(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("APOD() error = %v", err)
	}
	if string(got) != body {
		t.Errorf("APOD() = %s, want %s", got, body)
	}

	u := f.lastURL()
	if u.Path != "/planetary/apod" {
		t.Errorf("path = %q", u.Path)
	}
	if u.Query().Get("api_key") != "secret" || u.Query().Get("date") != "2024-01-01" {
		t.Errorf("query = %v", u.Query())
	}
}

func TestAPOD_WithoutDate(t *testing.T) {
	t.Parallel()

	f := newFakeNASA(t, jsonHandler(http.StatusOK, `{"title":"today"}`))
	if _, err := newTestClient(f, "k").APOD(context.Background(), ""); err != nil {
		t.Fatalf("APOD() error = %v", err)
	}
	if _, ok := f.lastURL().Query()["date"]; ok {
		t.Error("date must be omitted when empty")
	}
}

func TestAPOD_InvalidDate(t *testing.T) {
	t.Parallel()

	f := newFakeNASA(t, jsonHandler(http.StatusOK, `{}`))
	_, err := newTestClient(f, "k").APOD(context.Background(), "01/02/2024")
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if f.hits.Load() != 0 {
		t.Error("invalid date must not reach upstream")
	}
}

func TestAPOD_PrefersUpstreamMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"msg field", `{"code":400,"msg":"Date must be between Jun 16, 1995 and Jan 01, 2024.","service_version":"v1"}`, "error fetching APOD: Date must be between Jun 16, 1995 and Jan 01, 2024."},
		{"api.data.gov error", `{"error":{"code":"API_KEY_INVALID","message":"An invalid api_key was supplied."}}`, "error fetching APOD: An invalid api_key was supplied."},
		{"no message", `{"code":400}`, "error fetching APOD: HTTP error! status: 400"},
		{"not json", `<html>bad</html>`, "error fetching APOD: HTTP error! status: 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFakeNASA(t, jsonHandler(http.StatusBadRequest, tt.body))
			_, err := newTestClient(f, "k").APOD(context.Background(), "2030-01-01")
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
			if fetch.StatusCode(err) != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", fetch.StatusCode(err))
			}
		})
	}
}

func TestAPOD_KeyNotLeaked(t *testing.T) {
	t.Parallel()

	f := newFakeNASA(t, jsonHandler(http.StatusInternalServerError, `{}`))
	_, err := newTestClient(f, "super-secret-key").APOD(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	var fe *fetch.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fetch.Error, got %T", err)
	}
	if strings.Contains(fe.URL, "super-secret-key") || strings.Contains(err.Error(), "super-secret-key") {
		t.Errorf("api key leaked: url=%q err=%q", fe.URL, err.Error())
	}
}

func TestAPOD_RateLimited(t *testing.T) {
	t.Parallel()

	f := newFakeNASA(t, jsonHandler(http.StatusTooManyRequests, `{"error":{"code":"OVER_RATE_LIMIT","message":"slow down"}}`))
	_, err := newTestClient(f, "k").APOD(context.Background(), "")
	if !fetch.IsRateLimited(err) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if err.Error() != fetch.RateLimitMessage {
		t.Errorf("Error() = %q, want %q", err.Error(), fetch.RateLimitMessage)
	}
}

func TestRovers(t *testing.T) {
	t.Parallel()

	f := newFakeNASA(t, jsonHandler(http.StatusOK, `{"rover":{"id":5,"name":"Curiosity","status":"active"}}`))
	rovers, err := newTestClient(f, "k").Rovers(context.Background())
	if err != nil {
		t.Fatalf("Rovers() error = %v", err)
	}
	if len(rovers) != 1 || string(rovers[0]) != `{"id":5,"name":"Curiosity","status":"active"}` {
		t.Errorf("Rovers() = %s", rovers)
	}
	if f.lastURL().Path != "/mars-photos/api/v1/rovers/curiosity" {
		t.Errorf("path = %q", f.lastURL().Path)
	}
}

func TestRovers_MissingRover(t *testing.T) {
	t.Parallel()

	f := newFakeNASA(t, jsonHandler(http.StatusOK, `{}`))
	rovers, err := newTestClient(f, "k").Rovers(context.Background())
	if err != nil {
		t.Fatalf("Rovers() error = %v", err)
	}
	if rovers == nil || len(rovers) != 0 {
		t.Errorf("Rovers() = %v, want empty non-nil", rovers)
	}
}

func intPtr(v int) *int { return &v }

func TestRoverPhotos_Requests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     PhotoQuery
		wantPath  string
		wantQuery map[string]string
		absent    []string
	}{
		{
			name:      "latest",
			query:     PhotoQuery{Page: 4},
			wantPath:  "/mars-photos/api/v1/rovers/curiosity/latest_photos",
			wantQuery: map[string]string{"api_key": "k"},
			absent:    []string{"page", "sol", "earth_date"},
		},
		{
			name:      "latest with camera",
			query:     PhotoQuery{Camera: "NAVCAM"},
			wantPath:  "/mars-photos/api/v1/rovers/curiosity/latest_photos",
			wantQuery: map[string]string{"camera": "navcam"},
		},
		{
			name:      "earth date",
			query:     PhotoQuery{Page: 2, EarthDate: "2015-06-03"},
			wantPath:  "/mars-photos/api/v1/rovers/curiosity/photos",
			wantQuery: map[string]string{"page": "2", "earth_date": "2015-06-03"},
			absent:    []string{"sol"},
		},
		{
			name:      "sol zero is a real sol",
			query:     PhotoQuery{Sol: intPtr(0), Camera: "fhaz"},
			wantPath:  "/mars-photos/api/v1/rovers/curiosity/photos",
			wantQuery: map[string]string{"page": "1", "sol": "0", "camera": "fhaz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFakeNASA(t, jsonHandler(http.StatusOK, `{"photos":[]}`))
			if _, err := newTestClient(f, "k").RoverPhotos(context.Background(), tt.query); err != nil {
				t.Fatalf("RoverPhotos() error = %v", err)
			}
			u := f.lastURL()
			if u.Path != tt.wantPath {
				t.Errorf("path = %q, want %q", u.Path, tt.wantPath)
			}
			q := u.Query()
			for k, v := range tt.wantQuery {
				if q.Get(k) != v {
					t.Errorf("%s = %q, want %q", k, q.Get(k), v)
				}
			}
			for _, k := range tt.absent {
				if _, ok := q[k]; ok {
					t.Errorf("%s should be absent", k)
				}
			}
		})
	}
}

func TestRoverPhotos_ResponseShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"latest_photos", `{"latest_photos":[{"id":1},{"id":2}]}`, 2},
		{"photos", `{"photos":[{"id":3}]}`, 1},
		{"empty latest wins", `{"latest_photos":[],"photos":[{"id":3}]}`, 0},
		{"neither", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFakeNASA(t, jsonHandler(http.StatusOK, tt.body))
			photos, err := newTestClient(f, "k").RoverPhotos(context.Background(), PhotoQuery{})
			if err != nil {
				t.Fatalf("RoverPhotos() error = %v", err)
			}
			if photos == nil {
				t.Fatal("RoverPhotos() returned nil slice")
			}
			if len(photos) != tt.want {
				t.Errorf("len = %d, want %d", len(photos), tt.want)
			}
		})
	}
}

func TestRoverPhotos_InvalidQuery(t *testing.T) {
	t.Parallel()

	f := newFakeNASA(t, jsonHandler(http.StatusOK, `{}`))
	c := newTestClient(f, "k")

	tests := []struct {
		name  string
		query PhotoQuery
		want  error
	}{
		{"camera", PhotoQuery{Camera: "SELFIE"}, ErrInvalidCamera},
		{"date", PhotoQuery{EarthDate: "2015-13-01"}, ErrInvalidDate},
		{"sol", PhotoQuery{Sol: intPtr(-1)}, ErrInvalidSol},
	}
	for _, tt := range tests {
		if _, err := c.RoverPhotos(context.Background(), tt.query); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
	if f.hits.Load() != 0 {
		t.Error("invalid queries must not reach upstream")
	}
}

func TestRoverPhotos_ServerError(t *testing.T) {
	t.Parallel()

	f := newFakeNASA(t, jsonHandler(http.StatusServiceUnavailable, ``))
	_, err := newTestClient(f, "k").RoverPhotos(context.Background(), PhotoQuery{})
	want := "error fetching rover photos: HTTP error! status: 503"
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
	if f.hits.Load() != int32(fetch.DefaultMaxRetries) {
		t.Errorf("attempts = %d, want %d", f.hits.Load(), fetch.DefaultMaxRetries)
	}
}

func TestCameras(t *testing.T) {
	t.Parallel()

	cams := Cameras()
	if len(cams) != 7 {
		t.Fatalf("len(Cameras()) = %d, want 7", len(cams))
	}
	if cams[0].ID != "FHAZ" || cams[6].ID != "NAVCAM" {
		t.Errorf("unexpected order: %+v", cams)
	}
	cams[0].ID = "MUTATED"
	if Cameras()[0].ID != "FHAZ" {
		t.Error("Cameras() must return a copy")
	}
	if !IsCamera("chemcam") || IsCamera("") || IsCamera("PANCAM") {
		t.Error("IsCamera mismatch")
	}
}
