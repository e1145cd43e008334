// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/orbital/internal/nasa"
)

func TestNASA_MissingKey(t *testing.T) {
	t.Parallel()

	up := staticUpstream(t, http.StatusOK, `{}`)
	env := newTestEnv(t, up)

	for _, path := range []string{
		"/api/v1/apod",
		"/api/v1/mars-rovers",
		"/api/v1/mars-rovers/photos?sol=1000",
	} {
		t.Run(path, func(t *testing.T) {
			resp := expectError(t, env.get(t, path), http.StatusServiceUnavailable, ErrCodeServiceUnavailable)
			if resp.Error.Message != nasa.ErrAPIKeyMissing.Error() {
				t.Errorf("message = %q", resp.Error.Message)
			}
		})
	}
	if up.hits.Load() != 0 {
		t.Errorf("upstream called %d times without a key", up.hits.Load())
	}
}

func TestMarsRoverCameras_NoKeyNeeded(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, staticUpstream(t, http.StatusOK, `{}`))

	rec := env.get(t, "/api/v1/mars-rovers/cameras")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cameras []nasa.Camera
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &cameras); err != nil {
		t.Fatal(err)
	}
	if len(cameras) != len(nasa.Cameras()) || cameras[0].ID == "" {
		t.Errorf("cameras = %+v", cameras)
	}
}

func TestAPOD(t *testing.T) {
	t.Parallel()

	up := staticUpstream(t, http.StatusOK, `{"title":"Pillars of Creation","media_type":"image"}`)
	env := newTestEnv(t, up, withNASAKey("secret-key"))

	rec := env.get(t, "/api/v1/apod?date=2024-02-29")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	q := up.last().Query()
	if up.last().Path != "/planetary/apod" || q.Get("api_key") != "secret-key" || q.Get("date") != "2024-02-29" {
		t.Errorf("upstream request = %s", up.last())
	}

	var picture map[string]string
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &picture); err != nil || picture["title"] != "Pillars of Creation" {
		t.Errorf("data = %v, %v", picture, err)
	}

	expectError(t, env.get(t, "/api/v1/apod?date=29-02-2024"), http.StatusBadRequest, ErrCodeValidation)
	if up.hits.Load() != 1 {
		t.Errorf("upstream hits = %d, want 1", up.hits.Load())
	}
}

func TestAPOD_UpstreamMessage(t *testing.T) {
	t.Parallel()

	up := staticUpstream(t, http.StatusBadRequest, `{"code":400,"msg":"Date must be between Jun 16, 1995 and today."}`)
	env := newTestEnv(t, up, withNASAKey("k"))

	resp := expectError(t, env.get(t, "/api/v1/apod?date=1990-01-01"), http.StatusBadGateway, ErrCodeExternalService)
	if resp.Error.Message != "error fetching APOD: Date must be between Jun 16, 1995 and today." {
		t.Errorf("message = %q", resp.Error.Message)
	}
}

func TestMarsRovers(t *testing.T) {
	t.Parallel()

	up := staticUpstream(t, http.StatusOK, `{"rover":{"id":5,"name":"Curiosity"}}`)
	env := newTestEnv(t, up, withNASAKey("k"))

	rec := env.get(t, "/api/v1/mars-rovers")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if up.last().Path != "/mars-photos/api/v1/rovers/curiosity" {
		t.Errorf("path = %s", up.last().Path)
	}
	var rovers []map[string]interface{}
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &rovers); err != nil || len(rovers) != 1 {
		t.Errorf("rovers = %v, %v", rovers, err)
	}
}

func TestMarsRoverPhotos(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		path  string
		want  map[string]string
	}{
		{
			name:  "latest",
			query: "",
			path:  "/mars-photos/api/v1/rovers/curiosity/latest_photos",
			want:  map[string]string{"sol": "", "page": ""},
		},
		{
			name:  "sol zero is a real sol",
			query: "?sol=0",
			path:  "/mars-photos/api/v1/rovers/curiosity/photos",
			want:  map[string]string{"sol": "0", "page": "1"},
		},
		{
			name:  "earth date camera and page",
			query: "?earth_date=2015-06-03&camera=NAVCAM&page=2",
			path:  "/mars-photos/api/v1/rovers/curiosity/photos",
			want:  map[string]string{"earth_date": "2015-06-03", "camera": "navcam", "page": "2"},
		},
		{
			name:  "latest with lowercase camera",
			query: "?camera=fhaz",
			path:  "/mars-photos/api/v1/rovers/curiosity/latest_photos",
			want:  map[string]string{"camera": "fhaz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			up := staticUpstream(t, http.StatusOK, `{"photos":[{"id":1}],"latest_photos":[{"id":2}]}`)
			env := newTestEnv(t, up, withNASAKey("k"))

			rec := env.get(t, "/api/v1/mars-rovers/photos"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			if up.last().Path != tt.path {
				t.Errorf("path = %s, want %s", up.last().Path, tt.path)
			}
			for k, v := range tt.want {
				if got := up.last().Query().Get(k); got != v {
					t.Errorf("query %s = %q, want %q", k, got, v)
				}
			}
		})
	}
}

func TestMarsRoverPhotos_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"sol not a number", "?sol=abc", "sol"},
		{"negative sol", "?sol=-3", "sol"},
		{"unknown camera", "?camera=PANCAM", "camera"},
		{"bad earth date", "?earth_date=2015-6-3", "earth_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			up := staticUpstream(t, http.StatusOK, `{}`)
			env := newTestEnv(t, up, withNASAKey("k"))

			resp := expectError(t, env.get(t, "/api/v1/mars-rovers/photos"+tt.query), http.StatusBadRequest, ErrCodeValidation)
			details, _ := resp.Error.Details.(map[string]interface{})
			if details["field"] != tt.field {
				t.Errorf("details = %v, want field %q", resp.Error.Details, tt.field)
			}
			if up.hits.Load() != 0 {
				t.Errorf("upstream called %d times", up.hits.Load())
			}
		})
	}
}
