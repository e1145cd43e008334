// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/orbital/internal/fetch"
	"github.com/tomtom215/orbital/internal/nasa"
	"github.com/tomtom215/orbital/internal/spacedevs"
)

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte(`{"id":1}`))
	if a != generateETag([]byte(`{"id":1}`)) {
		t.Error("ETag should be stable for identical payloads")
	}
	if a == generateETag([]byte(`{"id":2}`)) {
		t.Error("ETag should differ for different payloads")
	}
	if a[0] != '"' || a[len(a)-1] != '"' {
		t.Errorf("ETag %s should be quoted", a)
	}
}

func TestETagMatches(t *testing.T) {
	const etag = `"abc123"`
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc123"`, true},
		{`W/"abc123"`, true},
		{`"other", "abc123"`, true},
		{`"other"`, false},
		{"*", true},
		{`abc123`, false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := etagMatches(tt.header, etag); got != tt.want {
				t.Errorf("etagMatches(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestUpstreamErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid id", fmt.Errorf("%w: %q", spacedevs.ErrInvalidID, "x"), http.StatusBadRequest, ErrCodeValidation},
		{"invalid camera", nasa.ErrInvalidCamera, http.StatusBadRequest, ErrCodeValidation},
		{"missing key", fetch.NewConfigError(nasa.ErrAPIKeyMissing), http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"circuit open", &fetch.Error{Kind: fetch.KindTransport, Cause: gobreaker.ErrOpenState}, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"rate limited", &fetch.Error{Kind: fetch.KindRateLimit, StatusCode: 429}, http.StatusTooManyRequests, ErrCodeTooManyRequests},
		{"upstream 404", &fetch.Error{Kind: fetch.KindHTTP, StatusCode: 404}, http.StatusNotFound, ErrCodeNotFound},
		{"upstream 500", &fetch.Error{Kind: fetch.KindHTTP, StatusCode: 500}, http.StatusBadGateway, ErrCodeExternalService},
		{"deadline", &fetch.Error{Kind: fetch.KindTransport, Cause: context.DeadlineExceeded}, http.StatusGatewayTimeout, ErrCodeGatewayTimeout},
		{"decode", &fetch.Error{Kind: fetch.KindDecode, Cause: errors.New("eof")}, http.StatusBadGateway, ErrCodeExternalService},
		{"foreign", errors.New("boom"), http.StatusBadGateway, ErrCodeExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := upstreamErrorStatus(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("upstreamErrorStatus() = %d %s, want %d %s", status, code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"rounds up", &fetch.Error{Kind: fetch.KindRateLimit, RetryAfter: 1500 * time.Millisecond}, 2},
		{"whole seconds", &fetch.Error{Kind: fetch.KindRateLimit, RetryAfter: 30 * time.Second}, 30},
		{"no hint", &fetch.Error{Kind: fetch.KindRateLimit}, 60},
		{"foreign", errors.New("x"), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryAfterSeconds(tt.err); got != tt.want {
				t.Errorf("retryAfterSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRespondJSON_ErrorsAreNotCached(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rockets", nil)
	rec := httptest.NewRecorder()

	respondError(rec, req, http.StatusBadGateway, ErrCodeExternalService, "upstream failed", nil, errors.New("line1\nline2"))

	if rec.Header().Get("ETag") != "" {
		t.Error("error responses must not carry an ETag")
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}
	if rec.Header().Get("Content-Type") != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\tc\x7f"); got != `a\x0ab\x09c\x7f` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}
