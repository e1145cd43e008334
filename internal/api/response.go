// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/orbital/internal/logging"
	"github.com/tomtom215/orbital/internal/spacedevs"
)

// APIResponse is the standardized response wrapper for all API endpoints.
type APIResponse struct {
	// Success indicates whether the request was successful
	Success bool `json:"success"`

	// Data contains the response payload (omitted on error)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (omitted on success)
	Error *APIError `json:"error,omitempty"`

	Meta APIMeta `json:"meta"`
}

// APIError represents an error response.
type APIError struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains additional error details (optional)
	Details interface{} `json:"details,omitempty"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Timestamp  time.Time             `json:"timestamp"`
	RequestID  string                `json:"request_id,omitempty"`
	Pagination *spacedevs.Pagination `json:"pagination,omitempty"`
}

// Error codes for API responses
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"
	ErrCodeExternalService    = "EXTERNAL_SERVICE_ERROR"
)

// respondJSON writes response with status. Successful 200 responses carry an
// ETag computed over the data payload only, so timestamps and request ids do
// not defeat If-None-Match.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *APIResponse) {
	response.Meta.Timestamp = time.Now().UTC()
	response.Meta.RequestID = logging.RequestIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Vary", "Accept-Encoding")

	if response.Success && status == http.StatusOK {
		payload, err := json.Marshal(response.Data)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal response data")
			writeInternalError(w)
			return
		}
		response.Data = json.RawMessage(payload)

		etag := generateETag(payload)
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=60")

		if etagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}

	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		writeInternalError(w)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess writes a 200 envelope around data.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, pagination *spacedevs.Pagination) {
	respondJSON(w, r, http.StatusOK, &APIResponse{
		Success: true,
		Data:    data,
		Meta:    APIMeta{Pagination: pagination},
	})
}

// respondError sends an error response. err, when set, is logged and never
// sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details interface{}, err error) {
	if err != nil {
		// Sanitize error output to prevent log injection attacks
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Int("status", status).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, r, status, &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"success":false,"error":{"code":"` + ErrCodeInternalError + `","message":"Internal server error"},"meta":{}}`))
}

// generateETag creates a strong ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint64(14695981039346656037)
	for _, b := range data {
		hash ^= uint64(b)
		hash *= 1099511628211
	}
	return `"` + strconv.FormatUint(hash, 16) + `"`
}

// etagMatches implements the weak comparison If-None-Match uses.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
