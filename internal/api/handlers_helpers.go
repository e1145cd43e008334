// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/orbital/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
// This includes newlines, carriage returns, tabs, and other control characters that could
// allow attackers to forge log entries or corrupt log files.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or an APIError with the VALIDATION_ERROR
// code.
//
// Example:
//
//	req := validation.SearchListRequest{
//	    Page:   getIntParam(r, "page", 1),
//	    Search: r.URL.Query().Get("search"),
//	}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondValidationError(w, r, apiErr)
//	    return
//	}
func validateRequest(v interface{}) *APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// respondValidationError writes a 400 for apiErr.
func respondValidationError(w http.ResponseWriter, r *http.Request, apiErr *APIError) {
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
}

// getIntParam extracts an integer query parameter with a default value.
// Malformed values fall back to the default.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getOptionalIntParam distinguishes an absent parameter (nil) from 0. A
// present but malformed value is an error.
func getOptionalIntParam(r *http.Request, key string) (*int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}

	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &intValue, nil
}
