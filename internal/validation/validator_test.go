// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package validation

import (
	"strings"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// Request Struct Tests
// ===================================================================================================

func intPtr(v int) *int { return &v }

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"apod today", &APODRequest{}},
		{"apod date", &APODRequest{Date: "2024-02-29"}},
		{"list", &PagedListRequest{Page: 1, Limit: 9, Status: "Active"}},
		{"list max limit", &PagedListRequest{Page: 3, Limit: 100}},
		{"search", &SearchListRequest{Page: 2, Search: "Falcon 9"}},
		{"numeric id", &NumericIDRequest{ID: "276"}},
		{"uuid", &UUIDRequest{ID: "e3df2ecd-c239-472f-95e4-2b89b4f75800"}},
		{"photos latest", &PhotosRequest{Page: 1}},
		{"photos lowercase camera", &PhotosRequest{Page: 1, Camera: "navcam"}},
		{"photos sol zero", &PhotosRequest{Page: 1, Sol: intPtr(0)}},
		{"photos earth date", &PhotosRequest{Page: 1, EarthDate: "2015-06-03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(tt.input); err != nil {
				t.Errorf("ValidateStruct() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
	}{
		{"apod bad date", &APODRequest{Date: "2024-13-01"}, "date", "datetime"},
		{"apod wrong layout", &APODRequest{Date: "01/02/2024"}, "date", "datetime"},
		{"page zero", &PagedListRequest{Page: 0, Limit: 9}, "page", "min"},
		{"limit too big", &PagedListRequest{Page: 1, Limit: 101}, "limit", "max"},
		{"search too long", &SearchListRequest{Page: 1, Search: strings.Repeat("x", 101)}, "search", "max"},
		{"id missing", &NumericIDRequest{}, "id", "required"},
		{"id leading zero", &NumericIDRequest{ID: "007"}, "id", "spacedevs_id"},
		{"id negative", &NumericIDRequest{ID: "-4"}, "id", "spacedevs_id"},
		{"id path", &NumericIDRequest{ID: "4/../5"}, "id", "spacedevs_id"},
		{"uuid malformed", &UUIDRequest{ID: "not-a-uuid"}, "id", "uuid"},
		{"camera unknown", &PhotosRequest{Page: 1, Camera: "PANCAM"}, "camera", "rover_camera"},
		{"earth date", &PhotosRequest{Page: 1, EarthDate: "yesterday"}, "earth_date", "datetime"},
		{"sol negative", &PhotosRequest{Page: 1, Sol: intPtr(-1)}, "sol", "min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("Expected 1 error, got %d: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

// ===================================================================================================
// APIError Conversion Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	err := ValidateStruct(&PhotosRequest{Page: 1, EarthDate: "2015/06/03"})
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if apiErr.Message != "earth_date must be a date in YYYY-MM-DD format" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "earth_date" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&PagedListRequest{Page: 0, Limit: 0})
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("Expected details to contain 'fields' key")
	}
	if !strings.Contains(apiErr.Message, "page: page must be at least 1") ||
		!strings.Contains(apiErr.Message, "limit: limit must be at least 1") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" || apiErr.Message != "Validation failed" {
		t.Errorf("unexpected empty conversion: %+v", apiErr)
	}
	if (&RequestValidationError{}).Error() != "validation failed" {
		t.Error("unexpected empty Error()")
	}
}

// ===================================================================================================
// Error Message Tests
// ===================================================================================================

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"required", &UUIDRequest{}, "id is required"},
		{"uuid", &UUIDRequest{ID: "x"}, "id must be a valid UUID"},
		{"spacedevs id", &NumericIDRequest{ID: "abc"}, "id must be a positive integer id"},
		{"string max", &SearchListRequest{Page: 1, Search: strings.Repeat("s", 200)}, "search must be at most 100 characters"},
		{"int max", &PagedListRequest{Page: 1, Limit: 500}, "limit must be at most 100"},
		{"camera", &PhotosRequest{Page: 1, Camera: "x"}, "camera must be a Curiosity camera (FHAZ, RHAZ, MAST, CHEMCAM, MAHLI, MARDI, NAVCAM)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	err := ValidateStruct("not a struct")
	if err == nil {
		t.Fatal("Expected error for non-struct input")
	}
	if err.Errors()[0].Field() != "unknown" {
		t.Errorf("Field() = %q, want unknown", err.Errors()[0].Field())
	}
}
