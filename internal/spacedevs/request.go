// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package spacedevs

import (
	"net/url"
	"strconv"
	"strings"
)

// apiRequest holds the path and query for one TheSpaceDevs request
type apiRequest struct {
	path   string
	params url.Values
}

// newAPIRequest creates a request for path segments joined under the base URL.
// Segments are escaped; the trailing slash the API expects is added.
func newAPIRequest(segments ...string) *apiRequest {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return &apiRequest{
		path:   strings.Join(escaped, "/") + "/",
		params: url.Values{},
	}
}

// addParam adds a parameter to the request (only if non-empty)
func (r *apiRequest) addParam(key, value string) *apiRequest {
	if value != "" {
		r.params.Set(key, value)
	}
	return r
}

// addIntParam adds an integer parameter to the request (even if 0)
func (r *apiRequest) addIntParam(key string, value int) *apiRequest {
	if value >= 0 {
		r.params.Set(key, strconv.Itoa(value))
	}
	return r
}

// paginate adds limit and offset for a 1-based page
func (r *apiRequest) paginate(page, pageSize int) *apiRequest {
	return r.addIntParam("limit", pageSize).addIntParam("offset", Offset(page, pageSize))
}

// buildURL constructs the full URL with all parameters
func (r *apiRequest) buildURL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/") + "/" + r.path
	if len(r.params) == 0 {
		return u
	}
	return u + "?" + r.params.Encode()
}
