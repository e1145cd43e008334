// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package spacedevs

import (
	"github.com/goccy/go-json"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Pagination describes where a page sits in a listing.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination computes page math for count items. TotalPages is
// ceil(count / pageSize). Page is clamped to at least 1.
func NewPagination(count, page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if count < 0 {
		count = 0
	}
	totalPages := (count + pageSize - 1) / pageSize
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: count,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Offset converts a 1-based page into an item offset.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// statusEnvelope picks status.name out of an astronaut or station.
type statusEnvelope struct {
	Status *struct {
		Name string `json:"name"`
	} `json:"status"`
}

func statusName(raw json.RawMessage) string {
	var env statusEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Status == nil {
		return ""
	}
	return env.Status.Name
}

// FilterByStatus keeps results whose status.name equals status.
// An empty status or StatusAll returns results unchanged.
func FilterByStatus(results []json.RawMessage, status string) []json.RawMessage {
	if status == "" || status == StatusAll {
		return results
	}
	filtered := make([]json.RawMessage, 0, len(results))
	for _, r := range results {
		if statusName(r) == status {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Statuses lists StatusAll followed by each distinct status.name in order
// of first appearance.
func Statuses(results []json.RawMessage) []string {
	out := []string{StatusAll}
	seen := make(map[string]bool)
	for _, r := range results {
		name := statusName(r)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
