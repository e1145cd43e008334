// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/orbital/internal/probe"
)

// Health status values
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status         string            `json:"status"`
	Version        string            `json:"version"`
	UptimeSeconds  float64           `json:"uptime_seconds"`
	NASAConfigured bool              `json:"nasa_configured"`
	Upstreams      []probe.Status    `json:"upstreams"`
	Breakers       map[string]string `json:"breakers,omitempty"`
	Cache          *CacheHealth      `json:"cache,omitempty"`
}

// CacheHealth summarizes the response cache.
type CacheHealth struct {
	Persistent bool    `json:"persistent"`
	Keys       int64   `json:"keys"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRate    float64 `json:"hit_rate"`
}

// Health reports version, uptime, upstream probe results and breaker
// states. It answers 200 even when degraded; use /health/ready for gating.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.healthStatus(), nil)
}

// HealthLive always answers 200 while the process serves requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]string{"status": "alive"}, nil)
}

// HealthReady answers 503 while any probed upstream is down or any breaker
// is open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := h.healthStatus()
	if status.Status != StatusHealthy {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Upstream services are degraded", status, nil)
		return
	}
	respondSuccess(w, r, map[string]string{"status": "ready"}, nil)
}

func (h *Handler) healthStatus() HealthStatus {
	status := HealthStatus{
		Status:         StatusHealthy,
		Version:        h.version,
		UptimeSeconds:  time.Since(h.startTime).Seconds(),
		NASAConfigured: h.nasa != nil && h.nasa.Configured(),
		Upstreams:      []probe.Status{},
	}

	if h.upstreams != nil {
		status.Upstreams = h.upstreams.Snapshot()
		if !h.upstreams.Healthy() {
			status.Status = StatusDegraded
		}
	}

	for _, b := range h.breakers {
		state := b.BreakerState()
		if state == "" {
			continue
		}
		if status.Breakers == nil {
			status.Breakers = make(map[string]string, len(h.breakers))
		}
		status.Breakers[b.Name()] = state
		if state == "open" {
			status.Status = StatusDegraded
		}
	}

	if h.cache != nil {
		stats := h.cache.Stats()
		var hitRate float64
		if total := stats.Hits + stats.Misses; total > 0 {
			hitRate = float64(stats.Hits) / float64(total) * 100
		}
		status.Cache = &CacheHealth{
			Persistent: h.cache.Persistent(),
			Keys:       stats.TotalKeys,
			Hits:       stats.Hits,
			Misses:     stats.Misses,
			HitRate:    hitRate,
		}
	}

	return status
}
