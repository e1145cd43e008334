// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package probe

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/orbital/internal/fetch"
	"github.com/tomtom215/orbital/internal/logging"
	"github.com/tomtom215/orbital/internal/metrics"
)

// DefaultTimeout bounds a single probe request.
const DefaultTimeout = 10 * time.Second

// Target is an upstream base URL to probe.
type Target struct {
	Name string
	URL  string
}

// Status is the result of the most recent probe of one target.
type Status struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Up         bool      `json:"up"`
	StatusCode int       `json:"status_code,omitempty"`
	LatencyMs  int64     `json:"latency_ms"`
	CheckedAt  time.Time `json:"checked_at"`
	Error      string    `json:"error,omitempty"`
}

// Config configures a Monitor.
type Config struct {
	Targets    []Target
	Timeout    time.Duration
	HTTPClient fetch.Doer
	Now        func() time.Time
}

// Monitor probes upstreams and keeps the latest result per target.
// Probes bypass the retry loop and the circuit breaker: they report raw
// reachability, not what a user request would see.
type Monitor struct {
	targets []Target
	timeout time.Duration
	client  fetch.Doer
	now     func() time.Time

	mu       sync.RWMutex
	statuses map[string]Status
}

// New creates a Monitor. Targets with an empty URL are skipped.
func New(cfg Config) *Monitor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	targets := make([]Target, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		if t.URL != "" {
			targets = append(targets, t)
		}
	}

	return &Monitor{
		targets:  targets,
		timeout:  cfg.Timeout,
		client:   cfg.HTTPClient,
		now:      cfg.Now,
		statuses: make(map[string]Status, len(targets)),
	}
}

// Targets returns the probed targets.
func (m *Monitor) Targets() []Target {
	out := make([]Target, len(m.targets))
	copy(out, m.targets)
	return out
}

// CheckAll probes every target concurrently and returns the results sorted
// by name. Individual failures are recorded, not returned; the error is
// non-nil only when ctx ends.
func (m *Monitor) CheckAll(ctx context.Context) ([]Status, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, t := range m.targets {
		g.Go(func() error {
			st := m.check(gctx, t)
			m.record(st)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.Snapshot(), nil
}

// Snapshot returns the latest status of every probed target, sorted by name.
// Targets not yet probed are omitted.
func (m *Monitor) Snapshot() []Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Status, 0, len(m.statuses))
	for _, st := range m.statuses {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Healthy reports whether every probed target was up. It is true before the
// first probe.
func (m *Monitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, st := range m.statuses {
		if !st.Up {
			return false
		}
	}
	return true
}

// Run probes immediately and then on every interval until ctx ends.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("probe interval must be positive, got %v", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := m.CheckAll(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// check issues a GET against the target. Any response below 500 counts as
// up: the NASA gateway answers 403 without a key and SpaceDevs may answer
// 429, both of which prove the upstream is reachable.
func (m *Monitor) check(ctx context.Context, t Target) Status {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	st := Status{Name: t.Name, URL: t.URL}
	start := m.now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL, nil)
	if err != nil {
		st.Error = err.Error()
		st.CheckedAt = m.now()
		return st
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	st.CheckedAt = m.now()
	st.LatencyMs = st.CheckedAt.Sub(start).Milliseconds()
	if err != nil {
		st.Error = err.Error()
		return st
	}
	_ = resp.Body.Close()

	st.StatusCode = resp.StatusCode
	st.Up = resp.StatusCode < http.StatusInternalServerError
	if !st.Up {
		st.Error = http.StatusText(resp.StatusCode)
	}
	return st
}

func (m *Monitor) record(st Status) {
	m.mu.Lock()
	prev, seen := m.statuses[st.Name]
	m.statuses[st.Name] = st
	m.mu.Unlock()

	metrics.SetUpstreamUp(st.Name, st.Up)

	if seen && prev.Up == st.Up {
		return
	}
	ev := logging.Info()
	if !st.Up {
		ev = logging.Warn().Str("error", st.Error)
	}
	ev.Str("component", "probe").
		Str("upstream", st.Name).
		Bool("up", st.Up).
		Int("status_code", st.StatusCode).
		Msg("Upstream reachability changed")
}
