// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package cache

import (
	"errors"

	"github.com/tomtom215/orbital/internal/logging"
)

// Tiered reads the memory tier first and falls back to an optional
// persistent tier. A persistent hit is copied into memory for no longer than
// the entry has left on disk.
//
// Persistent tier failures are logged and treated as misses; a broken disk
// never fails a request that could be served from upstream.
type Tiered struct {
	mem  *Cache
	disk *BadgerStore
}

// NewTiered combines mem with disk. disk may be nil for memory-only caching.
func NewTiered(mem *Cache, disk *BadgerStore) *Tiered {
	return &Tiered{mem: mem, disk: disk}
}

// Persistent reports whether a persistent tier is attached.
func (t *Tiered) Persistent() bool {
	return t.disk != nil
}

// Get returns the cached body for key.
func (t *Tiered) Get(key string) ([]byte, bool) {
	if data, ok := t.mem.Get(key); ok {
		return data, true
	}
	if t.disk == nil {
		return nil, false
	}
	data, remaining, ok, err := t.disk.GetWithTTL(key)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Persistent cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	ttl := t.mem.TTL()
	if remaining > 0 && remaining < ttl {
		ttl = remaining
	}
	t.mem.SetWithTTL(key, data, ttl)
	return data, true
}

// Set stores value in every tier using each tier's default TTL.
func (t *Tiered) Set(key string, value []byte) {
	t.mem.Set(key, value)
	if t.disk == nil {
		return
	}
	if err := t.disk.Set(key, value); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Persistent cache write failed")
	}
}

// Delete removes key from every tier.
func (t *Tiered) Delete(key string) {
	t.mem.Delete(key)
	if t.disk == nil {
		return
	}
	if err := t.disk.Delete(key); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Persistent cache delete failed")
	}
}

// Clear empties every tier.
func (t *Tiered) Clear() {
	t.mem.Clear()
	if t.disk == nil {
		return
	}
	if err := t.disk.Clear(); err != nil {
		logging.Warn().Err(err).Msg("Persistent cache clear failed")
	}
}

// Stats returns the memory tier statistics.
func (t *Tiered) Stats() Stats {
	return t.mem.GetStats()
}

// Close closes every tier.
func (t *Tiered) Close() error {
	errs := []error{t.mem.Close()}
	if t.disk != nil {
		errs = append(errs, t.disk.Close())
	}
	return errors.Join(errs...)
}
