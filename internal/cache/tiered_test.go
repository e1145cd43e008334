// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package cache

import (
	"testing"
	"time"
)

func TestTiered_MemoryOnly(t *testing.T) {
	t.Parallel()

	tc := NewTiered(New(time.Minute), nil)
	defer tc.Close()

	if tc.Persistent() {
		t.Error("Persistent() should be false without a store")
	}
	tc.Set("k", []byte("v"))
	if got, ok := tc.Get("k"); !ok || string(got) != "v" {
		t.Errorf("Get() = %s, %v", got, ok)
	}
	tc.Delete("k")
	if _, ok := tc.Get("k"); ok {
		t.Error("Expected miss after Delete")
	}
}

func TestTiered_PromotesPersistentHits(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, time.Hour)
	mem := New(time.Minute)
	defer mem.Close()

	if err := store.Set("stations:1", []byte(`{"count":2}`)); err != nil {
		t.Fatal(err)
	}

	tc := NewTiered(mem, store)
	if !tc.Persistent() {
		t.Error("Persistent() should be true")
	}

	got, ok := tc.Get("stations:1")
	if !ok || string(got) != `{"count":2}` {
		t.Fatalf("Get() = %s, %v", got, ok)
	}
	if _, ok := mem.Get("stations:1"); !ok {
		t.Error("persistent hit should populate memory")
	}
}

func TestTiered_WritesThrough(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, time.Hour)
	mem := New(time.Minute)
	defer mem.Close()
	tc := NewTiered(mem, store)

	tc.Set("missions:1", []byte(`[]`))
	if _, ok, _ := store.Get("missions:1"); !ok {
		t.Error("Set should write the persistent tier")
	}

	// Memory eviction still served from disk
	mem.Clear()
	if _, ok := tc.Get("missions:1"); !ok {
		t.Error("expected persistent fallback after memory clear")
	}

	tc.Clear()
	if _, ok := tc.Get("missions:1"); ok {
		t.Error("Clear should empty every tier")
	}
}

func TestTiered_ClosedStoreDegradesToMiss(t *testing.T) {
	t.Parallel()

	store, err := OpenBadger(BadgerConfig{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	mem := New(time.Minute)
	defer mem.Close()
	tc := NewTiered(mem, store)

	_ = store.Close()

	tc.Set("k", []byte("v"))
	mem.Clear()
	if _, ok := tc.Get("k"); ok {
		t.Error("closed store should read as a miss")
	}
	if err := tc.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestTiered_PromotionKeepsRemainingTTL(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, time.Hour)
	mem := New(time.Hour)
	defer mem.Close()

	if err := store.SetWithTTL("apod:today", []byte(`{}`), 2*time.Second); err != nil {
		t.Fatal(err)
	}

	tc := NewTiered(mem, store)
	if _, ok := tc.Get("apod:today"); !ok {
		t.Fatal("expected persistent hit")
	}

	mem.mu.RLock()
	entry, ok := mem.entries["apod:today"]
	mem.mu.RUnlock()
	if !ok {
		t.Fatal("persistent hit should populate memory")
	}
	if left := time.Until(entry.ExpiresAt); left > 2*time.Second {
		t.Errorf("memory copy lives %v, longer than the entry has left on disk", left)
	}

	// Once the disk entry is gone, memory must not keep serving it
	time.Sleep(2100 * time.Millisecond)
	if _, ok := tc.Get("apod:today"); ok {
		t.Error("expected miss after the persistent entry expired")
	}
}

func TestTiered_PromotionCapsAtMemoryTTL(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, time.Hour)
	mem := New(time.Minute)
	defer mem.Close()

	if err := store.Set("rockets:1", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	tc := NewTiered(mem, store)
	if _, ok := tc.Get("rockets:1"); !ok {
		t.Fatal("expected persistent hit")
	}

	mem.mu.RLock()
	entry := mem.entries["rockets:1"]
	mem.mu.RUnlock()
	if left := time.Until(entry.ExpiresAt); left > time.Minute {
		t.Errorf("memory copy lives %v, want at most the memory TTL", left)
	}
}
