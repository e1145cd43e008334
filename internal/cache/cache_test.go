// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c := New(ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCacheBasicOperations(t *testing.T) {
	c := newTestCache(t, time.Minute)

	c.Set("key1", []byte(`{"count":1}`))
	value, exists := c.Get("key1")
	if !exists {
		t.Fatal("Expected key1 to exist")
	}
	if string(value) != `{"count":1}` {
		t.Errorf("Expected stored body, got %s", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := newTestCache(t, 50*time.Millisecond)

	c.Set("key1", []byte("v"))
	if _, exists := c.Get("key1"); !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(80 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if c.Len() != 0 {
		t.Errorf("Expected expired entry to be removed, Len() = %d", c.Len())
	}
}

func TestCacheZeroTTL(t *testing.T) {
	c := newTestCache(t, 0)

	c.Set("key1", []byte("v"))
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key with zero TTL to be expired immediately")
	}
}

func TestCacheSetWithTTLOverridesDefault(t *testing.T) {
	c := newTestCache(t, time.Hour)

	c.SetWithTTL("short", []byte("v"), 20*time.Millisecond)
	c.Set("long", []byte("v"))

	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected short-lived entry to expire")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("Expected default TTL entry to survive")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := newTestCache(t, time.Minute)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3"))

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected a to be deleted")
	}
	c.Delete("missing")

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}

	stats := c.GetStats()
	// 2 deletes + 2 cleared
	if stats.Evictions != 4 {
		t.Errorf("Evictions = %d, want 4", stats.Evictions)
	}
	if stats.TotalKeys != 0 {
		t.Errorf("TotalKeys = %d, want 0", stats.TotalKeys)
	}
}

func TestCacheStatsAndHitRate(t *testing.T) {
	c := newTestCache(t, time.Minute)

	if c.HitRate() != 0 {
		t.Errorf("HitRate() = %v with no lookups, want 0", c.HitRate())
	}

	c.Set("k", []byte("v"))
	c.Get("k")
	c.Get("k")
	c.Get("k")
	c.Get("nope")

	stats := c.GetStats()
	if stats.Hits != 3 || stats.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d, want 3/1", stats.Hits, stats.Misses)
	}
	if c.HitRate() != 75 {
		t.Errorf("HitRate() = %v, want 75", c.HitRate())
	}
}

func TestCacheManualCleanup(t *testing.T) {
	c := newTestCache(t, 20*time.Millisecond)

	c.Set("key1", []byte("1"))
	c.Set("key2", []byte("2"))
	c.SetWithTTL("key3", []byte("3"), time.Hour)

	time.Sleep(40 * time.Millisecond)
	c.cleanup()

	stats := c.GetStats()
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d after cleanup, want 1", stats.TotalKeys)
	}
	if stats.Evictions != 2 {
		t.Errorf("Evictions = %d, want 2", stats.Evictions)
	}
	if stats.LastCleanup.IsZero() {
		t.Error("Expected LastCleanup to be set")
	}
}

func TestCacheCleanupLoop(t *testing.T) {
	c := NewWithCleanup(time.Millisecond, 10*time.Millisecond)
	defer c.Close()

	c.Set("k", []byte("v"))

	deadline := time.Now().Add(time.Second)
	for c.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Error("Expected cleanup loop to sweep expired entry")
	}
}

func TestCacheCloseIdempotent(t *testing.T) {
	c := New(time.Minute)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	// Still usable as a plain map after the sweeper stops
	c.Set("k", []byte("v"))
	if _, ok := c.Get("k"); !ok {
		t.Error("Expected Get to work after Close")
	}
}

func TestCacheConcurrency(t *testing.T) {
	c := newTestCache(t, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key%d", j%5)
				c.Set(key, []byte(fmt.Sprint(id)))
				c.Get(key)
				if j%10 == 0 {
					c.Delete(key)
				}
			}
		}(i)
	}
	wg.Wait()

	stats := c.GetStats()
	if stats.Hits == 0 && stats.Misses == 0 {
		t.Error("Expected some cache activity from concurrent operations")
	}
}

func TestGenerateKey(t *testing.T) {
	type params struct {
		Page   int
		Search string
	}

	key1 := GenerateKey("missions", params{Page: 1, Search: "falcon"})
	key2 := GenerateKey("missions", params{Page: 1, Search: "falcon"})
	key3 := GenerateKey("missions", params{Page: 2, Search: "falcon"})
	key4 := GenerateKey("rockets", params{Page: 1, Search: "falcon"})

	if key1 != key2 {
		t.Error("Expected same params to generate same key")
	}
	if key1 == key3 {
		t.Error("Expected different params to generate different key")
	}
	if key1 == key4 {
		t.Error("Expected different endpoints to generate different key")
	}
	if len(key1) != len("missions:")+32 {
		t.Errorf("unexpected key length: %q", key1)
	}
}

func TestGenerateKeyUnmarshalable(t *testing.T) {
	key := GenerateKey("ep", make(chan int))
	if key == "" || key[:3] != "ep:" {
		t.Errorf("Expected fallback key, got %q", key)
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New(time.Minute)
	defer c.Close()
	c.Set("key", []byte("value"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}

func BenchmarkGenerateKey(b *testing.B) {
	params := map[string]interface{}{"page": 3, "search": "soyuz"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GenerateKey("rockets", params)
	}
}
