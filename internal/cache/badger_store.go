// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/tomtom215/orbital/internal/logging"
	"github.com/tomtom215/orbital/internal/metrics"
)

// TierBadger labels the persistent tier in metrics.
const TierBadger = "badger"

// keyPrefix namespaces response entries inside the database.
const keyPrefix = "resp:"

// ErrStoreClosed is returned by operations on a closed BadgerStore.
var ErrStoreClosed = errors.New("cache store is closed")

// BadgerConfig configures the persistent response store.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps everything in RAM; used by tests.
	InMemory bool
	// TTL is the default entry lifetime. Default: 1h.
	TTL time.Duration
	// GCInterval is how often RunGC reclaims value log space. Default: 10m.
	GCInterval time.Duration
	// GCRatio is the discard ratio passed to RunValueLogGC. Default: 0.5.
	GCRatio float64
}

// BadgerStore persists response bodies across restarts using BadgerDB's
// native per-entry TTL.
type BadgerStore struct {
	db  *badger.DB
	cfg BadgerConfig

	mu     sync.RWMutex
	closed bool
}

// OpenBadger opens (or creates) the store described by cfg.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.GCInterval <= 0 {
		cfg.GCInterval = 10 * time.Minute
	}
	if cfg.GCRatio <= 0 || cfg.GCRatio >= 1 {
		cfg.GCRatio = 0.5
	}
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger cache path is required")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
		opts.Compression = options.Snappy
	}
	opts.NumCompactors = 2
	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Dur("ttl", cfg.TTL).
		Msg("Persistent response cache opened")

	return &BadgerStore{db: db, cfg: cfg}, nil
}

// TTL returns the default entry lifetime.
func (s *BadgerStore) TTL() time.Duration {
	return s.cfg.TTL
}

// Get returns the body stored under key, if present and unexpired.
func (s *BadgerStore) Get(key string) ([]byte, bool, error) {
	data, _, ok, err := s.GetWithTTL(key)
	return data, ok, err
}

// GetWithTTL is Get plus the entry's remaining lifetime. The lifetime is 0
// for entries stored without expiry.
func (s *BadgerStore) GetWithTTL(key string) ([]byte, time.Duration, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, 0, false, ErrStoreClosed
	}

	var (
		out       []byte
		remaining time.Duration
	)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		if exp := item.ExpiresAt(); exp > 0 {
			remaining = time.Until(time.Unix(int64(exp), 0))
			if remaining <= 0 {
				return badger.ErrKeyNotFound
			}
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		metrics.RecordCacheLookup(TierBadger, false)
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("read cache entry: %w", err)
	}
	metrics.RecordCacheLookup(TierBadger, true)
	return out, remaining, true, nil
}

// Set stores value under key with the default TTL.
func (s *BadgerStore) Set(key string, value []byte) error {
	return s.SetWithTTL(key, value, s.cfg.TTL)
}

// SetWithTTL stores value under key, expiring after ttl.
func (s *BadgerStore) SetWithTTL(key string, value []byte, ttl time.Duration) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(keyPrefix+key), value)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *BadgerStore) Delete(key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(keyPrefix + key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// Clear drops every response entry.
func (s *BadgerStore) Clear() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	if err := s.db.DropPrefix([]byte(keyPrefix)); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Count returns the number of live entries.
func (s *BadgerStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// RunGC reclaims value log space every GCInterval until ctx is done.
// It is meant to run as a supervised service. In-memory stores have no value
// log and return when ctx ends.
func (s *BadgerStore) RunGC(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.cfg.InMemory {
				continue
			}
			s.gcOnce()
		}
	}
}

func (s *BadgerStore) gcOnce() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	// Keep collecting while badger reports progress
	for i := 0; i < 10; i++ {
		err := s.db.RunValueLogGC(s.cfg.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return
		}
		if err != nil {
			logging.Warn().Err(err).Msg("Cache value log GC failed")
			return
		}
	}
}

// Close flushes and closes the database. Safe to call more than once.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	return nil
}
