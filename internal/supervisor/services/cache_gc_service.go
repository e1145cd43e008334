// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package services

import (
	"context"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims persistent cache space until ctx ends.
// Satisfied by *cache.BadgerStore.
type GarbageCollector interface {
	RunGC(ctx context.Context) error
}

// CacheGCService runs BadgerDB value log GC for the persistent cache tier.
type CacheGCService struct {
	gc     GarbageCollector
	logger zerolog.Logger
	name   string
}

// NewCacheGCService creates a cache GC service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheGCService(gc GarbageCollector, logger zerolog.Logger) *CacheGCService {
	return &CacheGCService{
		gc:     gc,
		logger: logger.With().Str("service", "cache-gc").Logger(),
		name:   "cache-gc",
	}
}

// Serve implements suture.Service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	s.logger.Debug().Msg("cache GC starting")
	err := s.gc.RunGC(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("cache GC stopped")
	}
	return err
}

// String returns the service name for logging.
func (s *CacheGCService) String() string {
	return s.name
}
