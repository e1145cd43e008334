// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// ProbeRunner checks upstream availability every interval until ctx ends.
// Satisfied by *probe.Monitor.
type ProbeRunner interface {
	Run(ctx context.Context, interval time.Duration) error
}

// ProbeService keeps the upstream availability probe running.
type ProbeService struct {
	runner   ProbeRunner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewProbeService creates a probe service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewProbeService(runner ProbeRunner, interval time.Duration, logger zerolog.Logger) *ProbeService {
	return &ProbeService{
		runner:   runner,
		interval: interval,
		logger:   logger.With().Str("service", "probe").Logger(),
		name:     "upstream-probe",
	}
}

// Serve implements suture.Service. A bad interval cannot be fixed by a
// restart, so it stops the service for good.
func (s *ProbeService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Error().Dur("interval", s.interval).Msg("probe interval must be positive, not starting")
		return fmt.Errorf("invalid probe interval %v: %w", s.interval, suture.ErrDoNotRestart)
	}

	s.logger.Info().Dur("interval", s.interval).Msg("upstream probe starting")
	err := s.runner.Run(ctx, s.interval)
	if ctx.Err() != nil {
		s.logger.Info().Msg("upstream probe shutting down")
		return ctx.Err()
	}
	return err
}

// String returns the service name for logging.
func (s *ProbeService) String() string {
	return s.name
}
