// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*mockService)(nil)

// mockService runs until canceled, failing the first failures starts.
type mockService struct {
	name       string
	failures   int32
	startCount atomic.Int32
}

func newMockService(name string, failures int32) *mockService {
	return &mockService{name: name, failures: failures}
}

func (m *mockService) Serve(ctx context.Context) error {
	if m.startCount.Add(1) <= m.failures {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) StartCount() int32 {
	return m.startCount.Load()
}

func (m *mockService) String() string {
	return m.name
}
