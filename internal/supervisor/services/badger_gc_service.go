// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package services

import (
	"context"
	"time"

	"github.com/tomtom215/lumiere/internal/logging"
)

// GarbageCollector is the slice of the likes store this service needs.
type GarbageCollector interface {
	RunGC() error
}

// BadgerGCService periodically runs Badger value-log garbage collection on
// the likes database. Badger never reclaims value-log space on its own;
// something must call RunValueLogGC on a schedule.
type BadgerGCService struct {
	store    GarbageCollector
	interval time.Duration
	name     string
}

// NewBadgerGCService creates the GC service. Intervals under a minute are
// raised to the Badger-recommended floor.
func NewBadgerGCService(store GarbageCollector, interval time.Duration) *BadgerGCService {
	if interval < time.Minute {
		interval = time.Minute
	}
	return &BadgerGCService{
		store:    store,
		interval: interval,
		name:     "badger-gc",
	}
}

// Serve implements suture.Service.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.store.RunGC(); err != nil {
				// GC failure is not fatal; log and try again next tick.
				logging.Warn().Err(err).Msg("Likes database GC cycle failed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (s *BadgerGCService) String() string {
	return s.name
}
