// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeGC struct {
	calls chan struct{}
	err   error
}

func (f *fakeGC) RunGC() error {
	select {
	case f.calls <- struct{}{}:
	default:
	}
	return f.err
}

func TestBadgerGCServiceIntervalFloor(t *testing.T) {
	t.Parallel()

	svc := NewBadgerGCService(&fakeGC{}, time.Second)
	if svc.interval != time.Minute {
		t.Errorf("interval = %v, want floor of 1m", svc.interval)
	}

	svc = NewBadgerGCService(&fakeGC{}, 5*time.Minute)
	if svc.interval != 5*time.Minute {
		t.Errorf("interval = %v, want 5m", svc.interval)
	}
}

func TestBadgerGCServiceStopsOnCancel(t *testing.T) {
	t.Parallel()

	svc := NewBadgerGCService(&fakeGC{calls: make(chan struct{}, 1)}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestBadgerGCServiceString(t *testing.T) {
	t.Parallel()

	svc := NewBadgerGCService(&fakeGC{}, time.Minute)
	if got := svc.String(); got != "badger-gc" {
		t.Errorf("String() = %q", got)
	}
}
