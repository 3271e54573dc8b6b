// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package classifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDisabledClient(t *testing.T) {
	t.Parallel()

	c := New("", 5*time.Second)
	if c.Enabled() {
		t.Fatal("Enabled() = true for empty URL")
	}

	if _, err := c.Classify(context.Background(), "movies/a.mp4"); !errors.Is(err, ErrDisabled) {
		t.Errorf("Classify = %v, want ErrDisabled", err)
	}
	if _, err := c.Model(context.Background()); !errors.Is(err, ErrDisabled) {
		t.Errorf("Model = %v, want ErrDisabled", err)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("path"); got != "movies/space doc.mp4" {
			t.Errorf("path query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"label":"documentary","confidence":0.92}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	result, err := c.Classify(context.Background(), "movies/space doc.mp4")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Label != "documentary" {
		t.Errorf("Label = %q, want documentary", result.Label)
	}
	if result.Confidence != 0.92 {
		t.Errorf("Confidence = %v, want 0.92", result.Confidence)
	}
}

func TestModel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/model" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if _, err := w.Write([]byte(`{"name":"scene-tagger-v2","ready":true}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	info, err := c.Model(context.Background())
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	if info.Name != "scene-tagger-v2" || !info.Ready {
		t.Errorf("Model = %+v", info)
	}
}

func TestSidecarErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	if _, err := c.Classify(context.Background(), "a.mp4"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Classify = %v, want ErrUnavailable", err)
	}
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	ctx := context.Background()

	// Drive enough failures to trip the breaker, then verify subsequent
	// calls are shed without reaching the sidecar.
	for i := 0; i < 10; i++ {
		if _, err := c.Classify(ctx, "a.mp4"); err == nil {
			t.Fatal("Classify succeeded against failing sidecar")
		}
	}
	srv.Close()

	if _, err := c.Classify(ctx, "a.mp4"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Classify with open circuit = %v, want ErrUnavailable", err)
	}
}

func TestTrailingSlashTrimmed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/model" {
			t.Errorf("path = %q, want /model", r.URL.Path)
		}
		if _, err := w.Write([]byte(`{"name":"m","ready":false}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 5*time.Second)
	if _, err := c.Model(context.Background()); err != nil {
		t.Fatalf("Model: %v", err)
	}
}
