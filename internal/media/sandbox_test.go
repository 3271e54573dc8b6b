// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package media

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestNewSandboxRequiresAbsoluteRoot(t *testing.T) {
	t.Parallel()

	if _, err := NewSandbox("relative/path"); err == nil {
		t.Fatal("NewSandbox accepted a relative root")
	}
	if _, err := NewSandbox("/srv/media"); err != nil {
		t.Fatalf("NewSandbox rejected absolute root: %v", err)
	}
}

func TestResolveValidPaths(t *testing.T) {
	t.Parallel()

	sandbox, err := NewSandbox("/srv/media")
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}

	tests := []struct {
		name      string
		requested string
		wantAbs   string
		wantReq   string
	}{
		{"simple file", "movie.mp4", "/srv/media/movie.mp4", "movie.mp4"},
		{"nested path", "shows/s01/e01.mkv", "/srv/media/shows/s01/e01.mkv", "shows/s01/e01.mkv"},
		{"empty path resolves to root", "", "/srv/media", ""},
		{"leading slash stripped", "/movie.mp4", "/srv/media/movie.mp4", "movie.mp4"},
		{"duplicate slashes collapsed", "shows//s01///e01.mkv", "/srv/media/shows/s01/e01.mkv", "shows/s01/e01.mkv"},
		{"dot segments collapsed", "./shows/./e01.mkv", "/srv/media/shows/e01.mkv", "shows/e01.mkv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rp, err := sandbox.Resolve(tt.requested)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.requested, err)
			}
			if rp.Abs != filepath.FromSlash(tt.wantAbs) {
				t.Errorf("Abs = %q, want %q", rp.Abs, tt.wantAbs)
			}
			if rp.Requested != tt.wantReq {
				t.Errorf("Requested = %q, want %q", rp.Requested, tt.wantReq)
			}
		})
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	t.Parallel()

	sandbox, err := NewSandbox("/srv/media")
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}

	tests := []struct {
		name      string
		requested string
	}{
		{"plain traversal", "../etc/passwd"},
		{"nested traversal", "shows/../../etc/passwd"},
		{"traversal to self", "shows/../shows/e01.mkv"},
		{"bare dotdot", ".."},
		{"trailing dotdot", "shows/.."},
		{"deep traversal", "a/b/c/../../../../etc/shadow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := sandbox.Resolve(tt.requested)
			if !errors.Is(err, ErrAccessDenied) {
				t.Fatalf("Resolve(%q) = %v, want ErrAccessDenied", tt.requested, err)
			}
		})
	}
}

func TestResolveSiblingRootNotConfused(t *testing.T) {
	t.Parallel()

	// A root of /srv/media must not accept paths landing in /srv/media-evil.
	// Without ".." segments the join cannot escape, but the containment
	// re-check must hold regardless.
	sandbox, err := NewSandbox("/srv/media")
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}

	rp, err := sandbox.Resolve("x.mp4")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	rel, err := filepath.Rel("/srv/media", rp.Abs)
	if err != nil || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		t.Errorf("resolved path %q escapes root", rp.Abs)
	}
}

func TestResolveDotDotInFilename(t *testing.T) {
	t.Parallel()

	sandbox, err := NewSandbox("/srv/media")
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}

	// ".." as part of a filename is not a traversal segment.
	rp, err := sandbox.Resolve("notes..txt")
	if err != nil {
		t.Fatalf("Resolve(notes..txt): %v", err)
	}
	if rp.Requested != "notes..txt" {
		t.Errorf("Requested = %q", rp.Requested)
	}
}
