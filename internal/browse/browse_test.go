// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package browse

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/lumiere/internal/media"
)

func mustWrite(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestListOrdering(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "zeta.mp4"), []byte("v"))
	mustWrite(t, filepath.Join(root, "Alpha.txt"), []byte("t"))
	if err := os.MkdirAll(filepath.Join(root, "videos"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "Books"), 0o755); err != nil {
		t.Fatal(err)
	}

	sandbox, err := media.NewSandbox(root)
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	rp, err := sandbox.Resolve("")
	if err != nil {
		t.Fatalf("Resolve root: %v", err)
	}

	entries, err := List(rp)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"Books", "videos", "Alpha.txt", "zeta.mp4"}
	if len(entries) != len(want) {
		t.Fatalf("List returned %d entries, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, name)
		}
	}
	if !entries[0].IsDir || !entries[1].IsDir {
		t.Error("directories must sort before files")
	}
	if entries[2].IsDir || entries[3].IsDir {
		t.Error("files must sort after directories")
	}
}

func TestListFileMetadata(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "clip.mp4"), []byte("0123456789"))

	sandbox, err := media.NewSandbox(root)
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	rp, err := sandbox.Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	entries, err := List(rp)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Size != 10 {
		t.Errorf("Size = %d, want 10", e.Size)
	}
	if e.MimeType != "video/mp4" {
		t.Errorf("MimeType = %q, want video/mp4", e.MimeType)
	}
	if e.ModTime.IsZero() {
		t.Error("ModTime is zero")
	}
}

func TestListHidesDotfiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mustWrite(t, filepath.Join(root, ".hidden"), []byte("x"))
	mustWrite(t, filepath.Join(root, "visible.txt"), []byte("x"))

	sandbox, err := media.NewSandbox(root)
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	rp, err := sandbox.Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	entries, err := List(rp)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "visible.txt" {
		t.Fatalf("List = %+v, want only visible.txt", entries)
	}
}

func TestListMissingDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	sandbox, err := media.NewSandbox(root)
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	rp, err := sandbox.Resolve("no/such/dir")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if _, err := List(rp); !errors.Is(err, media.ErrNotFound) {
		t.Fatalf("List on missing dir = %v, want ErrNotFound", err)
	}
}

func TestListOnFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "file.txt"), []byte("x"))

	sandbox, err := media.NewSandbox(root)
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	rp, err := sandbox.Resolve("file.txt")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if _, err := List(rp); !errors.Is(err, media.ErrNotFound) {
		t.Fatalf("List on regular file = %v, want ErrNotFound", err)
	}
}
