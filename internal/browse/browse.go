// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package browse lists directories inside the media sandbox for the
// file-browser UI.
package browse

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/lumiere/internal/media"
)

// Entry is one directory listing row.
type Entry struct {
	Name     string    `json:"name"`
	IsDir    bool      `json:"is_dir"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
	MimeType string    `json:"mime_type,omitempty"`
}

// List returns the contents of the resolved directory, directories first,
// each group sorted case-insensitively by name. Entries that cannot be
// stat'ed (racing deletes, permission holes) are skipped rather than failing
// the whole listing. Dotfiles are hidden.
func List(rp media.ResolvedPath) ([]Entry, error) {
	info, err := os.Stat(rp.Abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", media.ErrNotFound, rp.Requested)
		}
		return nil, fmt.Errorf("stat %s: %w", rp.Requested, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", media.ErrNotFound, rp.Requested)
	}

	dirents, err := os.ReadDir(rp.Abs)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", rp.Requested, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if strings.HasPrefix(d.Name(), ".") {
			continue
		}

		fi, err := d.Info()
		if err != nil {
			continue
		}

		entry := Entry{
			Name:    d.Name(),
			IsDir:   d.IsDir(),
			ModTime: fi.ModTime().UTC(),
		}
		if !d.IsDir() {
			if !fi.Mode().IsRegular() {
				continue
			}
			entry.Size = fi.Size()
			entry.MimeType, _ = media.Classify(filepath.Join(rp.Abs, d.Name()))
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	return entries, nil
}
