// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package media

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ResolvedPath is a filesystem location that has passed sandbox validation.
// Invariant: Abs is always a descendant of (or equal to) the sandbox root.
// A ResolvedPath is never constructed outside Sandbox.Resolve.
type ResolvedPath struct {
	// Abs is the canonical absolute filesystem path.
	Abs string

	// Requested is the relative path as the client supplied it, kept for
	// logging and for stable keys in the likes store.
	Requested string
}

// Sandbox confines client-supplied relative paths inside a configured root.
// It is the security boundary of the serving subsystem; resolution is pure
// path arithmetic and performs no filesystem access.
type Sandbox struct {
	root string
}

// NewSandbox creates a sandbox rooted at the given absolute directory path.
// The root is cleaned once here so containment checks compare canonical forms.
func NewSandbox(root string) (*Sandbox, error) {
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("sandbox root must be absolute, got %q", root)
	}
	return &Sandbox{root: filepath.Clean(root)}, nil
}

// Root returns the sandbox root directory.
func (s *Sandbox) Root() string {
	return s.root
}

// Resolve validates and resolves a client-supplied relative path against the
// sandbox root. The requested path uses forward slashes regardless of host OS.
//
// Any path carrying a ".." segment is rejected outright, before normalization:
// a traversal attempt is a protocol violation, not something to quietly
// collapse away. After joining, containment is re-verified segment-wise via
// filepath.Rel rather than a string prefix check, so a sibling directory such
// as /media-evil can never pass a check against /media.
func (s *Sandbox) Resolve(requested string) (ResolvedPath, error) {
	for _, segment := range strings.Split(requested, "/") {
		if segment == ".." {
			return ResolvedPath{}, fmt.Errorf("%w: traversal segment in %q", ErrAccessDenied, requested)
		}
	}

	// Rooted-clean collapses "." segments and duplicate slashes and strips
	// any leading slash the client smuggled in.
	cleaned := strings.TrimPrefix(path.Clean("/"+requested), "/")

	abs := filepath.Join(s.root, filepath.FromSlash(cleaned))

	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ResolvedPath{}, fmt.Errorf("%w: %q escapes sandbox", ErrAccessDenied, requested)
	}

	return ResolvedPath{Abs: abs, Requested: cleaned}, nil
}
