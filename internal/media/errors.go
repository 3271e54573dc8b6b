// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package media

import "errors"

// Closed error taxonomy for the serving subsystem. Handlers map these to
// HTTP statuses; raw internal errors are never serialized to the client.
var (
	// ErrAccessDenied indicates the requested path escapes the sandbox root.
	// Always maps to 403. The resolved absolute path must not leak into the
	// response body.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound indicates the resolved path does not exist or is not a
	// regular file. Maps to 404.
	ErrNotFound = errors.New("file not found")

	// ErrRangeNotSatisfiable indicates a malformed or out-of-bounds Range
	// header. Maps to 416 with "Content-Range: bytes */<size>" so the client
	// can retry with a valid range.
	ErrRangeNotSatisfiable = errors.New("range not satisfiable")
)
