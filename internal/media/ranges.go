// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package media

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteRange is an inclusive [Start, End] window over a file's bytes,
// 0-indexed. Invariant: 0 <= Start <= End <= size-1 for the file size it was
// negotiated against.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes covered by the range.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange returns the Content-Range header value for a 206 response.
func (r ByteRange) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, size)
}

// UnsatisfiableContentRange returns the Content-Range header value for a 416
// response, carrying the total size so the client can retry correctly.
func UnsatisfiableContentRange(size int64) string {
	return fmt.Sprintf("bytes */%d", size)
}

// Negotiate parses a Range request header against a known file size and
// payload class. It returns nil for a full-content response: when the header
// is absent, or when the payload class is not StreamableBinary (ranges are
// only honored for streamable content, so an opaque download with a stray
// Range header is served whole rather than rejected).
//
// Supported forms, single range only:
//
//	bytes=<start>-<end>
//	bytes=<start>-          (to end of file)
//	bytes=-<n>              (suffix: last n bytes)
//
// Multi-range requests are rejected rather than silently serving only the
// first range. Out-of-bounds ranges are rejected, never clamped past EOF:
// a media player seeking beyond the end needs the 416 plus total size to
// recover, not a silently truncated window.
func Negotiate(rangeHeader string, size int64, class PayloadClass) (*ByteRange, error) {
	if rangeHeader == "" || class != StreamableBinary {
		return nil, nil
	}

	const prefix = "bytes="
	if !strings.HasPrefix(rangeHeader, prefix) {
		return nil, fmt.Errorf("%w: unsupported unit in %q", ErrRangeNotSatisfiable, rangeHeader)
	}
	spec := strings.TrimPrefix(rangeHeader, prefix)

	if strings.Contains(spec, ",") {
		return nil, fmt.Errorf("%w: multi-range requests are not supported", ErrRangeNotSatisfiable)
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, fmt.Errorf("%w: malformed range %q", ErrRangeNotSatisfiable, rangeHeader)
	}

	var start, end int64
	switch {
	case startStr == "" && endStr != "":
		// Suffix form: last n bytes. Issued by media players probing the
		// tail of a container for its index.
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: malformed suffix range %q", ErrRangeNotSatisfiable, rangeHeader)
		}
		start = size - n
		if start < 0 {
			start = 0
		}
		end = size - 1

	case startStr != "" && endStr == "":
		// Open-ended form: from start to EOF.
		var err error
		start, err = strconv.ParseInt(startStr, 10, 64)
		if err != nil || start < 0 {
			return nil, fmt.Errorf("%w: malformed range start %q", ErrRangeNotSatisfiable, rangeHeader)
		}
		end = size - 1

	case startStr != "" && endStr != "":
		var err error
		start, err = strconv.ParseInt(startStr, 10, 64)
		if err != nil || start < 0 {
			return nil, fmt.Errorf("%w: malformed range start %q", ErrRangeNotSatisfiable, rangeHeader)
		}
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed range end %q", ErrRangeNotSatisfiable, rangeHeader)
		}

	default:
		return nil, fmt.Errorf("%w: empty range %q", ErrRangeNotSatisfiable, rangeHeader)
	}

	if start > end || end > size-1 {
		return nil, fmt.Errorf("%w: bytes %d-%d of %d", ErrRangeNotSatisfiable, start, end, size)
	}

	return &ByteRange{Start: start, End: end}, nil
}
