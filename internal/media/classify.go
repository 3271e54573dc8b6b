// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package media

import (
	"path/filepath"
	"strings"
)

// PayloadClass determines the serving strategy for a file.
type PayloadClass int

const (
	// OpaqueBinary is served whole; Range headers are ignored.
	OpaqueBinary PayloadClass = iota

	// StreamableBinary supports byte-range negotiation (video content).
	StreamableBinary

	// Text is read whole and transcoded to UTF-8 before responding.
	Text
)

// String implements fmt.Stringer for logging and metrics labels.
func (c PayloadClass) String() string {
	switch c {
	case StreamableBinary:
		return "streamable"
	case Text:
		return "text"
	default:
		return "opaque"
	}
}

// mimeByExtension maps lowercase file extensions (without dot) to MIME types.
var mimeByExtension = map[string]string{
	// Video
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",
	"avi":  "video/x-msvideo",
	"flv":  "video/x-flv",
	"wmv":  "video/x-ms-wmv",

	// Images
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"svg":  "image/svg+xml",
	"tiff": "image/tiff",
	"ico":  "image/x-icon",

	// Documents
	"pdf": "application/pdf",
}

// textExtensions is the fixed set of extensions routed to the text path:
// plain text, source code, markup, and config formats.
var textExtensions = map[string]bool{
	"txt": true, "md": true, "log": true, "text": true,
	"json": true, "yaml": true, "yml": true, "toml": true, "ini": true,
	"xml": true, "csv": true, "html": true, "htm": true, "css": true,
	"js": true, "ts": true, "go": true, "py": true, "rs": true,
	"c": true, "h": true, "cpp": true, "java": true, "sh": true,
	"sql": true, "conf": true, "cfg": true, "env": true,
}

// defaultMimeType is returned for unknown extensions.
const defaultMimeType = "application/octet-stream"

// Classify maps a file path to its MIME type and payload class. It is a
// pure, total function: every input, including unknown extensions, yields a
// defined result. The payload class is derived independently of the MIME
// table: text-like extensions route to Text, video MIME types route to
// StreamableBinary, everything else is OpaqueBinary.
func Classify(p string) (mimeType string, class PayloadClass) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(p), "."))

	if textExtensions[ext] {
		return "text/plain; charset=utf-8", Text
	}

	mimeType, ok := mimeByExtension[ext]
	if !ok {
		return defaultMimeType, OpaqueBinary
	}
	if strings.HasPrefix(mimeType, "video/") {
		return mimeType, StreamableBinary
	}
	return mimeType, OpaqueBinary
}
