// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/media"
	"github.com/tomtom215/lumiere/internal/metrics"
)

// Fixed error messages for the media endpoint. Rejections never echo the
// requested or resolved path back: the 403 body must not help an attacker
// map the filesystem.
const (
	msgAccessDenied  = "Access denied"
	msgFileNotFound  = "File not found"
	msgInternalError = "Internal server error"
	msgBadRange      = "Requested range not satisfiable"
)

// ServeMedia handles GET /media/{path}. It resolves the client path inside
// the sandbox, classifies the file, and serves it whole or as a single byte
// range depending on payload class and the Range header.
func (h *Handlers) ServeMedia(w http.ResponseWriter, r *http.Request) {
	requested := requestPath(r)

	rp, err := h.media.Resolve(requested)
	if err != nil {
		metrics.MediaSandboxViolations.Inc()
		metrics.RecordMediaRequest("unknown", http.StatusForbidden)
		logging.Ctx(r.Context()).Warn().
			Str("requested_path", requested).
			Str("remote_addr", r.RemoteAddr).
			Msg("Sandbox rejected media path")
		WriteMediaError(w, http.StatusForbidden, msgAccessDenied)
		return
	}

	fd, err := h.media.Describe(rp)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			metrics.RecordMediaRequest("unknown", http.StatusNotFound)
			WriteMediaError(w, http.StatusNotFound, msgFileNotFound)
			return
		}
		metrics.RecordMediaRequest("unknown", http.StatusInternalServerError)
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to describe media file")
		WriteMediaError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	if fd.Class == media.Text {
		h.serveText(w, r, rp, fd)
		return
	}
	h.serveBinary(w, r, rp, fd)
}

// serveText delivers a text file whole, normalized to UTF-8. The text path
// ignores Range: transcoding changes byte offsets, so partial views of the
// original bytes are meaningless to the client.
func (h *Handlers) serveText(w http.ResponseWriter, r *http.Request, rp media.ResolvedPath, fd media.FileDescriptor) {
	data, decision, err := h.media.ReadText(rp)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			metrics.RecordMediaRequest(fd.Class.String(), http.StatusNotFound)
			WriteMediaError(w, http.StatusNotFound, msgFileNotFound)
			return
		}
		metrics.RecordMediaRequest(fd.Class.String(), http.StatusInternalServerError)
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to read text file")
		WriteMediaError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	metrics.RecordTranscode(decision.DetectedEncoding, decision.RequiresTranscode)

	// Content-Length reflects the transcoded byte count, which can differ
	// from the on-disk size.
	w.Header().Set("Content-Type", fd.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		metrics.MediaStreamAborts.Inc()
		logging.Ctx(r.Context()).Warn().Err(err).Str("path", rp.Requested).Msg("Text response write aborted")
	}
	metrics.RecordMediaRequest(fd.Class.String(), http.StatusOK)
	metrics.RecordBytesServed(false, int64(len(data)))
}

// serveBinary delivers binary payloads. Streamable files advertise and honor
// single byte ranges; opaque files are always served whole and any Range
// header is ignored.
func (h *Handlers) serveBinary(w http.ResponseWriter, r *http.Request, rp media.ResolvedPath, fd media.FileDescriptor) {
	if fd.Class == media.StreamableBinary {
		w.Header().Set("Accept-Ranges", "bytes")
	}

	br, err := media.Negotiate(r.Header.Get("Range"), fd.Size, fd.Class)
	if err != nil {
		metrics.MediaRangeRejections.Inc()
		metrics.RecordMediaRequest(fd.Class.String(), http.StatusRequestedRangeNotSatisfiable)
		w.Header().Set("Content-Range", media.UnsatisfiableContentRange(fd.Size))
		WriteMediaError(w, http.StatusRequestedRangeNotSatisfiable, msgBadRange)
		return
	}

	status := http.StatusOK
	length := fd.Size
	if br != nil {
		status = http.StatusPartialContent
		length = br.Length()
		w.Header().Set("Content-Range", br.ContentRange(fd.Size))
	}

	w.Header().Set("Content-Type", fd.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	w.WriteHeader(status)

	metrics.MediaActiveStreams.Inc()
	defer metrics.MediaActiveStreams.Dec()

	n, err := h.media.Stream(r.Context(), w, rp, br)
	metrics.RecordBytesServed(br != nil, n)
	if err != nil {
		// Headers are already on the wire; the status cannot be rewritten.
		// The client sees a short body and a closed connection.
		metrics.MediaStreamAborts.Inc()
		logging.Ctx(r.Context()).Warn().
			Err(err).
			Str("path", rp.Requested).
			Int64("bytes_written", n).
			Int64("bytes_expected", length).
			Msg("Media stream aborted mid-body")
	}
	metrics.RecordMediaRequest(fd.Class.String(), status)
}
