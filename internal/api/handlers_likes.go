// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/lumiere/internal/likes"
	"github.com/tomtom215/lumiere/internal/logging"
)

// ListLikes handles GET /api/v1/likes, returning liked files in the order
// they were liked.
func (h *Handlers) ListLikes(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	entries, err := h.likes.List(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to list likes")
		rw.InternalError(msgInternalError)
		return
	}
	if entries == nil {
		entries = []likes.Entry{}
	}

	rw.SuccessWithMeta(entries, &APIMeta{Count: len(entries)})
}

// AddLike handles PUT /api/v1/likes/{path}. The path must resolve inside
// the sandbox and point at an existing file; likes never reference paths
// the media endpoint would refuse to serve.
func (h *Handlers) AddLike(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	requested := requestPath(r)

	rp, err := h.media.Resolve(requested)
	if err != nil {
		rw.Forbidden(msgAccessDenied)
		return
	}
	if _, err := h.media.Describe(rp); err != nil {
		rw.NotFound(msgFileNotFound)
		return
	}

	// Keyed by the canonical cleaned path so "./a.mp4" and "a.mp4" are the
	// same like.
	if err := h.likes.Add(r.Context(), rp.Requested); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("path", rp.Requested).Msg("Failed to add like")
		rw.InternalError(msgInternalError)
		return
	}

	rw.Success(map[string]string{"path": rp.Requested, "status": "liked"})
}

// RemoveLike handles DELETE /api/v1/likes/{path}.
func (h *Handlers) RemoveLike(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	rp, err := h.media.Resolve(requestPath(r))
	if err != nil {
		rw.Forbidden(msgAccessDenied)
		return
	}

	if err := h.likes.Remove(r.Context(), rp.Requested); err != nil {
		if errors.Is(err, likes.ErrNotLiked) {
			rw.NotFound("Path is not liked")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("path", rp.Requested).Msg("Failed to remove like")
		rw.InternalError(msgInternalError)
		return
	}

	rw.NoContent()
}
