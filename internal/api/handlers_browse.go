// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/lumiere/internal/browse"
	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/media"
)

// BrowseDir handles GET /api/v1/browse and GET /api/v1/browse/{path}.
// It lists the requested directory inside the media sandbox.
func (h *Handlers) BrowseDir(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	requested := requestPath(r)

	rp, err := h.media.Resolve(requested)
	if err != nil {
		rw.Forbidden(msgAccessDenied)
		return
	}

	entries, err := browse.List(rp)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			rw.NotFound("Directory not found")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("path", requested).Msg("Failed to list directory")
		rw.InternalError(msgInternalError)
		return
	}

	rw.SuccessWithMeta(map[string]interface{}{
		"path":    requested,
		"entries": entries,
	}, &APIMeta{Count: len(entries)})
}
