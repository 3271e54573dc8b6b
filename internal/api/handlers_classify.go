// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/lumiere/internal/classifier"
	"github.com/tomtom215/lumiere/internal/logging"
)

// ClassifyFile handles GET /api/v1/classify/{path}, proxying to the ML
// sidecar for a content label.
func (h *Handlers) ClassifyFile(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.classifier.Classify(r.Context(), requested)
	if err != nil {
		h.writeClassifierError(rw, r, err)
		return
	}

	rw.Success(result)
}

// ModelInfo handles GET /api/v1/model.
func (h *Handlers) ModelInfo(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	info, err := h.classifier.Model(r.Context())
	if err != nil {
		h.writeClassifierError(rw, r, err)
		return
	}

	rw.Success(info)
}

func (h *Handlers) writeClassifierError(rw *ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, classifier.ErrDisabled):
		rw.ServiceUnavailable("Classifier is not configured")
	case errors.Is(err, classifier.ErrUnavailable):
		rw.ServiceUnavailable("Classifier is unavailable")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Classifier request failed")
		rw.InternalError(msgInternalError)
	}
}
