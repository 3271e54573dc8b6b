// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/lumiere/internal/classifier"
	"github.com/tomtom215/lumiere/internal/likes"
	"github.com/tomtom215/lumiere/internal/media"
)

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	media      *media.Service
	likes      *likes.Store
	classifier *classifier.Client
}

// NewHandlers creates the handler set.
func NewHandlers(mediaSvc *media.Service, likesStore *likes.Store, classifierClient *classifier.Client) *Handlers {
	return &Handlers{
		media:      mediaSvc,
		likes:      likesStore,
		classifier: classifierClient,
	}
}

// requestPath extracts the catch-all path parameter, undoing
// percent-encoding. Chi routes on the raw path when one is present, so the
// wildcard arrives encoded for URLs like /media/space%20doc.mp4.
func requestPath(r *http.Request) string {
	raw := chi.URLParam(r, "*")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
