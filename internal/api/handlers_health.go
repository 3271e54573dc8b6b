// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"net/http"
	"os"
)

// Liveness handles GET /api/v1/health/live. It answers as long as the
// process can serve HTTP at all.
func (h *Handlers) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]string{"status": "alive"})
}

// Readiness handles GET /api/v1/health/ready. The server is ready when the
// media root is reachable and the likes store accepts transactions; a missing
// mount (NFS gone, volume detached) flips the probe so the orchestrator stops
// routing traffic here.
func (h *Handlers) Readiness(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	info, err := os.Stat(h.media.Root())
	if err != nil || !info.IsDir() {
		rw.ServiceUnavailable("Media root is not accessible")
		return
	}

	if err := h.likes.Ping(); err != nil {
		rw.ServiceUnavailable("Likes store is not accessible")
		return
	}

	rw.Success(map[string]string{"status": "ready"})
}
