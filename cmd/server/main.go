// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Lumiere serves a directory of media files over HTTP: sandboxed path
// resolution, byte-range streaming for video, charset-normalized text
// delivery, directory browsing, and a liked-files store.
//
// # Quick Start
//
//	MEDIA_ROOT=/srv/media ./lumiere
//
// Docker:
//
//	docker run -d \
//	  -e MEDIA_ROOT=/media \
//	  -v /srv/media:/media:ro \
//	  -v lumiere-data:/data \
//	  -p 8632:8632 \
//	  ghcr.io/tomtom215/lumiere
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/lumiere/internal/api"
	"github.com/tomtom215/lumiere/internal/classifier"
	"github.com/tomtom215/lumiere/internal/config"
	"github.com/tomtom215/lumiere/internal/likes"
	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/media"
	"github.com/tomtom215/lumiere/internal/supervisor"
	"github.com/tomtom215/lumiere/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("media_root", cfg.Media.Root).
		Str("likes_path", cfg.Likes.Path).
		Bool("classifier_enabled", cfg.Classifier.URL != "").
		Msg("Starting Lumiere")

	// Media pipeline
	sandbox, err := media.NewSandbox(cfg.Media.Root)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create media sandbox")
	}
	mediaSvc := media.NewService(sandbox, cfg.Media.ThrottleBytesPerSec)

	// Likes store
	likesStore, err := likes.Open(cfg.Likes.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open likes database")
	}
	defer func() {
		if err := likesStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing likes database")
		}
	}()

	// Classification sidecar (optional)
	classifierClient := classifier.New(cfg.Classifier.URL, cfg.Classifier.Timeout)
	if classifierClient.Enabled() {
		logging.Info().Str("url", cfg.Classifier.URL).Msg("Classifier sidecar configured")
	} else {
		logging.Info().Msg("Classifier disabled - no sidecar URL configured")
	}

	// HTTP surface
	handlers := api.NewHandlers(mediaSvc, likesStore, classifierClient)
	router := api.NewRouter(cfg, handlers)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	// Supervision tree: storage maintenance and the HTTP server restart
	// independently of each other.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddStorageService(services.NewBadgerGCService(likesStore, cfg.Likes.GCInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("Supervisor tree exited with error")
	}

	logging.Info().Msg("Shutdown complete")
}
