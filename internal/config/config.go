// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package config provides layered configuration loading for Lumiere using
// Koanf v2. Precedence: environment variables > config file > built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the Lumiere server.
type Config struct {
	Media      MediaConfig      `koanf:"media"`
	Server     ServerConfig     `koanf:"server"`
	Likes      LikesConfig      `koanf:"likes"`
	Classifier ClassifierConfig `koanf:"classifier"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// MediaConfig configures the media serving subsystem.
type MediaConfig struct {
	// Root is the sandbox root: the single absolute directory outside of
	// which no request may read. Required.
	Root string `koanf:"root" validate:"required"`

	// ThrottleBytesPerSec caps the per-stream delivery rate.
	// 0 disables throttling.
	ThrottleBytesPerSec int64 `koanf:"throttle_bytes_per_sec" validate:"min=0"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host string `koanf:"host" validate:"required"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	// ReadHeaderTimeout bounds how long header parsing may take.
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LikesConfig configures the liked-files store.
type LikesConfig struct {
	// Path is the BadgerDB directory for the liked-files store.
	Path string `koanf:"path" validate:"required"`

	// GCInterval is how often the value log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// ClassifierConfig configures the optional AI classification sidecar.
type ClassifierConfig struct {
	// URL is the base URL of the model server. Empty disables classification.
	URL string `koanf:"url" validate:"omitempty,url"`

	// Timeout bounds a single classification request.
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig configures request-level protections.
// Authentication is out of scope; Lumiere relies on the deployment perimeter.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig configures the logging subsystem.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// validate is the package-level validator instance. go-playground/validator
// caches struct metadata, so a single shared instance is the cheap path.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for structural and semantic errors.
// The media root must be an absolute path to an existing directory; it is
// cleaned in place so downstream sandbox checks operate on a canonical root.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	root := filepath.Clean(c.Media.Root)
	if !filepath.IsAbs(root) {
		return fmt.Errorf("media.root must be an absolute path, got %q", c.Media.Root)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("media.root is not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("media.root %q is not a directory", root)
	}
	c.Media.Root = root

	return nil
}
