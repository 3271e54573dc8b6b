// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Load tests use t.Setenv, so they cannot run in parallel.

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	t.Setenv("MEDIA_ROOT", root)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Media.Root != root {
		t.Errorf("Media.Root = %q, want %q", cfg.Media.Root, root)
	}
	if cfg.Server.Port != 8632 {
		t.Errorf("Server.Port = %d, want 8632", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:8632" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Likes.GCInterval != 10*time.Minute {
		t.Errorf("Likes.GCInterval = %v", cfg.Likes.GCInterval)
	}
	if cfg.Classifier.URL != "" {
		t.Errorf("Classifier.URL = %q, want disabled", cfg.Classifier.URL)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv("MEDIA_ROOT", root)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MEDIA_THROTTLE_BPS", "1048576")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DISABLE_RATE_LIMIT", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Media.ThrottleBytesPerSec != 1048576 {
		t.Errorf("ThrottleBytesPerSec = %d", cfg.Media.ThrottleBytesPerSec)
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("RateLimitDisabled = false, want true")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != 2 ||
		cfg.Security.CORSOrigins[0] != want[0] || cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadConfigFile(t *testing.T) {
	root := t.TempDir()
	dir := t.TempDir()

	configYAML := `
media:
  root: ` + root + `
server:
  port: 7777
logging:
  level: warn
  format: console
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	root := t.TempDir()
	dir := t.TempDir()

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("media:\n  root: "+root+"\nserver:\n  port: 7777\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_PORT", "8888")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8888 {
		t.Errorf("Server.Port = %d, want 8888 (env over file)", cfg.Server.Port)
	}
}

func TestLoadMissingMediaRoot(t *testing.T) {
	t.Setenv("MEDIA_ROOT", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without MEDIA_ROOT")
	}
}

func TestValidateMediaRoot(t *testing.T) {
	base := defaultConfig()

	t.Run("relative root rejected", func(t *testing.T) {
		cfg := *base
		cfg.Media.Root = "relative/media"
		if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "absolute") {
			t.Fatalf("Validate = %v, want absolute-path error", err)
		}
	})

	t.Run("nonexistent root rejected", func(t *testing.T) {
		cfg := *base
		cfg.Media.Root = "/definitely/not/a/real/path"
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate accepted nonexistent root")
		}
	})

	t.Run("file as root rejected", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "afile")
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg := *base
		cfg.Media.Root = f
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate accepted a file as media root")
		}
	})

	t.Run("trailing slash cleaned", func(t *testing.T) {
		dir := t.TempDir()
		cfg := *base
		cfg.Media.Root = dir + string(filepath.Separator)
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if cfg.Media.Root != dir {
			t.Errorf("root not cleaned: %q", cfg.Media.Root)
		}
	})

	t.Run("bad log level rejected", func(t *testing.T) {
		dir := t.TempDir()
		cfg := *base
		cfg.Media.Root = dir
		cfg.Logging.Level = "verbose"
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate accepted unknown log level")
		}
	})
}
