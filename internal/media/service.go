// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package media

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"
)

// FileDescriptor describes a stat'ed, classified regular file. Immutable
// once built; lifetime is a single request.
type FileDescriptor struct {
	Size     int64
	MimeType string
	Class    PayloadClass
}

// Service is the facade over the serving pipeline. It owns no per-request
// state; the only process-wide state is the immutable sandbox root and the
// throttle setting, so a single Service is shared by all requests.
type Service struct {
	sandbox     *Sandbox
	throttleBps int64
}

// NewService creates a media service over the given sandbox.
// throttleBytesPerSec caps per-stream delivery; 0 disables throttling.
func NewService(sandbox *Sandbox, throttleBytesPerSec int64) *Service {
	return &Service{sandbox: sandbox, throttleBps: throttleBytesPerSec}
}

// Root returns the sandbox root directory.
func (s *Service) Root() string {
	return s.sandbox.Root()
}

// Resolve validates a client-supplied relative path against the sandbox.
func (s *Service) Resolve(requested string) (ResolvedPath, error) {
	return s.sandbox.Resolve(requested)
}

// Describe stats the resolved path and classifies it. Missing paths and
// non-regular files (directories, sockets, devices) both surface as
// ErrNotFound: the media endpoint serves regular files only.
func (s *Service) Describe(rp ResolvedPath) (FileDescriptor, error) {
	info, err := os.Stat(rp.Abs)
	if err != nil {
		if os.IsNotExist(err) {
			return FileDescriptor{}, fmt.Errorf("%w: %s", ErrNotFound, rp.Requested)
		}
		return FileDescriptor{}, fmt.Errorf("stat %s: %w", rp.Requested, err)
	}
	if !info.Mode().IsRegular() {
		return FileDescriptor{}, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, rp.Requested)
	}

	mimeType, class := Classify(rp.Abs)
	return FileDescriptor{
		Size:     info.Size(),
		MimeType: mimeType,
		Class:    class,
	}, nil
}

// Stream delivers file bytes to w, whole-file when br is nil or exactly the
// negotiated window otherwise. A fresh limiter is created per call so
// concurrent streams are throttled independently rather than sharing a
// budget.
func (s *Service) Stream(ctx context.Context, w io.Writer, rp ResolvedPath, br *ByteRange) (int64, error) {
	var limiter *rate.Limiter
	if s.throttleBps > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.throttleBps), streamChunkSize)
	}
	return Stream(ctx, w, rp, br, limiter)
}

// ReadText reads the whole file and normalizes it to UTF-8. The text path is
// not range-capable: the encoding transform operates over complete byte
// sequences, so text files are always served whole.
func (s *Service) ReadText(rp ResolvedPath) ([]byte, EncodingDecision, error) {
	raw, err := os.ReadFile(rp.Abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, EncodingDecision{}, fmt.Errorf("%w: %s", ErrNotFound, rp.Requested)
		}
		return nil, EncodingDecision{}, fmt.Errorf("read %s: %w", rp.Requested, err)
	}
	normalized, decision := NormalizeText(raw)
	return normalized, decision, nil
}
