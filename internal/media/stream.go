// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"
)

// streamChunkSize is the read buffer size for streaming. 32KB matches the
// typical socket write buffer; larger chunks only add memory pressure.
const streamChunkSize = 32 * 1024

// Stream copies file bytes to w: the whole file when br is nil, or exactly
// the [br.Start, br.End] window otherwise. It returns the number of bytes
// written.
//
// The read handle is scoped to this call and released on every exit path.
// The copy checks ctx between chunks so a client disconnect aborts the read
// promptly, and a bounded read never fetches past br.End even if the
// underlying file grows concurrently. Backpressure comes for free: each
// chunk is fully written to w (the HTTP transport) before the next read.
//
// When limiter is non-nil each chunk waits for token availability, capping
// delivery at the configured rate.
func Stream(ctx context.Context, w io.Writer, rp ResolvedPath, br *ByteRange, limiter *rate.Limiter) (int64, error) {
	f, err := os.Open(rp.Abs)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, rp.Requested)
		}
		return 0, fmt.Errorf("open %s: %w", rp.Requested, err)
	}
	defer f.Close()

	var src io.Reader = f
	remaining := int64(-1)
	if br != nil {
		if _, err := f.Seek(br.Start, io.SeekStart); err != nil {
			return 0, fmt.Errorf("seek %s to %d: %w", rp.Requested, br.Start, err)
		}
		remaining = br.Length()
		src = io.LimitReader(f, remaining)
	}

	buf := make([]byte, streamChunkSize)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if limiter != nil {
				if err := waitForTokens(ctx, limiter, n); err != nil {
					return written, err
				}
			}
			wn, writeErr := w.Write(buf[:n])
			written += int64(wn)
			if writeErr != nil {
				return written, fmt.Errorf("write body: %w", writeErr)
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return written, fmt.Errorf("read %s: %w", rp.Requested, readErr)
		}
	}

	// A bounded read that ends short of the window means the file shrank
	// under us after the headers were computed.
	if remaining >= 0 && written < remaining {
		return written, fmt.Errorf("read %s: file truncated mid-stream (%d of %d bytes)", rp.Requested, written, remaining)
	}

	return written, nil
}

// waitForTokens blocks until the limiter grants n tokens, splitting requests
// larger than the limiter burst so a big chunk cannot deadlock the wait.
func waitForTokens(ctx context.Context, limiter *rate.Limiter, n int) error {
	burst := limiter.Burst()
	for n > 0 {
		grab := n
		if grab > burst {
			grab = burst
		}
		if err := limiter.WaitN(ctx, grab); err != nil {
			return err
		}
		n -= grab
	}
	return nil
}
