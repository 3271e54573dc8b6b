// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package classifier talks to the optional ML classification sidecar, which
// labels media files (scene type, content category) over a small HTTP API.
//
// The sidecar is best-effort infrastructure: when it is down or slow the
// circuit breaker sheds calls quickly instead of tying up request handlers,
// and when it is not configured at all every call returns ErrDisabled.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/metrics"
)

var (
	// ErrDisabled is returned when no sidecar URL is configured.
	ErrDisabled = errors.New("classifier is not configured")

	// ErrUnavailable is returned when the sidecar cannot serve the request,
	// including when the circuit breaker is open.
	ErrUnavailable = errors.New("classifier unavailable")
)

// Result is one classification verdict.
type Result struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ModelInfo describes the model loaded in the sidecar.
type ModelInfo struct {
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// Client is a circuit-breaker-protected HTTP client for the sidecar.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]byte]
}

// New creates a sidecar client. An empty baseURL yields a disabled client
// whose calls all return ErrDisabled; callers need no separate nil check.
func New(baseURL string, timeout time.Duration) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	if c.baseURL == "" {
		return c
	}

	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "classifier-sidecar",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		// Open after 60% failures over at least 5 requests. The sidecar is
		// a single local process, so a small sample is already meaningful.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Classifier circuit breaker state change")
		},
	})
	return c
}

// Enabled reports whether a sidecar URL is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Classify asks the sidecar to label the file at the given media path
// (relative to the sandbox root; the sidecar shares the media mount).
func (c *Client) Classify(ctx context.Context, mediaPath string) (Result, error) {
	var result Result

	endpoint := c.baseURL + "/classify?path=" + url.QueryEscape(mediaPath)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return Result{}, err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return Result{}, fmt.Errorf("decode classify response: %w", err)
	}
	return result, nil
}

// Model returns information about the loaded model.
func (c *Client) Model(ctx context.Context) (ModelInfo, error) {
	var info ModelInfo

	body, err := c.get(ctx, c.baseURL+"/model")
	if err != nil {
		return ModelInfo{}, err
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return ModelInfo{}, fmt.Errorf("decode model response: %w", err)
	}
	return info, nil
}

// get performs a breaker-guarded GET and returns the response body.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: sidecar returned %d", ErrUnavailable, resp.StatusCode)
		}

		// 1MB cap: classification verdicts are tiny, anything bigger is a
		// misbehaving sidecar.
		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		return data, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ClassifierRequests.WithLabelValues("open_circuit").Inc()
			return nil, fmt.Errorf("%w: circuit open", ErrUnavailable)
		}
		metrics.ClassifierRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.ClassifierRequests.WithLabelValues("ok").Inc()
	return body, nil
}
