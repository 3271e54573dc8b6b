// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package metrics provides Prometheus instrumentation for the Lumiere server:
// API request latency and throughput, media streaming volume, range
// negotiation outcomes, text transcoding, and likes-store operations.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Media serving metrics
	MediaRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_requests_total",
			Help: "Total number of media serving requests by payload class and outcome",
		},
		[]string{"payload_class", "status_code"},
	)

	MediaBytesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_bytes_served_total",
			Help: "Total bytes delivered to clients, full vs partial responses",
		},
		[]string{"mode"}, // "full", "partial"
	)

	MediaActiveStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_active_streams",
			Help: "Current number of in-flight media streams",
		},
	)

	MediaRangeRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_range_rejections_total",
			Help: "Total number of Range headers rejected as unsatisfiable",
		},
	)

	MediaSandboxViolations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_sandbox_violations_total",
			Help: "Total number of requests rejected by the path sandbox",
		},
	)

	MediaStreamAborts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_stream_aborts_total",
			Help: "Streams aborted after headers were sent (I/O error or client disconnect)",
		},
	)

	// Text transcoding metrics
	TextTranscodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "text_transcode_total",
			Help: "Text normalization outcomes by detected source charset",
		},
		[]string{"charset", "transcoded"},
	)

	// Likes store metrics
	LikesOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "likes_operations_total",
			Help: "Total liked-files store operations",
		},
		[]string{"operation"}, // "add", "remove", "list"
	)

	// Classifier metrics
	ClassifierRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifier_requests_total",
			Help: "Classification sidecar requests by outcome",
		},
		[]string{"outcome"}, // "ok", "error", "open_circuit"
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordMediaRequest records a media serving request outcome.
func RecordMediaRequest(payloadClass string, statusCode int) {
	MediaRequestsTotal.WithLabelValues(payloadClass, strconv.Itoa(statusCode)).Inc()
}

// RecordBytesServed records delivered body bytes.
func RecordBytesServed(partial bool, n int64) {
	mode := "full"
	if partial {
		mode = "partial"
	}
	MediaBytesServed.WithLabelValues(mode).Add(float64(n))
}

// RecordTranscode records a text normalization outcome.
func RecordTranscode(charset string, transcoded bool) {
	if charset == "" {
		charset = "unknown"
	}
	TextTranscodeTotal.WithLabelValues(charset, strconv.FormatBool(transcoded)).Inc()
}
