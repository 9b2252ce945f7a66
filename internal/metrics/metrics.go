// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

// Package metrics defines the Prometheus collectors for Ratecast.
//
// Collectors are registered on the default registry with promauto. Serve mode
// exposes them on /metrics; a batch run can dump them to a file for the
// node_exporter textfile collector with WriteTextfile.
package metrics

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/ratecast/internal/interactions"
	"github.com/tomtom215/ratecast/internal/recommend"
)

var (
	// Loader Metrics
	InteractionsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratecast_interactions_loaded_total",
			Help: "Total number of interaction records loaded",
		},
		[]string{"loader"},
	)

	LoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratecast_load_duration_seconds",
			Help:    "Duration of interaction file loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"loader"},
	)

	LoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratecast_load_errors_total",
			Help: "Total number of failed interaction file loads",
		},
		[]string{"loader", "error_type"}, // "schema", "malformed", "unavailable", "io"
	)

	// Matrix Metrics
	MatrixUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratecast_matrix_users",
			Help: "Number of users (rows) in the rating matrix",
		},
	)

	MatrixItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratecast_matrix_items",
			Help: "Number of items (columns) in the rating matrix",
		},
	)

	MatrixBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ratecast_matrix_build_duration_seconds",
			Help:    "Time to build the rating matrix and similarity inputs",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms .. ~16s
		},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratecast_recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"}, // "personalized", "popular"
	)

	RecommendationItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratecast_recommendation_items",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 500, 1000},
		},
		[]string{"mode"},
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratecast_recommendation_errors_total",
			Help: "Total number of failed recommendation requests",
		},
		[]string{"mode", "kind"}, // kind: "user_not_found", "no_target", "canceled", "internal"
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratecast_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratecast_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratecast_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	ResponseCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratecast_response_cache_lookups_total",
			Help: "Total number of response cache lookups",
		},
		[]string{"result"}, // "hit", "miss"
	)
)

// RecordLoad records one interaction file load.
func RecordLoad(loader string, records int, duration time.Duration, err error) {
	LoadDuration.WithLabelValues(loader).Observe(duration.Seconds())
	if err != nil {
		LoadErrors.WithLabelValues(loader, loadErrorType(err)).Inc()
		return
	}
	InteractionsLoaded.WithLabelValues(loader).Add(float64(records))
}

// loadErrorType buckets a load error into a low-cardinality label.
func loadErrorType(err error) string {
	switch {
	case errors.Is(err, interactions.ErrSchema):
		return "schema"
	case errors.Is(err, recommend.ErrMalformedRecord):
		return "malformed"
	case errors.Is(err, interactions.ErrLoaderUnavailable):
		return "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return "io"
	default:
		return "other"
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a response cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		ResponseCacheLookups.WithLabelValues("hit").Inc()
	} else {
		ResponseCacheLookups.WithLabelValues("miss").Inc()
	}
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format. The file is written atomically.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
