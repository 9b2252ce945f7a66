// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package metrics

import (
	"time"

	"github.com/tomtom215/ratecast/internal/recommend"
)

// EngineObserver feeds recommendation engine events into the collectors.
type EngineObserver struct{}

var _ recommend.Observer = EngineObserver{}

// ObserveMatrix records the matrix dimensions and build time.
func (EngineObserver) ObserveMatrix(users, items int, buildDuration time.Duration) {
	MatrixUsers.Set(float64(users))
	MatrixItems.Set(float64(items))
	MatrixBuildDuration.Observe(buildDuration.Seconds())
}

// ObserveRecommendation records a successful request.
func (EngineObserver) ObserveRecommendation(mode string, duration time.Duration, returned int) {
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendationItems.WithLabelValues(mode).Observe(float64(returned))
}

// ObserveError records a failed request.
func (EngineObserver) ObserveError(mode, kind string) {
	RecommendationErrors.WithLabelValues(mode, kind).Inc()
}
