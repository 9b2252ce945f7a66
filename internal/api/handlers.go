// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package api

import (
	"context"
	"time"

	"github.com/tomtom215/ratecast/internal/cache"
	"github.com/tomtom215/ratecast/internal/recommend"
)

// Recommender is the engine surface the handlers need.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	GetStats() recommend.Stats
	GetConfig() *recommend.Config
}

// Handler serves the recommendation endpoints.
type Handler struct {
	engine         Recommender
	requestTimeout time.Duration
	startTime      time.Time

	// cache holds successful responses keyed by normalized request. Nil disables it.
	cache *cache.LRU[*recommend.Response]
}

// DefaultRequestTimeout bounds a single recommendation request.
const DefaultRequestTimeout = 10 * time.Second

// NewHandler creates a handler over engine. A zero timeout uses DefaultRequestTimeout.
func NewHandler(engine Recommender, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return &Handler{
		engine:         engine,
		requestTimeout: requestTimeout,
		startTime:      time.Now(),
	}
}

// EnableResponseCache keeps up to size successful responses for ttl.
// Only safe while the engine's data set is immutable. Must be called before serving.
func (h *Handler) EnableResponseCache(size int, ttl time.Duration) {
	h.cache = cache.NewLRU[*recommend.Response](size, ttl)
}
