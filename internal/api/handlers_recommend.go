// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/ratecast/internal/logging"
	"github.com/tomtom215/ratecast/internal/metrics"
	"github.com/tomtom215/ratecast/internal/recommend"
)

// GetUserRecommendations handles GET /api/v1/recommendations/user/{userID}
// Returns personalized recommendations for a user.
func (h *Handler) GetUserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(chi.URLParam(r, "userID"))
	if userID == "" {
		respondError(w, r, http.StatusBadRequest, paramError("userID", "", "user ID is required"), nil)
		return
	}

	q, apiErr := parseRecommendQuery(r, h.engine.GetConfig().Limits.DefaultK)
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	h.recommend(w, r, recommend.Request{
		UserID:      userID,
		K:           q.K,
		IncludeSeen: q.IncludeSeen,
	})
}

// GetPopular handles GET /api/v1/recommendations/popular
// Returns the items with the highest total rating.
func (h *Handler) GetPopular(w http.ResponseWriter, r *http.Request) {
	q, apiErr := parseRecommendQuery(r, h.engine.GetConfig().Limits.DefaultK)
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	h.recommend(w, r, recommend.Request{
		K:        q.K,
		Fallback: true,
	})
}

// recommend runs req with the request timeout and writes the result.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, req recommend.Request) {
	req.RequestID = logging.RequestIDFromContext(r.Context())
	start := time.Now()

	key := cacheKey(req)
	if h.cache != nil {
		cached, ok := h.cache.Get(key)
		metrics.RecordCacheLookup(ok)
		if ok {
			// Copy so the cached entry keeps its own metadata.
			resp := *cached
			resp.Metadata.RequestID = req.RequestID
			respondSuccess(w, r, &resp, time.Since(start))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		status, apiErr := recommendError(err)
		respondError(w, r, status, apiErr, err)
		return
	}

	if h.cache != nil {
		h.cache.Add(key, resp)
	}

	respondSuccess(w, r, resp, time.Since(start))
}

// cacheKey identifies requests that produce the same ranking.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func cacheKey(req recommend.Request) string {
	if req.UserID == "" {
		return fmt.Sprintf("popular|%d", req.K)
	}
	return fmt.Sprintf("user|%s|%d|%t", req.UserID, req.K, req.IncludeSeen)
}

// recommendError maps engine errors to an HTTP status and API error.
func recommendError(err error) (int, *APIError) {
	switch {
	case errors.Is(err, recommend.ErrUserNotFound):
		return http.StatusNotFound, &APIError{Code: ErrCodeUserNotFound, Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, &APIError{Code: ErrCodeServiceUnavailable, Message: "request canceled or timed out"}
	default:
		return http.StatusInternalServerError, &APIError{Code: ErrCodeRecommendation, Message: "failed to generate recommendations"}
	}
}
