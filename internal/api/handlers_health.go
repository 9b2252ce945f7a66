// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/ratecast/internal/recommend"
)

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status string          `json:"status"`
	Uptime float64         `json:"uptime_seconds"`
	Engine recommend.Stats `json:"engine"`
}

// Health handles GET /api/v1/health.
// Status is "healthy" once the rating matrix is built and "starting" before.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.GetStats()

	status := "healthy"
	if !stats.Built {
		status = "starting"
	}

	respondSuccess(w, r, HealthStatus{
		Status: status,
		Uptime: time.Since(h.startTime).Seconds(),
		Engine: stats,
	}, 0)
}
