// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

/*
Package middleware provides HTTP middleware for the serve mode API.

Both middlewares use the chi signature func(http.Handler) http.Handler and can
be passed straight to r.Use:

  - RequestID: reuses or generates an X-Request-ID and stores it in the
    request context for logging.
  - PrometheusMetrics: records request counts, durations and in-flight
    requests in the metrics package.

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

PrometheusMetrics labels requests with the chi route pattern rather than the
raw path, so /api/v1/recommendations/user/{userID} is one series regardless of
how many users are queried.
*/
package middleware
