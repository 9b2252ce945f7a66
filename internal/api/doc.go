// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

/*
Package api serves recommendations over HTTP for `ratecast serve`.

# Endpoints

	GET /api/v1/recommendations/user/{userID}?k=N&include_seen=bool
	GET /api/v1/recommendations/popular?k=N
	GET /api/v1/health
	GET /metrics

Every JSON endpoint answers with the same envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 0}
	}

Errors set status to "error" and carry a machine-readable code:

	{
	  "status": "error",
	  "data": null,
	  "metadata": {"timestamp": "..."},
	  "error": {"code": "USER_NOT_FOUND", "message": "unknown user_id: u9"}
	}

An unknown user is a 404 and never falls back to popular items. A k that is
not a positive integer, or an include_seen that is not a boolean, is a 400
VALIDATION_ERROR. A k above the configured maximum is capped.

# Middleware

The router installs request IDs, real IP extraction, panic recovery, per-IP
rate limiting (go-chi/httprate) and Prometheus request metrics. /metrics is
outside the rate limiter so scrapes are never throttled.

# Response Cache

With EnableResponseCache, successful recommendation responses are kept in an
LRU keyed by user, k and include_seen. Hits skip the engine and only carry a
fresh request ID.
*/
package api
