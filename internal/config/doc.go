// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

/*
Package config loads Ratecast configuration with koanf.

# Configuration Sources

Sources are layered, later ones override earlier ones:

 1. Built-in defaults
 2. YAML file: -config, RATECAST_CONFIG, or ratecast.yaml / ratecast.yml in
    the working directory
 3. Environment variables
 4. Command-line flags that were set explicitly

# Configuration Structure

  - DataConfig: interactions file and loader
  - RecommendConfig: target user, top N, fallback and seen-item policy
  - LoggingConfig: zerolog level, format, caller
  - ServerConfig: HTTP listener, timeouts, rate limit (serve mode only)
  - MetricsConfig: Prometheus textfile output for batch runs

# Environment Variables

Data and recommendation:
  - RATECAST_DATA: interactions CSV path (required)
  - RATECAST_LOADER: csv or duckdb (default: csv)
  - RATECAST_USER: target user
  - RATECAST_TOP: number of items (default: 5)
  - RATECAST_FALLBACK: show popular items when no user is given (default: false)
  - RATECAST_INCLUDE_SEEN: keep items the user already rated (default: false)
  - RATECAST_MAX_K: largest k accepted by the API (default: 1000)
  - RATECAST_PRECOMPUTE_SIMILARITY: build the full user x user matrix once (default: true in serve mode)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller info (default: false)

HTTP server:
  - HTTP_HOST: bind address (default: 127.0.0.1)
  - HTTP_PORT: listen port (default: 8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - RATE_LIMIT_REQUESTS: requests per window per IP, 0 disables (default: 100)
  - RATE_LIMIT_WINDOW: rate limit window (default: 1m)

Metrics:
  - RATECAST_METRICS_FILE: write Prometheus text format here after a batch run
*/
package config
