// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

// Package main is the ratecast command.
//
// Ratecast recommends items from a CSV of (user_id, item_id, rating) rows
// using user-based collaborative filtering, and falls back to the most
// popular items when no user is given.
//
// # Batch Mode
//
//	ratecast -data ratings.csv -user u3 -top 5
//	{"user":"u3","recommendations":[{"item_id":"i1","score":2.5724787771376323}]}
//
//	ratecast -data ratings.csv -fallback -top 2
//	{"popular":[{"item_id":"i1","score":9},{"item_id":"i2","score":5}]}
//
// The result is written to stdout as a single JSON line; logs go to stderr.
// Without -user and -fallback, or for an unknown user, ratecast exits with
// status 1. An unknown user never falls back to popular items.
//
// # Serve Mode
//
//	ratecast serve -data ratings.csv -addr 127.0.0.1:8080
//
// loads the file once and serves the same two operations over HTTP (see
// package api) under a suture supervisor. SIGINT and SIGTERM shut it down
// gracefully.
//
// # Configuration
//
// Settings come from, lowest priority first: built-in defaults, a YAML file
// (-config, RATECAST_CONFIG or ./ratecast.yaml), environment variables and
// command-line flags. See package config for the full list.
//
// # Build Tags
//
//	go build -tags duckdb ./cmd/ratecast   # enable -loader duckdb
package main
