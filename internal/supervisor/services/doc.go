// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

// Package services adapts serve mode components to suture.Service.
//
// HTTPServerService turns http.Server's blocking ListenAndServe into a
// context-aware Serve with graceful shutdown. WarmupService builds the
// rating matrix in the background and then leaves the tree.
package services
