// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

// Package logging provides the process-wide zerolog logger for Ratecast.
//
// Logs always go to stderr by default. The batch command prints its JSON
// result on stdout, so nothing else may write there.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("path", path).Msg("loading interactions")
//	logging.Error().Err(err).Msg("recommendation failed")
//
//	// With a run or request ID attached
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Msg("run started")
//
// # Configuration
//
// Level, format and caller reporting come from the config package
// (LOG_LEVEL, LOG_FORMAT, LOG_CALLER or the -log-level and -log-format flags).
//
// # slog Bridge
//
// NewSlogLogger returns a *slog.Logger that writes through zerolog. The
// supervisor hands it to sutureslog so service restarts land in the same
// stream as everything else.
package logging
