// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ratecast/internal/config"
	"github.com/tomtom215/ratecast/internal/logging"
	"github.com/tomtom215/ratecast/internal/metrics"
	"github.com/tomtom215/ratecast/internal/recommend"
)

// errNoTarget is the batch wording of recommend.ErrNoTarget.
var errNoTarget = errors.New("provide -user or use -fallback to show popular items")

// userOutput is printed for a personalized run.
type userOutput struct {
	User            string                 `json:"user"`
	Recommendations []recommend.ScoredItem `json:"recommendations"`
}

// popularOutput is printed for a fallback run.
type popularOutput struct {
	Popular []recommend.ScoredItem `json:"popular"`
}

// runBatch produces one set of recommendations and prints it to stdout.
func runBatch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, err := parseFlags("ratecast", config.ModeBatch, args, stderr)
	if err != nil {
		return err
	}

	ctx = logging.ContextWithNewRunID(ctx)

	cfg, engine, err := setup(ctx, fs, config.ModeBatch, stderr)
	if cfg != nil && cfg.Metrics.Textfile != "" {
		defer func() {
			if writeErr := metrics.WriteTextfile(cfg.Metrics.Textfile); writeErr != nil {
				logging.Ctx(ctx).Warn().Err(writeErr).Str("path", cfg.Metrics.Textfile).Msg("failed to write metrics file")
			}
		}()
	}
	if err != nil {
		return err
	}

	resp, err := engine.Recommend(ctx, recommend.Request{
		UserID:      cfg.Recommend.User,
		K:           cfg.Recommend.TopN,
		IncludeSeen: cfg.Recommend.IncludeSeen,
		Fallback:    cfg.Recommend.Fallback,
		RequestID:   logging.RunIDFromContext(ctx),
	})
	if err != nil {
		if errors.Is(err, recommend.ErrNoTarget) {
			return errNoTarget
		}
		return err
	}

	var out interface{}
	if resp.Mode == recommend.ModePersonalized {
		out = userOutput{User: resp.UserID, Recommendations: resp.Items}
	} else {
		out = popularOutput{Popular: resp.Items}
	}

	if err := json.NewEncoder(stdout).Encode(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("mode", resp.Mode.String()).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendations written")

	return nil
}
