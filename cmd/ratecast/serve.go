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
	"net/http"

	"github.com/tomtom215/ratecast/internal/api"
	"github.com/tomtom215/ratecast/internal/config"
	"github.com/tomtom215/ratecast/internal/logging"
	"github.com/tomtom215/ratecast/internal/supervisor"
	"github.com/tomtom215/ratecast/internal/supervisor/services"
)

// runServe loads the data once and serves recommendations until ctx ends.
func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	fs, err := parseFlags("ratecast serve", config.ModeServe, args, stderr)
	if err != nil {
		return err
	}

	cfg, engine, err := setup(ctx, fs, config.ModeServe, stderr)
	if err != nil {
		return err
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	handler := api.NewHandler(engine, cfg.Server.WriteTimeout)
	if cfg.Server.CacheSize > 0 {
		handler.EnableResponseCache(cfg.Server.CacheSize, cfg.Server.CacheTTL)
	}

	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		RateLimitRequests: cfg.Server.RateLimitReqs,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree.AddEngineService(services.NewWarmupService(engine, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.Logger()))

	logging.Info().
		Str("addr", server.Addr).
		Int("rate_limit_requests", cfg.Server.RateLimitReqs).
		Dur("rate_limit_window", cfg.Server.RateLimitWindow).
		Int("response_cache_size", cfg.Server.CacheSize).
		Msg("starting ratecast server")

	err = tree.Serve(ctx)

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("services did not stop within the shutdown timeout")
	}

	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logging.Info().Msg("ratecast server stopped")
		return nil
	}

	// A failed matrix build terminates the tree; report the build error itself.
	if _, buildErr := engine.Matrix(); buildErr != nil {
		return buildErr
	}
	return fmt.Errorf("supervisor stopped: %w", err)
}
