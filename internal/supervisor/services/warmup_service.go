// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/ratecast/internal/recommend"
)

// MatrixBuilder builds the engine's rating matrix. Satisfied by *recommend.Engine.
type MatrixBuilder interface {
	Matrix() (*recommend.RatingMatrix, error)
}

// WarmupService builds the rating matrix as soon as serve mode starts so the
// first request does not pay for it. It runs once: success leaves the tree
// and a build failure terminates it. The engine keeps the build error, so
// callers read it back from Matrix after the tree stops.
type WarmupService struct {
	engine MatrixBuilder
	logger zerolog.Logger
	name   string
}

// NewWarmupService creates a warmup service for engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWarmupService(engine MatrixBuilder, logger zerolog.Logger) *WarmupService {
	return &WarmupService{
		engine: engine,
		logger: logger.With().Str("service", "warmup").Logger(),
		name:   "matrix-warmup",
	}
}

// Serve implements suture.Service.
func (s *WarmupService) Serve(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	s.logger.Info().Msg("building rating matrix")

	m, err := s.engine.Matrix()
	if err != nil {
		s.logger.Error().Err(err).Msg("rating matrix build failed")
		return suture.ErrTerminateSupervisorTree
	}

	users, items := m.Dims()
	s.logger.Info().
		Int("users", users).
		Int("items", items).
		Dur("duration", time.Since(start)).
		Msg("rating matrix ready")

	return suture.ErrDoNotRestart
}

// String names the service in supervisor logs.
func (s *WarmupService) String() string {
	return s.name
}
