// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Note: This package has no dependencies on other internal packages.
// Metrics are reported through the Observer interface.

// Observer receives engine events for instrumentation.
type Observer interface {
	// ObserveMatrix is called once the rating matrix has been built.
	ObserveMatrix(users, items int, buildDuration time.Duration)

	// ObserveRecommendation is called after every successful request.
	ObserveRecommendation(mode string, duration time.Duration, returned int)

	// ObserveError is called for every failed request with a short error kind.
	ObserveError(mode, kind string)
}

// nopObserver discards all events.
type nopObserver struct{}

func (nopObserver) ObserveMatrix(int, int, time.Duration)            {}
func (nopObserver) ObserveRecommendation(string, time.Duration, int) {}
func (nopObserver) ObserveError(string, string)                      {}

// Engine serves recommendations over a fixed set of interactions.
// The rating matrix is built on first use and never mutated afterwards,
// so the engine is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	observer Observer

	records []Interaction

	buildOnce  sync.Once
	matrix     *RatingMatrix
	similarity *mat.Dense
	normalized *mat.Dense
	buildErr   error
	built      atomic.Pointer[RatingMatrix]

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Stats contains engine counters and data set dimensions.
type Stats struct {
	Interactions int   `json:"interactions"`
	Users        int   `json:"users"`
	Items        int   `json:"items"`
	Built        bool  `json:"built"`
	RequestCount int64 `json:"request_count"`
	ErrorCount   int64 `json:"error_count"`
}

// NewEngine creates an engine over the given interactions.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(records []Interaction, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		observer: nopObserver{},
		records:  records,
	}, nil
}

// SetObserver sets the instrumentation sink. Must be called before the first request.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	e.observer = o
}

// Recommend runs a personalized or popularity request.
//
// With a UserID the engine runs collaborative filtering and fails with
// ErrUserNotFound for unknown users. Without one it returns popular items
// if req.Fallback is set and ErrNoTarget otherwise.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	mode := ModePersonalized
	if req.UserID == "" {
		mode = ModePopular
	}

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Str("mode", mode.String()).
		Int("k", req.K).
		Logger()
	logger.Debug().Msg("processing recommendation request")

	if err := ctx.Err(); err != nil {
		return nil, e.fail(mode, "canceled", err)
	}

	var items []ScoredItem
	switch {
	case mode == ModePopular && !req.Fallback:
		return nil, e.fail(mode, "no_target", ErrNoTarget)

	case mode == ModePopular:
		items = PopularItems(e.records, req.K)

	default:
		var err error
		items, err = e.recommendForUser(req)
		if err != nil {
			kind := "internal"
			if errors.Is(err, ErrUserNotFound) {
				kind = "user_not_found"
			}
			return nil, e.fail(mode, kind, err)
		}
	}

	resp := &Response{
		Mode:   mode,
		UserID: req.UserID,
		Items:  items,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			Mode:      mode.String(),
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: time.Now(),
		},
	}
	if m := e.built.Load(); m != nil {
		resp.Metadata.Users, resp.Metadata.Items = m.Dims()
	}

	e.observer.ObserveRecommendation(mode.String(), time.Since(start), len(items))

	logger.Debug().
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// recommendForUser ranks items for req.UserID against the shared matrix.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommendForUser(req Request) ([]ScoredItem, error) {
	m, err := e.Matrix()
	if err != nil {
		return nil, err
	}

	target, ok := m.UserIndex(req.UserID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, req.UserID)
	}

	var sim mat.Vector
	if e.similarity != nil {
		sim = e.similarity.RowView(target)
	} else {
		sim = similarityRow(e.normalized, target)
	}

	excludeSeen := e.config.ExcludeSeen && !req.IncludeSeen
	return rankItems(m, target, sim, req.K, excludeSeen), nil
}

// Matrix returns the rating matrix, building it on first use.
func (e *Engine) Matrix() (*RatingMatrix, error) {
	e.buildOnce.Do(e.build)
	return e.matrix, e.buildErr
}

// build constructs the rating matrix and the similarity inputs.
func (e *Engine) build() {
	start := time.Now()

	m, err := BuildMatrix(e.records)
	if err != nil {
		e.buildErr = fmt.Errorf("build rating matrix: %w", err)
		return
	}
	e.matrix = m

	if m.Ratings != nil {
		if e.config.PrecomputeSimilarity {
			e.similarity = UserSimilarity(m)
		} else {
			e.normalized = normalizeRows(m.Ratings)
		}
	}

	users, items := m.Dims()
	e.built.Store(m)
	e.observer.ObserveMatrix(users, items, time.Since(start))

	e.logger.Info().
		Int("interactions", len(e.records)).
		Int("users", users).
		Int("items", items).
		Bool("precomputed_similarity", e.similarity != nil).
		Dur("duration", time.Since(start)).
		Msg("built rating matrix")
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	if req.K == 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}

	return req
}

// fail records a failed request and returns err unchanged.
func (e *Engine) fail(mode Mode, kind string, err error) error {
	e.errorCount.Add(1)
	e.observer.ObserveError(mode.String(), kind)
	return err
}

// GetStats returns the current engine counters.
func (e *Engine) GetStats() Stats {
	s := Stats{
		Interactions: len(e.records),
		RequestCount: e.requestCount.Load(),
		ErrorCount:   e.errorCount.Load(),
	}

	// Only report dimensions once the build has finished.
	if m := e.built.Load(); m != nil {
		s.Built = true
		s.Users, s.Items = m.Dims()
	}

	return s
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
