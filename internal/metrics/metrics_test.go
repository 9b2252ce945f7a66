// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package metrics

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/ratecast/internal/interactions"
	"github.com/tomtom215/ratecast/internal/recommend"
)

func TestRecordLoad(t *testing.T) {
	before := testutil.ToFloat64(InteractionsLoaded.WithLabelValues("csv"))

	RecordLoad("csv", 5, 10*time.Millisecond, nil)
	RecordLoad("csv", 3, 5*time.Millisecond, nil)

	if got := testutil.ToFloat64(InteractionsLoaded.WithLabelValues("csv")) - before; got != 8 {
		t.Errorf("interactions loaded delta = %v, want 8", got)
	}
}

func TestRecordLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"schema", fmt.Errorf("a.csv: %w", interactions.ErrSchema), "schema"},
		{"malformed", fmt.Errorf("line 3: %w", recommend.ErrMalformedRecord), "malformed"},
		{"unavailable", interactions.ErrLoaderUnavailable, "unavailable"},
		{"canceled", context.Canceled, "canceled"},
		{"missing file", &fs.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}, "io"},
		{"other", errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := LoadErrors.WithLabelValues("test", tt.want)
			before := testutil.ToFloat64(counter)

			RecordLoad("test", 0, time.Millisecond, tt.err)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("error_type %q delta = %v, want 1", tt.want, got)
			}
		})
	}
}

func TestEngineObserver(t *testing.T) {
	obs := EngineObserver{}

	obs.ObserveMatrix(3, 4, 2*time.Millisecond)
	if got := testutil.ToFloat64(MatrixUsers); got != 3 {
		t.Errorf("MatrixUsers = %v, want 3", got)
	}
	if got := testutil.ToFloat64(MatrixItems); got != 4 {
		t.Errorf("MatrixItems = %v, want 4", got)
	}

	errCounter := RecommendationErrors.WithLabelValues("personalized", "user_not_found")
	before := testutil.ToFloat64(errCounter)
	obs.ObserveError("personalized", "user_not_found")
	if got := testutil.ToFloat64(errCounter) - before; got != 1 {
		t.Errorf("errors delta = %v, want 1", got)
	}

	obs.ObserveRecommendation("popular", time.Millisecond, 2)
	if got := testutil.CollectAndCount(RecommendationDuration); got < 1 {
		t.Errorf("RecommendationDuration series = %d, want >= 1", got)
	}
}

func TestEngineObserver_WithEngine(t *testing.T) {
	records := []recommend.Interaction{
		{UserID: "u1", ItemID: "i1", Rating: 5},
		{UserID: "u2", ItemID: "i2", Rating: 3},
	}
	engine, err := recommend.NewEngine(records, nil, zerologNop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetObserver(EngineObserver{})

	errCounter := RecommendationErrors.WithLabelValues("personalized", "user_not_found")
	before := testutil.ToFloat64(errCounter)

	if _, err := engine.Recommend(context.Background(), recommend.Request{UserID: "ghost"}); !errors.Is(err, recommend.ErrUserNotFound) {
		t.Fatalf("Recommend() error = %v, want ErrUserNotFound", err)
	}
	if got := testutil.ToFloat64(errCounter) - before; got != 1 {
		t.Errorf("user_not_found delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(MatrixUsers); got != 2 {
		t.Errorf("MatrixUsers = %v, want 2", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/health", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/api/v1/health", 200, 3*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("requests delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)

	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("active requests delta = %v, want 1", got)
	}
	TrackActiveRequest(false)
}

func TestRecordCacheLookup(t *testing.T) {
	hits := ResponseCacheLookups.WithLabelValues("hit")
	misses := ResponseCacheLookups.WithLabelValues("miss")
	beforeHits, beforeMisses := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup(false)
	RecordCacheLookup(true)
	RecordCacheLookup(true)

	if got := testutil.ToFloat64(hits) - beforeHits; got != 2 {
		t.Errorf("hit delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(misses) - beforeMisses; got != 1 {
		t.Errorf("miss delta = %v, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordLoad("csv", 1, time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "ratecast.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "ratecast_interactions_loaded_total") {
		t.Errorf("textfile missing ratecast metrics:\n%s", data)
	}
}
