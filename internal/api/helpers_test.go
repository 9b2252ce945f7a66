// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ratecast/internal/recommend"
)

// sampleInteractions yields the rating matrix
//
//	    i1 i2 i3
//	u1 [ 5  3  0 ]
//	u2 [ 4  0  5 ]
//	u3 [ 0  2  0 ]
func sampleInteractions() []recommend.Interaction {
	return []recommend.Interaction{
		{UserID: "u1", ItemID: "i1", Rating: 5},
		{UserID: "u1", ItemID: "i2", Rating: 3},
		{UserID: "u2", ItemID: "i1", Rating: 4},
		{UserID: "u2", ItemID: "i3", Rating: 5},
		{UserID: "u3", ItemID: "i2", Rating: 2},
	}
}

// sim12 is the cosine similarity between u1 and u2 in the sample.
var sim12 = 20 / math.Sqrt(34*41)

func newTestEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	engine, err := recommend.NewEngine(sampleInteractions(), recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

// newTestServer returns the full router over the sample engine with rate
// limiting disabled unless config says otherwise.
func newTestServer(t *testing.T, engine Recommender, config *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	if config == nil {
		config = &ChiMiddlewareConfig{}
	}
	return NewRouter(NewHandler(engine, 0), config).SetupChi()
}

// testResponse mirrors APIResponse with a raw payload.
type testResponse struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata Metadata        `json:"metadata"`
	Error    *APIError       `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp testResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

// recommendationData mirrors recommend.Response.
type recommendationData struct {
	User  string                 `json:"user"`
	Items []recommend.ScoredItem `json:"items"`
}

func decodeRecommendations(t *testing.T, resp testResponse) recommendationData {
	t.Helper()
	var data recommendationData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("Failed to decode data %s: %v", resp.Data, err)
	}
	return data
}

func assertItems(t *testing.T, got, want []recommend.ScoredItem) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d items %v, want %d items %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i].ItemID != want[i].ItemID {
			t.Errorf("item[%d].ItemID = %q, want %q", i, got[i].ItemID, want[i].ItemID)
		}
		if math.Abs(got[i].Score-want[i].Score) > 1e-9 {
			t.Errorf("item[%d].Score = %v, want %v", i, got[i].Score, want[i].Score)
		}
	}
}
