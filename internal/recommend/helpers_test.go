// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package recommend

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
)

const floatTolerance = 1e-9

// sampleInteractions is the five-row fixture used throughout the package tests.
//
//	    i1 i2 i3
//	u1 [ 5  3  0 ]
//	u2 [ 4  0  5 ]
//	u3 [ 0  2  0 ]
func sampleInteractions() []Interaction {
	return []Interaction{
		{UserID: "u1", ItemID: "i1", Rating: 5},
		{UserID: "u1", ItemID: "i2", Rating: 3},
		{UserID: "u2", ItemID: "i1", Rating: 4},
		{UserID: "u2", ItemID: "i3", Rating: 5},
		{UserID: "u3", ItemID: "i2", Rating: 2},
	}
}

func sampleMatrix(t *testing.T) *RatingMatrix {
	t.Helper()
	m, err := BuildMatrix(sampleInteractions())
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	return m
}

// testLogger returns a zerolog logger for testing.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance
}

func assertItems(t *testing.T, got, want []ScoredItem) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d items %v, want %d items %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i].ItemID != want[i].ItemID {
			t.Errorf("item[%d].ItemID = %q, want %q", i, got[i].ItemID, want[i].ItemID)
		}
		if !approxEqual(got[i].Score, want[i].Score) {
			t.Errorf("item[%d].Score = %v, want %v", i, got[i].Score, want[i].Score)
		}
	}
}
