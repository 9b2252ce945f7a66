// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package recommend

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrUserNotFound is returned when a recommendation is requested for a
	// user that does not appear in the rating matrix. It never triggers a
	// popularity fallback.
	ErrUserNotFound = errors.New("unknown user_id")

	// ErrMalformedRecord is returned when an interaction lacks a user or item identifier.
	ErrMalformedRecord = errors.New("rows must contain user_id and item_id")

	// ErrNoTarget is returned when neither a target user nor the popularity
	// fallback was requested.
	ErrNoTarget = errors.New("provide a user or enable the fallback to show popular items")
)

// Interaction is a single observed (user, item, rating) event.
type Interaction struct {
	// UserID identifies the user. Never empty once loaded.
	UserID string `json:"user_id" validate:"required"`

	// ItemID identifies the item. Never empty once loaded.
	ItemID string `json:"item_id" validate:"required"`

	// Rating is the explicit rating, or 1.0 when the source has no rating column.
	Rating float64 `json:"rating" validate:"finite"`
}

// ScoredItem is an item paired with a predicted score or a popularity total.
type ScoredItem struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}

// RatingMatrix is a dense user x item matrix of mean ratings.
// Row i belongs to Users[i] and column j to Items[j]. Unobserved pairs are 0.0.
type RatingMatrix struct {
	// Ratings has shape len(Users) x len(Items). Nil when there are no interactions.
	Ratings *mat.Dense

	// Users is the sorted, duplicate-free row index.
	Users []string

	// Items is the sorted, duplicate-free column index.
	Items []string

	userIndex map[string]int
	itemIndex map[string]int
}

// Dims returns the number of users and items.
func (m *RatingMatrix) Dims() (users, items int) {
	return len(m.Users), len(m.Items)
}

// UserIndex returns the row of the given user.
func (m *RatingMatrix) UserIndex(userID string) (int, bool) {
	i, ok := m.userIndex[userID]
	return i, ok
}

// ItemIndex returns the column of the given item.
func (m *RatingMatrix) ItemIndex(itemID string) (int, bool) {
	j, ok := m.itemIndex[itemID]
	return j, ok
}

// At returns the mean rating of a user for an item, or 0 for unknown pairs.
func (m *RatingMatrix) At(userID, itemID string) float64 {
	i, ok := m.userIndex[userID]
	if !ok {
		return 0
	}
	j, ok := m.itemIndex[itemID]
	if !ok {
		return 0
	}
	return m.Ratings.At(i, j)
}

// Mode selects which operation a Request runs.
type Mode int

const (
	// ModePersonalized runs user-based collaborative filtering for a target user.
	ModePersonalized Mode = iota
	// ModePopular ranks items by total rating.
	ModePopular
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModePersonalized:
		return "personalized"
	case ModePopular:
		return "popular"
	default:
		return "unknown"
	}
}

// Request is a recommendation request handled by the Engine.
type Request struct {
	// UserID is the target user. Empty selects the popularity path when Fallback is set.
	UserID string `json:"user_id,omitempty"`

	// K is the number of items to return. Defaults to Config.DefaultK if zero.
	K int `json:"k,omitempty"`

	// IncludeSeen keeps items the user already rated in the candidate set.
	IncludeSeen bool `json:"include_seen,omitempty"`

	// Fallback allows the popularity path when UserID is empty.
	Fallback bool `json:"fallback,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of an Engine request.
type Response struct {
	// Mode is the operation that produced Items.
	Mode Mode `json:"-"`

	// UserID echoes the target user for personalized responses.
	UserID string `json:"user,omitempty"`

	// Items is the ranked result.
	Items []ScoredItem `json:"items"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID string    `json:"request_id"`
	Mode      string    `json:"mode"`
	Users     int       `json:"users"`
	Items     int       `json:"items"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}
