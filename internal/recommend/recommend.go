// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package recommend

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// RecommendForUser predicts a score for every item using user-based
// collaborative filtering and returns up to topN items.
//
// For target user t and item j:
//
//	score(j) = sum_u sim(t, u) * r(u, j) / |{u : sim(t, u) > 0 and r(u, j) > 0}|
//
// A zero denominator is replaced by 1. When excludeSeen is set, items the
// user rated above 0 score -Inf. Items are ranked by score descending with
// ties kept in item order; the top topN are taken first and only then are
// non-finite or non-positive entries dropped, so fewer than topN items may
// be returned.
//
// Fails with ErrUserNotFound if userID is not a row of m.
func RecommendForUser(m *RatingMatrix, userID string, topN int, excludeSeen bool) ([]ScoredItem, error) {
	target, ok := m.UserIndex(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	sim := similarityRow(normalizeRows(m.Ratings), target)
	return rankItems(m, target, sim, topN, excludeSeen), nil
}

// rankItems scores every item for the target row from its similarity row
// and returns the filtered top-N.
func rankItems(m *RatingMatrix, target int, sim mat.Vector, topN int, excludeSeen bool) []ScoredItem {
	scores := predictScores(m.Ratings, sim)

	if excludeSeen {
		for j, r := range m.Ratings.RawRowView(target) {
			if r > 0 {
				scores[j] = math.Inf(-1)
			}
		}
	}

	order := make([]int, len(scores))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topN < 0 {
		topN = 0
	}
	if len(order) > topN {
		order = order[:topN]
	}

	result := make([]ScoredItem, 0, len(order))
	for _, j := range order {
		s := scores[j]
		if math.IsInf(s, 0) || math.IsNaN(s) || s <= 0 {
			continue
		}
		result = append(result, ScoredItem{ItemID: m.Items[j], Score: s})
	}

	return result
}

// predictScores returns the similarity-weighted average rating of every item.
// The average only counts users with positive similarity and a positive
// rating; items nobody qualifies for keep their raw weighted sum.
func predictScores(ratings *mat.Dense, sim mat.Vector) []float64 {
	users, items := ratings.Dims()

	numerator := mat.NewVecDense(items, nil)
	numerator.MulVec(ratings.T(), sim)

	denominator := make([]float64, items)
	for u := 0; u < users; u++ {
		if sim.AtVec(u) <= 0 {
			continue
		}
		for j, r := range ratings.RawRowView(u) {
			if r > 0 {
				denominator[j]++
			}
		}
	}

	scores := make([]float64, items)
	for j := range scores {
		d := denominator[j]
		if d == 0 {
			d = 1
		}
		scores[j] = numerator.AtVec(j) / d
	}

	return scores
}
