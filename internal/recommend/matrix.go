// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package recommend

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// BuildMatrix converts interactions into a dense user x item rating matrix.
//
// Users and items are indexed in ascending string order. Duplicate
// (user, item) pairs are averaged, so the result does not depend on the
// order of records. Pairs without interactions are 0.0.
//
// A record with an empty user or item identifier fails with ErrMalformedRecord.
//
//nolint:gocritic // rangeValCopy: Interaction is small
func BuildMatrix(records []Interaction) (*RatingMatrix, error) {
	for i, r := range records {
		if r.UserID == "" || r.ItemID == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrMalformedRecord)
		}
	}

	users := sortedUnique(records, func(r *Interaction) string { return r.UserID })
	items := sortedUnique(records, func(r *Interaction) string { return r.ItemID })

	m := &RatingMatrix{
		Users:     users,
		Items:     items,
		userIndex: indexOf(users),
		itemIndex: indexOf(items),
	}

	if len(records) == 0 {
		return m, nil
	}

	sums := mat.NewDense(len(users), len(items), nil)
	counts := mat.NewDense(len(users), len(items), nil)

	for _, r := range records {
		i := m.userIndex[r.UserID]
		j := m.itemIndex[r.ItemID]
		sums.Set(i, j, sums.At(i, j)+r.Rating)
		counts.Set(i, j, counts.At(i, j)+1)
	}

	// Average cells that received at least one rating
	sums.Apply(func(i, j int, v float64) float64 {
		if n := counts.At(i, j); n > 0 {
			return v / n
		}
		return 0
	}, sums)

	m.Ratings = sums
	return m, nil
}

// sortedUnique returns the distinct keys of records in ascending order.
func sortedUnique(records []Interaction, key func(*Interaction) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range records {
		k := key(&records[i])
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// indexOf maps each identifier to its position.
func indexOf(ids []string) map[string]int {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return index
}
