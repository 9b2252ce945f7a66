// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package recommend

import (
	"sort"
)

// PopularItems ranks items by their total rating and returns the top N.
// It is the fallback for cold-start users and works on raw records, not the
// rating matrix.
//
// The popularity score is computed as:
//
//	score(item) = sum(rating) for all interactions with item
//
// Totals are summed rather than averaged. Ties keep the order in which items
// first appear in records. Zero and negative totals are kept.
//
//nolint:gocritic // rangeValCopy: Interaction is small
func PopularItems(records []Interaction, topN int) []ScoredItem {
	if topN <= 0 {
		return []ScoredItem{}
	}

	totals := make(map[string]int, len(records))
	scored := make([]ScoredItem, 0)

	for _, r := range records {
		idx, ok := totals[r.ItemID]
		if !ok {
			idx = len(scored)
			totals[r.ItemID] = idx
			scored = append(scored, ScoredItem{ItemID: r.ItemID})
		}
		scored[idx].Score += r.Rating
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}

	return scored
}
