// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package recommend

import (
	"gonum.org/v1/gonum/mat"
)

// normalizeRows returns a copy of ratings with every row scaled to unit
// Euclidean length. Zero-norm rows stay all-zero, which gives them a
// similarity of 0 to everyone instead of NaN.
func normalizeRows(ratings *mat.Dense) *mat.Dense {
	normalized := mat.DenseCopyOf(ratings)
	rows, _ := normalized.Dims()

	for i := 0; i < rows; i++ {
		norm := mat.Norm(normalized.RowView(i), 2)
		if norm == 0 {
			continue
		}
		row := normalized.RawRowView(i)
		for j := range row {
			row[j] /= norm
		}
	}

	return normalized
}

// UserSimilarity computes the user x user cosine similarity matrix as the
// row-normalized ratings times their own transpose. The diagonal is forced
// to 0 so a user's own ratings never feed their predictions.
//
// Returns nil for an empty matrix.
func UserSimilarity(m *RatingMatrix) *mat.Dense {
	if m.Ratings == nil {
		return nil
	}

	normalized := normalizeRows(m.Ratings)
	rows, _ := normalized.Dims()

	sim := mat.NewDense(rows, rows, nil)
	sim.Mul(normalized, normalized.T())

	for i := 0; i < rows; i++ {
		sim.Set(i, i, 0)
	}

	return sim
}

// similarityRow computes the similarity of one user to every user, with the
// self entry forced to 0. It matches row idx of UserSimilarity without
// materializing the full matrix.
func similarityRow(normalized *mat.Dense, idx int) *mat.VecDense {
	rows, _ := normalized.Dims()

	row := mat.NewVecDense(rows, nil)
	row.MulVec(normalized, normalized.RowView(idx))
	row.SetVec(idx, 0)

	return row
}
