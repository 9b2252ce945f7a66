// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

// Package recommend implements user-based collaborative filtering with a
// popularity fallback over explicit (user, item, rating) interactions.
//
// # Pipeline
//
//   - BuildMatrix turns interactions into a dense user x item matrix of
//     mean ratings (gonum mat.Dense), with users and items sorted.
//   - UserSimilarity computes cosine similarity between all users as the
//     row-normalized matrix times its transpose, with a zero diagonal.
//   - RecommendForUser predicts a similarity-weighted average rating for
//     every item and returns the best unseen items.
//   - PopularItems ranks items by total rating straight from the records.
//
// # Determinism
//
// Every step is a pure function of its inputs. Ties are resolved by sort
// stability: item order for personalized results, first appearance for
// popularity results.
//
// # Degenerate Inputs
//
// Zero-norm rows get similarity 0 to every user, and a zero denominator is
// replaced by 1, so results never contain NaN. Unknown users fail with
// ErrUserNotFound; they never fall back to popularity.
//
// # Usage
//
//	engine, err := recommend.NewEngine(records, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    UserID: "u3",
//	    K:      5,
//	})
//
// # Thread Safety
//
// The Engine builds its matrix once, on first use, and only reads it
// afterwards. It is safe for concurrent use.
package recommend
