// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

// Package interactions loads (user, item, rating) records from CSV files.
//
// # Input Format
//
// A header row is required. Columns are matched by name, so order is free and
// extra columns are ignored:
//
//	user_id,item_id,rating
//	u1,i1,5
//	u1,i2,3
//
// Normalization rules, shared by every loader:
//   - user_id or item_id column missing: ErrSchema
//   - rating column missing: every rating is 1.0
//   - rating cell empty: 1.0
//   - rating cell not a finite number: 0.0
//   - user_id and item_id are trimmed; an empty value fails the whole load
//     with recommend.ErrMalformedRecord and the line number
//
// # Loaders
//
//   - csv: encoding/csv, always available
//   - duckdb: DuckDB read_csv, compiled in with -tags duckdb
//
// Select one with New. Without the duckdb tag, New("duckdb") returns
// ErrLoaderUnavailable.
package interactions
