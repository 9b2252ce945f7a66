// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

//go:build !duckdb

package interactions

import (
	"fmt"
)

// newDuckDBLoader reports that the DuckDB loader was not compiled in.
// Build with -tags duckdb to enable it.
func newDuckDBLoader() (Loader, error) {
	return nil, fmt.Errorf("%s: %w (rebuild with -tags duckdb)", LoaderDuckDB, ErrLoaderUnavailable)
}
