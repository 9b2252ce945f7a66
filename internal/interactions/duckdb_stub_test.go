// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

//go:build !duckdb

package interactions

import (
	"errors"
	"testing"
)

func TestNew_DuckDBUnavailable(t *testing.T) {
	t.Parallel()

	loader, err := New(LoaderDuckDB)
	if !errors.Is(err, ErrLoaderUnavailable) {
		t.Fatalf("New(duckdb) error = %v, want ErrLoaderUnavailable", err)
	}
	if loader != nil {
		t.Errorf("New(duckdb) = %v, want nil loader", loader)
	}
}
