// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

//go:build duckdb

package interactions

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"github.com/tomtom215/ratecast/internal/logging"
	"github.com/tomtom215/ratecast/internal/recommend"
)

// duckDBConnString opens an in-memory database without extension downloads.
const duckDBConnString = ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"

// DuckDBLoader reads interactions through DuckDB's read_csv.
// Every column is read as VARCHAR so the shared normalization rules apply
// unchanged; DuckDB only does the parsing.
type DuckDBLoader struct{}

func newDuckDBLoader() (Loader, error) {
	return &DuckDBLoader{}, nil
}

// Name returns "duckdb".
func (l *DuckDBLoader) Name() string {
	return LoaderDuckDB
}

// Load reads the file at path.
func (l *DuckDBLoader) Load(ctx context.Context, path string) ([]recommend.Interaction, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open interactions file: %w", err)
	}

	db, err := sql.Open("duckdb", duckDBConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logging.Ctx(ctx).Warn().Err(closeErr).Msg("Error closing DuckDB")
		}
	}()

	start := time.Now()

	// read_csv does not accept a bound parameter for the file name.
	query := fmt.Sprintf(
		"SELECT * FROM read_csv(%s, header = true, all_varchar = true, auto_detect = true)",
		quoteLiteral(path),
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read CSV: %w", path, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Ctx(ctx).Warn().Err(closeErr).Msg("Error closing DuckDB rows")
		}
	}()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read columns: %w", path, err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	values := make([]sql.NullString, len(header))
	dest := make([]interface{}, len(header))
	for i := range values {
		dest[i] = &values[i]
	}
	row := make([]string, len(header))

	records := make([]recommend.Interaction, 0)
	// The header is line 1; read_csv keeps file order.
	for line := 2; rows.Next(); line++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line, err)
		}
		for i, v := range values {
			row[i] = v.String // NULL (empty cell) reads as ""
		}

		rec, err := cols.record(row, line)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.Ctx(ctx).Debug().
		Str("loader", LoaderDuckDB).
		Str("path", path).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Read interactions")

	return records, nil
}

// quoteLiteral quotes s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
