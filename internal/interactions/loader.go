// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package interactions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/ratecast/internal/recommend"
	"github.com/tomtom215/ratecast/internal/validation"
)

// Loader names accepted by New.
const (
	LoaderCSV    = "csv"
	LoaderDuckDB = "duckdb"
)

// Column names recognized in the header row.
const (
	ColumnUserID = "user_id"
	ColumnItemID = "item_id"
	ColumnRating = "rating"
)

var (
	// ErrSchema is returned when the header lacks user_id or item_id.
	ErrSchema = errors.New("CSV must contain columns user_id and item_id")

	// ErrLoaderUnavailable is returned for a loader that is not compiled in.
	ErrLoaderUnavailable = errors.New("loader not available in this build")
)

// Loader reads interactions from a file.
type Loader interface {
	// Load returns every record in the file at path, in file order.
	Load(ctx context.Context, path string) ([]recommend.Interaction, error)

	// Name returns the loader name as accepted by New.
	Name() string
}

// New returns the loader registered under name.
func New(name string) (Loader, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LoaderCSV:
		return NewCSVLoader(), nil
	case LoaderDuckDB:
		return newDuckDBLoader()
	default:
		return nil, fmt.Errorf("unknown loader %q (expected %s or %s)", name, LoaderCSV, LoaderDuckDB)
	}
}

// columns holds the positions of the known columns in a header row.
// rating is -1 when the column is absent.
type columns struct {
	userID int
	itemID int
	rating int
}

// resolveColumns locates the known columns in header.
func resolveColumns(header []string) (columns, error) {
	cols := columns{userID: -1, itemID: -1, rating: -1}

	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch name {
		case ColumnUserID:
			if cols.userID < 0 {
				cols.userID = i
			}
		case ColumnItemID:
			if cols.itemID < 0 {
				cols.itemID = i
			}
		case ColumnRating:
			if cols.rating < 0 {
				cols.rating = i
			}
		}
	}

	var missing []string
	if cols.userID < 0 {
		missing = append(missing, ColumnUserID)
	}
	if cols.itemID < 0 {
		missing = append(missing, ColumnItemID)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w, missing: %s", ErrSchema, strings.Join(missing, ", "))
	}

	return cols, nil
}

// record builds an interaction from one row. Cells past the end of a short
// row read as empty. line is the 1-based line number used in errors.
func (c columns) record(row []string, line int) (recommend.Interaction, error) {
	rec := recommend.Interaction{
		UserID: strings.TrimSpace(cell(row, c.userID)),
		ItemID: strings.TrimSpace(cell(row, c.itemID)),
		Rating: 1.0,
	}
	if c.rating >= 0 {
		rec.Rating = ParseRating(cell(row, c.rating))
	}

	if verr := validation.ValidateStruct(&rec); verr != nil {
		return rec, fmt.Errorf("line %d: %w (%s)", line, recommend.ErrMalformedRecord, verr.Error())
	}

	return rec, nil
}

// ParseRating converts a rating cell. An empty cell is 1.0; anything that
// does not parse as a finite number is 0.0. Surrounding spaces are allowed
// around a number, but a cell of only spaces is unparsable.
func ParseRating(raw string) float64 {
	if raw == "" {
		return 1.0
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.0
	}
	return v
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
