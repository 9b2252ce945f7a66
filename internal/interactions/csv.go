// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package interactions

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tomtom215/ratecast/internal/logging"
	"github.com/tomtom215/ratecast/internal/recommend"
)

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 1024

// CSVLoader reads interactions with encoding/csv.
type CSVLoader struct{}

// NewCSVLoader creates a CSV loader.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// Name returns "csv".
func (l *CSVLoader) Name() string {
	return LoaderCSV
}

// Load reads the file at path.
func (l *CSVLoader) Load(ctx context.Context, path string) ([]recommend.Interaction, error) {
	file, err := os.Open(path) //nolint:gosec // G304: path is the user-supplied data file
	if err != nil {
		return nil, fmt.Errorf("failed to open interactions file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logging.Ctx(ctx).Warn().Err(closeErr).Str("path", path).Msg("Error closing interactions file")
		}
	}()

	start := time.Now()
	records, err := l.LoadReader(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.Ctx(ctx).Debug().
		Str("loader", LoaderCSV).
		Str("path", path).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Read interactions")

	return records, nil
}

// LoadReader reads CSV data from r.
func (l *CSVLoader) LoadReader(ctx context.Context, r io.Reader) ([]recommend.Interaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w, missing: header row", ErrSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	records := make([]recommend.Interaction, 0)
	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rec, err := cols.record(row, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
