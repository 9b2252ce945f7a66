// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package metrics

import "github.com/rs/zerolog"

func zerologNop() zerolog.Logger {
	return zerolog.Nop()
}
