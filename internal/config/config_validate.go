// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package config

import (
	"fmt"

	"github.com/tomtom215/ratecast/internal/validation"
)

// Validate checks field rules, then rules that span fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if c.Recommend.TopN > c.Recommend.MaxK {
		return fmt.Errorf("recommend.top_n must be <= recommend.max_k, got %d > %d", c.Recommend.TopN, c.Recommend.MaxK)
	}

	return nil
}
