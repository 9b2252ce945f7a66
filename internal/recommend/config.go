// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package recommend

import (
	"fmt"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// ExcludeSeen drops items the target user already rated.
	// Requests may opt back in with Request.IncludeSeen.
	// Default: true.
	ExcludeSeen bool `json:"exclude_seen"`

	// PrecomputeSimilarity builds the full user x user similarity matrix
	// once and reuses its rows. Worth it when many users are queried
	// against the same data set (serve mode); a single batch query only
	// needs one row.
	// Default: false.
	PrecomputeSimilarity bool `json:"precompute_similarity"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the number of items returned when a request sets none.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed K value.
	// Default: 1000.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns a Config with the batch defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     1000,
		},
		ExcludeSeen:          true,
		PrecomputeSimilarity: false,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
