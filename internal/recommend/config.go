// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultK is the result count used when a caller passes k <= 0.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK caps k. Larger requests are clamped.
	// Default: 50.
	MaxK int `json:"max_k"`

	// SimilarityPool is how many nearest corpus rows are considered before
	// sampling content results.
	// Default: 10.
	SimilarityPool int `json:"similarity_pool"`

	// CohortSize is the number of users sampled for collaborative scoring.
	// Default: 10.
	CohortSize int `json:"cohort_size"`

	// PopularPool is how many of the most popular movies are considered
	// before sampling popular picks.
	// Default: 500.
	PopularPool int `json:"popular_pool"`

	// Seed is the random seed for sampling.
	// If zero, the engine seeds from the clock.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultK:       5,
		MaxK:           50,
		SimilarityPool: 10,
		CohortSize:     10,
		PopularPool:    500,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("default_k must be positive, got %d", c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("max_k must be >= default_k, got %d < %d", c.MaxK, c.DefaultK)
	}
	if c.SimilarityPool < 1 {
		return fmt.Errorf("similarity_pool must be positive, got %d", c.SimilarityPool)
	}
	if c.CohortSize < 1 {
		return fmt.Errorf("cohort_size must be positive, got %d", c.CohortSize)
	}
	if c.PopularPool < 1 {
		return fmt.Errorf("popular_pool must be positive, got %d", c.PopularPool)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// NormalizeK applies the default and the cap to a requested result count.
func (c *Config) NormalizeK(k int) int {
	if k <= 0 {
		return c.DefaultK
	}
	if k > c.MaxK {
		return c.MaxK
	}
	return k
}
