// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation service.
type Config struct {
	// PopularityThreshold: the personalized popularity term applies when
	// view_count is strictly greater than this value.
	PopularityThreshold int64

	// PersonalizedThreshold is the exclusive lower bound for personalized scores.
	PersonalizedThreshold float64

	// SimilarityThreshold is the exclusive lower bound for similarity scores.
	SimilarityThreshold float64

	// UsePreferenceWeights multiplies each matched personalized term by the
	// weight of the matching preference row. Off by default: stored weights
	// are recorded but do not affect the score.
	UsePreferenceWeights bool

	// NormalizeTrending min-max scales returned trending scores into [0,1]
	// after ranking. Order is unchanged.
	NormalizeTrending bool

	// MaxCandidates bounds the rows loaded per request (0 = unbounded).
	MaxCandidates int

	// CandidateRule is an optional CEL expression over `property`.
	CandidateRule string

	// DefaultLimit is used by callers that do not pass a limit. MaxLimit caps it.
	DefaultLimit int
	MaxLimit     int

	// CacheTTL is the lifetime of cached responses.
	CacheTTL time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		PopularityThreshold:   10,
		PersonalizedThreshold: 0.2,
		SimilarityThreshold:   0.3,
		MaxCandidates:         0,
		DefaultLimit:          10,
		MaxLimit:              100,
		CacheTTL:              2 * time.Minute,
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.PopularityThreshold < 0 {
		return fmt.Errorf("popularity threshold must not be negative")
	}
	if c.PersonalizedThreshold < 0 || c.PersonalizedThreshold > 1 {
		return fmt.Errorf("personalized threshold must be in [0,1], got %v", c.PersonalizedThreshold)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be in [0,1], got %v", c.SimilarityThreshold)
	}
	if c.MaxCandidates < 0 {
		return fmt.Errorf("max candidates must not be negative")
	}
	if c.DefaultLimit < 1 || c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("limits must satisfy 1 <= default (%d) <= max (%d)", c.DefaultLimit, c.MaxLimit)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	return nil
}
