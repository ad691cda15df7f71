// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateSignals(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "duckdb", "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required for the %s driver", c.Database.Driver)
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required when DB_DRIVER=postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("DB_DRIVER must be one of duckdb, postgres, sqlite, memory, got %q", c.Database.Driver)
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.Timeout < 0 {
		return fmt.Errorf("STORE_TIMEOUT must not be negative")
	}
	if c.Store.BreakerFailureRatio <= 0 || c.Store.BreakerFailureRatio > 1 {
		return fmt.Errorf("store.breaker_failure_ratio must be in (0,1], got %v", c.Store.BreakerFailureRatio)
	}
	if c.Store.BreakerTimeout < 0 || c.Store.BreakerInterval < 0 {
		return fmt.Errorf("store breaker durations must not be negative")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.PopularityThreshold < 0 {
		return fmt.Errorf("recommend.popularity_threshold must not be negative, got %d", r.PopularityThreshold)
	}
	if r.PersonalizedThreshold < 0 || r.PersonalizedThreshold > 1 {
		return fmt.Errorf("recommend.personalized_threshold must be in [0,1], got %v", r.PersonalizedThreshold)
	}
	if r.SimilarityThreshold < 0 || r.SimilarityThreshold > 1 {
		return fmt.Errorf("recommend.similarity_threshold must be in [0,1], got %v", r.SimilarityThreshold)
	}
	if r.MaxCandidates < 0 {
		return fmt.Errorf("recommend.max_candidates must not be negative, got %d", r.MaxCandidates)
	}
	if r.DefaultLimit < 1 {
		return fmt.Errorf("recommend.default_limit must be at least 1, got %d", r.DefaultLimit)
	}
	if r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("recommend.max_limit (%d) must not be below default_limit (%d)", r.MaxLimit, r.DefaultLimit)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	switch c.Cache.Backend {
	case "memory", "badger":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of memory, badger, redis, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled")
	}
	return nil
}

func (c *Config) validateSignals() error {
	if !c.Signals.Enabled {
		return nil
	}
	switch c.Signals.Transport {
	case "gochannel":
	case "nats":
		if c.Signals.NATSURL == "" {
			return fmt.Errorf("NATS_URL is required when SIGNALS_TRANSPORT=nats")
		}
	default:
		return fmt.Errorf("SIGNALS_TRANSPORT must be gochannel or nats, got %q", c.Signals.Transport)
	}
	if strings.TrimSpace(c.Signals.Topic) == "" {
		return fmt.Errorf("SIGNALS_TOPIC is required when signals are enabled")
	}
	if c.Signals.RetryCount < 0 {
		return fmt.Errorf("SIGNALS_RETRY_COUNT must not be negative")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.TrendingWarmInterval < 0 {
		return fmt.Errorf("TRENDING_WARM_INTERVAL must not be negative")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d, got %d",
			minRateLimitRequests, maxRateLimitRequests, c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v, got %v",
			minRateLimitWindow, maxRateLimitWindow, c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
