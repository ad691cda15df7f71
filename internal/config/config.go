// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package config

import "time"

// Config holds all service configuration.
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Store     StoreConfig     `koanf:"store"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Signals   SignalsConfig   `koanf:"signals"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig selects and tunes the feature store backend.
type DatabaseConfig struct {
	// Driver is one of: duckdb, postgres, sqlite, memory.
	Driver    string `koanf:"driver"`
	Path      string `koanf:"path"`       // DuckDB file, or SQLite file for the sqlite driver
	DSN       string `koanf:"dsn"`        // Postgres connection string
	MaxMemory string `koanf:"max_memory"` // DuckDB memory limit, e.g. "1GB"
	Threads   int    `koanf:"threads"`    // Number of DuckDB threads (0 = use NumCPU)
}

// StoreConfig holds the deadline and circuit breaker settings applied to every store call.
type StoreConfig struct {
	Timeout             time.Duration `koanf:"timeout"`
	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
}

// RecommendConfig holds scoring thresholds and candidate limits.
type RecommendConfig struct {
	// PopularityThreshold: a personalized candidate earns the popularity bonus
	// when view_count is strictly greater than this.
	PopularityThreshold int64 `koanf:"popularity_threshold"`

	// PersonalizedThreshold is the minimum (exclusive) personalized score kept.
	PersonalizedThreshold float64 `koanf:"personalized_threshold"`

	// SimilarityThreshold is the minimum (exclusive) similarity score kept.
	SimilarityThreshold float64 `koanf:"similarity_threshold"`

	// UsePreferenceWeights scales each matched term by the stored preference weight.
	// Default: false (stored weights are ignored)
	UsePreferenceWeights bool `koanf:"use_preference_weights"`

	// NormalizeTrending min-max scales returned trending scores into [0,1].
	NormalizeTrending bool `koanf:"normalize_trending"`

	// MaxCandidates bounds how many rows are loaded per request (0 = unbounded).
	MaxCandidates int `koanf:"max_candidates"`

	// CandidateRule is an optional CEL boolean expression over `property`
	// applied to candidates before scoring.
	CandidateRule string `koanf:"candidate_rule"`

	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`

	// Backend is one of: memory, badger, redis.
	Backend string        `koanf:"backend"`
	TTL     time.Duration `koanf:"ttl"`

	// BadgerPath is the badger directory. Empty runs badger in memory.
	BadgerPath string `koanf:"badger_path"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// SignalsConfig controls the signal bus.
type SignalsConfig struct {
	Enabled bool `koanf:"enabled"`

	// Transport is gochannel or nats. nats requires a build with -tags nats.
	Transport string `koanf:"transport"`
	NATSURL   string `koanf:"nats_url"`
	Topic     string `koanf:"topic"`

	// TrackCounters increments view_count / favorite_count on view and favorite signals.
	TrackCounters bool `koanf:"track_counters"`

	RetryCount           int           `koanf:"retry_count"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`

	// DedupWindow is how long a delivered signal id is remembered (0 disables).
	DedupWindow time.Duration `koanf:"dedup_window"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// TrendingWarmInterval precomputes the default trending list (0 disables).
	TrendingWarmInterval time.Duration `koanf:"trending_warm_interval"`
}

// SecurityConfig holds CORS and rate limit settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, the optional YAML file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
