// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/realestate/config.yaml",
	"/etc/realestate/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:    "duckdb",
			Path:      "/data/realestate.duckdb",
			DSN:       "",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Store: StoreConfig{
			Timeout:             2 * time.Second,
			BreakerMaxRequests:  3,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      30 * time.Second,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
		},
		Recommend: RecommendConfig{
			PopularityThreshold:   10,
			PersonalizedThreshold: 0.2,
			SimilarityThreshold:   0.3,
			UsePreferenceWeights:  false,
			NormalizeTrending:     false,
			MaxCandidates:         0,
			CandidateRule:         "",
			DefaultLimit:          10,
			MaxLimit:              100,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Backend:   "memory",
			TTL:       2 * time.Minute,
			RedisAddr: "127.0.0.1:6379",
			RedisDB:   0,
		},
		Signals: SignalsConfig{
			Enabled:              true,
			Transport:            "gochannel",
			NATSURL:              "nats://127.0.0.1:4222",
			Topic:                "realestate.signals",
			TrackCounters:        true,
			RetryCount:           3,
			RetryInitialInterval: 100 * time.Millisecond,
			CloseTimeout:         30 * time.Second,
			DedupWindow:          10 * time.Minute,
		},
		Server: ServerConfig{
			Port:                 8080,
			Host:                 "0.0.0.0",
			Timeout:              30 * time.Second,
			ShutdownTimeout:      10 * time.Second,
			TrendingWarmInterval: time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Database mappings
	"db_driver":      "database.driver",
	"duckdb_path":    "database.path",
	"database_dsn":   "database.dsn",
	"duckdb_memory":  "database.max_memory",
	"duckdb_threads": "database.threads",

	// Store mappings
	"store_timeout":               "store.timeout",
	"store_breaker_max_requests":  "store.breaker_max_requests",
	"store_breaker_interval":      "store.breaker_interval",
	"store_breaker_timeout":       "store.breaker_timeout",
	"store_breaker_min_requests":  "store.breaker_min_requests",
	"store_breaker_failure_ratio": "store.breaker_failure_ratio",

	// Recommendation mappings
	"recommend_popularity_threshold":   "recommend.popularity_threshold",
	"recommend_personalized_threshold": "recommend.personalized_threshold",
	"recommend_similarity_threshold":   "recommend.similarity_threshold",
	"recommend_use_preference_weights": "recommend.use_preference_weights",
	"recommend_normalize_trending":     "recommend.normalize_trending",
	"recommend_max_candidates":         "recommend.max_candidates",
	"recommend_candidate_rule":         "recommend.candidate_rule",
	"recommend_default_limit":          "recommend.default_limit",
	"recommend_max_limit":              "recommend.max_limit",

	// Cache mappings
	"cache_enabled":     "cache.enabled",
	"cache_backend":     "cache.backend",
	"cache_ttl":         "cache.ttl",
	"cache_badger_path": "cache.badger_path",
	"redis_addr":        "cache.redis_addr",
	"redis_password":    "cache.redis_password",
	"redis_db":          "cache.redis_db",

	// Signal bus mappings
	"signals_enabled":        "signals.enabled",
	"signals_transport":      "signals.transport",
	"nats_url":               "signals.nats_url",
	"signals_topic":          "signals.topic",
	"signals_track_counters": "signals.track_counters",
	"signals_retry_count":    "signals.retry_count",
	"signals_close_timeout":  "signals.close_timeout",
	"signals_dedup_window":   "signals.dedup_window",

	// Server mappings
	"http_port":              "server.port",
	"http_host":              "server.host",
	"http_timeout":           "server.timeout",
	"http_shutdown_timeout":  "server.shutdown_timeout",
	"trending_warm_interval": "server.trending_warm_interval",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
//   - RECOMMEND_SIMILARITY_THRESHOLD -> recommend.similarity_threshold
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped variables are skipped so the process environment cannot pollute config.
	return ""
}
