// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Driver != "duckdb" {
		t.Errorf("Database.Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Recommend.PopularityThreshold != 10 {
		t.Errorf("Recommend.PopularityThreshold = %d, want 10", cfg.Recommend.PopularityThreshold)
	}
	if cfg.Recommend.PersonalizedThreshold != 0.2 {
		t.Errorf("Recommend.PersonalizedThreshold = %v, want 0.2", cfg.Recommend.PersonalizedThreshold)
	}
	if cfg.Recommend.SimilarityThreshold != 0.3 {
		t.Errorf("Recommend.SimilarityThreshold = %v, want 0.3", cfg.Recommend.SimilarityThreshold)
	}
	if cfg.Recommend.UsePreferenceWeights {
		t.Errorf("Recommend.UsePreferenceWeights should be false by default")
	}
	if cfg.Recommend.DefaultLimit != 10 || cfg.Recommend.MaxLimit != 100 {
		t.Errorf("limits = %d/%d, want 10/100", cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit)
	}
	if cfg.Store.Timeout != 2*time.Second {
		t.Errorf("Store.Timeout = %v, want 2s", cfg.Store.Timeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.Signals.TrackCounters {
		t.Errorf("Signals.TrackCounters should be true by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"DUCKDB_PATH", "database.path"},
		{"HTTP_PORT", "server.port"},
		{"RECOMMEND_SIMILARITY_THRESHOLD", "recommend.similarity_threshold"},
		{"CACHE_BACKEND", "cache.backend"},
		{"NATS_URL", "signals.nats_url"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RECOMMEND_PERSONALIZED_THRESHOLD", "0.3")
	t.Setenv("STORE_TIMEOUT", "500ms")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RECOMMEND_USE_PREFERENCE_WEIGHTS", "true")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Recommend.PersonalizedThreshold != 0.3 {
		t.Errorf("PersonalizedThreshold = %v, want 0.3", cfg.Recommend.PersonalizedThreshold)
	}
	if cfg.Store.Timeout != 500*time.Millisecond {
		t.Errorf("Store.Timeout = %v, want 500ms", cfg.Store.Timeout)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if !cfg.Recommend.UsePreferenceWeights {
		t.Errorf("UsePreferenceWeights should be true")
	}
}

func TestLoadWithKoanf_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  driver: sqlite
  path: ` + filepath.Join(dir, "store.db") + `
recommend:
  similarity_threshold: 0.5
  candidate_rule: "property.price > 0"
cache:
  backend: badger
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Recommend.SimilarityThreshold != 0.5 {
		t.Errorf("SimilarityThreshold = %v, want 0.5", cfg.Recommend.SimilarityThreshold)
	}
	if cfg.Recommend.CandidateRule != "property.price > 0" {
		t.Errorf("CandidateRule = %q", cfg.Recommend.CandidateRule)
	}
	if cfg.Cache.Backend != "badger" {
		t.Errorf("Cache.Backend = %q, want badger", cfg.Cache.Backend)
	}
	// env beats file
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	// untouched defaults survive
	if cfg.Recommend.PersonalizedThreshold != 0.2 {
		t.Errorf("PersonalizedThreshold = %v, want default 0.2", cfg.Recommend.PersonalizedThreshold)
	}
}

func TestLoadWithKoanf_InvalidEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("RECOMMEND_SIMILARITY_THRESHOLD", "1.5")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for threshold above 1")
	}
}
