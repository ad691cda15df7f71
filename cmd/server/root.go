// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/cache"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/config"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/database"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/database/gormstore"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/featurestore"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/logging"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/recommend"
)

// globalFlags override the loaded configuration.
type globalFlags struct {
	driver   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "server",
		Short:         "Property recommendation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.driver, "db-driver", "", "override DB_DRIVER (duckdb, postgres, sqlite, memory)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override LOG_LEVEL")

	root.AddCommand(
		newServeCmd(flags),
		newSeedCmd(flags),
		newRecommendCmd(flags),
		newSignalCmd(flags),
		newMigrateCmd(flags),
		newPropertyCmd(flags),
		newPreferenceCmd(flags),
	)
	return root
}

// loadConfig reads the layered configuration, applies flag overrides and
// initializes the global logger.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.driver != "" {
		cfg.Database.Driver = flags.driver
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	return cfg, nil
}

// openStore opens the backend named by cfg.Driver.
func openStore(cfg *config.DatabaseConfig) (featurestore.Store, error) {
	switch cfg.Driver {
	case "duckdb":
		return database.New(cfg)
	case gormstore.Postgres, gormstore.SQLite:
		return gormstore.Open(cfg)
	case "memory":
		return featurestore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func accessorConfig(c *config.StoreConfig) featurestore.AccessorConfig {
	return featurestore.AccessorConfig{
		Timeout:             c.Timeout,
		BreakerMaxRequests:  c.BreakerMaxRequests,
		BreakerInterval:     c.BreakerInterval,
		BreakerTimeout:      c.BreakerTimeout,
		BreakerMinRequests:  c.BreakerMinRequests,
		BreakerFailureRatio: c.BreakerFailureRatio,
	}
}

func recommendConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	return &recommend.Config{
		PopularityThreshold:   rc.PopularityThreshold,
		PersonalizedThreshold: rc.PersonalizedThreshold,
		SimilarityThreshold:   rc.SimilarityThreshold,
		UsePreferenceWeights:  rc.UsePreferenceWeights,
		NormalizeTrending:     rc.NormalizeTrending,
		MaxCandidates:         rc.MaxCandidates,
		CandidateRule:         rc.CandidateRule,
		DefaultLimit:          rc.DefaultLimit,
		MaxLimit:              rc.MaxLimit,
		CacheTTL:              cfg.Cache.TTL,
	}
}

// stack is the store, cache and service shared by every command.
type stack struct {
	store   *featurestore.Accessor
	cache   cache.Backend
	service *recommend.Service
	logger  zerolog.Logger
}

// openStack opens the store behind an Accessor, the optional response
// cache and the recommendation service. withCache is false for one-shot
// commands that must not read stale lists.
func openStack(ctx context.Context, cfg *config.Config, withCache bool) (*stack, error) {
	logger := logging.Logger()

	raw, err := openStore(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	st := &stack{
		store:  featurestore.NewAccessor(raw, accessorConfig(&cfg.Store), logger),
		logger: logger,
	}

	opts := []recommend.Option{recommend.WithCounterTracking(cfg.Signals.TrackCounters)}
	if withCache && cfg.Cache.Enabled {
		backend, err := cache.Open(ctx, &cfg.Cache, logger)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("open cache: %w", err)
		}
		st.cache = backend
		opts = append(opts, recommend.WithCache(backend))
	}

	st.service, err = recommend.NewService(recommendConfig(cfg), st.store, logger, opts...)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// Close releases the cache and the store.
func (s *stack) Close() error {
	var errs []error
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	return errors.Join(errs...)
}

func closeQuietly(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Str("resource", what).Msg("close failed")
	}
}
