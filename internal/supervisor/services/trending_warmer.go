// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// TrendingRefresher recomputes and caches a trending list.
type TrendingRefresher interface {
	RefreshTrending(ctx context.Context, limit int, filter models.CandidateFilter) (int, error)
}

// TrendingWarmerConfig configures the warmer.
type TrendingWarmerConfig struct {
	// Interval between refreshes. Must be positive.
	Interval time.Duration

	// Limit is the list length to precompute, normally the API default.
	Limit int

	// WarmOnStart refreshes once before the first tick.
	WarmOnStart bool

	// Timeout bounds a single refresh (default: Interval).
	Timeout time.Duration
}

// TrendingWarmer keeps the unfiltered trending list in the cache so the
// most common request never pays the full candidate scan.
type TrendingWarmer struct {
	refresher TrendingRefresher
	config    TrendingWarmerConfig
	logger    zerolog.Logger
	name      string
}

// NewTrendingWarmer creates the warmer.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewTrendingWarmer(refresher TrendingRefresher, cfg TrendingWarmerConfig, logger zerolog.Logger) *TrendingWarmer {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &TrendingWarmer{
		refresher: refresher,
		config:    cfg,
		logger:    logger.With().Str("service", "trending-warmer").Logger(),
		name:      "trending-warmer",
	}
}

// Serve implements suture.Service. Refresh failures are logged and retried
// on the next tick; they never restart the service.
func (w *TrendingWarmer) Serve(ctx context.Context) error {
	w.logger.Info().
		Dur("interval", w.config.Interval).
		Int("limit", w.config.Limit).
		Msg("trending warmer starting")

	if w.config.WarmOnStart {
		w.refresh(ctx)
	}

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("trending warmer stopped")
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *TrendingWarmer) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	start := time.Now()
	n, err := w.refresher.RefreshTrending(refreshCtx, w.config.Limit, models.CandidateFilter{})
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn().Err(err).Msg("trending refresh failed")
		}
		return
	}
	w.logger.Debug().
		Int("items", n).
		Dur("duration", time.Since(start)).
		Msg("trending list refreshed")
}

func (w *TrendingWarmer) String() string {
	return w.name
}
