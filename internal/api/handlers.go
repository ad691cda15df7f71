// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package api

import (
	"context"
	"sync"
	"time"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/signals"
)

// Recommender is the part of recommend.Service the API serves.
type Recommender interface {
	GetPersonalizedRecommendations(ctx context.Context, userID int64, limit int, filter models.CandidateFilter) ([]models.ScoredCandidate, error)
	GetTrendingProperties(ctx context.Context, limit int, filter models.CandidateFilter) ([]models.ScoredCandidate, error)
	GetSimilarProperties(ctx context.Context, propertyID int64, limit int) ([]models.ScoredCandidate, error)
}

// ReadinessCheck returns nil when a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// HandlerConfig holds request defaults.
type HandlerConfig struct {
	DefaultLimit   int
	MaxLimit       int
	RequestTimeout time.Duration
	ReadyTimeout   time.Duration
}

// DefaultHandlerConfig mirrors the recommend defaults.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		DefaultLimit:   10,
		MaxLimit:       100,
		RequestTimeout: 10 * time.Second,
		ReadyTimeout:   2 * time.Second,
	}
}

// Handler serves the recommendation, signal and health endpoints.
type Handler struct {
	recommender Recommender
	sink        signals.Sink
	config      HandlerConfig
	startTime   time.Time

	checksMu sync.RWMutex
	checks   []namedCheck
}

type namedCheck struct {
	name  string
	check ReadinessCheck
}

// NewHandler builds a Handler. sink receives POST /signals bodies.
func NewHandler(recommender Recommender, sink signals.Sink, cfg HandlerConfig) *Handler {
	defaults := DefaultHandlerConfig()
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaults.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = defaults.MaxLimit
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = defaults.ReadyTimeout
	}
	return &Handler{
		recommender: recommender,
		sink:        sink,
		config:      cfg,
		startTime:   time.Now(),
	}
}

// AddReadinessCheck registers a dependency consulted by /health/ready.
func (h *Handler) AddReadinessCheck(name string, check ReadinessCheck) {
	h.checksMu.Lock()
	defer h.checksMu.Unlock()
	h.checks = append(h.checks, namedCheck{name: name, check: check})
}

func (h *Handler) readinessChecks() []namedCheck {
	h.checksMu.RLock()
	defer h.checksMu.RUnlock()
	return append([]namedCheck(nil), h.checks...)
}
