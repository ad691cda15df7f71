// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/config"
)

// KeyPrefix namespaces every key this service writes, so Clear never touches
// foreign keys in a shared Redis.
const KeyPrefix = "realestate:"

// ErrClosed is returned by every call on a closed backend.
var ErrClosed = errors.New("cache closed")

// Backend stores opaque byte values with a per-entry TTL.
type Backend interface {
	// Get returns the value and true, or false when absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value. ttl <= 0 means the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key written by this service.
	Clear(ctx context.Context) error

	// Name identifies the backend in logs.
	Name() string

	Close() error
}

// Open creates the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.CacheConfig, logger zerolog.Logger) (Backend, error) {
	var (
		b   Backend
		err error
	)
	switch cfg.Backend {
	case "", "memory":
		b = NewMemory(DefaultCapacity, cfg.TTL)
	case "badger":
		b, err = OpenBadger(cfg.BadgerPath, cfg.TTL)
	case "redis":
		b, err = OpenRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("component", "cache").
		Str("backend", b.Name()).
		Dur("ttl", cfg.TTL).
		Msg("response cache ready")
	return b, nil
}

func effectiveTTL(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return fallback
}
