// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Package featurestore defines the contract between the recommendation engine and
// the relational store, and the Accessor that enforces deadlines and circuit
// breaking on top of any backend.
//
// Backends (internal/database for DuckDB, internal/database/gormstore for
// Postgres and SQLite) implement Store and translate their driver errors into
// ErrNotFound and ErrStoreUnavailable. The Accessor guarantees the same for
// timeouts and an open circuit, so callers only ever need errors.Is.
package featurestore

import (
	"context"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// Reader is the read side used while scoring.
type Reader interface {
	// LoadPreferences returns every preference row of userID. A user without rows
	// yields an empty slice and a nil error.
	LoadPreferences(ctx context.Context, userID int64) ([]models.UserPreference, error)

	// LoadCandidateProperties returns available properties matching filter.
	// Order is unspecified.
	LoadCandidateProperties(ctx context.Context, filter models.CandidateFilter) ([]models.Property, error)

	// LoadProperty returns one property regardless of availability, or ErrNotFound.
	LoadProperty(ctx context.Context, id int64) (*models.Property, error)

	// LoadAvailability returns the current status of each known id. Unknown ids
	// are absent from the map.
	LoadAvailability(ctx context.Context, ids []int64) (map[int64]models.Availability, error)
}

// Writer is the narrow write side: preference upserts and counter bookkeeping.
type Writer interface {
	// UpsertPreference inserts pref or resolves the (user, type, key) conflict
	// according to mode, in a single statement.
	UpsertPreference(ctx context.Context, pref models.UserPreference, mode models.MergeMode) error

	// IncrementCounters atomically adds to view_count and favorite_count.
	IncrementCounters(ctx context.Context, propertyID, views, favorites int64) error

	// SetAvailability changes a property's lifecycle status, or returns ErrNotFound.
	SetAvailability(ctx context.Context, propertyID int64, status models.Availability) error

	// SaveProperty inserts or replaces a property row. Used by seeding and tests.
	SaveProperty(ctx context.Context, p *models.Property) error
}

// Store is implemented by every backend.
type Store interface {
	Reader
	Writer

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// Backend names the implementation for logs and metrics ("duckdb", "postgres", "sqlite").
	Backend() string

	// Close releases the underlying connection.
	Close() error
}
