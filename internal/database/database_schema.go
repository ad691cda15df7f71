// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

/*
database_schema.go - Database Schema Management

Tables:
  - properties: listing attributes read by the scoring engine, plus the
    view/favorite counters and the availability lifecycle status
  - user_preferences: weighted interest rows, unique per (user, type, key)

Index Strategy:
  - availability_status and created_at serve the candidate query
  - (property_type, district) serves filtered candidate loads
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS properties (
			id BIGINT PRIMARY KEY,
			property_type TEXT NOT NULL,
			district TEXT NOT NULL,
			price BIGINT NOT NULL DEFAULT 0,
			area DOUBLE NOT NULL DEFAULT 0,
			view_count BIGINT NOT NULL DEFAULT 0,
			favorite_count BIGINT NOT NULL DEFAULT 0,
			availability_status TEXT NOT NULL DEFAULT 'available',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id BIGINT NOT NULL,
			preference_type TEXT NOT NULL,
			preference_key TEXT NOT NULL,
			preference_value TEXT NOT NULL,
			preference_weight DOUBLE NOT NULL DEFAULT 1.0,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, preference_type, preference_key)
		)`,
	}
}

// createIndexes creates secondary indexes
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_properties_availability ON properties(availability_status)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_type_district ON properties(property_type, district)`,
	}

	for _, idx := range indexes {
		if _, err := db.conn.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", idx, err)
		}
	}
	return nil
}
