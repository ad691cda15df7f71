// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Package database is the DuckDB implementation of featurestore.Store.
//
// # Overview
//
// DuckDB is the default backend for a single-node deployment: the properties
// and user_preferences tables live in one file next to the service, and the
// candidate query is a plain indexed scan.
//
//   - database.go: connection lifecycle and schema initialization
//   - database_schema.go: table and index DDL
//   - database_connection.go: pool settings, error classification, conflict retry
//   - crud_properties.go: candidate loading, counters, availability
//   - crud_preferences.go: preference reads and merge-mode upserts
//
// The Postgres and SQLite backends live in the gormstore subpackage.
//
// # Errors
//
// sql.ErrNoRows and zero-row updates surface as featurestore.ErrNotFound.
// Every other driver error surfaces as featurestore.ErrStoreUnavailable.
//
// # Concurrency
//
// DuckDB uses optimistic concurrency. Upserts on the same row are serialized
// with a per-row mutex and transaction conflicts are retried three times with
// exponential backoff.
package database
