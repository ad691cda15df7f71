// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Package gormstore implements featurestore.Store on gorm for the postgres
// and sqlite drivers. The schema matches the DuckDB backend and is created
// with AutoMigrate; preference merges run inside the ON CONFLICT clause so
// each signal is one statement.
package gormstore
