// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Package testinfra starts Postgres and Redis with testcontainers-go for
// integration tests. It is only compiled with the integration build tag:
//
//	go test -tags integration ./internal/cache/... ./internal/database/gormstore/...
//
// Tests are skipped when no Docker daemon is reachable.
package testinfra
