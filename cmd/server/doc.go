// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Command server runs the property recommendation service.
//
// # Commands
//
//	server serve                      HTTP API, signal router and trending warmer
//	server seed [--file f.yaml]       load fixtures (the bundled demo set by default)
//	server recommend personalized 7   print recommendations as JSON
//	server recommend trending --type land
//	server recommend similar 42
//	server signal view --user 7 --property 42
//	server signal search --user 7 --district Lalitpur --min-area "4 aana"
//	server migrate                    create or update the schema
//
// # Configuration
//
// Configuration is layered with koanf: built-in defaults, then an optional
// YAML file (CONFIG_PATH or ./config.yaml), then environment variables.
// A .env file in the working directory is loaded first when present.
//
//	DB_DRIVER=duckdb|postgres|sqlite|memory
//	DUCKDB_PATH=/data/realestate.duckdb
//	DATABASE_DSN=postgres://...
//	CACHE_BACKEND=memory|badger|redis
//	SIGNALS_TRANSPORT=gochannel|nats
//	HTTP_PORT=8080
//
// # Build Tags
//
//	go build -tags nats ./cmd/server   # NATS JetStream signal transport
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains for
// HTTP_SHUTDOWN_TIMEOUT, the signal router finishes in-flight messages and
// the store and cache are closed last.
package main
