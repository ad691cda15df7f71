// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Feature store query latency and errors
  - Circuit breaker state transitions
  - Recommendation latency, result sizes and empty results per mode
  - Response cache hit/miss rates
  - Preference signal throughput

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

All collectors are registered with the default registry through promauto, so
importing the package is enough to expose them.
*/
package metrics
