// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

/*
Package middleware provides the HTTP middleware shared by every API route.

  - RequestID: reuses or generates X-Request-ID and puts it in the logging context
  - AccessLog: one zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauge labeled by chi route pattern

Each middleware takes and returns an http.HandlerFunc; the api package adapts
them for chi's r.Use.
*/
package middleware
