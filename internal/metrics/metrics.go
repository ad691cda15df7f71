// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Feature Store Metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "featurestore_query_duration_seconds",
			Help:    "Duration of feature store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "backend"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "featurestore_query_errors_total",
			Help: "Total number of feature store errors by kind",
		},
		[]string{"operation", "backend", "kind"}, // kind: "not_found", "unavailable", "other"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation latency by mode",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"},
	)

	RecommendationCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Number of candidate properties scored per request",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 2500, 5000},
		},
		[]string{"mode"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of properties returned per request",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"mode"},
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Total number of failed recommendation requests",
		},
		[]string{"mode", "kind"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
		[]string{"mode"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
		[]string{"mode"},
	)

	CacheStaleDrops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_stale_total",
			Help: "Cached responses discarded because a listed property is no longer available",
		},
		[]string{"mode"},
	)

	// Signal Metrics
	SignalsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preference_signals_published_total",
			Help: "Total number of preference signals accepted for processing",
		},
		[]string{"kind"},
	)

	SignalsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preference_signals_applied_total",
			Help: "Total number of preference signals applied by result",
		},
		[]string{"kind", "result"}, // result: "success", "failure"
	)

	PreferenceUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preference_upserts_total",
			Help: "Total number of preference rows upserted by merge mode",
		},
		[]string{"type", "merge"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordStoreQuery records a feature store operation. kind is empty on success.
func RecordStoreQuery(operation, backend string, duration time.Duration, kind string) {
	StoreQueryDuration.WithLabelValues(operation, backend).Observe(duration.Seconds())
	if kind != "" {
		StoreQueryErrors.WithLabelValues(operation, backend, kind).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records a completed recommendation request.
func RecordRecommendation(mode string, duration time.Duration, candidates, results int) {
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendationCandidates.WithLabelValues(mode).Observe(float64(candidates))
	RecommendationResults.WithLabelValues(mode).Observe(float64(results))
}

// RecordRecommendationError records a failed recommendation request.
func RecordRecommendationError(mode, kind string) {
	RecommendationErrors.WithLabelValues(mode, kind).Inc()
}

// RecordCacheLookup records a cache hit or miss for mode.
func RecordCacheLookup(mode string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(mode).Inc()
	} else {
		CacheMisses.WithLabelValues(mode).Inc()
	}
}

// RecordCacheStale records a cached response dropped during revalidation.
func RecordCacheStale(mode string) {
	CacheStaleDrops.WithLabelValues(mode).Inc()
}

// RecordSignalPublished records a signal accepted by the API or CLI.
func RecordSignalPublished(kind string) {
	SignalsPublished.WithLabelValues(kind).Inc()
}

// RecordSignalApplied records the outcome of folding a signal into preferences.
func RecordSignalApplied(kind string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	SignalsApplied.WithLabelValues(kind, result).Inc()
}

// RecordPreferenceUpsert records one preference row write.
func RecordPreferenceUpsert(prefType, merge string) {
	PreferenceUpserts.WithLabelValues(prefType, merge).Inc()
}
