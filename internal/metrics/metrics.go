// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendation engine
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_recommendations_total",
			Help: "Recommendation requests by strategy and outcome",
		},
		[]string{"strategy", "outcome"}, // outcome: ok, degraded, empty, unavailable, error
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_recommendation_duration_seconds",
			Help:    "Time spent producing a recommendation set",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"strategy"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_recommendation_results",
			Help:    "Number of results returned per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
		[]string{"strategy"},
	)

	// Title resolver
	ResolverTierTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_resolver_tier_total",
			Help: "Title resolutions by the tier that produced them",
		},
		[]string{"tier"}, // rich, thin, fallback
	)

	ResolverCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_resolver_cache_total",
			Help: "Resolution cache lookups",
		},
		[]string{"result"}, // hit, miss, error
	)

	TMDbRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_tmdb_requests_total",
			Help: "Requests sent to the TMDb API",
		},
		[]string{"endpoint", "status"},
	)

	TMDbRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_tmdb_request_duration_seconds",
			Help:    "TMDb API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_circuit_breaker_requests_total",
			Help: "Requests passed through a circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Startup loading
	ArtifactLoadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_artifact_load_total",
			Help: "Model artifact load attempts",
		},
		[]string{"artifact", "outcome"}, // outcome: ok, error
	)

	CatalogRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_catalog_rows",
			Help: "Rows loaded per catalog table",
		},
		[]string{"table"},
	)

	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_catalog_load_duration_seconds",
			Help:    "Time to load the catalog CSV files",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	// Badger value log GC
	BadgerGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_badger_gc_runs_total",
			Help: "Badger value log GC passes",
		},
		[]string{"result"}, // ok, error
	)
)

// RecordAPIRequest records one served request.
func RecordAPIRequest(method, path, status string, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordRecommendation records one engine call.
func RecordRecommendation(strategy, outcome string, results int, d time.Duration) {
	RecommendationsTotal.WithLabelValues(strategy, outcome).Inc()
	RecommendationDuration.WithLabelValues(strategy).Observe(d.Seconds())
	RecommendationResults.WithLabelValues(strategy).Observe(float64(results))
}

// RecordTMDbRequest records one upstream call.
func RecordTMDbRequest(endpoint, status string, d time.Duration) {
	TMDbRequestsTotal.WithLabelValues(endpoint, status).Inc()
	TMDbRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordArtifactLoad counts an artifact load attempt.
func RecordArtifactLoad(artifact string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ArtifactLoadTotal.WithLabelValues(artifact, outcome).Inc()
}
