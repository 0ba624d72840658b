// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// FeatureHealth reports one model-backed feature.
type FeatureHealth struct {
	Feature   string `json:"feature"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// EndpointLatency summarizes recent latency for one route.
type EndpointLatency struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	AvgMS        float64 `json:"avg_ms"`
	P95MS        int64   `json:"p95_ms"`
	MaxMS        int64   `json:"max_ms"`
}

// HealthStatus is the payload of GET /health.
//
// Status is "healthy" when every feature is available and "degraded"
// otherwise. The catalog is required at startup, so a running server always
// has one.
type HealthStatus struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Uptime        float64           `json:"uptime_seconds"`
	Features      []FeatureHealth   `json:"features"`
	Catalog       map[string]int    `json:"catalog"`
	TMDbEnabled   bool              `json:"tmdb_enabled"`
	TMDbBreaker   string            `json:"tmdb_breaker,omitempty"`
	ResolverCache string            `json:"resolver_cache"`
	Latency       []EndpointLatency `json:"latency,omitempty"`
}
