// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// Health handles GET /health.
//
// The status is "degraded" when any model-backed feature is unavailable. It
// is still served with 200 because the popular and explorer endpoints keep
// working.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	statuses := h.deps.Engine.Status()
	features := make([]models.FeatureHealth, len(statuses))
	status := "healthy"
	for i, s := range statuses {
		features[i] = models.FeatureHealth{
			Feature:   string(s.Feature),
			Available: s.Available,
			Reason:    s.Reason,
		}
		if !s.Available {
			status = "degraded"
		}
	}

	health := models.HealthStatus{
		Status:        status,
		Version:       h.opts.Version,
		Uptime:        time.Since(h.startTime).Seconds(),
		Features:      features,
		Catalog:       map[string]int{},
		TMDbEnabled:   h.opts.TMDbEnabled,
		ResolverCache: h.opts.CacheBackend,
	}
	if h.deps.Catalog != nil {
		health.Catalog = h.deps.Catalog.Stats()
	}
	if h.deps.Breaker != nil {
		health.TMDbBreaker = h.deps.Breaker.State()
	}
	if h.deps.Latency != nil {
		for _, s := range h.deps.Latency.Stats() {
			health.Latency = append(health.Latency, models.EndpointLatency{
				Endpoint:     s.Endpoint,
				RequestCount: s.RequestCount,
				AvgMS:        s.AvgMS,
				P95MS:        s.P95MS,
				MaxMS:        s.MaxMS,
			})
		}
	}

	respondSuccess(w, health, start)
}
