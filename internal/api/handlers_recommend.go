// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// parseRecommendRequest reads and validates ?title=&k=.
func (h *Handler) parseRecommendRequest(r *http.Request) (*RecommendRequest, *models.APIError) {
	k, apiErr := intParam(r, "k", h.opts.DefaultK)
	if apiErr != nil {
		return nil, apiErr
	}
	req := &RecommendRequest{
		Title: r.URL.Query().Get("title"),
		K:     k,
		MaxK:  h.opts.MaxK,
	}
	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

// recommendHandler adapts one engine call into an endpoint.
func (h *Handler) recommendHandler(strategy string, call func(ctx context.Context, req *RecommendRequest) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		req, apiErr := h.parseRecommendRequest(r)
		if apiErr != nil {
			respondAPIError(w, apiErr)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.opts.RequestTimeout)
		defer cancel()

		resp, err := call(ctx, req)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}

		logging.Ctx(r.Context()).Debug().
			Str("strategy", strategy).
			Str("title", sanitizeLogValue(req.Title)).
			Int("k", req.K).
			Dur("duration", time.Since(start)).
			Msg("Recommendations served")

		respondSuccess(w, resp, start)
	}
}

// Recommendations handles GET /api/v1/recommendations.
// Content and collaborative results share one title resolution. A strategy
// whose model is missing is listed under "unavailable"; the request fails
// only when both are missing.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	h.recommendHandler("combined", func(ctx context.Context, req *RecommendRequest) (interface{}, error) {
		return h.deps.Engine.Recommend(ctx, req.Title, req.K)
	})(w, r)
}

// ContentRecommendations handles GET /api/v1/recommendations/content.
func (h *Handler) ContentRecommendations(w http.ResponseWriter, r *http.Request) {
	h.recommendHandler("content", func(ctx context.Context, req *RecommendRequest) (interface{}, error) {
		return h.deps.Engine.ContentBased(ctx, req.Title, req.K)
	})(w, r)
}

// CollaborativeRecommendations handles GET /api/v1/recommendations/collaborative.
func (h *Handler) CollaborativeRecommendations(w http.ResponseWriter, r *http.Request) {
	h.recommendHandler("collaborative", func(ctx context.Context, req *RecommendRequest) (interface{}, error) {
		return h.deps.Engine.CollaborativeFor(ctx, req.Title, req.K)
	})(w, r)
}
