// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/catalog"
)

// DatasetsResponse is the payload of GET /api/v1/datasets.
type DatasetsResponse struct {
	Datasets []catalog.DatasetInfo `json:"datasets"`
}

// Datasets handles GET /api/v1/datasets.
func (h *Handler) Datasets(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.RequestTimeout)
	defer cancel()

	respondSuccess(w, DatasetsResponse{Datasets: h.deps.Explorer.Datasets(ctx)}, start)
}

// Dataset handles GET /api/v1/datasets/{name}. It returns the first limit
// rows of the file, limit defaulting to the configured explore limit.
func (h *Handler) Dataset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, apiErr := intParam(r, "limit", h.opts.ExploreLimit)
	if apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}
	req := DatasetRequest{Name: chi.URLParam(r, "name"), Limit: limit, MaxLimit: h.opts.MaxExploreLimit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	id, err := catalog.ParseDatasetID(req.Name)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.RequestTimeout)
	defer cancel()

	preview, err := h.deps.Explorer.Head(ctx, id, req.Limit)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, preview, start)
}
