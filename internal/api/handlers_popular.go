// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/recommend"
)

// PopularResponse is the payload of the popular endpoints.
type PopularResponse struct {
	Genre   string             `json:"genre,omitempty"`
	Results []recommend.Result `json:"results"`
}

// GenresResponse lists the genres PopularByGenre accepts.
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// Popular handles GET /api/v1/popular.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	k, apiErr := intParam(r, "k", h.opts.DefaultK)
	if apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}
	req := PopularRequest{K: k, MaxK: h.opts.MaxK}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	respondSuccess(w, PopularResponse{Results: h.deps.Engine.Popular(req.K)}, start)
}

// PopularGenres handles GET /api/v1/popular/genres.
func (h *Handler) PopularGenres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	genres := h.deps.Engine.Genres()
	if genres == nil {
		genres = []string{}
	}
	respondSuccess(w, GenresResponse{Genres: genres}, start)
}

// PopularByGenre handles GET /api/v1/popular/genres/{genre}.
// The genre is matched case-insensitively and echoed in catalog case.
func (h *Handler) PopularByGenre(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	k, apiErr := intParam(r, "k", h.opts.DefaultK)
	if apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}
	req := PopularRequest{Genre: chi.URLParam(r, "genre"), K: k, MaxK: h.opts.MaxK}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	results, genre, err := h.deps.Engine.PopularByGenre(req.Genre, req.K)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, PopularResponse{Genre: genre, Results: results}, start)
}
