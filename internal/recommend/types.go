// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tomtom215/marquee/internal/resolver"
)

var (
	// ErrFeatureUnavailable is returned when the model a strategy needs
	// was not loaded.
	ErrFeatureUnavailable = errors.New("feature unavailable")

	// ErrUnknownGenre is returned for a genre absent from the catalog.
	ErrUnknownGenre = errors.New("unknown genre")
)

// Feature names a model-backed strategy.
type Feature string

// Model-backed features.
const (
	FeatureContent       Feature = "content"
	FeatureCollaborative Feature = "collaborative"
)

// Strategy labels used in metrics.
const (
	strategyContent       = "content"
	strategyCollaborative = "collaborative"
	strategyPopular       = "popular"
	strategyGenre         = "genre"
)

// Outcome labels used in metrics.
const (
	outcomeOK          = "ok"
	outcomeFallback    = "fallback"
	outcomeEmpty       = "empty"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
)

// Result is one recommended movie.
type Result struct {
	TMDbID    int      `json:"tmdb_id"`
	Title     string   `json:"title"`
	Overview  string   `json:"overview"`
	PosterURL string   `json:"poster_url"`
	Cast      []string `json:"cast"`
}

// key identifies a result by every field, for deduplication.
func (r *Result) key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.TMDbID))
	for _, s := range []string{r.Title, r.Overview, r.PosterURL} {
		b.WriteByte(0)
		b.WriteString(s)
	}
	b.WriteByte(0)
	b.WriteString(strings.Join(r.Cast, "\x1f"))
	return b.String()
}

// ContentResponse is the outcome of a content-based request.
type ContentResponse struct {
	Query         string        `json:"query"`
	ResolvedTitle string        `json:"resolved_title"`
	Tier          resolver.Tier `json:"tier"`
	Degraded      bool          `json:"degraded"`
	Results       []Result      `json:"results"`
}

// CollaborativeResponse is the outcome of a collaborative request made from
// a free-text title.
type CollaborativeResponse struct {
	Query         string        `json:"query"`
	ResolvedTitle string        `json:"resolved_title"`
	Tier          resolver.Tier `json:"tier"`
	Degraded      bool          `json:"degraded"`
	Results       []Result      `json:"results"`
}

// CombinedResponse runs both strategies on one resolution.
type CombinedResponse struct {
	Query         string        `json:"query"`
	ResolvedTitle string        `json:"resolved_title"`
	Tier          resolver.Tier `json:"tier"`
	Degraded      bool          `json:"degraded"`
	Content       []Result      `json:"content"`
	Collaborative []Result      `json:"collaborative"`

	// Unavailable lists the strategies skipped for lack of a model or that
	// failed to finish.
	Unavailable []Feature `json:"unavailable,omitempty"`
}

// FeatureStatus reports whether a feature can serve requests.
type FeatureStatus struct {
	Feature   Feature `json:"feature"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason,omitempty"`
}
