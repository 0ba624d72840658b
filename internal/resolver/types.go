// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package resolver turns a free-text movie title into a canonical title and
// a normalized text blob for the content vectorizer.
//
// Resolution walks an ordered list of strategies and stops at the first
// success:
//
//   - rich: TMDb search, first hit, then full details (genres, top five
//     cast members, keywords);
//   - thin: TMDb search, first hit, title and overview only;
//   - fallback: the configured default title, flagged as degraded.
//
// Strategies report failure as a value, never as a panic. The first-hit
// heuristic is TMDb's own ordering; no relevance scoring is applied.
//
// Successful (non-degraded) results can be cached in memory, in an embedded
// badger store, or in redis.
package resolver

import "errors"

// Tier names the strategy that produced a Result.
type Tier string

// Resolution tiers, in the order they are attempted.
const (
	TierRich     Tier = "rich"
	TierThin     Tier = "thin"
	TierFallback Tier = "fallback"
)

// Result is the outcome of resolving one title.
type Result struct {
	// Query is the raw title as supplied by the caller.
	Query string `json:"query"`

	// Tier is the strategy that produced the result.
	Tier Tier `json:"tier"`

	// CanonicalTitle is the title confirmed by TMDb, or the configured
	// default on fallback.
	CanonicalTitle string `json:"canonical_title"`

	// TMDbID is the matched movie, zero on fallback.
	TMDbID int `json:"tmdb_id,omitempty"`

	// NormalizedText is lower-cased and stripped to [a-z0-9 ]. Empty on
	// fallback.
	NormalizedText string `json:"normalized_text,omitempty"`

	// Degraded is set on fallback. The canonical title is then not a match
	// for the query and callers must not treat it as one.
	Degraded bool `json:"degraded"`

	// Cached is set when the result was served from the resolution cache.
	Cached bool `json:"cached"`
}

var (
	// ErrNoMatch is returned when a search yields no results.
	ErrNoMatch = errors.New("no matching movie")

	// ErrCircuitOpen is returned when the TMDb circuit breaker rejects a call.
	ErrCircuitOpen = errors.New("tmdb circuit breaker open")

	// ErrNotConfigured is returned by TMDb calls when no API key is set.
	ErrNotConfigured = errors.New("tmdb api key not configured")
)
