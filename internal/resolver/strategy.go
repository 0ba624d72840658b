// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// errMalformed marks a TMDb answer missing the fields a tier needs.
var errMalformed = errors.New("malformed tmdb response")

// Strategy is one resolution tier. A nil error means success; any error
// sends the resolver on to the next tier.
type Strategy interface {
	Tier() Tier
	Resolve(ctx context.Context, title string) (Result, error)
}

// DefaultStrategies returns the rich and thin tiers over source.
func DefaultStrategies(source MovieSource) []Strategy {
	return []Strategy{
		&RichStrategy{source: source},
		&ThinStrategy{source: source},
	}
}

// firstHit searches and keeps TMDb's first result.
func firstHit(ctx context.Context, source MovieSource, title string) (SearchResult, error) {
	hits, err := source.SearchMovie(ctx, title)
	if err != nil {
		return SearchResult{}, err
	}
	if len(hits) == 0 {
		return SearchResult{}, ErrNoMatch
	}
	return hits[0], nil
}

// RichStrategy resolves through search plus full movie details.
type RichStrategy struct {
	source MovieSource
}

// Tier implements Strategy.
func (s *RichStrategy) Tier() Tier { return TierRich }

// Resolve implements Strategy.
func (s *RichStrategy) Resolve(ctx context.Context, title string) (Result, error) {
	hit, err := firstHit(ctx, s.source, title)
	if err != nil {
		return Result{}, err
	}
	details, err := s.source.MovieDetails(ctx, hit.ID)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(details.Title) == "" {
		return Result{}, fmt.Errorf("%w: movie %d has no title", errMalformed, hit.ID)
	}

	return Result{
		Tier:           TierRich,
		CanonicalTitle: details.Title,
		TMDbID:         details.ID,
		NormalizedText: RichText(details),
	}, nil
}

// ThinStrategy resolves from the search hit alone.
type ThinStrategy struct {
	source MovieSource
}

// Tier implements Strategy.
func (s *ThinStrategy) Tier() Tier { return TierThin }

// Resolve implements Strategy.
func (s *ThinStrategy) Resolve(ctx context.Context, title string) (Result, error) {
	hit, err := firstHit(ctx, s.source, title)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(hit.Title) == "" {
		return Result{}, fmt.Errorf("%w: search hit %d has no title", errMalformed, hit.ID)
	}

	return Result{
		Tier:           TierThin,
		CanonicalTitle: hit.Title,
		TMDbID:         hit.ID,
		NormalizedText: ThinText(hit),
	}, nil
}
