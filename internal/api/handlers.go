// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/recommend"
)

// DefaultRequestTimeout bounds one recommendation request.
const DefaultRequestTimeout = 10 * time.Second

// Recommender is the part of recommend.Engine the handlers use.
type Recommender interface {
	Recommend(ctx context.Context, title string, k int) (*recommend.CombinedResponse, error)
	ContentBased(ctx context.Context, title string, k int) (*recommend.ContentResponse, error)
	CollaborativeFor(ctx context.Context, title string, k int) (*recommend.CollaborativeResponse, error)
	Popular(k int) []recommend.Result
	PopularByGenre(genre string, k int) ([]recommend.Result, string, error)
	Genres() []string
	Status() []recommend.FeatureStatus
}

// DatasetExplorer is the part of catalog.Explorer the handlers use.
type DatasetExplorer interface {
	Datasets(ctx context.Context) []catalog.DatasetInfo
	Head(ctx context.Context, id catalog.DatasetID, limit int) (*catalog.Preview, error)
}

// StatsProvider reports catalog row counts.
type StatsProvider interface {
	Stats() map[string]int
}

// BreakerState reports the TMDb circuit breaker state.
type BreakerState interface {
	State() string
}

// Dependencies are the services behind the handlers. Engine and Explorer
// are required.
type Dependencies struct {
	Engine   Recommender
	Explorer DatasetExplorer
	Catalog  StatsProvider
	Breaker  BreakerState
	Latency  *middleware.LatencyTracker
}

// Options carries request limits and health metadata.
type Options struct {
	DefaultK        int
	MaxK            int
	ExploreLimit    int
	MaxExploreLimit int
	RequestTimeout  time.Duration
	Version         string
	TMDbEnabled     bool
	CacheBackend    string
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config, version string) Options {
	return Options{
		DefaultK:        cfg.Recommend.DefaultK,
		MaxK:            cfg.Recommend.MaxK,
		ExploreLimit:    cfg.Recommend.ExploreLimit,
		MaxExploreLimit: cfg.Recommend.MaxExploreLimit,
		RequestTimeout:  DefaultRequestTimeout,
		Version:         version,
		TMDbEnabled:     cfg.TMDbEnabled(),
		CacheBackend:    cfg.Resolver.CacheBackend,
	}
}

// Handler serves the dashboard endpoints.
type Handler struct {
	deps      Dependencies
	opts      Options
	startTime time.Time
}

// NewHandler validates deps and fills unset options with defaults.
func NewHandler(deps Dependencies, opts Options) (*Handler, error) {
	if deps.Engine == nil {
		return nil, errors.New("api: engine is required")
	}
	if deps.Explorer == nil {
		return nil, errors.New("api: explorer is required")
	}

	defaults := recommend.DefaultConfig()
	if opts.DefaultK <= 0 {
		opts.DefaultK = defaults.DefaultK
	}
	if opts.MaxK < opts.DefaultK {
		opts.MaxK = max(defaults.MaxK, opts.DefaultK)
	}
	if opts.ExploreLimit <= 0 {
		opts.ExploreLimit = 1000
	}
	if opts.MaxExploreLimit < opts.ExploreLimit {
		opts.MaxExploreLimit = opts.ExploreLimit
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	return &Handler{deps: deps, opts: opts, startTime: time.Now()}, nil
}
