// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultTimeout bounds each strategy when Options.Timeout is unset.
const DefaultTimeout = 5 * time.Second

// budgetShare is the part of the caller's remaining deadline resolution may
// use. The rest is left for scoring, so a hanging TMDb still leaves time to
// answer from the fallback title.
const budgetShare = 2

// Options configures a Resolver.
type Options struct {
	// DefaultTitle is returned, degraded, when every strategy fails.
	DefaultTitle string

	// Timeout bounds each strategy. A timeout is a strategy failure. All
	// strategies together never use more than half of the caller's
	// remaining deadline.
	Timeout time.Duration

	// Cache is optional.
	Cache Cache

	Logger zerolog.Logger
}

// Resolver walks its strategies in order and stops at the first success.
// It is safe for concurrent use.
type Resolver struct {
	strategies   []Strategy
	defaultTitle string
	timeout      time.Duration
	cache        Cache
	logger       zerolog.Logger
}

// New creates a resolver over strategies.
//
//nolint:gocritic // Options passed by value is fine
func New(strategies []Strategy, opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Resolver{
		strategies:   strategies,
		defaultTitle: opts.DefaultTitle,
		timeout:      opts.Timeout,
		cache:        opts.Cache,
		logger:       opts.Logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve never fails: when no strategy succeeds it returns the fallback
// result with Degraded set.
func (r *Resolver) Resolve(ctx context.Context, title string) Result {
	query := strings.TrimSpace(title)
	if query == "" {
		return r.fallback(title)
	}

	key := CacheKey(query)
	if res, ok := r.fromCache(ctx, key); ok {
		res.Query = title
		res.Cached = true
		metrics.ResolverTierTotal.WithLabelValues(string(res.Tier)).Inc()
		return res
	}

	rctx, cancelBudget := budget(ctx)
	defer cancelBudget()

	for _, s := range r.strategies {
		if rctx.Err() != nil {
			break
		}

		sctx, cancel := context.WithTimeout(rctx, r.timeout)
		res, err := s.Resolve(sctx, query)
		cancel()
		if err != nil {
			r.logger.Debug().
				Err(err).
				Str("tier", string(s.Tier())).
				Str("query", query).
				Msg("resolution tier failed")
			continue
		}

		res.Query = title
		metrics.ResolverTierTotal.WithLabelValues(string(res.Tier)).Inc()
		r.toCache(ctx, key, res)
		return res
	}

	r.logger.Info().Str("query", query).Str("default_title", r.defaultTitle).Msg("title resolution degraded to fallback")
	return r.fallback(title)
}

// budget derives the context the strategy chain runs under.
func budget(ctx context.Context) (context.Context, context.CancelFunc) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Until(deadline)/budgetShare)
}

func (r *Resolver) fallback(title string) Result {
	metrics.ResolverTierTotal.WithLabelValues(string(TierFallback)).Inc()
	return Result{
		Query:          title,
		Tier:           TierFallback,
		CanonicalTitle: r.defaultTitle,
		Degraded:       true,
	}
}

func (r *Resolver) fromCache(ctx context.Context, key string) (Result, bool) {
	if r.cache == nil {
		return Result{}, false
	}
	res, ok, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.ResolverCacheTotal.WithLabelValues("error").Inc()
		r.logger.Warn().Err(err).Msg("resolver cache read failed")
		return Result{}, false
	case !ok:
		metrics.ResolverCacheTotal.WithLabelValues("miss").Inc()
		return Result{}, false
	default:
		metrics.ResolverCacheTotal.WithLabelValues("hit").Inc()
		return res, true
	}
}

func (r *Resolver) toCache(ctx context.Context, key string, res Result) {
	if r.cache == nil || res.Degraded {
		return
	}
	if err := r.cache.Set(ctx, key, res); err != nil {
		metrics.ResolverCacheTotal.WithLabelValues("error").Inc()
		r.logger.Warn().Err(err).Msg("resolver cache write failed")
	}
}
