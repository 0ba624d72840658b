// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/resolver"
)

// ResolverComponents holds the resolver and the pieces main wires elsewhere.
type ResolverComponents struct {
	Resolver *resolver.Resolver
	Breaker  *resolver.CircuitBreakerClient

	// Badger is set when the badger cache backend is active, so its value
	// log GC can be supervised.
	Badger *resolver.BadgerCache

	cache resolver.Cache
}

// initResolver builds TMDb client -> circuit breaker -> strategies, plus the
// configured cache. A redis backend that cannot be reached is not fatal: the
// resolver runs uncached.
func initResolver(ctx context.Context, cfg *config.Config) (*ResolverComponents, error) {
	logger := logging.WithComponent("resolver")

	if !cfg.TMDbEnabled() {
		logger.Warn().Msg("TMDB_API_KEY not set: every title resolves to the default title")
	}

	breaker := resolver.NewCircuitBreakerClient(resolver.NewTMDbClient(cfg.TMDb), cfg.TMDb)

	cache, err := resolver.NewCache(ctx, cfg.Resolver)
	switch {
	case err == nil:
	case cfg.Resolver.CacheBackend == resolver.CacheRedis:
		logger.Warn().Err(err).Str("addr", cfg.Resolver.RedisAddr).Msg("Redis unavailable, resolution cache disabled")
		cache = nil
	default:
		return nil, fmt.Errorf("resolver cache: %w", err)
	}

	rc := &ResolverComponents{Breaker: breaker, cache: cache}
	if b, ok := cache.(*resolver.BadgerCache); ok {
		rc.Badger = b
	}

	rc.Resolver = resolver.New(resolver.DefaultStrategies(breaker), resolver.Options{
		DefaultTitle: cfg.Resolver.DefaultTitle,
		Timeout:      cfg.TMDb.Timeout,
		Cache:        cache,
		Logger:       logging.Logger(),
	})

	logger.Info().
		Bool("tmdb_enabled", cfg.TMDbEnabled()).
		Str("cache_backend", cfg.Resolver.CacheBackend).
		Str("default_title", cfg.Resolver.DefaultTitle).
		Msg("Title resolver initialized")
	return rc, nil
}

// Close releases the cache.
func (rc *ResolverComponents) Close() {
	if rc.cache == nil {
		return
	}
	if err := rc.cache.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing resolver cache")
	}
}
