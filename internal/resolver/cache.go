// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/config"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheBadger = "badger"
	CacheRedis  = "redis"
)

// cacheKeyPrefix namespaces resolver entries in shared stores.
const cacheKeyPrefix = "marquee:resolve:"

// Cache stores successful resolutions keyed by CacheKey.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, r Result) error
	Close() error
}

// CacheKey normalizes a query so "The  Dark Knight" and "the dark knight"
// share an entry.
func CacheKey(query string) string {
	return cacheKeyPrefix + strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// encodeResult serializes a result for byte-oriented stores. Per-request
// fields are cleared.
func encodeResult(r Result) ([]byte, error) {
	r.Query = ""
	r.Cached = false
	return json.Marshal(r)
}

func decodeResult(data []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("decode cached resolution: %w", err)
	}
	return r, nil
}

// NewCache builds the configured backend. It returns a nil Cache for "none".
func NewCache(ctx context.Context, cfg config.ResolverConfig) (Cache, error) {
	switch cfg.CacheBackend {
	case CacheNone, "":
		return nil, nil
	case CacheMemory:
		return NewMemoryCache(cfg.CacheSize, cfg.CacheTTL), nil
	case CacheBadger:
		c, err := OpenBadgerCache(BadgerOptions{Dir: cfg.BadgerDir, TTL: cfg.CacheTTL})
		if err != nil {
			return nil, err
		}
		return c, nil
	case CacheRedis:
		c, err := NewRedisCache(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown resolver cache backend %q", cfg.CacheBackend)
	}
}

// MemoryCache is a process-local LRU.
type MemoryCache struct {
	lru *cache.LRU[Result]
}

// NewMemoryCache holds up to size results for ttl each.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: cache.NewLRU[Result](size, ttl)}
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, key string) (Result, bool, error) {
	r, ok := m.lru.Get(key)
	return r, ok, nil
}

// Set implements Cache.
func (m *MemoryCache) Set(_ context.Context, key string, r Result) error {
	r.Query = ""
	r.Cached = false
	m.lru.Add(key, r)
	return nil
}

// Close implements Cache.
func (m *MemoryCache) Close() error {
	return nil
}

// Len is the number of cached entries.
func (m *MemoryCache) Len() int {
	return m.lru.Len()
}
