// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/validation"
)

// Validate checks field constraints and the rules that span fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	return c.validateResolverCache()
}

func (c *Config) validateResolverCache() error {
	switch c.Resolver.CacheBackend {
	case "badger":
		if c.Resolver.BadgerDir == "" {
			return fmt.Errorf("resolver.badger_dir is required when cache_backend=badger")
		}
		if c.Resolver.BadgerGCInterval <= 0 {
			return fmt.Errorf("resolver.badger_gc_interval must be positive when cache_backend=badger")
		}
	case "redis":
		if c.Resolver.RedisAddr == "" {
			return fmt.Errorf("resolver.redis_addr is required when cache_backend=redis")
		}
	}
	if c.Resolver.CacheBackend != "none" && c.Resolver.CacheTTL <= 0 {
		return fmt.Errorf("resolver.cache_ttl must be positive when caching is enabled")
	}
	return nil
}

// TMDbEnabled reports whether an API key is configured. Without one every
// lookup falls through to the default title.
func (c *Config) TMDbEnabled() bool {
	return c.TMDb.APIKey != ""
}
