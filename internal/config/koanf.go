// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8501,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Database: DatabaseConfig{
			MaxMemory: "1GB",
		},
		Data: DataConfig{
			Dir:           "./data",
			Movies:        "movies.csv",
			Links:         "links.csv",
			Genres:        "genres.csv",
			Ratings:       "ratings.csv",
			Posters:       "posters.csv",
			Trailers:      "trailers.csv",
			Descriptions:  "desc_movies.csv",
			Descriptions2: "desc2_movies.csv",
			Contents:      "contents.csv",
		},
		Artifacts: ArtifactsConfig{
			Dir:        "./systems",
			Vectorizer: "count_vectorizer.json",
			Matrix:     "count_matrix.json",
			Predictor:  "svd.json",
		},
		TMDb: TMDbConfig{
			BaseURL:            "https://api.themoviedb.org/3",
			Language:           "en",
			Timeout:            5 * time.Second,
			RequestsPerSecond:  20,
			Burst:              5,
			BreakerMaxRequests: 1,
			BreakerInterval:    time.Minute,
			BreakerTimeout:     30 * time.Second,
			BreakerFailures:    5,
		},
		Resolver: ResolverConfig{
			DefaultTitle:     "Avatar (2009)",
			CacheBackend:     "memory",
			CacheTTL:         24 * time.Hour,
			CacheSize:        1024,
			BadgerDir:        "./cache/resolver",
			BadgerGCInterval: 10 * time.Minute,
			RedisAddr:        "localhost:6379",
		},
		Recommend: RecommendConfig{
			DefaultK:        5,
			MaxK:            50,
			SimilarityPool:  10,
			CohortSize:      10,
			PopularPool:     500,
			ExploreLimit:    1000,
			MaxExploreLimit: 10000,
		},
	}
}

// Load builds the configuration from three layers:
//  1. built-in defaults
//  2. an optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. environment variables listed in envMappings
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to config paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_read_timeout":   "server.read_timeout",
	"http_write_timeout":  "server.write_timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"data_dir":           "data.dir",
	"data_movies":        "data.movies",
	"data_links":         "data.links",
	"data_genres":        "data.genres",
	"data_ratings":       "data.ratings",
	"data_posters":       "data.posters",
	"data_trailers":      "data.trailers",
	"data_descriptions":  "data.descriptions",
	"data_descriptions2": "data.descriptions2",
	"data_contents":      "data.contents",

	"artifacts_dir":   "artifacts.dir",
	"vectorizer_path": "artifacts.vectorizer",
	"matrix_path":     "artifacts.matrix",
	"predictor_path":  "artifacts.predictor",

	"tmdb_api_key":              "tmdb.api_key",
	"tmdb_base_url":             "tmdb.base_url",
	"tmdb_language":             "tmdb.language",
	"tmdb_timeout":              "tmdb.timeout",
	"tmdb_requests_per_second":  "tmdb.requests_per_second",
	"tmdb_burst":                "tmdb.burst",
	"tmdb_breaker_max_requests": "tmdb.breaker_max_requests",
	"tmdb_breaker_interval":     "tmdb.breaker_interval",
	"tmdb_breaker_timeout":      "tmdb.breaker_timeout",
	"tmdb_breaker_failures":     "tmdb.breaker_failures",

	"resolver_default_title": "resolver.default_title",
	"resolver_cache_backend": "resolver.cache_backend",
	"resolver_cache_ttl":     "resolver.cache_ttl",
	"resolver_cache_size":    "resolver.cache_size",
	"resolver_badger_dir":    "resolver.badger_dir",
	"resolver_badger_gc":     "resolver.badger_gc_interval",
	"redis_addr":             "resolver.redis_addr",
	"redis_password":         "resolver.redis_password",
	"redis_db":               "resolver.redis_db",

	"recommend_seed":            "recommend.seed",
	"recommend_default_k":       "recommend.default_k",
	"recommend_max_k":           "recommend.max_k",
	"recommend_similarity_pool": "recommend.similarity_pool",
	"recommend_cohort_size":     "recommend.cohort_size",
	"recommend_popular_pool":    "recommend.popular_pool",
	"explore_limit":             "recommend.explore_limit",
	"explore_max_limit":         "recommend.max_explore_limit",
}

// envTransformFunc maps TMDB_API_KEY to tmdb.api_key and so on.
// An empty return tells koanf to skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
