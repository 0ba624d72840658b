// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads the server configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of precedence.
package config

import (
	"net"
	"path/filepath"
	"strconv"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	Data      DataConfig      `koanf:"data"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	TMDb      TMDbConfig      `koanf:"tmdb"`
	Resolver  ResolverConfig  `koanf:"resolver"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig controls the HTTP listener and inbound limits.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout       time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig is passed to logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// DatabaseConfig tunes the embedded DuckDB instance used to read the CSV
// exports. An empty Path keeps the database in memory.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory" validate:"required"`
	Threads   int    `koanf:"threads" validate:"min=0"`
}

// DataConfig names the MovieLens/TMDb CSV exports. File names are resolved
// against Dir unless they are absolute.
type DataConfig struct {
	Dir           string `koanf:"dir" validate:"required"`
	Movies        string `koanf:"movies" validate:"required"`
	Links         string `koanf:"links" validate:"required"`
	Genres        string `koanf:"genres" validate:"required"`
	Ratings       string `koanf:"ratings" validate:"required"`
	Posters       string `koanf:"posters" validate:"required"`
	Trailers      string `koanf:"trailers"`
	Descriptions  string `koanf:"descriptions" validate:"required"`
	Descriptions2 string `koanf:"descriptions2"`
	Contents      string `koanf:"contents" validate:"required"`
}

// Path resolves a configured file name against Dir.
func (d DataConfig) Path(name string) string {
	return resolvePath(d.Dir, name)
}

// ArtifactsConfig locates the precomputed model files.
type ArtifactsConfig struct {
	Dir        string `koanf:"dir" validate:"required"`
	Vectorizer string `koanf:"vectorizer" validate:"required"`
	Matrix     string `koanf:"matrix" validate:"required"`
	Predictor  string `koanf:"predictor" validate:"required"`
}

// Path resolves a configured artifact name against Dir.
func (a ArtifactsConfig) Path(name string) string {
	return resolvePath(a.Dir, name)
}

// TMDbConfig configures the external title search client.
type TMDbConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	Language          string        `koanf:"language"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"min=1"`
	// Circuit breaker
	BreakerMaxRequests uint32        `koanf:"breaker_max_requests" validate:"min=1"`
	BreakerInterval    time.Duration `koanf:"breaker_interval"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
	BreakerFailures    uint32        `koanf:"breaker_failures" validate:"min=1"`
}

// ResolverConfig controls the title resolution chain and its cache.
type ResolverConfig struct {
	DefaultTitle     string        `koanf:"default_title" validate:"required"`
	CacheBackend     string        `koanf:"cache_backend" validate:"oneof=none memory badger redis"`
	CacheTTL         time.Duration `koanf:"cache_ttl"`
	CacheSize        int           `koanf:"cache_size" validate:"min=1"`
	BadgerDir        string        `koanf:"badger_dir"`
	BadgerGCInterval time.Duration `koanf:"badger_gc_interval"`
	RedisAddr        string        `koanf:"redis_addr"`
	RedisPassword    string        `koanf:"redis_password"`
	RedisDB          int           `koanf:"redis_db" validate:"min=0"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	// Seed fixes the sampling sequence; 0 seeds from the clock.
	Seed            int64 `koanf:"seed"`
	DefaultK        int   `koanf:"default_k" validate:"min=1,ltefield=MaxK"`
	MaxK            int   `koanf:"max_k" validate:"min=1"`
	SimilarityPool  int   `koanf:"similarity_pool" validate:"min=1"`
	CohortSize      int   `koanf:"cohort_size" validate:"min=1"`
	PopularPool     int   `koanf:"popular_pool" validate:"min=1"`
	ExploreLimit    int   `koanf:"explore_limit" validate:"min=1,ltefield=MaxExploreLimit"`
	MaxExploreLimit int   `koanf:"max_explore_limit" validate:"min=1"`
}

func resolvePath(dir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
