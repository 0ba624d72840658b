// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command server runs the Marquee movie recommendation dashboard API.
//
// # Startup
//
//  1. Configuration: struct defaults, then config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog, json or console
//  3. Catalog: every MovieLens/TMDb CSV is read through DuckDB. Failure is fatal.
//  4. Artifacts: vectorizer, similarity matrix and SVD predictor. Each is
//     optional; a missing one disables the features that need it and
//     /health reports "degraded".
//  5. Resolver: TMDb client behind a rate limiter and circuit breaker, with an
//     optional memory, badger or redis cache
//  6. HTTP API and the suture supervisor tree
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT=8501
//	DATA_DIR=/data
//	ARTIFACTS_DIR=/models
//	TMDB_API_KEY=...
//	RESOLVER_CACHE_BACKEND=badger   # none, memory, badger, redis
//	RESOLVER_BADGER_DIR=/var/lib/marquee/resolver
//	REDIS_ADDR=redis:6379
//	LOG_LEVEL=info
//	LOG_FORMAT=json
//
// Without TMDB_API_KEY the server still runs; every title resolves to the
// configured default title and results are flagged degraded.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains
// in-flight requests for server.shutdown_timeout, then the resolver cache
// and DuckDB are closed.
package main
