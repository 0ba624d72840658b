// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api serves the Marquee dashboard over JSON HTTP.

Routes:

	GET /health                                  feature availability, catalog size, latency
	GET /metrics                                 Prometheus exposition
	GET /api/v1/recommendations?title=&k=        content and collaborative on one resolution
	GET /api/v1/recommendations/content          ?title=&k=
	GET /api/v1/recommendations/collaborative    ?title=&k=
	GET /api/v1/popular?k=                       postered popular picks
	GET /api/v1/popular/genres                   genre names
	GET /api/v1/popular/genres/{genre}?k=        popular picks in one genre
	GET /api/v1/datasets                         dataset column listing
	GET /api/v1/datasets/{name}?limit=           first rows of one dataset

Every response is a models.APIResponse envelope. Query parameters are
checked with go-playground/validator through the validation package; k
defaults to the engine's default and values above max_k are rejected.

Error mapping:

  - recommend.ErrFeatureUnavailable: 503 FEATURE_UNAVAILABLE
  - recommend.ErrUnknownGenre, catalog.ErrUnknownDataset: 404 NOT_FOUND
  - a missing dataset file: 404 NOT_FOUND
  - a request deadline: 504 TIMEOUT

Middleware, outermost first: request id, real IP, panic recovery, CORS,
gzip compression. Routes under /api/v1 also record Prometheus metrics and
latency samples, and /api/v1/recommendations is rate limited per client IP
with go-chi/httprate.
*/
package api
