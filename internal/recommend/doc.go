// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend orchestrates movie recommendations over the catalog and
// the precomputed models.
//
// # Strategies
//
//   - Content-based: a free-text title is resolved through TMDb, encoded
//     with the fitted vectorizer and matched against the similarity index.
//     The closest corpus rows that have a poster are sampled down to k.
//   - Collaborative: the canonical title selects a cohort of users who rated
//     it (or, failing that, the least active users). The rating predictor
//     scores every corpus movie for each sampled user and the union of their
//     top picks is deduplicated and sampled down to k.
//   - Popular: the most popular descriptions that have a poster, sampled
//     down to k, optionally restricted to one genre.
//
// When title resolution degrades to the fallback tier the content strategy
// answers with popular picks instead of a similarity search.
//
// # Availability
//
// Each model artifact is optional. An Engine built without the vectorizer
// or the similarity index (or with an index whose rows do not line up with
// the corpus) reports the content feature as unavailable and its calls
// return ErrFeatureUnavailable. The predictor gates the collaborative
// feature the same way. Popularity needs only the catalog and is always on.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, store, res, recommend.Models{
//	    Encoder:   vectorizer,
//	    Index:     index,
//	    Predictor: svd,
//	}, logger)
//
//	resp, err := engine.ContentBased(ctx, "The Dark Knight", 5)
//
// # Thread Safety
//
// Loaded data is read-only. The sampling RNG is the only shared mutable
// state and is guarded by a mutex, so an Engine is safe for concurrent use.
// A non-zero Config.Seed makes sampling reproducible.
package recommend
