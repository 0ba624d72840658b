// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package algorithms holds the read-only models behind the recommendation
// engine.
//
// Nothing here is trained at runtime. Every model is decoded from an
// artifact produced offline and is immutable once constructed:
//
//   - Vectorizer: a fitted bag-of-words encoder (vocabulary, token pattern,
//     stop words, n-gram range) that projects normalized text into the
//     document-term space.
//   - SimilarityIndex: the document-term matrix of the feature corpus in CSR
//     form, queried by cosine similarity.
//   - SVD: a biased latent-factor model that predicts a rating for any
//     (user, item) pair, including pairs unseen during training.
//
// # Artifact formats
//
// Artifacts are JSON documents read through the storage package, so they may
// be gzip-compressed and carry a .sha256 sidecar.
//
// Vectorizer:
//
//	{"vocabulary": {"dark": 0, "knight": 1}, "lowercase": true,
//	 "token_pattern": "(?u)\\b\\w\\w+\\b", "stop_words": ["the"],
//	 "ngram_range": [1, 1], "binary": false}
//
// Matrix (scipy CSR plus the TMDb id of each row):
//
//	{"shape": [2, 2], "indptr": [0, 1, 2], "indices": [0, 1],
//	 "data": [1, 1], "row_ids": [155, 272]}
//
// SVD:
//
//	{"global_mean": 3.5, "rating_scale": [0.5, 5], "factors": 2,
//	 "users": {"1": {"bias": 0.1, "factors": [0.2, 0.3]}},
//	 "items": {"318": {"bias": 0.4, "factors": [0.1, 0.5]}}}
//
// # Thread Safety
//
// All models are safe for concurrent use. They have no writers after
// construction, so no locks are taken.
package algorithms
