// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/algorithms"
	"github.com/tomtom215/marquee/internal/recommend/storage"
)

// loadModels reads the precomputed artifacts. Each one is optional: a
// failure is logged and the engine disables the features that need it.
func loadModels(cfg config.ArtifactsConfig) recommend.Models {
	var m recommend.Models

	if v, info, err := algorithms.LoadVectorizer(cfg.Path(cfg.Vectorizer)); artifactLoaded("vectorizer", info, err) {
		m.Encoder = v
	}
	if idx, info, err := algorithms.LoadSimilarityIndex(cfg.Path(cfg.Matrix)); artifactLoaded("matrix", info, err) {
		m.Index = idx
	}
	if svd, info, err := algorithms.LoadSVD(cfg.Path(cfg.Predictor)); artifactLoaded("svd", info, err) {
		m.Predictor = svd
	}
	return m
}

// artifactLoaded records the outcome and reports whether the artifact can
// be used.
func artifactLoaded(name string, info *storage.Info, err error) bool {
	metrics.RecordArtifactLoad(name, err)
	if err != nil {
		logging.Warn().Err(err).Str("artifact", name).Msg("Artifact not loaded")
		return false
	}
	logging.Info().
		Str("artifact", name).
		Str("path", info.Path).
		Int64("size_bytes", info.SizeBytes).
		Bool("compressed", info.Compressed).
		Bool("checksum_verified", info.Verified).
		Msg("Artifact loaded")
	return true
}
