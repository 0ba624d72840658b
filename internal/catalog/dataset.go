// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/marquee/internal/config"
)

// ErrUnknownDataset is returned for a dataset name outside the closed set.
var ErrUnknownDataset = errors.New("unknown dataset")

// DatasetID identifies one explorable CSV export.
type DatasetID int

const (
	DatasetMovies DatasetID = iota
	DatasetDescriptions
	DatasetDescriptions2
	DatasetGenres
	DatasetPosters
	DatasetTrailers
	DatasetLinks
	DatasetRatings
	DatasetContents
)

var datasetNames = [...]string{
	DatasetMovies:        "movies",
	DatasetDescriptions:  "desc_movies",
	DatasetDescriptions2: "desc2_movies",
	DatasetGenres:        "genres",
	DatasetPosters:       "posters",
	DatasetTrailers:      "trailers",
	DatasetLinks:         "links",
	DatasetRatings:       "ratings",
	DatasetContents:      "contents",
}

// AllDatasets lists every id in display order.
func AllDatasets() []DatasetID {
	ids := make([]DatasetID, len(datasetNames))
	for i := range datasetNames {
		ids[i] = DatasetID(i)
	}
	return ids
}

func (d DatasetID) String() string {
	if d < 0 || int(d) >= len(datasetNames) {
		return fmt.Sprintf("dataset(%d)", int(d))
	}
	return datasetNames[d]
}

// Large marks datasets too big to preview without a warning.
func (d DatasetID) Large() bool {
	return d == DatasetRatings
}

// ParseDatasetID accepts a dataset name in any case.
func ParseDatasetID(name string) (DatasetID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range datasetNames {
		if n == name {
			return DatasetID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}

// DatasetPaths maps each dataset to its configured file. Datasets with no
// configured file are omitted.
func DatasetPaths(cfg config.DataConfig) map[DatasetID]string {
	files := map[DatasetID]string{
		DatasetMovies:        cfg.Movies,
		DatasetDescriptions:  cfg.Descriptions,
		DatasetDescriptions2: cfg.Descriptions2,
		DatasetGenres:        cfg.Genres,
		DatasetPosters:       cfg.Posters,
		DatasetTrailers:      cfg.Trailers,
		DatasetLinks:         cfg.Links,
		DatasetRatings:       cfg.Ratings,
		DatasetContents:      cfg.Contents,
	}
	out := make(map[DatasetID]string, len(files))
	for id, name := range files {
		if name != "" {
			out[id] = cfg.Path(name)
		}
	}
	return out
}
