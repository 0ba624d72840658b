// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"fmt"
	"math"

	"github.com/tomtom215/marquee/internal/recommend/storage"
)

// MatrixArtifact is a CSR document-term matrix. RowIDs carries the TMDb id
// of each row so the corpus alignment can be checked at load.
type MatrixArtifact struct {
	Shape   [2]int    `json:"shape"`
	Indptr  []int     `json:"indptr"`
	Indices []int     `json:"indices"`
	Data    []float64 `json:"data"`
	RowIDs  []int     `json:"row_ids"`
}

// Match is a ranked corpus row.
type Match struct {
	Row   int     `json:"row"`
	Score float64 `json:"score"`
}

// SimilarityIndex answers cosine nearest-neighbor queries over the corpus.
type SimilarityIndex struct {
	rows    int
	cols    int
	indptr  []int
	indices []int
	data    []float64
	norms   []float64
	rowIDs  []int
}

// NewSimilarityIndex validates the CSR structure and precomputes row norms.
func NewSimilarityIndex(a MatrixArtifact) (*SimilarityIndex, error) {
	rows, cols := a.Shape[0], a.Shape[1]
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: shape %v", ErrInvalidArtifact, a.Shape)
	}
	if len(a.Indptr) != rows+1 {
		return nil, fmt.Errorf("%w: indptr has %d entries, want %d", ErrInvalidArtifact, len(a.Indptr), rows+1)
	}
	if len(a.Indices) != len(a.Data) {
		return nil, fmt.Errorf("%w: %d indices but %d values", ErrInvalidArtifact, len(a.Indices), len(a.Data))
	}
	if a.Indptr[0] != 0 || a.Indptr[rows] != len(a.Data) {
		return nil, fmt.Errorf("%w: indptr must span [0,%d]", ErrInvalidArtifact, len(a.Data))
	}
	if a.RowIDs != nil && len(a.RowIDs) != rows {
		return nil, fmt.Errorf("%w: %d row ids for %d rows", ErrInvalidArtifact, len(a.RowIDs), rows)
	}

	norms := make([]float64, rows)
	for r := 0; r < rows; r++ {
		start, end := a.Indptr[r], a.Indptr[r+1]
		if end < start || end > len(a.Data) {
			return nil, fmt.Errorf("%w: indptr out of order at row %d", ErrInvalidArtifact, r)
		}
		var sum float64
		for k := start; k < end; k++ {
			if a.Indices[k] < 0 || a.Indices[k] >= cols {
				return nil, fmt.Errorf("%w: row %d column %d outside [0,%d)", ErrInvalidArtifact, r, a.Indices[k], cols)
			}
			if !finite(a.Data[k]) {
				return nil, fmt.Errorf("%w: row %d holds a non-finite value", ErrInvalidArtifact, r)
			}
			sum += a.Data[k] * a.Data[k]
		}
		norms[r] = math.Sqrt(sum)
	}

	return &SimilarityIndex{
		rows:    rows,
		cols:    cols,
		indptr:  a.Indptr,
		indices: a.Indices,
		data:    a.Data,
		norms:   norms,
		rowIDs:  a.RowIDs,
	}, nil
}

// LoadSimilarityIndex reads a matrix artifact from disk.
func LoadSimilarityIndex(path string) (*SimilarityIndex, *storage.Info, error) {
	var a MatrixArtifact
	info, err := storage.Read(path, &a)
	if err != nil {
		return nil, nil, fmt.Errorf("load matrix: %w", err)
	}
	idx, err := NewSimilarityIndex(a)
	if err != nil {
		return nil, info, fmt.Errorf("load matrix %s: %w", path, err)
	}
	return idx, info, nil
}

// Rows is the corpus size.
func (s *SimilarityIndex) Rows() int { return s.rows }

// Cols is the vocabulary width the matrix was built with.
func (s *SimilarityIndex) Cols() int { return s.cols }

// RowIDs returns the TMDb id stored for each row, or nil when the artifact
// carried none.
func (s *SimilarityIndex) RowIDs() []int { return s.rowIDs }

// Scores returns the cosine similarity between query and every row.
// Rows or queries with no non-zero entries score 0.
func (s *SimilarityIndex) Scores(query SparseVector) []float64 {
	scores := make([]float64, s.rows)
	qnorm := query.Norm()
	if qnorm == 0 {
		return scores
	}
	q := query.dense()

	for r := 0; r < s.rows; r++ {
		if s.norms[r] == 0 {
			continue
		}
		var sum float64
		for k := s.indptr[r]; k < s.indptr[r+1]; k++ {
			if qv, ok := q[s.indices[k]]; ok {
				sum += qv * s.data[k]
			}
		}
		if sum == 0 {
			continue
		}
		scores[r] = math.Min(sum/(qnorm*s.norms[r]), 1)
	}
	return scores
}

// TopN returns the n most similar rows, highest score first. Ties keep
// corpus order, so an all-zero query yields the first n rows.
func (s *SimilarityIndex) TopN(query SparseVector, n int) []Match {
	scores := s.Scores(query)
	top := TopN(scores, n)
	matches := make([]Match, len(top))
	for i, r := range top {
		matches[i] = Match{Row: r, Score: scores[r]}
	}
	return matches
}
