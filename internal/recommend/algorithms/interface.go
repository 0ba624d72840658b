// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"math"
)

// Encoder projects text into the document-term space.
type Encoder interface {
	Transform(text string) SparseVector
	Features() int
}

// Index ranks corpus rows against a query vector.
type Index interface {
	TopN(query SparseVector, n int) []Match
	Rows() int
	Cols() int
	RowIDs() []int
}

// Predictor estimates the rating a user would give an item.
type Predictor interface {
	Predict(userID, itemID int) float64
	Scale() (low, high float64)
}

// Ensure the models implement the interfaces.
var (
	_ Encoder   = (*Vectorizer)(nil)
	_ Index     = (*SimilarityIndex)(nil)
	_ Predictor = (*SVD)(nil)
)

// SparseVector holds the non-zero entries of a vector, indices ascending.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len is the number of non-zero entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// Norm returns the Euclidean norm.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// dense expands v into a column -> value lookup.
func (v SparseVector) dense() map[int]float64 {
	m := make(map[int]float64, len(v.Indices))
	for i, col := range v.Indices {
		m[col] = v.Values[i]
	}
	return m
}

// dot computes the inner product of two equal-length dense vectors.
func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// finite reports whether every value is a real number.
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
