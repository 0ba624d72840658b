// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"math"
	"sort"
)

// TopN returns the positions of the n highest scores, highest first.
// Equal scores keep their original order, and NaN ranks below everything.
//
// It is the single ranking primitive shared by similarity search, rating
// prediction and popularity picks:
//
//	TopN([]float64{0.2, 0.9, 0.9, 0.1}, 3) == []int{1, 2, 0}
func TopN(scores []float64, n int) []int {
	if n <= 0 || len(scores) == 0 {
		return nil
	}
	if n > len(scores) {
		n = len(scores)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rankValue(scores[order[a]]) > rankValue(scores[order[b]])
	})
	return order[:n]
}

func rankValue(v float64) float64 {
	if math.IsNaN(v) {
		return math.Inf(-1)
	}
	return v
}
