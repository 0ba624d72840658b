// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"fmt"

	"github.com/tomtom215/marquee/internal/recommend/storage"
)

// Default MovieLens rating bounds, used when an artifact omits its scale.
const (
	DefaultRatingMin = 0.5
	DefaultRatingMax = 5.0
)

// LatentFactors is the learned bias and embedding of one user or item.
type LatentFactors struct {
	Bias    float64   `json:"bias"`
	Factors []float64 `json:"factors"`
}

// SVDArtifact is a biased matrix factorization exported from training.
// Keys are the raw ids the model was trained on (internal movieIds for
// items).
type SVDArtifact struct {
	GlobalMean  float64               `json:"global_mean"`
	RatingScale [2]float64            `json:"rating_scale"`
	Factors     int                   `json:"factors"`
	Users       map[int]LatentFactors `json:"users"`
	Items       map[int]LatentFactors `json:"items"`
}

// Prediction is an estimated rating for one item.
type Prediction struct {
	ItemID   int     `json:"item_id"`
	Estimate float64 `json:"estimate"`
}

// SVD predicts ratings as
//
//	r̂(u, i) = μ + b_u + b_i + q_i · p_u
//
// Terms for a user or item absent from training are dropped, so an unseen
// pair degrades to the baseline instead of failing. Estimates are clipped to
// the rating scale.
type SVD struct {
	globalMean float64
	low, high  float64
	users      map[int]LatentFactors
	items      map[int]LatentFactors
}

// NewSVD validates a decoded artifact.
func NewSVD(a SVDArtifact) (*SVD, error) {
	low, high := a.RatingScale[0], a.RatingScale[1]
	if low == 0 && high == 0 {
		low, high = DefaultRatingMin, DefaultRatingMax
	}
	if !finite(low, high, a.GlobalMean) || low >= high {
		return nil, fmt.Errorf("%w: rating scale [%v,%v] mean %v", ErrInvalidArtifact, low, high, a.GlobalMean)
	}

	k := a.Factors
	if k == 0 {
		for _, f := range a.Items {
			k = len(f.Factors)
			break
		}
	}
	if err := checkFactors("user", a.Users, k); err != nil {
		return nil, err
	}
	if err := checkFactors("item", a.Items, k); err != nil {
		return nil, err
	}

	return &SVD{
		globalMean: a.GlobalMean,
		low:        low,
		high:       high,
		users:      a.Users,
		items:      a.Items,
	}, nil
}

func checkFactors(kind string, m map[int]LatentFactors, k int) error {
	for id, f := range m {
		if len(f.Factors) != k {
			return fmt.Errorf("%w: %s %d has %d factors, want %d", ErrInvalidArtifact, kind, id, len(f.Factors), k)
		}
		if !finite(f.Bias) || !finite(f.Factors...) {
			return fmt.Errorf("%w: %s %d holds a non-finite value", ErrInvalidArtifact, kind, id)
		}
	}
	return nil
}

// LoadSVD reads a factorization artifact from disk.
func LoadSVD(path string) (*SVD, *storage.Info, error) {
	var a SVDArtifact
	info, err := storage.Read(path, &a)
	if err != nil {
		return nil, nil, fmt.Errorf("load svd: %w", err)
	}
	m, err := NewSVD(a)
	if err != nil {
		return nil, info, fmt.Errorf("load svd %s: %w", path, err)
	}
	return m, info, nil
}

// Scale returns the rating bounds predictions are clipped to.
func (s *SVD) Scale() (low, high float64) {
	return s.low, s.high
}

// Predict estimates the rating userID would give itemID. It never fails.
func (s *SVD) Predict(userID, itemID int) float64 {
	est := s.globalMean
	u, uok := s.users[userID]
	i, iok := s.items[itemID]
	if uok {
		est += u.Bias
	}
	if iok {
		est += i.Bias
	}
	if uok && iok {
		est += dot(u.Factors, i.Factors)
	}
	return min(max(est, s.low), s.high)
}

// Rank scores every item for userID and keeps the k best, highest first.
// Equal estimates keep the order of items.
func Rank(p Predictor, userID int, items []int, k int) []Prediction {
	scores := make([]float64, len(items))
	for i, item := range items {
		scores[i] = p.Predict(userID, item)
	}
	top := TopN(scores, k)
	out := make([]Prediction, len(top))
	for i, pos := range top {
		out[i] = Prediction{ItemID: items[pos], Estimate: scores[pos]}
	}
	return out
}
