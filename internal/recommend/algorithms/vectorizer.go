// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tomtom215/marquee/internal/recommend/storage"
)

// DefaultTokenPattern is the scikit-learn CountVectorizer default.
const DefaultTokenPattern = `\b\w\w+\b`

// ErrInvalidArtifact is returned when a decoded artifact is inconsistent.
var ErrInvalidArtifact = errors.New("invalid model artifact")

// VectorizerArtifact is the serialized form of a fitted CountVectorizer.
type VectorizerArtifact struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	Lowercase    *bool          `json:"lowercase,omitempty"`
	TokenPattern string         `json:"token_pattern,omitempty"`
	StopWords    []string       `json:"stop_words,omitempty"`
	NgramRange   [2]int         `json:"ngram_range"`
	Binary       bool           `json:"binary"`
}

// Vectorizer is a fitted bag-of-words encoder. Its vocabulary is fixed.
type Vectorizer struct {
	vocabulary map[string]int
	lowercase  bool
	pattern    *regexp.Regexp
	stopWords  map[string]struct{}
	ngramMin   int
	ngramMax   int
	binary     bool
}

// NewVectorizer validates a decoded artifact and builds the encoder.
// Vocabulary columns must be exactly 0..len-1.
func NewVectorizer(a VectorizerArtifact) (*Vectorizer, error) {
	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInvalidArtifact)
	}
	seen := make([]bool, len(a.Vocabulary))
	for token, col := range a.Vocabulary {
		if col < 0 || col >= len(seen) {
			return nil, fmt.Errorf("%w: token %q has column %d outside [0,%d)", ErrInvalidArtifact, token, col, len(seen))
		}
		if seen[col] {
			return nil, fmt.Errorf("%w: column %d assigned twice", ErrInvalidArtifact, col)
		}
		seen[col] = true
	}

	lo, hi := a.NgramRange[0], a.NgramRange[1]
	if lo == 0 && hi == 0 {
		lo, hi = 1, 1
	}
	if lo < 1 || hi < lo {
		return nil, fmt.Errorf("%w: ngram range [%d,%d]", ErrInvalidArtifact, lo, hi)
	}

	// Go's RE2 has no (?u) flag; word classes are ASCII, which matches
	// the normalized text the resolver produces.
	expr := strings.TrimPrefix(a.TokenPattern, "(?u)")
	if expr == "" {
		expr = DefaultTokenPattern
	}
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: token pattern: %w", ErrInvalidArtifact, err)
	}

	v := &Vectorizer{
		vocabulary: a.Vocabulary,
		lowercase:  a.Lowercase == nil || *a.Lowercase,
		pattern:    pattern,
		stopWords:  make(map[string]struct{}, len(a.StopWords)),
		ngramMin:   lo,
		ngramMax:   hi,
		binary:     a.Binary,
	}
	for _, w := range a.StopWords {
		v.stopWords[w] = struct{}{}
	}
	return v, nil
}

// LoadVectorizer reads a vectorizer artifact from disk.
func LoadVectorizer(path string) (*Vectorizer, *storage.Info, error) {
	var a VectorizerArtifact
	info, err := storage.Read(path, &a)
	if err != nil {
		return nil, nil, fmt.Errorf("load vectorizer: %w", err)
	}
	v, err := NewVectorizer(a)
	if err != nil {
		return nil, info, fmt.Errorf("load vectorizer %s: %w", path, err)
	}
	return v, info, nil
}

// Features is the vocabulary size, the width of every encoded vector.
func (v *Vectorizer) Features() int {
	return len(v.vocabulary)
}

// Tokens splits text into the terms the vocabulary is keyed by, n-grams
// included, before the vocabulary filter is applied.
func (v *Vectorizer) Tokens(text string) []string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	words := v.pattern.FindAllString(text, -1)
	if len(v.stopWords) > 0 {
		kept := words[:0]
		for _, w := range words {
			if _, stop := v.stopWords[w]; !stop {
				kept = append(kept, w)
			}
		}
		words = kept
	}
	if v.ngramMax == 1 {
		return words
	}

	var terms []string
	minN := v.ngramMin
	if minN == 1 {
		terms = append(terms, words...)
		minN = 2
	}
	for n := minN; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}

// Transform encodes text as term counts (or presence flags when the
// vectorizer is binary). Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range v.Tokens(text) {
		col, ok := v.vocabulary[term]
		if !ok {
			continue
		}
		if v.binary {
			counts[col] = 1
		} else {
			counts[col]++
		}
	}

	out := SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for col := range counts {
		out.Indices = append(out.Indices, col)
	}
	sort.Ints(out.Indices)
	for _, col := range out.Indices {
		out.Values = append(out.Values, counts[col])
	}
	return out
}
