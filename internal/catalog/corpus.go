// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMisaligned is returned when an index built over the corpus does not
// list the same TMDb ids in the same order as the corpus itself.
var ErrMisaligned = errors.New("corpus and index row order differ")

// yearSuffix matches the " (1999)" annotation MovieLens appends to titles.
var yearSuffix = regexp.MustCompile(`\s*\(\d{4}\)\s*$`)

// StripYear removes a trailing "(YYYY)" annotation.
func StripYear(title string) string {
	return strings.TrimSpace(yearSuffix.ReplaceAllString(title, ""))
}

// Corpus is the ordered set of movies the text vectorizer was fitted on.
// Row i of the similarity matrix describes Entry(i).
type Corpus struct {
	entries  []CorpusEntry
	byTitle  map[string]int // stripped, lower-cased title -> lowest-TMDb-id row
	distinct []int
}

// NewCorpus keeps entries in the given order.
func NewCorpus(entries []CorpusEntry) *Corpus {
	c := &Corpus{
		entries: entries,
		byTitle: make(map[string]int, len(entries)),
	}
	seen := make(map[int]struct{}, len(entries))
	for i, e := range entries {
		key := strings.ToLower(StripYear(e.Title))
		if j, ok := c.byTitle[key]; !ok || e.TMDbID < entries[j].TMDbID {
			c.byTitle[key] = i
		}
		if _, dup := seen[e.TMDbID]; !dup {
			seen[e.TMDbID] = struct{}{}
			c.distinct = append(c.distinct, e.TMDbID)
		}
	}
	return c
}

// Len is the number of rows.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// Entry returns row i.
func (c *Corpus) Entry(i int) CorpusEntry {
	return c.entries[i]
}

// DistinctTMDbIDs returns each id once, in first-seen order.
func (c *Corpus) DistinctTMDbIDs() []int {
	return c.distinct
}

// FindByTitle matches title against corpus titles with any year annotation
// removed from both sides. When several rows share a title the one with the
// lowest TMDb id wins.
func (c *Corpus) FindByTitle(title string) (CorpusEntry, bool) {
	i, ok := c.byTitle[strings.ToLower(StripYear(title))]
	if !ok {
		return CorpusEntry{}, false
	}
	return c.entries[i], true
}

// CheckAlignment verifies that ids, the row keys stored with an index
// artifact, match the corpus row for row.
func (c *Corpus) CheckAlignment(ids []int) error {
	if len(ids) != len(c.entries) {
		return fmt.Errorf("%w: index has %d rows, corpus has %d", ErrMisaligned, len(ids), len(c.entries))
	}
	for i, id := range ids {
		if c.entries[i].TMDbID != id {
			return fmt.Errorf("%w: row %d is tmdb %d in index, tmdb %d in corpus", ErrMisaligned, i, id, c.entries[i].TMDbID)
		}
	}
	return nil
}
