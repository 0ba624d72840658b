// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"sort"
	"strings"
)

// Store is the in-memory metadata store.
type Store struct {
	movies       map[int]Movie
	links        *Links
	descriptions []Description
	descByTMDb   map[int]int
	posters      map[int]string
	corpus       *Corpus

	genreNames   []string
	genreMembers map[string][]int // lower-cased genre -> movieIds in file order
	genreCanon   map[string]string

	ratingCount  int
	raters       map[int][]Rating // movieId -> ratings in file order
	userActivity []int            // userIds, least active first
}

// New indexes in-memory tables. The slices are retained, not copied.
func New(t Tables) *Store {
	s := &Store{
		movies:       make(map[int]Movie, len(t.Movies)),
		links:        NewLinks(t.Links),
		descriptions: t.Descriptions,
		descByTMDb:   make(map[int]int, len(t.Descriptions)),
		posters:      make(map[int]string, len(t.Posters)),
		corpus:       NewCorpus(t.Corpus),
		genreMembers: make(map[string][]int),
		genreCanon:   make(map[string]string),
		raters:       make(map[int][]Rating),
		ratingCount:  len(t.Ratings),
	}

	for _, m := range t.Movies {
		s.movies[m.MovieID] = m
	}
	for i, d := range t.Descriptions {
		if _, dup := s.descByTMDb[d.TMDbID]; !dup {
			s.descByTMDb[d.TMDbID] = i
		}
	}
	for id, url := range t.Posters {
		if url = strings.TrimSpace(url); url != "" {
			s.posters[id] = url
		}
	}
	for _, g := range t.Genres {
		key := strings.ToLower(g.Genre)
		if _, ok := s.genreCanon[key]; !ok {
			s.genreCanon[key] = g.Genre
			s.genreNames = append(s.genreNames, g.Genre)
		}
		s.genreMembers[key] = append(s.genreMembers[key], g.MovieID)
	}

	counts := make(map[int]int)
	for _, r := range t.Ratings {
		s.raters[r.MovieID] = append(s.raters[r.MovieID], r)
		counts[r.UserID]++
	}
	s.userActivity = make([]int, 0, len(counts))
	for u := range counts {
		s.userActivity = append(s.userActivity, u)
	}
	sort.Slice(s.userActivity, func(i, j int) bool {
		a, b := s.userActivity[i], s.userActivity[j]
		if counts[a] != counts[b] {
			return counts[a] < counts[b]
		}
		return a < b
	})
	return s
}

// Movie returns a movies.csv row by internal id.
func (s *Store) Movie(movieID int) (Movie, bool) {
	m, ok := s.movies[movieID]
	return m, ok
}

// Links returns the id mapping.
func (s *Store) Links() *Links {
	return s.links
}

// Corpus returns the feature corpus.
func (s *Store) Corpus() *Corpus {
	return s.corpus
}

// Descriptions returns every description row. Callers must not modify it.
func (s *Store) Descriptions() []Description {
	return s.descriptions
}

// Description looks up a description by TMDb id.
func (s *Store) Description(tmdbID int) (Description, bool) {
	i, ok := s.descByTMDb[tmdbID]
	if !ok {
		return Description{}, false
	}
	return s.descriptions[i], true
}

// Poster returns the poster URL for a TMDb id.
func (s *Store) Poster(tmdbID int) (string, bool) {
	url, ok := s.posters[tmdbID]
	return url, ok
}

// Genres lists genre names in file column order.
func (s *Store) Genres() []string {
	return s.genreNames
}

// MoviesInGenre returns the internal ids flagged with genre (case-insensitive).
func (s *Store) MoviesInGenre(genre string) ([]int, bool) {
	ids, ok := s.genreMembers[strings.ToLower(strings.TrimSpace(genre))]
	return ids, ok
}

// CanonicalGenre returns the genre name as spelled in the data.
func (s *Store) CanonicalGenre(genre string) (string, bool) {
	name, ok := s.genreCanon[strings.ToLower(strings.TrimSpace(genre))]
	return name, ok
}

// RatersOf returns the users who rated movieID, highest rating first.
// Equal ratings keep file order.
func (s *Store) RatersOf(movieID int) []int {
	rs := s.raters[movieID]
	sorted := make([]Rating, len(rs))
	copy(sorted, rs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })

	users := make([]int, len(sorted))
	for i, r := range sorted {
		users[i] = r.UserID
	}
	return users
}

// UsersByActivity returns every user ordered by ascending rating count,
// ties broken by user id. Callers must not modify it.
func (s *Store) UsersByActivity() []int {
	return s.userActivity
}

// Stats reports row counts per table.
func (s *Store) Stats() map[string]int {
	genreRows := 0
	for _, ids := range s.genreMembers {
		genreRows += len(ids)
	}
	return map[string]int{
		"movies":       len(s.movies),
		"links":        s.links.Len(),
		"genres":       genreRows,
		"ratings":      s.ratingCount,
		"users":        len(s.userActivity),
		"descriptions": len(s.descriptions),
		"posters":      len(s.posters),
		"contents":     s.corpus.Len(),
	}
}
