// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

// Links maps internal movie ids to TMDb ids and back.
//
// A TMDb id claimed by more than one movieId is ambiguous: it is kept out of
// the reverse map so MovieID never answers with one of several candidates.
type Links struct {
	toTMDb    map[int]int
	toMovie   map[int]int
	ambiguous map[int][]int
}

// NewLinks indexes pairs. Pairs with a non-positive id on either side are skipped.
func NewLinks(pairs []Link) *Links {
	l := &Links{
		toTMDb:    make(map[int]int, len(pairs)),
		toMovie:   make(map[int]int, len(pairs)),
		ambiguous: make(map[int][]int),
	}
	for _, p := range pairs {
		if p.MovieID <= 0 || p.TMDbID <= 0 {
			continue
		}
		if _, seen := l.toTMDb[p.MovieID]; !seen {
			l.toTMDb[p.MovieID] = p.TMDbID
		}

		if movies, bad := l.ambiguous[p.TMDbID]; bad {
			l.ambiguous[p.TMDbID] = append(movies, p.MovieID)
			continue
		}
		if prev, ok := l.toMovie[p.TMDbID]; ok && prev != p.MovieID {
			l.ambiguous[p.TMDbID] = []int{prev, p.MovieID}
			delete(l.toMovie, p.TMDbID)
			continue
		}
		l.toMovie[p.TMDbID] = p.MovieID
	}
	return l
}

// TMDbID returns the TMDb id of an internal movie.
func (l *Links) TMDbID(movieID int) (int, bool) {
	id, ok := l.toTMDb[movieID]
	return id, ok
}

// MovieID returns the single internal movie linked to tmdbID.
func (l *Links) MovieID(tmdbID int) (int, bool) {
	id, ok := l.toMovie[tmdbID]
	return id, ok
}

// Len is the number of forward mappings.
func (l *Links) Len() int {
	return len(l.toTMDb)
}

// Ambiguous returns how many TMDb ids were dropped from the reverse map.
func (l *Links) Ambiguous() int {
	return len(l.ambiguous)
}
