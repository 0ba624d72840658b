// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog holds the read-only movie metadata tables.
//
// Two id spaces meet here. MovieLens files (movies, genres, ratings, links)
// use the internal movieId. The scraped TMDb files (descriptions, posters,
// contents) store the TMDb id in their movieId column. Links is the only
// bridge between the two.
//
// A Store is built once at startup, either by Load from the CSV exports or by
// New from in-memory rows, and is never mutated afterwards. Every method is
// safe for concurrent use.
package catalog

// Movie is a row of movies.csv.
type Movie struct {
	MovieID int      `json:"movie_id"`
	Title   string   `json:"title"`
	Genres  []string `json:"genres"`
}

// Link pairs an internal movieId with its TMDb id.
type Link struct {
	MovieID int `json:"movie_id"`
	TMDbID  int `json:"tmdb_id"`
}

// Rating is one historical (user, movie, rating) fact.
type Rating struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Rating  float64 `json:"rating"`
}

// Description is a row of desc_movies.csv, keyed by TMDb id.
type Description struct {
	TMDbID      int      `json:"tmdb_id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Popularity  float64  `json:"popularity"`
	VoteCount   int      `json:"vote_count"`
	VoteAverage float64  `json:"vote_average"`
	Cast        []string `json:"cast"`
	Keywords    []string `json:"keywords,omitempty"`
}

// GenreFlag marks movieId as belonging to Genre (a flag column equal to 1).
type GenreFlag struct {
	MovieID int
	Genre   string
}

// CorpusEntry is one row of the feature corpus (contents.csv), keyed by TMDb id.
type CorpusEntry struct {
	TMDbID   int      `json:"tmdb_id"`
	Title    string   `json:"title"`
	Overview string   `json:"overview"`
	Cast     []string `json:"cast"`
}

// Tables is the raw input for New.
type Tables struct {
	Movies       []Movie
	Links        []Link
	Genres       []GenreFlag
	Ratings      []Rating
	Descriptions []Description
	Posters      map[int]string
	Corpus       []CorpusEntry
}
