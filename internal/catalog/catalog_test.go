// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCastList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"['Sam Worthington', 'Zoe Saldana']", []string{"Sam Worthington", "Zoe Saldana"}},
		{`["Chris O'Donnell", 'Uma Thurman']`, []string{"Chris O'Donnell", "Uma Thurman"}},
		{`['It\'s Me']`, []string{"It's Me"}},
		{"[]", nil},
		{"", nil},
		{"Tom Hanks, Tim Allen", []string{"Tom Hanks", "Tim Allen"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := ParseCastList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCastList(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLinksAmbiguousReverseMapping(t *testing.T) {
	t.Parallel()

	l := NewLinks([]Link{
		{MovieID: 1, TMDbID: 862},
		{MovieID: 2, TMDbID: 8844},
		{MovieID: 3, TMDbID: 500},
		{MovieID: 4, TMDbID: 500},
		{MovieID: 5, TMDbID: 500},
		{MovieID: 6, TMDbID: 0},
	})

	if id, ok := l.MovieID(862); !ok || id != 1 {
		t.Errorf("MovieID(862) = %d, %v", id, ok)
	}
	if _, ok := l.MovieID(500); ok {
		t.Error("ambiguous tmdb id must not resolve")
	}
	if id, ok := l.TMDbID(4); !ok || id != 500 {
		t.Errorf("forward mapping of 4 = %d, %v", id, ok)
	}
	if _, ok := l.TMDbID(6); ok {
		t.Error("zero tmdb id must be skipped")
	}
	if l.Ambiguous() != 1 {
		t.Errorf("Ambiguous() = %d, want 1", l.Ambiguous())
	}
	if l.Len() != 5 {
		t.Errorf("Len() = %d, want 5", l.Len())
	}
}

func TestStripYear(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"Avatar (2009)":        "Avatar",
		"Heat":                 "Heat",
		"Blade Runner 2049":    "Blade Runner 2049",
		"Se7en (1995) ":        "Se7en",
		"The Thing (1982)(US)": "The Thing (1982)(US)",
	} {
		if got := StripYear(in); got != want {
			t.Errorf("StripYear(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCorpus(t *testing.T) {
	t.Parallel()

	c := NewCorpus([]CorpusEntry{
		{TMDbID: 19995, Title: "Avatar (2009)"},
		{TMDbID: 155, Title: "The Dark Knight (2008)"},
		{TMDbID: 12, Title: "Avatar (2004)"},
		{TMDbID: 155, Title: "The Dark Knight (2008)"},
	})

	e, ok := c.FindByTitle("avatar")
	if !ok || e.TMDbID != 12 {
		t.Errorf("FindByTitle(avatar) = %+v, %v; want lowest tmdb id 12", e, ok)
	}
	if e, ok := c.FindByTitle("The Dark Knight"); !ok || e.TMDbID != 155 {
		t.Errorf("FindByTitle(The Dark Knight) = %+v, %v", e, ok)
	}
	if _, ok := c.FindByTitle("Heat"); ok {
		t.Error("unexpected match for Heat")
	}
	if got := c.DistinctTMDbIDs(); !reflect.DeepEqual(got, []int{19995, 155, 12}) {
		t.Errorf("DistinctTMDbIDs() = %v", got)
	}

	if err := c.CheckAlignment([]int{19995, 155, 12, 155}); err != nil {
		t.Errorf("aligned ids rejected: %v", err)
	}
	if err := c.CheckAlignment([]int{19995, 155, 12}); !errors.Is(err, ErrMisaligned) {
		t.Errorf("short index error = %v", err)
	}
	if err := c.CheckAlignment([]int{155, 19995, 12, 155}); !errors.Is(err, ErrMisaligned) {
		t.Errorf("reordered index error = %v", err)
	}
}

func TestStoreIndexes(t *testing.T) {
	t.Parallel()

	s := New(Tables{
		Movies: []Movie{{MovieID: 1, Title: "Toy Story (1995)"}},
		Links:  []Link{{MovieID: 1, TMDbID: 862}},
		Genres: []GenreFlag{{MovieID: 1, Genre: "Animation"}, {MovieID: 2, Genre: "Comedy"}, {MovieID: 1, Genre: "Comedy"}},
		Ratings: []Rating{
			{UserID: 10, MovieID: 1, Rating: 3},
			{UserID: 11, MovieID: 1, Rating: 5},
			{UserID: 12, MovieID: 1, Rating: 3},
			{UserID: 11, MovieID: 2, Rating: 4},
			{UserID: 13, MovieID: 2, Rating: 1},
			{UserID: 13, MovieID: 3, Rating: 1},
		},
		Descriptions: []Description{{TMDbID: 862, Title: "Toy Story"}, {TMDbID: 862, Title: "dup"}},
		Posters:      map[int]string{862: "https://img/toy.jpg", 8844: "  "},
	})

	if got := s.RatersOf(1); !reflect.DeepEqual(got, []int{11, 10, 12}) {
		t.Errorf("RatersOf(1) = %v, want [11 10 12]", got)
	}
	if got := s.RatersOf(99); len(got) != 0 {
		t.Errorf("RatersOf(99) = %v", got)
	}
	// 10 and 12 have one rating each, 11 and 13 two each.
	if got := s.UsersByActivity(); !reflect.DeepEqual(got, []int{10, 12, 11, 13}) {
		t.Errorf("UsersByActivity() = %v", got)
	}
	if d, ok := s.Description(862); !ok || d.Title != "Toy Story" {
		t.Errorf("Description(862) = %+v, %v", d, ok)
	}
	if _, ok := s.Poster(8844); ok {
		t.Error("blank poster URL should be dropped")
	}
	if ids, ok := s.MoviesInGenre("comedy"); !ok || !reflect.DeepEqual(ids, []int{2, 1}) {
		t.Errorf("MoviesInGenre(comedy) = %v, %v", ids, ok)
	}
	if name, _ := s.CanonicalGenre("ANIMATION"); name != "Animation" {
		t.Errorf("CanonicalGenre = %q", name)
	}
	if got := s.Genres(); !reflect.DeepEqual(got, []string{"Animation", "Comedy"}) {
		t.Errorf("Genres() = %v", got)
	}
	stats := s.Stats()
	if stats["ratings"] != 6 || stats["users"] != 4 || stats["posters"] != 1 {
		t.Errorf("Stats() = %v", stats)
	}
}

func TestParseDatasetID(t *testing.T) {
	t.Parallel()

	for _, id := range AllDatasets() {
		got, err := ParseDatasetID(id.String())
		if err != nil || got != id {
			t.Errorf("round trip of %s = %v, %v", id, got, err)
		}
	}
	if got, err := ParseDatasetID(" Desc_Movies "); err != nil || got != DatasetDescriptions {
		t.Errorf("ParseDatasetID(Desc_Movies) = %v, %v", got, err)
	}
	if _, err := ParseDatasetID("os.environ"); !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("unknown dataset error = %v", err)
	}
	if !DatasetRatings.Large() || DatasetMovies.Large() {
		t.Error("only ratings is flagged large")
	}
}
