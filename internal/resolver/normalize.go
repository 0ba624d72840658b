// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package resolver

import (
	"strings"
)

// richCastLimit is how many billed cast members feed the rich text.
const richCastLimit = 5

// Normalize joins parts with single spaces, lower-cases the result and drops
// every byte outside [a-z0-9 ]. Runs of spaces are preserved.
func Normalize(parts ...string) string {
	joined := strings.ToLower(strings.Join(parts, " "))
	var b strings.Builder
	b.Grow(len(joined))
	for i := 0; i < len(joined); i++ {
		c := joined[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == ' ' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// squash removes spaces so a multi-word name becomes one token.
func squash(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// ThinText builds the text for the thin tier: title and overview.
func ThinText(m SearchResult) string {
	return Normalize(m.Title, m.Overview)
}

// RichText builds the text for the rich tier: title, overview, the first five
// cast names and every keyword with inner spaces removed, and genre names.
func RichText(d *MovieDetails) string {
	cast := d.Credits.Cast
	if len(cast) > richCastLimit {
		cast = cast[:richCastLimit]
	}
	names := make([]string, len(cast))
	for i, c := range cast {
		names[i] = squash(c.Name)
	}

	genres := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		genres[i] = g.Name
	}

	keywords := make([]string, len(d.Keywords.Keywords))
	for i, k := range d.Keywords.Keywords {
		keywords[i] = squash(k.Name)
	}

	return Normalize(
		d.Title,
		d.Overview,
		strings.Join(names, " "),
		strings.Join(genres, " "),
		strings.Join(keywords, " "),
	)
}
