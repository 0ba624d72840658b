// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import "strings"

// ParseCastList decodes the list literal the scraper wrote into the casts
// column, e.g. ['Sam Worthington', "Chris O'Donnell"]. Items may be single or
// double quoted. Input that is not a bracketed list is treated as one
// comma-separated string.
func ParseCastList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "[]" {
		return nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return splitPlain(s)
	}

	body := s[1 : len(s)-1]
	var (
		out   []string
		cur   strings.Builder
		quote rune
		esc   bool
	)
	for _, r := range body {
		switch {
		case quote == 0:
			if r == '\'' || r == '"' {
				quote = r
				cur.Reset()
			}
		case esc:
			cur.WriteRune(r)
			esc = false
		case r == '\\':
			esc = true
		case r == quote:
			if name := strings.TrimSpace(cur.String()); name != "" {
				out = append(out, name)
			}
			quote = 0
		default:
			cur.WriteRune(r)
		}
	}
	if len(out) == 0 {
		return splitPlain(body)
	}
	return out
}

func splitPlain(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
