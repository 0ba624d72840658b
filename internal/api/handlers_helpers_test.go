// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"heat", "heat"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"amélie", "amélie"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"k":1}`))
	b := generateETag([]byte(`{"k":2}`))
	if a == "" || a == b {
		t.Errorf("etags %q and %q", a, b)
	}
	if generateETag([]byte(`{"k":1}`)) != a {
		t.Error("etag not deterministic")
	}
}

func TestIntParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 5, false},
		{"k=", 5, false},
		{"k=12", 12, false},
		{"k=+3", 3, false},
		{"k=-2", -2, false},
		{"k=1.5", 0, true},
		{"k=ten", 0, true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		got, apiErr := intParam(r, "k", 5)
		if (apiErr != nil) != tt.wantErr {
			t.Errorf("intParam(%q) error = %v, wantErr %v", tt.query, apiErr, tt.wantErr)
			continue
		}
		if apiErr == nil && got != tt.want {
			t.Errorf("intParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
		if apiErr != nil && apiErr.Code != codeValidation {
			t.Errorf("intParam(%q) code = %s", tt.query, apiErr.Code)
		}
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       interface{}
		wantField string
	}{
		{"valid", &RecommendRequest{Title: "Heat", K: 5, MaxK: 50}, ""},
		{"missing title", &RecommendRequest{K: 5, MaxK: 50}, "title"},
		{"k over max", &RecommendRequest{Title: "Heat", K: 51, MaxK: 50}, "k"},
		{"limit over max", &DatasetRequest{Name: "movies", Limit: 11, MaxLimit: 10}, "limit"},
		{"popular valid", &PopularRequest{K: 1, MaxK: 1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			apiErr := validateRequest(tt.req)
			if tt.wantField == "" {
				if apiErr != nil {
					t.Errorf("unexpected error %+v", apiErr)
				}
				return
			}
			if apiErr == nil {
				t.Fatal("expected validation error")
			}
			if apiErr.Code != codeValidation || apiErr.Details["field"] != tt.wantField {
				t.Errorf("apiErr = %+v", apiErr)
			}
		})
	}
}
