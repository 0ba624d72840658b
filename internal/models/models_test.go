// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestNewSuccess(t *testing.T) {
	t.Parallel()
	start := time.Now().Add(-20 * time.Millisecond)

	resp := NewSuccess(map[string]int{"n": 1}, start)
	if resp.Status != StatusSuccess {
		t.Errorf("Status = %q", resp.Status)
	}
	if resp.Metadata.QueryTimeMS < 20 {
		t.Errorf("QueryTimeMS = %d, want >= 20", resp.Metadata.QueryTimeMS)
	}
	if resp.Error != nil {
		t.Errorf("Error = %+v, want nil", resp.Error)
	}
}

func TestNewError_JSONShape(t *testing.T) {
	t.Parallel()

	resp := NewError(&APIError{Code: "NOT_FOUND", Message: "unknown genre"})
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`"status":"error"`,
		`"data":null`,
		`"code":"NOT_FOUND"`,
		`"timestamp":`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("%s missing %s", out, want)
		}
	}
	if strings.Contains(out, "query_time_ms") {
		t.Errorf("%s: zero query time should be omitted", out)
	}
	if strings.Contains(out, "details") {
		t.Errorf("%s: empty details should be omitted", out)
	}
}
