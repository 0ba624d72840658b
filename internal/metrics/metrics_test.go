// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/popular", "200"))

	RecordAPIRequest("GET", "/api/v1/popular", "200", 12*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/popular", "200"))
	if after != before+1 {
		t.Errorf("counter moved from %v to %v, want +1", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("after inc = %v, want %v", got, base+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("after dec = %v, want %v", got, base)
	}
}

func TestRecordRecommendation(t *testing.T) {
	c := RecommendationsTotal.WithLabelValues("content", "degraded")
	before := testutil.ToFloat64(c)

	RecordRecommendation("content", "degraded", 5, 3*time.Millisecond)

	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("recommendations counter = %v, want %v", got, before+1)
	}
	if n := testutil.CollectAndCount(RecommendationResults); n == 0 {
		t.Error("results histogram has no series")
	}
}

func TestRecordArtifactLoad(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome string
	}{
		{"success", nil, "ok"},
		{"failure", errors.New("missing file"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ArtifactLoadTotal.WithLabelValues("svd", tt.outcome)
			before := testutil.ToFloat64(c)
			RecordArtifactLoad("svd", tt.err)
			if got := testutil.ToFloat64(c); got != before+1 {
				t.Errorf("%s counter = %v, want %v", tt.outcome, got, before+1)
			}
		})
	}
}

func TestRecordTMDbRequest(t *testing.T) {
	c := TMDbRequestsTotal.WithLabelValues("search", "200")
	before := testutil.ToFloat64(c)
	RecordTMDbRequest("search", "200", time.Second)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("tmdb counter = %v, want %v", got, before+1)
	}
}
