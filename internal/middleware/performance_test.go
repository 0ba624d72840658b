// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestLatencyTracker_SlidingWindow(t *testing.T) {
	t.Parallel()
	lt := NewLatencyTracker(3, time.Second)

	for i := int64(1); i <= 5; i++ {
		lt.Record(RequestSample{Route: "/a", Method: "GET", DurationMS: i})
	}
	if lt.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", lt.Len())
	}

	stats := lt.Stats()
	if len(stats) != 1 {
		t.Fatalf("Stats() = %+v", stats)
	}
	// Samples 3, 4, 5 remain.
	if stats[0].AvgMS != 4 || stats[0].MaxMS != 5 || stats[0].P50MS != 4 {
		t.Errorf("Stats()[0] = %+v", stats[0])
	}
}

func TestLatencyTracker_StatsOrdering(t *testing.T) {
	t.Parallel()
	lt := NewLatencyTracker(100, time.Second)

	lt.Record(RequestSample{Route: "/popular", Method: "GET", DurationMS: 2})
	for i := 0; i < 3; i++ {
		lt.Record(RequestSample{Route: "/recommendations", Method: "GET", DurationMS: 10})
	}

	stats := lt.Stats()
	if len(stats) != 2 {
		t.Fatalf("got %d endpoints", len(stats))
	}
	if stats[0].Endpoint != "GET /recommendations" || stats[0].RequestCount != 3 {
		t.Errorf("busiest = %+v", stats[0])
	}
}

func TestLatencyTracker_MiddlewareUsesRoutePattern(t *testing.T) {
	t.Parallel()
	lt := NewLatencyTracker(10, time.Second)

	r := chi.NewRouter()
	r.Use(lt.Middleware)
	r.Get("/datasets/{name}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, name := range []string{"movies", "ratings"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datasets/"+name, nil))
	}

	stats := lt.Stats()
	if len(stats) != 1 || stats[0].Endpoint != "GET /datasets/{name}" || stats[0].RequestCount != 2 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestLatencyTracker_Concurrent(t *testing.T) {
	t.Parallel()
	lt := NewLatencyTracker(50, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				lt.Record(RequestSample{Route: "/x", Method: "GET", DurationMS: int64(j)})
				_ = lt.Stats()
			}
		}()
	}
	wg.Wait()

	if lt.Len() != 50 {
		t.Errorf("Len() = %d, want 50", lt.Len())
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sorted []int64
		p      float64
		want   int64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []int64{7}, 0.99, 7},
		{"median", []int64{1, 2, 3, 4, 5}, 0.5, 3},
		{"p95 of ten", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.95, 9},
	}
	for _, tt := range tests {
		if got := percentile(tt.sorted, tt.p); got != tt.want {
			t.Errorf("%s: percentile = %d, want %d", tt.name, got, tt.want)
		}
	}
}
