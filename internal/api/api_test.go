// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/resolver"
)

// fakeEngine records the last call and returns canned results.
type fakeEngine struct {
	mu        sync.Mutex
	lastTitle string
	lastK     int

	contentErr error
	collabErr  error
	status     []recommend.FeatureStatus
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		status: []recommend.FeatureStatus{
			{Feature: recommend.FeatureContent, Available: true},
			{Feature: recommend.FeatureCollaborative, Available: true},
		},
	}
}

func (f *fakeEngine) remember(title string, k int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTitle, f.lastK = title, k
}

func (f *fakeEngine) last() (string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastTitle, f.lastK
}

func results(k int) []recommend.Result {
	out := make([]recommend.Result, k)
	for i := range out {
		out[i] = recommend.Result{TMDbID: i + 1, Title: fmt.Sprintf("Movie %d", i+1), Cast: []string{}}
	}
	return out
}

func (f *fakeEngine) Recommend(_ context.Context, title string, k int) (*recommend.CombinedResponse, error) {
	f.remember(title, k)
	if f.contentErr != nil && f.collabErr != nil {
		return nil, f.contentErr
	}
	return &recommend.CombinedResponse{
		Query:         title,
		ResolvedTitle: "The Dark Knight",
		Tier:          resolver.TierRich,
		Content:       results(k),
		Collaborative: results(k),
	}, nil
}

func (f *fakeEngine) ContentBased(_ context.Context, title string, k int) (*recommend.ContentResponse, error) {
	f.remember(title, k)
	if f.contentErr != nil {
		return nil, f.contentErr
	}
	return &recommend.ContentResponse{Query: title, ResolvedTitle: "The Dark Knight", Tier: resolver.TierRich, Results: results(k)}, nil
}

func (f *fakeEngine) CollaborativeFor(ctx context.Context, title string, k int) (*recommend.CollaborativeResponse, error) {
	f.remember(title, k)
	if f.collabErr != nil {
		return nil, f.collabErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &recommend.CollaborativeResponse{Query: title, ResolvedTitle: "Avatar", Tier: resolver.TierFallback, Degraded: true, Results: results(k)}, nil
}

func (f *fakeEngine) Popular(k int) []recommend.Result {
	f.remember("", k)
	return results(k)
}

func (f *fakeEngine) PopularByGenre(genre string, k int) ([]recommend.Result, string, error) {
	f.remember(genre, k)
	if genre != "action" && genre != "Action" {
		return nil, "", fmt.Errorf("%w: %q", recommend.ErrUnknownGenre, genre)
	}
	return results(k), "Action", nil
}

func (f *fakeEngine) Genres() []string { return []string{"Action", "Crime"} }

func (f *fakeEngine) Status() []recommend.FeatureStatus { return f.status }

type fakeExplorer struct{}

func (fakeExplorer) Datasets(context.Context) []catalog.DatasetInfo {
	return []catalog.DatasetInfo{
		{Name: "movies", File: "movies.csv", Available: true, Columns: []database.Column{{Name: "movieId", Type: "BIGINT"}}},
		{Name: "trailers", Error: "trailers: csv file not found"},
	}
}

func (fakeExplorer) Head(_ context.Context, id catalog.DatasetID, limit int) (*catalog.Preview, error) {
	if id == catalog.DatasetTrailers {
		return nil, fmt.Errorf("%s: %w", id, database.ErrFileNotFound)
	}
	return &catalog.Preview{Name: id.String(), Columns: []string{"movieId"}, Rows: [][]any{{1}}, Limit: limit}, nil
}

type fakeStats map[string]int

func (s fakeStats) Stats() map[string]int { return s }

type fakeBreaker string

func (b fakeBreaker) State() string { return string(b) }

type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		Timestamp time.Time `json:"timestamp"`
	} `json:"metadata"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func testOptions() Options {
	return Options{DefaultK: 5, MaxK: 20, ExploreLimit: 100, MaxExploreLimit: 500, Version: "test", CacheBackend: "memory"}
}

func newTestServer(t *testing.T, engine *fakeEngine, mwCfg *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	h, err := NewHandler(Dependencies{
		Engine:   engine,
		Explorer: fakeExplorer{},
		Catalog:  fakeStats{"movies": 6},
		Breaker:  fakeBreaker("closed"),
		Latency:  middleware.NewLatencyTracker(100, time.Second),
	}, testOptions())
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}
	return NewRouter(h, NewChiMiddleware(mwCfg))
}

func do(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode: %v\n%s", method, target, err, rec.Body.String())
		}
	}
	return rec, env
}
