// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

const testAPIKey = "test-key"

const darkKnightDetails = `{
	"id": 155,
	"title": "The Dark Knight",
	"overview": "Batman raises the stakes.",
	"genres": [{"id": 28, "name": "Action"}, {"id": 80, "name": "Crime"}],
	"credits": {"cast": [
		{"name": "Christian Bale", "order": 0},
		{"name": "Heath Ledger", "order": 1},
		{"name": "Aaron Eckhart", "order": 2},
		{"name": "Michael Caine", "order": 3},
		{"name": "Maggie Gyllenhaal", "order": 4},
		{"name": "Gary Oldman", "order": 5}
	]},
	"keywords": {"keywords": [{"id": 1, "name": "dc comics"}, {"id": 2, "name": "Joker"}]}
}`

const darkKnightRichText = "the dark knight batman raises the stakes " +
	"christianbale heathledger aaroneckhart michaelcaine maggiegyllenhaal " +
	"action crime dccomics joker"

// fakeTMDb serves the two endpoints the client uses.
type fakeTMDb struct {
	searches    atomic.Int32
	details     atomic.Int32
	failDetails atomic.Bool
}

func (f *fakeTMDb) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		f.searches.Add(1)
		if r.URL.Query().Get("api_key") != testAPIKey {
			http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
			return
		}
		switch strings.ToLower(r.URL.Query().Get("query")) {
		case "the dark knight":
			_, _ = w.Write([]byte(`{"page":1,"total_results":2,"results":[
				{"id":155,"title":"The Dark Knight","overview":"Batman raises the stakes.","release_date":"2008-07-16"},
				{"id":49026,"title":"The Dark Knight Rises","overview":"Eight years later."}]}`))
		case "slow":
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
			_, _ = w.Write([]byte(`{"results":[]}`))
		case "untitled":
			_, _ = w.Write([]byte(`{"results":[{"id":7,"title":"","overview":"x"}]}`))
		default:
			_, _ = w.Write([]byte(`{"page":1,"total_results":0,"results":[]}`))
		}
	})
	mux.HandleFunc("/movie/155", func(w http.ResponseWriter, r *http.Request) {
		f.details.Add(1)
		if f.failDetails.Load() {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}
		if got := r.URL.Query().Get("append_to_response"); got != "credits,keywords" {
			http.Error(w, "missing append_to_response", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(darkKnightDetails))
	})
	return mux
}

func testTMDbConfig(baseURL string) config.TMDbConfig {
	return config.TMDbConfig{
		APIKey:             testAPIKey,
		BaseURL:            baseURL,
		Language:           "en",
		Timeout:            2 * time.Second,
		RequestsPerSecond:  1000,
		Burst:              100,
		BreakerMaxRequests: 1,
		BreakerInterval:    time.Minute,
		BreakerTimeout:     time.Minute,
		BreakerFailures:    3,
	}
}

func newTestResolver(t *testing.T, fake *fakeTMDb, cache Cache, timeout time.Duration) *Resolver {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	cfg := testTMDbConfig(srv.URL)
	source := NewCircuitBreakerClient(NewTMDbClient(cfg), cfg)
	return New(DefaultStrategies(source), Options{
		DefaultTitle: "Avatar (2009)",
		Timeout:      timeout,
		Cache:        cache,
		Logger:       logging.NewTestLogger(nil),
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{name: "lowercases and strips punctuation", parts: []string{"Spider-Man: No Way Home!"}, want: "spiderman no way home"},
		{name: "joins with spaces", parts: []string{"Up", "A balloon house."}, want: "up a balloon house"},
		{name: "drops non ascii letters", parts: []string{"Amélie"}, want: "amlie"},
		{name: "keeps digits", parts: []string{"2001: A Space Odyssey"}, want: "2001 a space odyssey"},
		{name: "empty", parts: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.parts...); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestTMDbClient(t *testing.T) {
	t.Parallel()
	fake := &fakeTMDb{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	client := NewTMDbClient(testTMDbConfig(srv.URL))
	ctx := context.Background()

	t.Run("search returns hits in order", func(t *testing.T) {
		hits, err := client.SearchMovie(ctx, "The Dark Knight")
		if err != nil {
			t.Fatalf("SearchMovie() error = %v", err)
		}
		if len(hits) != 2 || hits[0].ID != 155 {
			t.Errorf("SearchMovie() = %+v, want The Dark Knight first", hits)
		}
	})

	t.Run("empty search is ErrNoMatch", func(t *testing.T) {
		if _, err := client.SearchMovie(ctx, "zzzznonexistentmovie123"); !errors.Is(err, ErrNoMatch) {
			t.Errorf("SearchMovie() error = %v, want ErrNoMatch", err)
		}
	})

	t.Run("details decode credits and keywords", func(t *testing.T) {
		d, err := client.MovieDetails(ctx, 155)
		if err != nil {
			t.Fatalf("MovieDetails() error = %v", err)
		}
		if got := RichText(d); got != darkKnightRichText {
			t.Errorf("RichText() = %q, want %q", got, darkKnightRichText)
		}
	})

	t.Run("unknown movie is ErrNoMatch", func(t *testing.T) {
		if _, err := client.MovieDetails(ctx, 999); !errors.Is(err, ErrNoMatch) {
			t.Errorf("MovieDetails(999) error = %v, want ErrNoMatch", err)
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := testTMDbConfig(srv.URL)
		cfg.APIKey = ""
		if _, err := NewTMDbClient(cfg).SearchMovie(ctx, "The Dark Knight"); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("SearchMovie() error = %v, want ErrNotConfigured", err)
		}
	})
}

func TestTMDbClient_RetriesTooManyRequests(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"Heat","overview":"Cops and robbers."}]}`))
	}))
	t.Cleanup(srv.Close)

	hits, err := NewTMDbClient(testTMDbConfig(srv.URL)).SearchMovie(context.Background(), "heat")
	if err != nil {
		t.Fatalf("SearchMovie() error = %v", err)
	}
	if len(hits) != 1 || calls.Load() != 2 {
		t.Errorf("hits = %d calls = %d, want 1 hit after 2 calls", len(hits), calls.Load())
	}
}

func TestTMDbClient_ServerErrorIncludesBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance window", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := NewTMDbClient(testTMDbConfig(srv.URL)).SearchMovie(context.Background(), "heat")
	if err == nil || !strings.Contains(err.Error(), "maintenance window") || !strings.Contains(err.Error(), "503") {
		t.Errorf("SearchMovie() error = %v, want status and body", err)
	}
}

func TestResolver_RichMatch(t *testing.T) {
	t.Parallel()
	fake := &fakeTMDb{}
	r := newTestResolver(t, fake, nil, time.Second)

	res := r.Resolve(context.Background(), "The Dark Knight")
	if res.Tier != TierRich || res.Degraded {
		t.Fatalf("Resolve() = %+v, want rich and not degraded", res)
	}
	if res.CanonicalTitle != "The Dark Knight" || res.TMDbID != 155 {
		t.Errorf("Resolve() canonical = %q/%d", res.CanonicalTitle, res.TMDbID)
	}
	if res.NormalizedText != darkKnightRichText {
		t.Errorf("NormalizedText = %q, want %q", res.NormalizedText, darkKnightRichText)
	}
	if res.Query != "The Dark Knight" {
		t.Errorf("Query = %q", res.Query)
	}
}

func TestResolver_ThinWhenDetailsFail(t *testing.T) {
	t.Parallel()
	fake := &fakeTMDb{}
	fake.failDetails.Store(true)
	r := newTestResolver(t, fake, nil, time.Second)

	res := r.Resolve(context.Background(), "the dark knight")
	if res.Tier != TierThin || res.Degraded {
		t.Fatalf("Resolve() = %+v, want thin", res)
	}
	if res.NormalizedText != "the dark knight batman raises the stakes" {
		t.Errorf("NormalizedText = %q", res.NormalizedText)
	}
	if fake.searches.Load() != 2 {
		t.Errorf("searches = %d, want 2 (rich then thin)", fake.searches.Load())
	}
}

func TestResolver_FallbackForUnknownTitle(t *testing.T) {
	t.Parallel()
	fake := &fakeTMDb{}
	r := newTestResolver(t, fake, nil, time.Second)

	res := r.Resolve(context.Background(), "zzzznonexistentmovie123")
	if res.Tier != TierFallback || !res.Degraded {
		t.Fatalf("Resolve() = %+v, want degraded fallback", res)
	}
	if res.CanonicalTitle != "Avatar (2009)" {
		t.Errorf("CanonicalTitle = %q, want the configured default", res.CanonicalTitle)
	}
	if res.NormalizedText != "" {
		t.Errorf("NormalizedText = %q, want empty", res.NormalizedText)
	}
	if fake.searches.Load() != 2 {
		t.Errorf("searches = %d, want rich and thin attempts", fake.searches.Load())
	}
}

func TestResolver_MalformedHitFallsBack(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, &fakeTMDb{}, nil, time.Second)

	if res := r.Resolve(context.Background(), "untitled"); res.Tier != TierFallback {
		t.Errorf("Resolve() tier = %s, want fallback", res.Tier)
	}
}

func TestResolver_TimeoutCountsAsFailure(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t, &fakeTMDb{}, nil, 50*time.Millisecond)

	start := time.Now()
	res := r.Resolve(context.Background(), "slow")
	if res.Tier != TierFallback {
		t.Errorf("Resolve() tier = %s, want fallback", res.Tier)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Resolve() took %v, want bounded by the tier timeouts", elapsed)
	}
}

func TestResolver_BlankTitle(t *testing.T) {
	t.Parallel()
	fake := &fakeTMDb{}
	r := newTestResolver(t, fake, nil, time.Second)

	if res := r.Resolve(context.Background(), "   "); !res.Degraded {
		t.Errorf("Resolve(blank) = %+v, want degraded", res)
	}
	if fake.searches.Load() != 0 {
		t.Error("blank title reached TMDb")
	}
}

func TestResolver_CachesSuccessOnly(t *testing.T) {
	t.Parallel()
	fake := &fakeTMDb{}
	cache := NewMemoryCache(16, time.Hour)
	r := newTestResolver(t, fake, cache, time.Second)
	ctx := context.Background()

	first := r.Resolve(ctx, "The Dark Knight")
	second := r.Resolve(ctx, "the  dark KNIGHT")
	if first.Cached || !second.Cached {
		t.Errorf("Cached = %v then %v, want false then true", first.Cached, second.Cached)
	}
	if second.CanonicalTitle != first.CanonicalTitle || second.NormalizedText != first.NormalizedText {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
	if second.Query != "the  dark KNIGHT" {
		t.Errorf("cached Query = %q, want the new query", second.Query)
	}
	if fake.searches.Load() != 1 {
		t.Errorf("searches = %d, want 1", fake.searches.Load())
	}

	r.Resolve(ctx, "zzzznonexistentmovie123")
	if cache.Len() != 1 {
		t.Errorf("cache size = %d, want fallback results left uncached", cache.Len())
	}
}

// failingSource always returns a transport-style error.
type failingSource struct {
	calls atomic.Int32
}

func (f *failingSource) SearchMovie(context.Context, string) ([]SearchResult, error) {
	f.calls.Add(1)
	return nil, errors.New("connection refused")
}

func (f *failingSource) MovieDetails(context.Context, int) (*MovieDetails, error) {
	f.calls.Add(1)
	return nil, errors.New("connection refused")
}

func TestCircuitBreakerClient_OpensAfterFailures(t *testing.T) {
	t.Parallel()
	src := &failingSource{}
	cb := NewCircuitBreakerClient(src, testTMDbConfig("http://unused"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cb.SearchMovie(ctx, "heat"); err == nil || errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("call %d error = %v, want upstream failure", i, err)
		}
	}
	if _, err := cb.SearchMovie(ctx, "heat"); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("fourth call error = %v, want ErrCircuitOpen", err)
	}
	if src.calls.Load() != 3 {
		t.Errorf("source calls = %d, want 3", src.calls.Load())
	}
	if cb.State() != "open" {
		t.Errorf("State() = %s, want open", cb.State())
	}
}

// noMatchSource answers every search with ErrNoMatch.
type noMatchSource struct{}

func (noMatchSource) SearchMovie(context.Context, string) ([]SearchResult, error) {
	return nil, ErrNoMatch
}

func (noMatchSource) MovieDetails(context.Context, int) (*MovieDetails, error) {
	return nil, ErrNoMatch
}

func TestCircuitBreakerClient_NoMatchDoesNotTrip(t *testing.T) {
	t.Parallel()
	cb := NewCircuitBreakerClient(noMatchSource{}, testTMDbConfig("http://unused"))

	for i := 0; i < 10; i++ {
		if _, err := cb.SearchMovie(context.Background(), "x"); !errors.Is(err, ErrNoMatch) {
			t.Fatalf("call %d error = %v, want ErrNoMatch", i, err)
		}
	}
	if cb.State() != "closed" {
		t.Errorf("State() = %s, want closed", cb.State())
	}
}

// blockingSource hangs until the caller's context ends.
type blockingSource struct {
	calls atomic.Int32
}

func (b *blockingSource) SearchMovie(ctx context.Context, _ string) ([]SearchResult, error) {
	b.calls.Add(1)
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingSource) MovieDetails(ctx context.Context, _ int) (*MovieDetails, error) {
	b.calls.Add(1)
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestCircuitBreakerClient_CanceledCallsDoNotTrip(t *testing.T) {
	t.Parallel()
	src := &blockingSource{}
	cb := NewCircuitBreakerClient(src, testTMDbConfig("http://unused"))

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := cb.SearchMovie(ctx, "heat"); !errors.Is(err, context.Canceled) {
			t.Fatalf("call %d error = %v, want context.Canceled", i, err)
		}
	}
	if cb.State() != "closed" {
		t.Errorf("State() = %s, want closed", cb.State())
	}
	if src.calls.Load() != 10 {
		t.Errorf("source calls = %d, want 10", src.calls.Load())
	}
}

func TestCircuitBreakerClient_DeadlinesTrip(t *testing.T) {
	t.Parallel()
	cb := NewCircuitBreakerClient(&blockingSource{}, testTMDbConfig("http://unused"))

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		_, _ = cb.SearchMovie(ctx, "heat")
		cancel()
	}
	if cb.State() != "open" {
		t.Errorf("State() = %s, want open", cb.State())
	}
}

func TestResolver_LeavesHalfTheDeadline(t *testing.T) {
	t.Parallel()
	src := &blockingSource{}
	r := New(DefaultStrategies(src), Options{
		DefaultTitle: "Avatar (2009)",
		Timeout:      50 * time.Millisecond,
		Logger:       logging.NewTestLogger(nil),
	})

	// Two tiers of 50ms would use the whole 100ms request.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	res := r.Resolve(ctx, "Heat")
	if res.Tier != TierFallback || !res.Degraded {
		t.Errorf("Resolve() = %+v, want degraded fallback", res)
	}
	if ctx.Err() != nil {
		t.Fatal("resolution consumed the caller's whole deadline")
	}
	deadline, _ := ctx.Deadline()
	if left := time.Until(deadline); left < 20*time.Millisecond {
		t.Errorf("time left after resolution = %v, want about half the budget", left)
	}
}
