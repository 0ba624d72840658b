// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend/algorithms"
	"github.com/tomtom215/marquee/internal/resolver"
)

// TitleResolver maps a free-text title to a canonical one.
// *resolver.Resolver implements it.
type TitleResolver interface {
	Resolve(ctx context.Context, title string) resolver.Result
}

// Models holds the optional precomputed models. A nil field disables the
// features that depend on it.
type Models struct {
	Encoder   algorithms.Encoder
	Index     algorithms.Index
	Predictor algorithms.Predictor
}

// Engine serves recommendations. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	store    *catalog.Store
	resolver TitleResolver

	encoder   algorithms.Encoder
	index     algorithms.Index
	predictor algorithms.Predictor

	// candidates are the internal movieIds of the distinct corpus movies,
	// the items the predictor is asked about.
	candidates []int

	// unavailable maps a disabled feature to the reason.
	unavailable map[Feature]string

	// Random source for sampling (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEngine creates a recommendation engine over a loaded catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store *catalog.Store, res TitleResolver, models Models, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	if res == nil {
		return nil, errors.New("title resolver is required")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		config:      cfg,
		logger:      logger.With().Str("component", "recommend").Logger(),
		store:       store,
		resolver:    res,
		encoder:     models.Encoder,
		index:       models.Index,
		predictor:   models.Predictor,
		unavailable: make(map[Feature]string),
		rng:         rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation sampling
	}

	if reason := e.checkContent(); reason != "" {
		e.disable(FeatureContent, reason)
	}
	if e.predictor == nil {
		e.disable(FeatureCollaborative, "rating predictor not loaded")
	} else {
		e.candidates = e.collaborativeCandidates()
	}

	e.logger.Info().
		Bool("content", e.Available(FeatureContent)).
		Bool("collaborative", e.Available(FeatureCollaborative)).
		Int("corpus_rows", store.Corpus().Len()).
		Int("candidates", len(e.candidates)).
		Msg("recommendation engine ready")

	return e, nil
}

// checkContent returns why the content feature cannot run, or "".
func (e *Engine) checkContent() string {
	switch {
	case e.encoder == nil:
		return "vectorizer not loaded"
	case e.index == nil:
		return "similarity matrix not loaded"
	case e.encoder.Features() != e.index.Cols():
		return fmt.Sprintf("vectorizer has %d features but matrix has %d columns", e.encoder.Features(), e.index.Cols())
	}

	corpus := e.store.Corpus()
	if ids := e.index.RowIDs(); ids != nil {
		if err := corpus.CheckAlignment(ids); err != nil {
			return err.Error()
		}
	} else if e.index.Rows() != corpus.Len() {
		return fmt.Sprintf("%v: matrix has %d rows, corpus has %d", catalog.ErrMisaligned, e.index.Rows(), corpus.Len())
	}
	return ""
}

func (e *Engine) disable(f Feature, reason string) {
	e.unavailable[f] = reason
	e.logger.Warn().Str("feature", string(f)).Str("reason", reason).Msg("recommendation feature disabled")
}

// collaborativeCandidates maps the distinct corpus TMDb ids to internal
// movieIds, the id space the predictor was trained on.
func (e *Engine) collaborativeCandidates() []int {
	links := e.store.Links()
	ids := e.store.Corpus().DistinctTMDbIDs()
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, tmdbID := range ids {
		movieID, ok := links.MovieID(tmdbID)
		if !ok {
			continue
		}
		if _, dup := seen[movieID]; dup {
			continue
		}
		seen[movieID] = struct{}{}
		out = append(out, movieID)
	}
	return out
}

// Available reports whether feature can serve requests.
func (e *Engine) Available(f Feature) bool {
	_, disabled := e.unavailable[f]
	return !disabled
}

// Status reports every model-backed feature.
func (e *Engine) Status() []FeatureStatus {
	features := []Feature{FeatureContent, FeatureCollaborative}
	out := make([]FeatureStatus, len(features))
	for i, f := range features {
		reason, disabled := e.unavailable[f]
		out[i] = FeatureStatus{Feature: f, Available: !disabled, Reason: reason}
	}
	return out
}

// ContentBased recommends movies similar to title. When the title cannot be
// resolved it answers with popular picks and marks the response degraded.
func (e *Engine) ContentBased(ctx context.Context, title string, k int) (*ContentResponse, error) {
	start := time.Now()
	if !e.Available(FeatureContent) {
		e.record(strategyContent, outcomeUnavailable, 0, start)
		return nil, fmt.Errorf("%w: %s", ErrFeatureUnavailable, FeatureContent)
	}
	k = e.config.NormalizeK(k)

	res := e.resolver.Resolve(ctx, title)
	resp := &ContentResponse{
		Query:         title,
		ResolvedTitle: res.CanonicalTitle,
		Tier:          res.Tier,
		Degraded:      res.Degraded,
	}
	resp.Results = e.contentResults(res, k)

	outcome := outcomeOK
	if res.Degraded {
		outcome = outcomeFallback
	}
	e.record(strategyContent, outcome, len(resp.Results), start)
	return resp, nil
}

// contentResults runs the similarity search for a resolution, or the
// popularity fallback when it is degraded.
func (e *Engine) contentResults(res resolver.Result, k int) []Result {
	if res.Degraded {
		return e.PopularPicks(e.store.Descriptions(), k)
	}

	query := e.encoder.Transform(res.NormalizedText)
	matches := e.index.TopN(query, e.config.SimilarityPool)

	corpus := e.store.Corpus()
	pool := make([]Result, 0, len(matches))
	for _, m := range matches {
		entry := corpus.Entry(m.Row)
		poster, ok := e.store.Poster(entry.TMDbID)
		if !ok {
			continue
		}
		pool = append(pool, Result{
			TMDbID:    entry.TMDbID,
			Title:     entry.Title,
			Overview:  entry.Overview,
			PosterURL: poster,
			Cast:      entry.Cast,
		})
	}

	e.logger.Debug().
		Str("canonical_title", res.CanonicalTitle).
		Int("query_terms", query.Len()).
		Int("matches", len(matches)).
		Int("postered", len(pool)).
		Msg("content similarity search")

	return sample(e, pool, k)
}

// Collaborative recommends movies liked by users who rated canonicalTitle.
// An unknown title, or one nobody rated, draws the cohort from the least
// active users instead.
func (e *Engine) Collaborative(ctx context.Context, canonicalTitle string, k int) ([]Result, error) {
	start := time.Now()
	if !e.Available(FeatureCollaborative) {
		e.record(strategyCollaborative, outcomeUnavailable, 0, start)
		return nil, fmt.Errorf("%w: %s", ErrFeatureUnavailable, FeatureCollaborative)
	}

	results, err := e.collaborative(ctx, canonicalTitle, e.config.NormalizeK(k))
	if err != nil {
		e.record(strategyCollaborative, outcomeError, 0, start)
		return nil, err
	}

	outcome := outcomeOK
	if len(results) == 0 {
		outcome = outcomeEmpty
	}
	e.record(strategyCollaborative, outcome, len(results), start)
	return results, nil
}

// CollaborativeFor resolves title first and runs Collaborative on the
// canonical title. When scoring runs out of time the response carries
// popular picks and is marked degraded.
func (e *Engine) CollaborativeFor(ctx context.Context, title string, k int) (*CollaborativeResponse, error) {
	if !e.Available(FeatureCollaborative) {
		e.record(strategyCollaborative, outcomeUnavailable, 0, time.Now())
		return nil, fmt.Errorf("%w: %s", ErrFeatureUnavailable, FeatureCollaborative)
	}

	res := e.resolver.Resolve(ctx, title)
	resp := &CollaborativeResponse{
		Query:         title,
		ResolvedTitle: res.CanonicalTitle,
		Tier:          res.Tier,
		Degraded:      res.Degraded,
	}

	results, err := e.Collaborative(ctx, res.CanonicalTitle, k)
	switch {
	case err == nil:
		resp.Results = results
	case errors.Is(err, context.DeadlineExceeded):
		e.logger.Warn().Err(err).Str("canonical_title", res.CanonicalTitle).Msg("collaborative scoring timed out, serving popular picks")
		start := time.Now()
		resp.Results = e.PopularPicks(e.store.Descriptions(), e.config.NormalizeK(k))
		resp.Degraded = true
		e.record(strategyCollaborative, outcomeFallback, len(resp.Results), start)
	default:
		return nil, err
	}
	return resp, nil
}

func (e *Engine) collaborative(ctx context.Context, canonicalTitle string, k int) ([]Result, error) {
	users := sample(e, e.cohort(canonicalTitle), e.config.CohortSize)

	seen := make(map[string]struct{})
	var out []Result
	for _, userID := range users {
		if algorithms.ContextCancelled(ctx) {
			return nil, fmt.Errorf("collaborative scoring: %w", ctx.Err())
		}
		for _, p := range algorithms.Rank(e.predictor, userID, e.candidates, k) {
			r, ok := e.movieResult(p.ItemID)
			if !ok {
				continue
			}
			key := r.key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, r)
		}
	}

	e.logger.Debug().
		Str("canonical_title", canonicalTitle).
		Int("cohort", len(users)).
		Int("results", len(out)).
		Msg("collaborative scoring")

	return sample(e, out, k), nil
}

// cohort returns the raters of canonicalTitle, highest rating first, or
// every user ordered by ascending activity when there are none.
func (e *Engine) cohort(canonicalTitle string) []int {
	if entry, ok := e.store.Corpus().FindByTitle(canonicalTitle); ok {
		if movieID, ok := e.store.Links().MovieID(entry.TMDbID); ok {
			if raters := e.store.RatersOf(movieID); len(raters) > 0 {
				return raters
			}
		}
	}
	return e.store.UsersByActivity()
}

// movieResult joins an internal movieId through movies, links,
// descriptions and posters. Any missing link drops the movie.
func (e *Engine) movieResult(movieID int) (Result, bool) {
	if _, ok := e.store.Movie(movieID); !ok {
		return Result{}, false
	}
	tmdbID, ok := e.store.Links().TMDbID(movieID)
	if !ok {
		return Result{}, false
	}
	desc, ok := e.store.Description(tmdbID)
	if !ok {
		return Result{}, false
	}
	poster, ok := e.store.Poster(tmdbID)
	if !ok {
		return Result{}, false
	}
	return Result{
		TMDbID:    tmdbID,
		Title:     desc.Title,
		Overview:  desc.Overview,
		PosterURL: poster,
		Cast:      desc.Cast,
	}, true
}

// Recommend resolves title once and runs both strategies on the result.
// A strategy whose model is missing, or whose scoring fails, is listed in
// Unavailable; the call fails only when neither can run or the caller
// went away.
func (e *Engine) Recommend(ctx context.Context, title string, k int) (*CombinedResponse, error) {
	contentOK := e.Available(FeatureContent)
	collabOK := e.Available(FeatureCollaborative)
	if !contentOK && !collabOK {
		return nil, fmt.Errorf("%w: %s and %s", ErrFeatureUnavailable, FeatureContent, FeatureCollaborative)
	}
	k = e.config.NormalizeK(k)

	res := e.resolver.Resolve(ctx, title)
	resp := &CombinedResponse{
		Query:         title,
		ResolvedTitle: res.CanonicalTitle,
		Tier:          res.Tier,
		Degraded:      res.Degraded,
		Content:       []Result{},
		Collaborative: []Result{},
	}

	if contentOK {
		start := time.Now()
		resp.Content = e.contentResults(res, k)
		outcome := outcomeOK
		if res.Degraded {
			outcome = outcomeFallback
		}
		e.record(strategyContent, outcome, len(resp.Content), start)
	} else {
		resp.Unavailable = append(resp.Unavailable, FeatureContent)
	}

	if collabOK {
		results, err := e.Collaborative(ctx, res.CanonicalTitle, k)
		switch {
		case err == nil:
			resp.Collaborative = results
		case errors.Is(err, context.Canceled):
			return nil, err
		default:
			// Content results are already computed; keep them.
			e.logger.Warn().Err(err).Str("canonical_title", res.CanonicalTitle).Msg("collaborative scoring failed, serving content only")
			resp.Unavailable = append(resp.Unavailable, FeatureCollaborative)
			resp.Degraded = true
		}
	} else {
		resp.Unavailable = append(resp.Unavailable, FeatureCollaborative)
	}

	return resp, nil
}

// PopularPicks samples k movies from the PopularPool most popular entries
// of pool that have a poster.
func (e *Engine) PopularPicks(pool []catalog.Description, k int) []Result {
	scores := make([]float64, len(pool))
	for i, d := range pool {
		scores[i] = d.Popularity
	}

	top := algorithms.TopN(scores, e.config.PopularPool)
	picks := make([]Result, 0, len(top))
	for _, pos := range top {
		d := pool[pos]
		poster, ok := e.store.Poster(d.TMDbID)
		if !ok {
			continue
		}
		picks = append(picks, Result{
			TMDbID:    d.TMDbID,
			Title:     d.Title,
			Overview:  d.Overview,
			PosterURL: poster,
			Cast:      d.Cast,
		})
	}
	return sample(e, picks, k)
}

// Popular samples popular movies from the whole catalog.
func (e *Engine) Popular(k int) []Result {
	start := time.Now()
	results := e.PopularPicks(e.store.Descriptions(), e.config.NormalizeK(k))
	e.record(strategyPopular, outcomeOK, len(results), start)
	return results
}

// PopularByGenre samples popular movies flagged with genre. It returns the
// genre as spelled in the catalog.
func (e *Engine) PopularByGenre(genre string, k int) ([]Result, string, error) {
	start := time.Now()
	name, ok := e.store.CanonicalGenre(genre)
	if !ok {
		e.record(strategyGenre, outcomeEmpty, 0, start)
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownGenre, genre)
	}

	movieIDs, _ := e.store.MoviesInGenre(name)
	links := e.store.Links()
	pool := make([]catalog.Description, 0, len(movieIDs))
	seen := make(map[int]struct{}, len(movieIDs))
	for _, movieID := range movieIDs {
		tmdbID, ok := links.TMDbID(movieID)
		if !ok {
			continue
		}
		if _, dup := seen[tmdbID]; dup {
			continue
		}
		desc, ok := e.store.Description(tmdbID)
		if !ok {
			continue
		}
		seen[tmdbID] = struct{}{}
		pool = append(pool, desc)
	}

	results := e.PopularPicks(pool, e.config.NormalizeK(k))
	e.record(strategyGenre, outcomeOK, len(results), start)
	return results, name, nil
}

// Genres lists the catalog genres.
func (e *Engine) Genres() []string {
	return e.store.Genres()
}

func (e *Engine) record(strategy, outcome string, results int, start time.Time) {
	metrics.RecordRecommendation(strategy, outcome, results, time.Since(start))
}

// perm returns a random permutation of [0,n).
// This method is safe for concurrent use.
func (e *Engine) perm(n int) []int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Perm(n)
}

// sample returns n items chosen uniformly without replacement, in random
// order. When items has n or fewer entries it is returned as is.
func sample[T any](e *Engine, items []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if len(items) <= n {
		if items == nil {
			return []T{}
		}
		return items
	}
	out := make([]T, n)
	for i, pos := range e.perm(len(items))[:n] {
		out[i] = items[pos]
	}
	return out
}
