// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
tmdb.go - TMDb v3 API client

Client Features:
  - HTTP client with configurable timeout
  - Client-side rate limiting (golang.org/x/time/rate)
  - Automatic HTTP 429 handling with exponential backoff and Retry-After
  - Bounded error body reads
  - Context support for cancellation and timeouts

Only the two endpoints the resolver needs are implemented:

	GET /search/movie?query=...
	GET /movie/{id}?append_to_response=credits,keywords
*/

package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
)

// maxErrorBodySize limits how much of an error response is read.
const maxErrorBodySize = 64 * 1024

// readBodyForError reads at most maxErrorBodySize bytes for error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// SearchResult is one hit of /search/movie.
type SearchResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
}

// SearchResponse is the /search/movie envelope.
type SearchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

// Genre is a TMDb genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is a billed cast entry.
type CastMember struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Keyword is a TMDb keyword.
type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is /movie/{id} with credits and keywords appended.
type MovieDetails struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Overview string  `json:"overview"`
	Genres   []Genre `json:"genres"`
	Credits  struct {
		Cast []CastMember `json:"cast"`
	} `json:"credits"`
	Keywords struct {
		Keywords []Keyword `json:"keywords"`
	} `json:"keywords"`
}

// MovieSource is the subset of TMDb the strategies depend on.
type MovieSource interface {
	SearchMovie(ctx context.Context, query string) ([]SearchResult, error)
	MovieDetails(ctx context.Context, id int) (*MovieDetails, error)
}

// TMDbClient talks to the TMDb v3 REST API.
type TMDbClient struct {
	baseURL        string
	apiKey         string
	language       string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewTMDbClient creates a client from configuration.
func NewTMDbClient(cfg config.TMDbConfig) *TMDbClient {
	return &TMDbClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		maxRetries:     2,
		retryBaseDelay: 500 * time.Millisecond,
	}
}

// SearchMovie returns search hits in TMDb order. No hits is ErrNoMatch.
func (c *TMDbClient) SearchMovie(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	var resp SearchResponse
	if err := c.get(ctx, "search", "/search/movie", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("search %q: %w", query, ErrNoMatch)
	}
	return resp.Results, nil
}

// MovieDetails fetches a movie with its credits and keywords.
func (c *TMDbClient) MovieDetails(ctx context.Context, id int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,keywords")

	var d MovieDetails
	if err := c.get(ctx, "details", "/movie/"+strconv.Itoa(id), params, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// get performs a GET and decodes a 200 response into result.
func (c *TMDbClient) get(ctx context.Context, endpoint, path string, params url.Values, result interface{}) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	reqURL := c.baseURL + path + "?" + params.Encode()

	start := time.Now()
	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		metrics.RecordTMDbRequest(endpoint, "error", time.Since(start))
		return fmt.Errorf("tmdb %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.RecordTMDbRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("tmdb %s: %w", endpoint, ErrNoMatch)
	}
	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return fmt.Errorf("tmdb %s failed with status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode tmdb %s response: %w", endpoint, err)
	}
	return nil
}

// doRequestWithRateLimit waits for the client-side limiter, then retries
// HTTP 429 responses with exponential backoff, honoring Retry-After.
func (c *TMDbClient) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		_ = resp.Body.Close() //nolint:errcheck // retrying anyway

		if attempt == c.maxRetries {
			return nil, fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
