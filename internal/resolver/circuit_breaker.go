// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package resolver

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// BreakerName labels the TMDb circuit breaker in logs and metrics.
const BreakerName = "tmdb-api"

// CircuitBreakerClient wraps a MovieSource with a circuit breaker.
//
// A "no match" answer, a missing API key and a caller that canceled its
// request count as successful calls. Only transport failures, upstream
// timeouts and unexpected statuses trip the breaker.
type CircuitBreakerClient struct {
	source MovieSource
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps source using the breaker settings in cfg.
func NewCircuitBreakerClient(source MovieSource, cfg config.TMDbConfig) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(BreakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= cfg.BreakerFailures
			if trip {
				logging.Warn().
					Str("breaker", BreakerName).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("opening circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},

		IsSuccessful: countsAsSuccess,
	})

	return &CircuitBreakerClient{source: source, cb: cb, name: BreakerName}
}

// execute runs fn through the breaker. Rejections are reported as
// ErrCircuitOpen.
func (c *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := c.cb.Execute(fn)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	case errors.Is(err, context.Canceled):
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "canceled").Inc()
	case countsAsSuccess(err):
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
	}
	return result, err
}

// countsAsSuccess keeps client disconnects from opening the breaker for
// every other user. A deadline is still a failure: it means TMDb hung.
func countsAsSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, ErrNoMatch) ||
		errors.Is(err, ErrNotConfigured) ||
		errors.Is(err, context.Canceled)
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// SearchMovie implements MovieSource.
func (c *CircuitBreakerClient) SearchMovie(ctx context.Context, query string) ([]SearchResult, error) {
	return castResult[[]SearchResult](c.execute(func() (interface{}, error) {
		return c.source.SearchMovie(ctx, query)
	}))
}

// MovieDetails implements MovieSource.
func (c *CircuitBreakerClient) MovieDetails(ctx context.Context, id int) (*MovieDetails, error) {
	return castResult[*MovieDetails](c.execute(func() (interface{}, error) {
		return c.source.MovieDetails(ctx, id)
	}))
}

// State reports the current breaker state as a string.
func (c *CircuitBreakerClient) State() string {
	return stateToString(c.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
