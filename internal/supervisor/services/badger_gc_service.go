// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultGCInterval is used when no interval is configured.
const DefaultGCInterval = 10 * time.Minute

// GarbageCollector is satisfied by *resolver.BadgerCache.
type GarbageCollector interface {
	RunGC() error
}

// BadgerGCService reclaims space in the badger resolution cache on a fixed
// interval. Expired cache entries are only dropped from disk when their
// value-log file is rewritten.
type BadgerGCService struct {
	gc       GarbageCollector
	interval time.Duration
	name     string
}

// NewBadgerGCService runs gc every interval.
func NewBadgerGCService(gc GarbageCollector, interval time.Duration) *BadgerGCService {
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	return &BadgerGCService{
		gc:       gc,
		interval: interval,
		name:     "badger-gc",
	}
}

// Serve implements suture.Service. A failed pass is logged and counted, and
// the loop keeps going; badger GC errors are not fatal to the cache.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger := logging.WithComponent(s.name)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.gc.RunGC(); err != nil {
				metrics.BadgerGCRuns.WithLabelValues("error").Inc()
				logger.Warn().Err(err).Msg("Badger value log GC failed")
				continue
			}
			metrics.BadgerGCRuns.WithLabelValues("ok").Inc()
			logger.Debug().Dur("duration", time.Since(start)).Msg("Badger value log GC pass complete")
		}
	}
}

// String names the service in supervisor logs.
func (s *BadgerGCService) String() string {
	return s.name
}
