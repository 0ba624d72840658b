// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/marquee/internal/logging"
)

// gcDiscardRatio is the value-log rewrite threshold used by RunGC.
const gcDiscardRatio = 0.5

// BadgerOptions configures the on-disk resolution cache.
type BadgerOptions struct {
	// Dir is the database directory. Ignored when InMemory is set.
	Dir string

	// InMemory keeps everything in RAM (tests).
	InMemory bool

	// TTL is applied to every entry. Zero means entries never expire.
	TTL time.Duration
}

// BadgerCache persists resolutions across restarts so a cold process does
// not hit TMDb for titles it has already seen.
type BadgerCache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerCache opens (or creates) the cache database.
func OpenBadgerCache(opts BadgerOptions) (*BadgerCache, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Reduce logging verbosity
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	logging.Info().
		Str("path", opts.Dir).
		Bool("in_memory", opts.InMemory).
		Dur("ttl", opts.TTL).
		Msg("resolver cache opened")
	return &BadgerCache{db: db, ttl: opts.TTL}, nil
}

// Get implements Cache.
func (b *BadgerCache) Get(_ context.Context, key string) (Result, bool, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, fmt.Errorf("badger get: %w", err)
	}

	r, err := decodeResult(data)
	if err != nil {
		return Result{}, false, err
	}
	return r, true, nil
}

// Set implements Cache.
func (b *BadgerCache) Set(_ context.Context, key string, r Result) error {
	data, err := encodeResult(r)
	if err != nil {
		return fmt.Errorf("encode resolution: %w", err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		if b.ttl > 0 {
			e = e.WithTTL(b.ttl)
		}
		return txn.SetEntry(e)
	})
}

// RunGC rewrites value-log files until badger reports nothing left to
// reclaim. In-memory databases have no value log and return nil.
func (b *BadgerCache) RunGC() error {
	for {
		err := b.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			return nil
		default:
			return fmt.Errorf("run value log gc: %w", err)
		}
	}
}

// Close implements Cache.
func (b *BadgerCache) Close() error {
	return b.db.Close()
}
