// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/marquee/internal/config"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(config.DatabaseConfig{MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestQuoting(t *testing.T) {
	t.Parallel()

	if got := QuoteLiteral("it's"); got != "'it''s'" {
		t.Errorf("QuoteLiteral = %s", got)
	}
	if got := QuoteIdent(`a"b`); got != `"a""b"` {
		t.Errorf("QuoteIdent = %s", got)
	}
}

func TestCheckFile(t *testing.T) {
	t.Parallel()

	if err := CheckFile(filepath.Join(t.TempDir(), "nope.csv")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	if err := CheckFile(""); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("empty path error = %v", err)
	}
}

func TestDescribeCSV(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	path := filepath.Join(t.TempDir(), "links.csv")
	if err := os.WriteFile(path, []byte("movieId,imdbId,tmdbId\n1,0114709,862\n2,0113497,8844\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cols, err := db.DescribeCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("DescribeCSV() error = %v", err)
	}
	if len(cols) != 3 || cols[0].Name != "movieId" || cols[2].Name != "tmdbId" {
		t.Fatalf("columns = %+v", cols)
	}
	if !IsIntegerType(cols[2].Type) {
		t.Errorf("tmdbId type = %s, want an integer type", cols[2].Type)
	}
	if !HasColumn(cols, "TMDBID") {
		t.Error("HasColumn should ignore case")
	}
}
