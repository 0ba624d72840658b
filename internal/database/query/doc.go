// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package query provides SQL query building utilities for the database
// package.
//
// The catalog loader reads CSV files through DuckDB and uses WhereBuilder
// to drop rows whose key columns are missing or malformed before they are
// scanned into Go values:
//
//	wb := query.NewWhereBuilder().
//		AddNotNull("movieId").
//		AddCastable("tmdbId", "BIGINT")
//	where, args := wb.BuildWithPrefix()
//	rows, err := conn.QueryContext(ctx, "SELECT ... FROM "+src+where, args...)
//
// Identifiers are quoted with database.QuoteIdent. Values always travel as
// arguments, never as SQL text.
package query
