// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package query

import (
	"strings"

	"github.com/tomtom215/marquee/internal/database"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddNotNull("userId", "movieId")
//	wb.AddCastable("tmdbId", "BIGINT")
//	whereClause, args := wb.Build()
//	// "userId" IS NOT NULL AND "movieId" IS NOT NULL AND TRY_CAST("tmdbId" AS BIGINT) IS NOT NULL
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// AddClause adds a raw WHERE clause with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddNotNull requires every named column to be present on the row.
func (wb *WhereBuilder) AddNotNull(columns ...string) *WhereBuilder {
	for _, c := range columns {
		wb.clauses = append(wb.clauses, database.QuoteIdent(c)+" IS NOT NULL")
	}
	return wb
}

// AddCastable keeps rows whose column converts to sqlType. Malformed
// values such as "n/a" in a numeric column are filtered rather than
// failing the whole scan.
func (wb *WhereBuilder) AddCastable(column, sqlType string) *WhereBuilder {
	wb.clauses = append(wb.clauses, "TRY_CAST("+database.QuoteIdent(column)+" AS "+sqlType+") IS NOT NULL")
	return wb
}

// Build joins the clauses with AND. Returns ("1=1", nil) when empty.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "1=1", nil
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix, or an
// empty string when no clauses were added.
func (wb *WhereBuilder) BuildWithPrefix() (string, []any) {
	if wb.IsEmpty() {
		return "", nil
	}
	whereClause, args := wb.Build()
	return " WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}
