// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrFileNotFound is returned when a CSV source does not exist on disk.
var ErrFileNotFound = errors.New("csv file not found")

// Column is one column of a CSV source as typed by DuckDB's sniffer.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CSVSource returns a read_csv table expression for path. Scraped TMDb
// exports carry newlines inside quoted overviews, so the dialect is sniffed
// rather than fixed.
func CSVSource(path string) string {
	return fmt.Sprintf("read_csv(%s, header=true, auto_detect=true, sample_size=-1)", QuoteLiteral(path))
}

// CheckFile reports ErrFileNotFound for a missing path.
func CheckFile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrFileNotFound)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

// DescribeCSV returns the sniffed column list of a CSV file.
func (db *DB) DescribeCSV(ctx context.Context, path string) ([]Column, error) {
	if err := CheckFile(path); err != nil {
		return nil, err
	}
	rows, err := db.conn.QueryContext(ctx, "DESCRIBE SELECT * FROM "+CSVSource(path))
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", path, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", path, err)
	}

	var cols []Column
	for rows.Next() {
		// DESCRIBE returns column_name, column_type, null, key, default, extra.
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("describe %s: %w", path, err)
		}
		cols = append(cols, Column{Name: fmt.Sprint(vals[0]), Type: fmt.Sprint(vals[1])})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describe %s: %w", path, err)
	}
	return cols, nil
}

// HasColumn reports whether cols contains name, ignoring case.
func HasColumn(cols []Column, name string) bool {
	for _, c := range cols {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// IsIntegerType reports whether a DuckDB type name is an integer or boolean.
func IsIntegerType(t string) bool {
	switch strings.ToUpper(t) {
	case "TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT", "BOOLEAN":
		return true
	}
	return false
}
