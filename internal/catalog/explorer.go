// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tomtom215/marquee/internal/database"
)

// DatasetInfo describes one dataset for the explorer listing.
type DatasetInfo struct {
	Name      string            `json:"name"`
	File      string            `json:"file,omitempty"`
	Available bool              `json:"available"`
	Large     bool              `json:"large"`
	Columns   []database.Column `json:"columns,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Preview is the head of a dataset.
type Preview struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Limit   int      `json:"limit"`
}

// Explorer serves column listings and row previews straight from the CSV
// files, so it sees every column even where Store keeps only a few.
type Explorer struct {
	db    *database.DB
	paths map[DatasetID]string
}

// NewExplorer binds dataset ids to files.
func NewExplorer(db *database.DB, paths map[DatasetID]string) *Explorer {
	return &Explorer{db: db, paths: paths}
}

func (e *Explorer) path(id DatasetID) (string, error) {
	p, ok := e.paths[id]
	if !ok {
		return "", fmt.Errorf("%s: %w", id, database.ErrFileNotFound)
	}
	return p, nil
}

// Describe returns the columns of one dataset.
func (e *Explorer) Describe(ctx context.Context, id DatasetID) (DatasetInfo, error) {
	info := DatasetInfo{Name: id.String(), Large: id.Large()}
	p, err := e.path(id)
	if err != nil {
		return info, err
	}
	info.File = filepath.Base(p)

	cols, err := e.db.DescribeCSV(ctx, p)
	if err != nil {
		return info, err
	}
	info.Columns = cols
	info.Available = true
	return info, nil
}

// Datasets describes every dataset. A dataset that cannot be read is listed
// as unavailable with the reason.
func (e *Explorer) Datasets(ctx context.Context) []DatasetInfo {
	out := make([]DatasetInfo, 0, len(datasetNames))
	for _, id := range AllDatasets() {
		info, err := e.Describe(ctx, id)
		if err != nil {
			info.Error = err.Error()
		}
		out = append(out, info)
	}
	return out
}

// Head returns the first limit rows of a dataset in file order.
func (e *Explorer) Head(ctx context.Context, id DatasetID, limit int) (*Preview, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	p, err := e.path(id)
	if err != nil {
		return nil, err
	}
	if err := database.CheckFile(p); err != nil {
		return nil, err
	}

	q := fmt.Sprintf("SELECT * FROM %s LIMIT %d", database.CSVSource(p), limit)
	rows, err := e.db.Conn().QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", id, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", id, err)
	}

	preview := &Preview{Name: id.String(), Columns: cols, Rows: make([][]any, 0, limit), Limit: limit}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("preview %s: %w", id, err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		preview.Rows = append(preview.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("preview %s: %w", id, err)
	}
	return preview, nil
}
