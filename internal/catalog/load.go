// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/database/query"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Sources are the CSV files Load reads.
type Sources struct {
	Movies       string
	Links        string
	Genres       string
	Ratings      string
	Posters      string
	Descriptions string
	Contents     string
}

// SourcesFromConfig resolves every file against the data directory.
func SourcesFromConfig(cfg config.DataConfig) Sources {
	return Sources{
		Movies:       cfg.Path(cfg.Movies),
		Links:        cfg.Path(cfg.Links),
		Genres:       cfg.Path(cfg.Genres),
		Ratings:      cfg.Path(cfg.Ratings),
		Posters:      cfg.Path(cfg.Posters),
		Descriptions: cfg.Path(cfg.Descriptions),
		Contents:     cfg.Path(cfg.Contents),
	}
}

// Load reads every table through DuckDB and builds a Store.
func Load(ctx context.Context, db *database.DB, src Sources) (*Store, error) {
	start := time.Now()
	l := &loader{db: db}

	var (
		t   Tables
		err error
	)
	if t.Movies, err = l.movies(ctx, src.Movies); err != nil {
		return nil, err
	}
	if t.Links, err = l.links(ctx, src.Links); err != nil {
		return nil, err
	}
	if t.Genres, err = l.genres(ctx, src.Genres); err != nil {
		return nil, err
	}
	if t.Ratings, err = l.ratings(ctx, src.Ratings); err != nil {
		return nil, err
	}
	if t.Posters, err = l.posters(ctx, src.Posters); err != nil {
		return nil, err
	}
	if t.Descriptions, err = l.descriptions(ctx, src.Descriptions); err != nil {
		return nil, err
	}
	if t.Corpus, err = l.corpus(ctx, src.Contents); err != nil {
		return nil, err
	}

	store := New(t)
	elapsed := time.Since(start)
	metrics.CatalogLoadDuration.Observe(elapsed.Seconds())

	ev := logging.Info().Dur("elapsed", elapsed)
	for table, n := range store.Stats() {
		metrics.CatalogRows.WithLabelValues(table).Set(float64(n))
		ev = ev.Int(table, n)
	}
	ev.Msg("Catalog loaded")

	if n := store.Links().Ambiguous(); n > 0 {
		logging.Warn().Int("tmdb_ids", n).Msg("TMDb ids linked to several movies were left unmapped")
	}
	return store, nil
}

type loader struct {
	db *database.DB
}

// each runs query over the CSV at path and calls scan once per row.
func (l *loader) each(ctx context.Context, table, path, selectList string, wb *query.WhereBuilder, scan func(*sql.Rows) error) error {
	if err := database.CheckFile(path); err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	where, args := wb.BuildWithPrefix()
	q := "SELECT " + selectList + " FROM " + database.CSVSource(path) + where

	rows, err := l.db.Conn().QueryContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("load %s: %w", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	return nil
}

// optional returns expr when the column exists, otherwise fallback.
func optional(cols []database.Column, name, expr, fallback string) string {
	if database.HasColumn(cols, name) {
		return expr
	}
	return fallback
}

func (l *loader) movies(ctx context.Context, path string) ([]Movie, error) {
	var out []Movie
	err := l.each(ctx, "movies", path,
		`CAST("movieId" AS BIGINT), COALESCE(CAST("title" AS VARCHAR), ''), COALESCE(CAST("genres" AS VARCHAR), '')`,
		query.NewWhereBuilder().AddNotNull("movieId"),
		func(rows *sql.Rows) error {
			var (
				m      Movie
				genres string
			)
			if err := rows.Scan(&m.MovieID, &m.Title, &genres); err != nil {
				return err
			}
			if genres != "" && genres != "(no genres listed)" {
				m.Genres = strings.Split(genres, "|")
			}
			out = append(out, m)
			return nil
		})
	return out, err
}

func (l *loader) links(ctx context.Context, path string) ([]Link, error) {
	var out []Link
	err := l.each(ctx, "links", path,
		`CAST("movieId" AS BIGINT), TRY_CAST("tmdbId" AS BIGINT)`,
		query.NewWhereBuilder().AddNotNull("movieId").AddCastable("tmdbId", "BIGINT"),
		func(rows *sql.Rows) error {
			var lk Link
			if err := rows.Scan(&lk.MovieID, &lk.TMDbID); err != nil {
				return err
			}
			out = append(out, lk)
			return nil
		})
	return out, err
}

// genres reads the one-hot genres table. A column counts as a genre flag
// when DuckDB types it as an integer and every value is 0 or 1.
func (l *loader) genres(ctx context.Context, path string) ([]GenreFlag, error) {
	cols, err := l.db.DescribeCSV(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	var candidates []string
	for _, c := range cols {
		if strings.EqualFold(c.Name, "movieId") || !database.IsIntegerType(c.Type) {
			continue
		}
		candidates = append(candidates, c.Name)
	}
	flags, err := l.binaryColumns(ctx, path, candidates)
	if err != nil {
		return nil, err
	}
	if len(flags) == 0 {
		return nil, nil
	}

	exprs := make([]string, 0, len(flags)+1)
	exprs = append(exprs, `CAST("movieId" AS BIGINT)`)
	for _, f := range flags {
		exprs = append(exprs, "COALESCE(CAST("+database.QuoteIdent(f)+" AS INTEGER), 0)")
	}

	var out []GenreFlag
	err = l.each(ctx, "genres", path, strings.Join(exprs, ", "), query.NewWhereBuilder().AddNotNull("movieId"),
		func(rows *sql.Rows) error {
			var id int
			vals := make([]int, len(flags))
			dest := make([]any, 0, len(flags)+1)
			dest = append(dest, &id)
			for i := range vals {
				dest = append(dest, &vals[i])
			}
			if err := rows.Scan(dest...); err != nil {
				return err
			}
			for i, v := range vals {
				if v == 1 {
					out = append(out, GenreFlag{MovieID: id, Genre: flags[i]})
				}
			}
			return nil
		})
	return out, err
}

// binaryColumns keeps the candidates whose values all lie in {0, 1}.
func (l *loader) binaryColumns(ctx context.Context, path string, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	exprs := make([]string, len(candidates))
	for i, c := range candidates {
		q := database.QuoteIdent(c)
		exprs[i] = fmt.Sprintf("COALESCE(bool_and(CAST(%s AS BIGINT) IN (0, 1)), false)", q)
	}

	dest := make([]bool, len(candidates))
	ptrs := make([]any, len(candidates))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	q := "SELECT " + strings.Join(exprs, ", ") + " FROM " + database.CSVSource(path)
	if err := l.db.Conn().QueryRowContext(ctx, q).Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	var out []string
	for i, ok := range dest {
		if ok {
			out = append(out, candidates[i])
		}
	}
	return out, nil
}

func (l *loader) ratings(ctx context.Context, path string) ([]Rating, error) {
	var out []Rating
	err := l.each(ctx, "ratings", path,
		`CAST("userId" AS BIGINT), CAST("movieId" AS BIGINT), CAST("rating" AS DOUBLE)`,
		query.NewWhereBuilder().AddNotNull("userId", "movieId", "rating"),
		func(rows *sql.Rows) error {
			var r Rating
			if err := rows.Scan(&r.UserID, &r.MovieID, &r.Rating); err != nil {
				return err
			}
			out = append(out, r)
			return nil
		})
	return out, err
}

func (l *loader) posters(ctx context.Context, path string) (map[int]string, error) {
	out := make(map[int]string)
	err := l.each(ctx, "posters", path,
		`TRY_CAST("movieId" AS BIGINT), CAST("posters" AS VARCHAR)`,
		query.NewWhereBuilder().AddCastable("movieId", "BIGINT").AddNotNull("posters"),
		func(rows *sql.Rows) error {
			var (
				id  int
				url string
			)
			if err := rows.Scan(&id, &url); err != nil {
				return err
			}
			if _, dup := out[id]; !dup {
				out[id] = url
			}
			return nil
		})
	return out, err
}

func (l *loader) descriptions(ctx context.Context, path string) ([]Description, error) {
	cols, err := l.db.DescribeCSV(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load descriptions: %w", err)
	}
	selectList := strings.Join([]string{
		`TRY_CAST("movieId" AS BIGINT)`,
		`COALESCE(CAST("title" AS VARCHAR), '')`,
		`COALESCE(CAST("overview" AS VARCHAR), '')`,
		optional(cols, "popularity", `COALESCE(TRY_CAST("popularity" AS DOUBLE), 0)`, "0.0"),
		optional(cols, "vote_count", `COALESCE(TRY_CAST("vote_count" AS BIGINT), 0)`, "0"),
		optional(cols, "vote_average", `COALESCE(TRY_CAST("vote_average" AS DOUBLE), 0)`, "0.0"),
		optional(cols, "casts", `COALESCE(CAST("casts" AS VARCHAR), '')`, "''"),
		optional(cols, "keywords", `COALESCE(CAST("keywords" AS VARCHAR), '')`, "''"),
	}, ", ")

	var out []Description
	err = l.each(ctx, "descriptions", path, selectList, query.NewWhereBuilder().AddCastable("movieId", "BIGINT"),
		func(rows *sql.Rows) error {
			var (
				d              Description
				cast, keywords string
			)
			if err := rows.Scan(&d.TMDbID, &d.Title, &d.Overview, &d.Popularity, &d.VoteCount, &d.VoteAverage, &cast, &keywords); err != nil {
				return err
			}
			d.Cast = ParseCastList(cast)
			d.Keywords = ParseCastList(keywords)
			out = append(out, d)
			return nil
		})
	return out, err
}

// corpus keeps file order; it must match the similarity matrix rows.
func (l *loader) corpus(ctx context.Context, path string) ([]CorpusEntry, error) {
	cols, err := l.db.DescribeCSV(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load contents: %w", err)
	}
	selectList := strings.Join([]string{
		`CAST("movieId" AS BIGINT)`,
		`COALESCE(CAST("title" AS VARCHAR), '')`,
		optional(cols, "overview", `COALESCE(CAST("overview" AS VARCHAR), '')`, "''"),
		optional(cols, "casts", `COALESCE(CAST("casts" AS VARCHAR), '')`, "''"),
	}, ", ")

	var out []CorpusEntry
	err = l.each(ctx, "contents", path, selectList, query.NewWhereBuilder(),
		func(rows *sql.Rows) error {
			var (
				e    CorpusEntry
				id   sql.NullInt64
				cast string
			)
			if err := rows.Scan(&id, &e.Title, &e.Overview, &cast); err != nil {
				return err
			}
			if !id.Valid {
				return fmt.Errorf("row %d has no movieId", len(out))
			}
			e.TMDbID = int(id.Int64)
			e.Cast = ParseCastList(cast)
			out = append(out, e)
			return nil
		})
	return out, err
}
