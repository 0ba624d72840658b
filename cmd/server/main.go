// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// latencySamples is the size of the /health latency window.
const latencySamples = 2000

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "marquee",
		Version:   version,
	})
	logging.Info().Msg("Starting Marquee")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open DuckDB")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	// Without the catalog nothing can be served.
	store, err := catalog.Load(ctx, db, catalog.SourcesFromConfig(cfg.Data))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}
	logging.Info().Interface("rows", store.Stats()).Msg("Catalog loaded")

	models := loadModels(cfg.Artifacts)

	res, err := initResolver(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize title resolver")
	}
	defer res.Close()

	engine, err := recommend.NewEngine(engineConfig(cfg), store, res.Resolver, models, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	for _, s := range engine.Status() {
		ev := logging.Info()
		if !s.Available {
			ev = logging.Warn().Str("reason", s.Reason)
		}
		ev.Str("feature", string(s.Feature)).Bool("available", s.Available).Msg("Recommendation feature")
	}

	latency := middleware.NewLatencyTracker(latencySamples, middleware.DefaultSlowThreshold)
	handler, err := api.NewHandler(api.Dependencies{
		Engine:   engine,
		Explorer: catalog.NewExplorer(db, catalog.DatasetPaths(cfg.Data)),
		Catalog:  store,
		Breaker:  res.Breaker,
		Latency:  latency,
	}, api.OptionsFromConfig(cfg, version))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromServer(cfg.Server)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if res.Badger != nil {
		tree.AddCacheService(services.NewBadgerGCService(res.Badger, cfg.Resolver.BadgerGCInterval))
	}

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}
	logging.Info().Msg("Marquee stopped")
}

// engineConfig maps the recommend section onto recommend.Config.
func engineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		DefaultK:       cfg.Recommend.DefaultK,
		MaxK:           cfg.Recommend.MaxK,
		SimilarityPool: cfg.Recommend.SimilarityPool,
		CohortSize:     cfg.Recommend.CohortSize,
		PopularPool:    cfg.Recommend.PopularPool,
		Seed:           cfg.Recommend.Seed,
	}
}
