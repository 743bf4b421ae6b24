// Package server provides the public entry point for initializing the
// AVForge configurator server.
//
// Usage:
//
//	srv, err := server.New(ctx)
//	http.ListenAndServe(":8080", srv.Handler)
//
// The package lives in pkg/ so other binaries can embed the configurator
// behind their own middleware.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avforge/configurator/internal/api"
	"github.com/avforge/configurator/internal/api/handlers"
	"github.com/avforge/configurator/internal/catalog"
	"github.com/avforge/configurator/internal/config"
	"github.com/avforge/configurator/internal/store"
	"github.com/avforge/configurator/internal/telemetry"

	"github.com/rs/zerolog/log"
)

// Server holds the initialized configurator.
type Server struct {
	// Handler is the HTTP handler with all routes and middleware.
	Handler http.Handler

	// Store holds projects and rooms.
	Store store.Store

	// Config is the resolved configuration.
	Config *config.Config

	// Port is the port the server should listen on.
	Port int

	// ShutdownFunc should be called on graceful shutdown to flush telemetry.
	ShutdownFunc func(context.Context) error
}

// New initializes all components from environment configuration.
func New(ctx context.Context) (*Server, error) {
	return NewWithConfig(ctx, config.Load())
}

// NewWithConfig initializes the configurator with an explicit configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	shutdown, err := telemetry.Init(cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		shutdown(ctx)
		return nil, err
	}
	features, constraints, err := loadTables(cfg.Catalog)
	if err != nil {
		shutdown(ctx)
		return nil, err
	}
	for _, orphan := range features.CheckAgainst(cat) {
		log.Warn().Str("feature", orphan).Msg("Feature has no backing component in the catalog")
	}

	dataStore := store.NewMemoryStore(cfg.Store.DataDir)
	log.Info().Msg("✅ Project store initialized")

	h := handlers.New(dataStore, cat, features, constraints, cfg.Pricing)
	router := api.NewRouter(cfg, h)

	log.Info().
		Float64("labor_rate", cfg.Pricing.LaborRate).
		Float64("minimum_day_rate", cfg.Pricing.MinimumDayRate).
		Msg("✅ Configuration engine initialized")

	return &Server{
		Handler:      router,
		Store:        dataStore,
		Config:       cfg,
		Port:         cfg.Port,
		ShutdownFunc: shutdown,
	}, nil
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		cat, err := catalog.Builtin()
		if err != nil {
			return nil, fmt.Errorf("builtin catalog: %w", err)
		}
		log.Info().Int("components", cat.Count()).Msg("📦 Built-in catalog loaded")
		return cat, nil
	}
	cat, err := catalog.LoadFile(cfg.Path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.Path).Int("components", cat.Count()).Msg("📦 Catalog loaded")
	return cat, nil
}

func loadTables(cfg config.CatalogConfig) (*catalog.FeatureTable, *catalog.ConstraintTable, error) {
	if cfg.TablesPath == "" {
		f, c, err := catalog.BuiltinTables()
		if err != nil {
			return nil, nil, fmt.Errorf("builtin tables: %w", err)
		}
		return f, c, nil
	}
	f, c, err := catalog.LoadTablesFile(cfg.TablesPath)
	if err != nil {
		return nil, nil, err
	}
	log.Info().
		Str("path", cfg.TablesPath).
		Int("features", len(f.Names())).
		Int("constraints", len(c.All())).
		Msg("📦 Feature tables loaded")
	return f, c, nil
}
