package api

import (
	"encoding/json"
	"net/http"

	"github.com/avforge/configurator/internal/api/handlers"
	"github.com/avforge/configurator/internal/api/middleware"
	"github.com/avforge/configurator/internal/config"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "avforge-configurator"

// NewRouter creates the HTTP router with all API routes.
func NewRouter(cfg *config.Config, h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Logger)
	r.Use(middleware.Telemetry)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id", "X-Trace-Id"},
		MaxAge:         300,
	}))

	// Health & info
	r.Get("/health", healthHandler(h))
	r.Get("/version", versionHandler(cfg))
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Reference data
		r.Get("/catalog", h.ListCatalog)
		r.Get("/catalog/{sku}", h.GetComponent)
		r.Get("/features", h.ListFeatures)
		r.Get("/constraints", h.ListConstraints)

		// Projects
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)
			r.Post("/", h.CreateProject)
			r.Route("/{projectId}", func(r chi.Router) {
				r.Get("/", h.GetProject)
				r.Delete("/", h.DeleteProject)
				r.Put("/ancillary", h.SetAncillary)
				r.Get("/quote", h.Quote)

				// Rooms
				r.Route("/rooms", func(r chi.Router) {
					r.Get("/", h.ListRooms)
					r.Post("/", h.CreateRoom)
					r.Route("/{roomId}", func(r chi.Router) {
						r.Get("/", h.GetRoom)
						r.Put("/", h.UpdateRoom)
						r.Delete("/", h.DeleteRoom)

						r.Post("/select", h.SelectCandidates)
						r.Post("/suggest", h.Suggest)
						r.Put("/equipment", h.SetEquipment)
						r.Post("/equipment", h.AddEquipment)
						r.Post("/validate", h.Validate)
						r.Post("/value-engineer", h.ValueEngineer)
						r.Post("/layout", h.Layout)
					})
				})
			})
		})
	})

	return r
}

func healthHandler(h *handlers.Handlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if err := h.Store.Ping(r.Context()); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     status,
			"service":    serviceName,
			"components": h.Catalog.Count(),
		})
	}
}

func versionHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"version": cfg.Version,
			"service": serviceName,
		})
	}
}
