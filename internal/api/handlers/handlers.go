// Package handlers implements the HTTP handlers for the configurator API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avforge/configurator/internal/catalog"
	"github.com/avforge/configurator/internal/metrics"
	"github.com/avforge/configurator/internal/optimizer"
	"github.com/avforge/configurator/internal/selector"
	"github.com/avforge/configurator/internal/store"
	"github.com/avforge/configurator/internal/telemetry"
	"github.com/avforge/configurator/internal/validator"
	"github.com/avforge/configurator/pkg/models"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/codes"
)

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	Store       store.Store
	Catalog     *catalog.Catalog
	Features    *catalog.FeatureTable
	Constraints *catalog.ConstraintTable
	Pricing     models.PricingProfile

	Selector  *selector.Selector
	Validator *validator.Validator
	Optimizer *optimizer.Optimizer
}

// New creates a new Handlers instance. The engines are built over the
// given reference data, which must not change afterwards.
func New(s store.Store, cat *catalog.Catalog, features *catalog.FeatureTable, constraints *catalog.ConstraintTable, pricing models.PricingProfile) *Handlers {
	return &Handlers{
		Store:       s,
		Catalog:     cat,
		Features:    features,
		Constraints: constraints,
		Pricing:     pricing,
		Selector:    selector.New(cat, features),
		Validator:   validator.New(cat, features),
		Optimizer:   optimizer.New(cat, features, constraints),
	}
}

// ── Reference data ──────────────────────────────────────────

// ListCatalog handles GET /api/v1/catalog.
func (h *Handlers) ListCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Catalog.All())
}

// GetComponent handles GET /api/v1/catalog/{sku}.
func (h *Handlers) GetComponent(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	comp, ok := h.Catalog.Lookup(sku)
	if !ok {
		respondError(w, http.StatusNotFound, "component not found: "+sku)
		return
	}
	respondJSON(w, http.StatusOK, comp)
}

// ListFeatures handles GET /api/v1/features.
func (h *Handlers) ListFeatures(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Features.Mapping())
}

// ListConstraints handles GET /api/v1/constraints.
func (h *Handlers) ListConstraints(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Constraints.All())
}

// ── Engine runs ─────────────────────────────────────────────

// run wraps one engine call in a span and records its outcome.
func (h *Handlers) run(ctx context.Context, op, roomID string, fn func(ctx context.Context) error) error {
	ctx, span := telemetry.StartEngineSpan(ctx, op, roomID)
	defer span.End()

	timer := metrics.NewTimer()
	err := fn(ctx)
	metrics.RecordRun(op, outcome(err), timer.Duration())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case isBadInput(err):
		return metrics.OutcomePrecondition
	default:
		return metrics.OutcomeError
	}
}

func isBadInput(err error) bool {
	return errors.Is(err, models.ErrPrecondition) ||
		errors.Is(err, catalog.ErrUnknownFeature) ||
		errors.Is(err, catalog.ErrUnknownConstraint)
}

// ── Helpers ─────────────────────────────────────────────────

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondErr maps store and engine errors onto HTTP status codes.
func respondErr(w http.ResponseWriter, err error) {
	var nf *store.ErrNotFound
	switch {
	case errors.As(err, &nf):
		respondError(w, http.StatusNotFound, err.Error())
	case isBadInput(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body: " + err.Error())
	}
	return nil
}
