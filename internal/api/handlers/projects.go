package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avforge/configurator/internal/metrics"
	"github.com/avforge/configurator/internal/pricing"
	"github.com/avforge/configurator/pkg/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ── Projects ────────────────────────────────────────────────

type projectRequest struct {
	Name      string           `json:"name"`
	Customer  string           `json:"customer"`
	Tier      string           `json:"tier"`
	Ancillary models.Ancillary `json:"ancillary"`
}

// ListProjects handles GET /api/v1/projects.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// CreateProject handles POST /api/v1/projects.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	tier := models.ParseTier(req.Tier)
	if !tier.Valid() {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown tier %q", req.Tier))
		return
	}
	if err := req.Ancillary.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := &models.Project{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Customer:  req.Customer,
		Tier:      tier,
		Ancillary: req.Ancillary,
	}
	if err := h.Store.CreateProject(r.Context(), p); err != nil {
		respondErr(w, err)
		return
	}

	log.Info().Str("project", p.ID).Str("name", p.Name).Msg("Project created")
	respondJSON(w, http.StatusCreated, p)
}

// GetProject handles GET /api/v1/projects/{projectId}.
func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProject(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DeleteProject handles DELETE /api/v1/projects/{projectId}.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectId")
	if err := h.Store.DeleteProject(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	log.Info().Str("project", id).Msg("Project deleted")
	w.WriteHeader(http.StatusNoContent)
}

// SetAncillary handles PUT /api/v1/projects/{projectId}/ancillary.
func (h *Handlers) SetAncillary(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProject(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		respondErr(w, err)
		return
	}
	var a models.Ancillary
	if err := decode(r, &a); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.Ancillary = a
	if err := h.Store.UpdateProject(r.Context(), p); err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// Quote handles GET /api/v1/projects/{projectId}/quote.
func (h *Handlers) Quote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.Store.GetProject(ctx, chi.URLParam(r, "projectId"))
	if err != nil {
		respondErr(w, err)
		return
	}
	rooms, err := h.Store.ListRooms(ctx, p.ID)
	if err != nil {
		respondErr(w, err)
		return
	}

	var quote pricing.Quote
	err = h.run(ctx, "quote", "", func(context.Context) error {
		var err error
		quote, err = pricing.Aggregate(rooms, p.Ancillary, h.Pricing, h.Catalog)
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	metrics.RecordFeedback(quote.Feedback)
	respondJSON(w, http.StatusOK, quote)
}

// ── Rooms ───────────────────────────────────────────────────

type roomRequest struct {
	Requirement models.RoomRequirement `json:"requirement"`
	Selection   []models.Line          `json:"selection"`
}

// ListRooms handles GET /api/v1/projects/{projectId}/rooms.
func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Store.ListRooms(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rooms)
}

// CreateRoom handles POST /api/v1/projects/{projectId}/rooms.
func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.Store.GetProject(ctx, chi.URLParam(r, "projectId"))
	if err != nil {
		respondErr(w, err)
		return
	}
	var req roomRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	room := &models.Room{ID: uuid.New().String(), ProjectID: p.ID}
	if err := h.fillRoom(room, p, req); err != nil {
		respondErr(w, err)
		return
	}
	if err := h.Store.CreateRoom(ctx, room); err != nil {
		respondErr(w, err)
		return
	}

	log.Info().
		Str("project", p.ID).
		Str("room", room.ID).
		Str("name", room.Requirement.Name).
		Msg("Room created")
	respondJSON(w, http.StatusCreated, room)
}

// GetRoom handles GET /api/v1/projects/{projectId}/rooms/{roomId}.
func (h *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.loadRoom(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, room)
}

// UpdateRoom handles PUT /api/v1/projects/{projectId}/rooms/{roomId}.
// The requirement is replaced; the selection is replaced only when given.
func (h *Handlers) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	room, err := h.loadRoom(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	p, err := h.Store.GetProject(ctx, room.ProjectID)
	if err != nil {
		respondErr(w, err)
		return
	}
	var req roomRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Selection == nil {
		req.Selection = room.Selection.Lines
	}
	if err := h.fillRoom(room, p, req); err != nil {
		respondErr(w, err)
		return
	}
	if err := h.Store.UpdateRoom(ctx, room); err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/v1/projects/{projectId}/rooms/{roomId}.
func (h *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	projectID, roomID := chi.URLParam(r, "projectId"), chi.URLParam(r, "roomId")
	if err := h.Store.DeleteRoom(r.Context(), projectID, roomID); err != nil {
		respondErr(w, err)
		return
	}
	log.Info().Str("project", projectID).Str("room", roomID).Msg("Room deleted")
	w.WriteHeader(http.StatusNoContent)
}

// fillRoom validates req and writes it into room. An untiered requirement
// inherits the project's tier.
func (h *Handlers) fillRoom(room *models.Room, p *models.Project, req roomRequest) error {
	rr := req.Requirement
	rr.ID = room.ID
	if rr.Tier == models.TierAny {
		rr.Tier = p.Tier
	}
	rr.Tier = models.ParseTier(string(rr.Tier))
	if err := rr.Validate(); err != nil {
		return err
	}
	if err := h.Features.ValidateRequirement(rr); err != nil {
		return err
	}

	sel, err := models.NewSelection(req.Selection)
	if err != nil {
		return err
	}
	if _, err := h.Catalog.Resolve(sel); err != nil {
		return err
	}

	room.Requirement = rr
	room.Selection = sel
	return nil
}

func (h *Handlers) loadRoom(r *http.Request) (*models.Room, error) {
	return h.Store.GetRoom(r.Context(), chi.URLParam(r, "projectId"), chi.URLParam(r, "roomId"))
}
