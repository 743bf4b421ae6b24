package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/avforge/configurator/internal/layout"
	"github.com/avforge/configurator/internal/metrics"
	"github.com/avforge/configurator/internal/optimizer"
	"github.com/avforge/configurator/internal/selector"
	"github.com/avforge/configurator/internal/validator"
	"github.com/avforge/configurator/pkg/models"

	"github.com/rs/zerolog/log"
)

// ── Selection ───────────────────────────────────────────────

type selectRequest struct {
	Feature         string   `json:"feature"`
	RemainingBudget *float64 `json:"remaining_budget,omitempty"`
}

type selectResponse struct {
	Feature    string                `json:"feature"`
	Candidates []selector.Candidate  `json:"candidates"`
	Feedback   []models.FeedbackItem `json:"feedback"`
}

// SelectCandidates handles POST .../rooms/{roomId}/select.
func (h *Handlers) SelectCandidates(w http.ResponseWriter, r *http.Request) {
	room, err := h.loadRoom(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	var req selectRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := selectResponse{Feature: req.Feature, Feedback: []models.FeedbackItem{}}
	err = h.run(r.Context(), "select", room.ID, func(context.Context) error {
		var err error
		resp.Candidates, err = h.Selector.Select(selector.Query{
			Feature:         req.Feature,
			Tier:            room.Requirement.Tier,
			RemainingBudget: req.RemainingBudget,
		})
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	if len(resp.Candidates) == 0 {
		resp.Feedback = append(resp.Feedback,
			selector.NoMatchInsight(req.Feature, room.Requirement.Tier, req.RemainingBudget))
	}
	respondJSON(w, http.StatusOK, resp)
}

// Suggest handles POST .../rooms/{roomId}/suggest. The remaining budget is
// the room's ceiling less the hardware already selected.
func (h *Handlers) Suggest(w http.ResponseWriter, r *http.Request) {
	room, err := h.loadRoom(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	var out selector.Suggestions
	err = h.run(r.Context(), "suggest", room.ID, func(context.Context) error {
		remaining, err := h.remainingBudget(room)
		if err != nil {
			return err
		}
		out, err = h.Selector.SelectAll(room.Requirement, remaining)
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) remainingBudget(room *models.Room) (*float64, error) {
	if room.Requirement.BudgetCeiling == nil {
		return nil, nil
	}
	comps, err := h.Catalog.Resolve(room.Selection)
	if err != nil {
		return nil, err
	}
	spent := 0.0
	for i, c := range comps {
		spent += c.DealerTotal(room.Selection.Lines[i].Quantity)
	}
	left := math.Max(*room.Requirement.BudgetCeiling-spent, 0)
	return &left, nil
}

// ── Equipment ───────────────────────────────────────────────

type equipmentRequest struct {
	Lines []models.Line `json:"lines"`
}

// SetEquipment handles PUT .../rooms/{roomId}/equipment.
func (h *Handlers) SetEquipment(w http.ResponseWriter, r *http.Request) {
	room, err := h.loadRoom(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	var req equipmentRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sel, err := models.NewSelection(req.Lines)
	if err != nil {
		respondErr(w, err)
		return
	}
	h.saveSelection(w, r, room, sel)
}

// AddEquipment handles POST .../rooms/{roomId}/equipment. An already
// selected SKU has its quantity increased.
func (h *Handlers) AddEquipment(w http.ResponseWriter, r *http.Request) {
	room, err := h.loadRoom(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	var line models.Line
	if err := decode(r, &line); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if line.Quantity == 0 {
		line.Quantity = 1
	}
	sel, err := room.Selection.Add(line.SKU, line.Quantity)
	if err != nil {
		respondErr(w, err)
		return
	}
	h.saveSelection(w, r, room, sel)
}

func (h *Handlers) saveSelection(w http.ResponseWriter, r *http.Request, room *models.Room, sel models.Selection) {
	if _, err := h.Catalog.Resolve(sel); err != nil {
		respondErr(w, err)
		return
	}
	room.Selection = sel
	if err := h.Store.UpdateRoom(r.Context(), room); err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, room)
}

// ── Validation ──────────────────────────────────────────────

type chainView struct {
	Point        string   `json:"point"`
	Source       string   `json:"source,omitempty"`
	Distribution []string `json:"distribution"`
	Destination  string   `json:"destination,omitempty"`
}

type validateResponse struct {
	Items  []models.FeedbackItem  `json:"items"`
	Groups []models.FeedbackGroup `json:"groups"`
	Chains []chainView            `json:"chains"`
}

// Validate handles POST .../rooms/{roomId}/validate.
func (h *Handlers) Validate(w http.ResponseWriter, r *http.Request) {
	room, err := h.loadRoom(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	var (
		report models.Report
		chains []validator.Chain
	)
	err = h.run(r.Context(), "validate", room.ID, func(context.Context) error {
		var err error
		if report, err = h.Validator.Validate(room.Requirement, room.Selection); err != nil {
			return err
		}
		chains, err = h.Validator.Chains(room.Requirement, room.Selection)
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	metrics.RecordFeedback(report.Items)

	resp := validateResponse{
		Items:  report.Items,
		Groups: report.Grouped(),
		Chains: make([]chainView, len(chains)),
	}
	if resp.Items == nil {
		resp.Items = []models.FeedbackItem{}
	}
	for i, c := range chains {
		resp.Chains[i] = viewChain(c)
	}
	respondJSON(w, http.StatusOK, resp)
}

func viewChain(c validator.Chain) chainView {
	v := chainView{Point: c.Point.ID, Distribution: make([]string, len(c.Distribution))}
	if c.Source != nil {
		v.Source = c.Source.SKU
	}
	if c.Destination != nil {
		v.Destination = c.Destination.SKU
	}
	for i, d := range c.Distribution {
		v.Distribution[i] = d.SKU
	}
	return v
}

// ── Value Engineering ───────────────────────────────────────

type valueEngineerResponse struct {
	optimizer.Result
	Applied bool `json:"applied"`
}

// ValueEngineer handles POST .../rooms/{roomId}/value-engineer. With
// ?apply=true the revised selection replaces the stored one.
func (h *Handlers) ValueEngineer(w http.ResponseWriter, r *http.Request) {
	room, err := h.loadRoom(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	apply := false
	if v := r.URL.Query().Get("apply"); v != "" {
		if apply, err = strconv.ParseBool(v); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid apply flag %q", v))
			return
		}
	}
	var dir models.Directive
	if err := decode(r, &dir); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var res optimizer.Result
	err = h.run(r.Context(), "value_engineer", room.ID, func(context.Context) error {
		var err error
		res, err = h.Optimizer.Optimize(room.Requirement, room.Selection, dir)
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	for _, c := range res.Changes {
		metrics.RecordChange(string(c.Kind))
	}

	if apply {
		room.Selection = res.Selection
		if err := h.Store.UpdateRoom(r.Context(), room); err != nil {
			respondErr(w, err)
			return
		}
		log.Info().
			Str("room", room.ID).
			Int("changes", len(res.Changes)).
			Msg("Value engineering applied")
	}
	respondJSON(w, http.StatusOK, valueEngineerResponse{Result: res, Applied: apply})
}

// ── Layout ──────────────────────────────────────────────────

type layoutRequest struct {
	TargetWidth float64         `json:"target_width"`
	Outlets     []layout.Outlet `json:"outlets"`
}

// Layout handles POST .../rooms/{roomId}/layout for the room's video wall.
func (h *Handlers) Layout(w http.ResponseWriter, r *http.Request) {
	room, err := h.loadRoom(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	if room.Requirement.VideoWall == nil {
		respondError(w, http.StatusBadRequest, "room has no video wall")
		return
	}
	var req layoutRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var g layout.Geometry
	err = h.run(r.Context(), "layout", room.ID, func(context.Context) error {
		var err error
		g, err = layout.Compute(layout.FromVideoWall(*room.Requirement.VideoWall, req.TargetWidth, req.Outlets))
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}
