package models

import "fmt"

// ── Room Requirement ─────────────────────────────────────────

// RoomRequirement captures what a room must do. It is owned by the design
// session and passed by value into every core operation.
type RoomRequirement struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Tier              Tier                 `json:"tier,omitempty"`
	DisplayTechnology string               `json:"display_technology,omitempty"`
	DisplayCount      int                  `json:"display_count,omitempty"`
	VideoWall         *VideoWallSpec       `json:"video_wall,omitempty"`
	MaxOccupancy      int                  `json:"max_occupancy,omitempty"`
	IOPoints          []IOPoint            `json:"io_points,omitempty"`
	Features          []Feature            `json:"features,omitempty"`
	Functionality     string               `json:"functionality,omitempty"`
	Technical         TechnicalRequirement `json:"technical"`
	BudgetCeiling     *float64             `json:"budget_ceiling,omitempty"`
}

// IOPoint is a single physical connection point in the room.
type IOPoint struct {
	ID           string        `json:"id"`
	Direction    Direction     `json:"direction"`
	DeviceType   string        `json:"device_type"`
	Connector    ConnectorKind `json:"connector"`
	Distribution Distribution  `json:"distribution"`
	RunDistance  float64       `json:"run_distance"`
	Termination  string        `json:"termination,omitempty"`
	Control      string        `json:"control,omitempty"`
}

// Feature is a named capability the customer asked for.
type Feature struct {
	Name     string   `json:"name"`
	Priority Priority `json:"priority"`
}

// TechnicalRequirement is the room's signal target.
type TechnicalRequirement struct {
	TargetResolution  Resolution      `json:"target_resolution,omitempty"`
	TargetRefresh     int             `json:"target_refresh,omitempty"`
	TargetChroma      Chroma          `json:"target_chroma,omitempty"`
	HDR               string          `json:"hdr,omitempty"` // "HDR10", "Dolby Vision", ...
	ContentProtection bool            `json:"content_protection,omitempty"`
	RequiredHDCP      HDCPVersion     `json:"required_hdcp,omitempty"`
	SignalTypes       []ConnectorKind `json:"signal_types,omitempty"`
	ControlSystem     string          `json:"control_system,omitempty"`
}

// Target returns the required resolution/chroma pair.
func (t TechnicalRequirement) Target() VideoFormat {
	return VideoFormat{Resolution: t.TargetResolution, Chroma: t.TargetChroma}
}

// VideoWallSpec is the tiled-display sub-specification of a room.
type VideoWallSpec struct {
	PanelTechnology   PanelTechnology `json:"panel_technology"`
	Rows              int             `json:"rows"`
	Columns           int             `json:"columns"`
	Width             float64         `json:"width"`
	Height            float64         `json:"height"`
	BezelWidth        float64         `json:"bezel_width,omitempty"`
	DrivingTechnology string          `json:"driving_technology,omitempty"`
	MultiviewRequired bool            `json:"multiview_required,omitempty"`
}

// MustHaves returns the must-have features in requirement order.
func (r RoomRequirement) MustHaves() []Feature {
	var out []Feature
	for _, f := range r.Features {
		if f.Priority == PriorityMustHave {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks the structural shape of a requirement. It does not check
// feature names against a feature table.
func (r RoomRequirement) Validate() error {
	if !r.Tier.Valid() {
		return fmt.Errorf("%w: unknown tier %q", ErrPrecondition, r.Tier)
	}
	if !r.Technical.TargetResolution.Valid() || !r.Technical.TargetChroma.Valid() {
		return fmt.Errorf("%w: invalid target format %s", ErrPrecondition, r.Technical.Target())
	}
	if !r.Technical.RequiredHDCP.Valid() {
		return fmt.Errorf("%w: invalid required HDCP %q", ErrPrecondition, r.Technical.RequiredHDCP)
	}
	if r.Technical.TargetRefresh < 0 {
		return fmt.Errorf("%w: negative target refresh %d", ErrPrecondition, r.Technical.TargetRefresh)
	}
	if r.DisplayCount < 0 || r.MaxOccupancy < 0 {
		return fmt.Errorf("%w: negative display count or occupancy", ErrPrecondition)
	}
	if r.BudgetCeiling != nil && !ValidAmount(*r.BudgetCeiling) {
		return fmt.Errorf("%w: budget ceiling must be finite and non-negative, got %v", ErrPrecondition, *r.BudgetCeiling)
	}
	seen := make(map[string]bool, len(r.IOPoints))
	for i, p := range r.IOPoints {
		if p.ID == "" {
			return fmt.Errorf("%w: io point %d has no id", ErrPrecondition, i)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate io point %q", ErrPrecondition, p.ID)
		}
		seen[p.ID] = true
		if p.Direction != DirectionInput && p.Direction != DirectionOutput {
			return fmt.Errorf("%w: io point %q: invalid direction %q", ErrPrecondition, p.ID, p.Direction)
		}
		if !p.Connector.Valid() {
			return fmt.Errorf("%w: io point %q: unknown connector %q", ErrPrecondition, p.ID, p.Connector)
		}
		if !p.Distribution.Valid() {
			return fmt.Errorf("%w: io point %q: unknown distribution %q", ErrPrecondition, p.ID, p.Distribution)
		}
		if !ValidAmount(p.RunDistance) {
			return fmt.Errorf("%w: io point %q: run distance must be finite and non-negative", ErrPrecondition, p.ID)
		}
	}
	for _, f := range r.Features {
		if f.Priority != PriorityMustHave && f.Priority != PriorityNiceToHave {
			return fmt.Errorf("%w: feature %q: invalid priority %q", ErrPrecondition, f.Name, f.Priority)
		}
	}
	return nil
}
