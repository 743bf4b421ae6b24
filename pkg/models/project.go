package models

import (
	"fmt"
	"math"
	"time"
)

// ── Pricing ──────────────────────────────────────────────────

// DefaultLaborRate is the share of hardware cost billed as labor.
const DefaultLaborRate = 0.15

// PricingProfile holds the labor model of the selling organisation.
type PricingProfile struct {
	LaborRate      float64 `json:"labor_rate"`
	MinimumDayRate float64 `json:"minimum_day_rate"`
}

// Validate rejects negative or non-finite profile figures.
func (p PricingProfile) Validate() error {
	if !ValidAmount(p.LaborRate) || !ValidAmount(p.MinimumDayRate) {
		return fmt.Errorf("%w: pricing profile needs finite non-negative figures, got rate %v and day rate %v",
			ErrPrecondition, p.LaborRate, p.MinimumDayRate)
	}
	return nil
}

// ValidAmount reports whether v is a finite, non-negative figure.
func ValidAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// Ancillary is the five independently entered ancillary categories.
type Ancillary struct {
	Cabling     float64 `json:"cabling"`
	Connectors  float64 `json:"connectors"`
	Containment float64 `json:"containment"`
	Fixings     float64 `json:"fixings"`
	Materials   float64 `json:"materials"`
}

// Total sums all ancillary categories.
func (a Ancillary) Total() float64 {
	return a.Cabling + a.Connectors + a.Containment + a.Fixings + a.Materials
}

// Validate rejects negative or non-finite categories. Categories are
// checked in display order so the reported one is stable.
func (a Ancillary) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"cabling", a.Cabling},
		{"connectors", a.Connectors},
		{"containment", a.Containment},
		{"fixings", a.Fixings},
		{"materials", a.Materials},
	} {
		if !ValidAmount(c.value) {
			return fmt.Errorf("%w: ancillary %s must be a finite non-negative amount, got %v", ErrPrecondition, c.name, c.value)
		}
	}
	return nil
}

// Totals are the four priced figures of a project.
type Totals struct {
	Hardware  float64 `json:"hardware"`
	Labor     float64 `json:"labor"`
	Ancillary float64 `json:"ancillary"`
	Grand     float64 `json:"grand"`
}

// ── Projects & Rooms ─────────────────────────────────────────

// Project groups the rooms of one proposal.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Customer  string    `json:"customer,omitempty"`
	Tier      Tier      `json:"tier,omitempty"`
	Ancillary Ancillary `json:"ancillary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Room is a requirement together with its chosen equipment.
type Room struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	Requirement RoomRequirement `json:"requirement"`
	Selection   Selection       `json:"selection"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
