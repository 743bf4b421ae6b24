// Package pricing aggregates hardware, labor and ancillary costs into a quote.
//
// Totals are always recomputed from the room selections and ancillary
// entries; nothing is patched incrementally.
package pricing

import (
	"fmt"

	"github.com/avforge/configurator/internal/catalog"
	"github.com/avforge/configurator/pkg/models"
)

// LineCost is one priced equipment line.
type LineCost struct {
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// RoomCost is the hardware subtotal of one room.
type RoomCost struct {
	RoomID   string     `json:"room_id"`
	Name     string     `json:"name,omitempty"`
	Lines    []LineCost `json:"lines"`
	Hardware float64    `json:"hardware"`
	List     float64    `json:"list"`
}

// Quote is the priced result for a set of rooms.
type Quote struct {
	models.Totals
	Rooms      []RoomCost            `json:"rooms"`
	LaborRate  float64               `json:"labor_rate"`
	FloorLabor bool                  `json:"floor_labor"`
	Feedback   []models.FeedbackItem `json:"feedback"`
}

// Aggregate prices rooms against cat.
//
//	hardware = Σ rooms Σ lines dealer price × quantity
//	labor    = max(hardware × labor rate, minimum day rate)
//	grand    = hardware + labor + ancillary
//
// A zero labor rate in profile means models.DefaultLaborRate. Negative or
// non-finite profile or ancillary figures and unknown SKUs are precondition errors.
func Aggregate(rooms []models.Room, ancillary models.Ancillary, profile models.PricingProfile, cat *catalog.Catalog) (Quote, error) {
	if err := validateInputs(ancillary, profile); err != nil {
		return Quote{}, err
	}
	rate := profile.LaborRate
	if rate == 0 {
		rate = models.DefaultLaborRate
	}

	q := Quote{
		Rooms:     make([]RoomCost, 0, len(rooms)),
		LaborRate: rate,
		Feedback:  make([]models.FeedbackItem, 0),
	}
	for _, r := range rooms {
		rc, err := priceRoom(r, cat)
		if err != nil {
			return Quote{}, fmt.Errorf("room %s: %w", r.ID, err)
		}
		q.Rooms = append(q.Rooms, rc)
		q.Hardware += rc.Hardware

		if ceiling := r.Requirement.BudgetCeiling; ceiling != nil && rc.Hardware > *ceiling {
			q.Feedback = append(q.Feedback, models.FeedbackItem{
				Category: models.FeedbackFinancial,
				Subject:  r.ID,
				Message: fmt.Sprintf("%s hardware %.2f exceeds its budget ceiling %.2f by %.2f",
					roomLabel(r), rc.Hardware, *ceiling, rc.Hardware-*ceiling),
			})
		}
	}

	q.Labor = q.Hardware * rate
	if q.Labor < profile.MinimumDayRate {
		q.Labor = profile.MinimumDayRate
		q.FloorLabor = true
		q.Feedback = append(q.Feedback, models.FeedbackItem{
			Category: models.FeedbackFinancial,
			Message: fmt.Sprintf("Labor raised to the minimum day rate %.2f (%.0f%% of hardware is %.2f)",
				profile.MinimumDayRate, rate*100, q.Hardware*rate),
		})
	}
	q.Ancillary = ancillary.Total()
	q.Grand = q.Hardware + q.Labor + q.Ancillary
	return q, nil
}

func priceRoom(r models.Room, cat *catalog.Catalog) (RoomCost, error) {
	if err := r.Selection.Validate(); err != nil {
		return RoomCost{}, err
	}
	rc := RoomCost{RoomID: r.ID, Name: r.Requirement.Name, Lines: make([]LineCost, 0, len(r.Selection.Lines))}
	for _, l := range r.Selection.Lines {
		comp, ok := cat.Lookup(l.SKU)
		if !ok {
			return RoomCost{}, fmt.Errorf("%w: sku %s is not in the catalog", models.ErrPrecondition, l.SKU)
		}
		total := comp.DealerTotal(l.Quantity)
		rc.Lines = append(rc.Lines, LineCost{SKU: l.SKU, Quantity: l.Quantity, UnitPrice: comp.DealerPrice, Total: total})
		rc.Hardware += total
		rc.List += comp.ListPrice * float64(l.Quantity)
	}
	return rc, nil
}

func validateInputs(a models.Ancillary, p models.PricingProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return a.Validate()
}

func roomLabel(r models.Room) string {
	if r.Requirement.Name != "" {
		return fmt.Sprintf("Room %q", r.Requirement.Name)
	}
	return "Room " + r.ID
}
