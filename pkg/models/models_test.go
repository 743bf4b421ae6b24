package models

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNewSelection(t *testing.T) {
	sel, err := NewSelection([]Line{{SKU: "A", Quantity: 2}, {SKU: "B", Quantity: 1}, {SKU: "A", Quantity: 2}})
	if err != nil {
		t.Fatalf("NewSelection() error = %v", err)
	}
	if len(sel.Lines) != 2 || sel.Quantity("A") != 2 {
		t.Errorf("NewSelection() = %+v, want exact duplicate collapsed", sel)
	}

	tests := []struct {
		name  string
		lines []Line
	}{
		{"conflicting duplicate", []Line{{SKU: "A", Quantity: 1}, {SKU: "A", Quantity: 3}}},
		{"zero quantity", []Line{{SKU: "A", Quantity: 0}}},
		{"empty sku", []Line{{Quantity: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSelection(tt.lines); !errors.Is(err, ErrPrecondition) {
				t.Errorf("NewSelection() error = %v, want ErrPrecondition", err)
			}
		})
	}
}

func TestSelection_AddDoesNotAlias(t *testing.T) {
	orig := Selection{Lines: []Line{{SKU: "A", Quantity: 1}}}
	got, err := orig.Add("A", 2)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got.Quantity("A") != 3 || orig.Quantity("A") != 1 {
		t.Errorf("Add() = %d, original = %d; want 3 and 1", got.Quantity("A"), orig.Quantity("A"))
	}
	if _, err := orig.Add("B", 0); !errors.Is(err, ErrPrecondition) {
		t.Errorf("Add(qty 0) error = %v", err)
	}
	if orig.Remove("A").Has("A") {
		t.Error("Remove() kept the line")
	}
}

func TestReport_GroupedDisplayOrder(t *testing.T) {
	r := Report{Items: []FeedbackItem{
		{Category: FeedbackInsight, Message: "i"},
		{Category: FeedbackWarning, Message: "w1"},
		{Category: FeedbackFinancial, Message: "f"},
		{Category: FeedbackWarning, Message: "w2"},
	}}
	groups := r.Grouped()
	if len(groups) != 3 {
		t.Fatalf("Grouped() returned %d groups, want 3", len(groups))
	}
	want := []FeedbackCategory{FeedbackWarning, FeedbackInsight, FeedbackFinancial}
	for i, g := range groups {
		if g.Category != want[i] {
			t.Errorf("group %d = %s, want %s", i, g.Category, want[i])
		}
	}
	if groups[0].Items[1].Message != "w2" {
		t.Error("items within a group must keep production order")
	}
	if r.Count(FeedbackWarning) != 2 {
		t.Errorf("Count(Warning) = %d, want 2", r.Count(FeedbackWarning))
	}
}

func TestTierMarkersAndRank(t *testing.T) {
	if ParseTier(" Gold ") != TierGold {
		t.Errorf("ParseTier() = %q", ParseTier(" Gold "))
	}
	if !(TierBronze.Rank() < TierSilver.Rank() && TierSilver.Rank() < TierGold.Rank()) {
		t.Error("tier ranks out of order")
	}
	got := TierMarkers([]string{"casting", "silver", "4k60"})
	if len(got) != 1 || got[0] != TierSilver {
		t.Errorf("TierMarkers() = %v, want [silver]", got)
	}
}

func TestValidAmount(t *testing.T) {
	for _, v := range []float64{0, 1.5, 1e9} {
		if !ValidAmount(v) {
			t.Errorf("ValidAmount(%v) = false", v)
		}
	}
	for _, v := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if ValidAmount(v) {
			t.Errorf("ValidAmount(%v) = true", v)
		}
	}
}

func TestAncillary_ValidateNamesFirstBadField(t *testing.T) {
	a := Ancillary{Cabling: -1, Fixings: math.NaN(), Materials: -2}
	for i := 0; i < 20; i++ {
		err := a.Validate()
		if !errors.Is(err, ErrPrecondition) {
			t.Fatalf("Validate() error = %v, want ErrPrecondition", err)
		}
		if !strings.Contains(err.Error(), "ancillary cabling") {
			t.Fatalf("Validate() error = %q, want the cabling field named", err)
		}
	}
	if err := (Ancillary{Cabling: 10, Materials: 5}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestRoomRequirement_ValidateRejectsBadFigures(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		mutate func(*RoomRequirement)
	}{
		{"negative refresh", func(r *RoomRequirement) { r.Technical.TargetRefresh = -30 }},
		{"negative display count", func(r *RoomRequirement) { r.DisplayCount = -1 }},
		{"negative occupancy", func(r *RoomRequirement) { r.MaxOccupancy = -4 }},
		{"nan budget", func(r *RoomRequirement) { r.BudgetCeiling = &nan }},
		{"nan run distance", func(r *RoomRequirement) {
			r.IOPoints = []IOPoint{{ID: "p1", Direction: DirectionInput, Connector: ConnectorHDMI, Distribution: DistributionDirect, RunDistance: nan}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RoomRequirement{ID: "r1"}
			if err := r.Validate(); err != nil {
				t.Fatalf("baseline Validate() error = %v", err)
			}
			tt.mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrPrecondition) {
				t.Errorf("Validate() error = %v, want ErrPrecondition", err)
			}
		})
	}
}
