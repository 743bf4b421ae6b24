package pricing

import (
	"math"
	"testing"

	"github.com/avforge/configurator/internal/catalog"
	"github.com/avforge/configurator/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtin(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Builtin()
	require.NoError(t, err)
	return cat
}

func testRooms() []models.Room {
	ceiling := 3000.0
	return []models.Room{
		{
			ID:          "room-a",
			Requirement: models.RoomRequirement{Name: "Boardroom", BudgetCeiling: &ceiling},
			Selection:   models.Selection{Lines: []models.Line{{SKU: "DSP-65-4K", Quantity: 2}, {SKU: "WP-CAST-PRO", Quantity: 1}}},
		},
		{
			ID:        "room-b",
			Selection: models.Selection{Lines: []models.Line{{SKU: "CTL-PROC-3", Quantity: 1}}},
		},
	}
}

var testAncillary = models.Ancillary{Cabling: 120, Connectors: 40.5, Containment: 75, Fixings: 20, Materials: 33}

func TestAggregate_Totals(t *testing.T) {
	q, err := Aggregate(testRooms(), testAncillary, models.PricingProfile{MinimumDayRate: 500}, builtin(t))
	require.NoError(t, err)

	assert.InDelta(t, 4610, q.Hardware, 1e-9)
	assert.InDelta(t, 691.5, q.Labor, 1e-9)
	assert.InDelta(t, 288.5, q.Ancillary, 1e-9)
	assert.InDelta(t, 5590, q.Grand, 1e-9)
	assert.Equal(t, models.DefaultLaborRate, q.LaborRate)
	assert.False(t, q.FloorLabor)

	require.Len(t, q.Rooms, 2)
	assert.InDelta(t, 3600, q.Rooms[0].Hardware, 1e-9)
	assert.InDelta(t, 2*1499+1899, q.Rooms[0].List, 1e-9)
	assert.Equal(t, LineCost{SKU: "DSP-65-4K", Quantity: 2, UnitPrice: 1090, Total: 2180}, q.Rooms[0].Lines[0])
}

func TestAggregate_GrandIsSumOfParts(t *testing.T) {
	cat := builtin(t)
	profiles := []models.PricingProfile{{}, {LaborRate: 0.2}, {MinimumDayRate: 10000}, {LaborRate: 0.1, MinimumDayRate: 450}}
	for _, p := range profiles {
		q, err := Aggregate(testRooms(), testAncillary, p, cat)
		require.NoError(t, err)
		assert.InDelta(t, q.Hardware+q.Labor+q.Ancillary, q.Grand, 1e-9)
	}
}

func TestAggregate_AncillaryDelta(t *testing.T) {
	cat := builtin(t)
	base, err := Aggregate(testRooms(), testAncillary, models.PricingProfile{}, cat)
	require.NoError(t, err)

	bumped := testAncillary
	bumped.Containment += 57.25
	after, err := Aggregate(testRooms(), bumped, models.PricingProfile{}, cat)
	require.NoError(t, err)

	assert.InDelta(t, 57.25, after.Grand-base.Grand, 1e-9)
	assert.Equal(t, base.Hardware, after.Hardware)
	assert.Equal(t, base.Labor, after.Labor)
}

func TestAggregate_FinancialFeedback(t *testing.T) {
	q, err := Aggregate(testRooms()[1:], models.Ancillary{}, models.PricingProfile{MinimumDayRate: 800}, builtin(t))
	require.NoError(t, err)
	assert.True(t, q.FloorLabor)
	assert.Equal(t, 800.0, q.Labor)
	require.Len(t, q.Feedback, 1)
	assert.Equal(t, models.FeedbackFinancial, q.Feedback[0].Category)
	assert.Contains(t, q.Feedback[0].Message, "minimum day rate")

	q, err = Aggregate(testRooms(), models.Ancillary{}, models.PricingProfile{}, builtin(t))
	require.NoError(t, err)
	require.Len(t, q.Feedback, 1)
	assert.Equal(t, "room-a", q.Feedback[0].Subject)
	assert.Contains(t, q.Feedback[0].Message, "by 600.00")
}

func TestAggregate_Preconditions(t *testing.T) {
	cat := builtin(t)

	_, err := Aggregate(testRooms(), models.Ancillary{Fixings: -1}, models.PricingProfile{}, cat)
	require.ErrorIs(t, err, models.ErrPrecondition)

	_, err = Aggregate(testRooms(), models.Ancillary{}, models.PricingProfile{LaborRate: -0.1}, cat)
	require.ErrorIs(t, err, models.ErrPrecondition)

	_, err = Aggregate(testRooms(), models.Ancillary{Cabling: math.NaN()}, models.PricingProfile{}, cat)
	require.ErrorIs(t, err, models.ErrPrecondition)

	_, err = Aggregate(testRooms(), models.Ancillary{}, models.PricingProfile{MinimumDayRate: math.Inf(1)}, cat)
	require.ErrorIs(t, err, models.ErrPrecondition)

	rooms := []models.Room{{ID: "x", Selection: models.Selection{Lines: []models.Line{{SKU: "GHOST", Quantity: 1}}}}}
	_, err = Aggregate(rooms, models.Ancillary{}, models.PricingProfile{}, cat)
	require.ErrorIs(t, err, models.ErrPrecondition)
	assert.Contains(t, err.Error(), "room x")
}

func TestAggregate_Empty(t *testing.T) {
	q, err := Aggregate(nil, models.Ancillary{}, models.PricingProfile{}, builtin(t))
	require.NoError(t, err)
	assert.Zero(t, q.Grand)
	assert.Empty(t, q.Feedback)
}
