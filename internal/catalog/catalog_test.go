package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/avforge/configurator/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NormalizesTags(t *testing.T) {
	c, err := New([]models.Component{
		{SKU: "A", Name: "a", DealerPrice: 10, Tags: []string{" Casting", "casting", "4K60", ""}},
	})
	require.NoError(t, err)

	comp, ok := c.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, []string{"casting", "4k60"}, comp.Tags)
	assert.Equal(t, models.StatusActive, comp.Status)
}

func TestNew_RejectsInconsistentRecords(t *testing.T) {
	tests := []struct {
		name string
		comp models.Component
	}{
		{"negative dealer price", models.Component{SKU: "A", DealerPrice: -1}},
		{"negative list price", models.Component{SKU: "A", ListPrice: -0.01}},
		{"nan dealer price", models.Component{SKU: "A", DealerPrice: math.NaN()}},
		{"infinite list price", models.Component{SKU: "A", ListPrice: math.Inf(1)}},
		{"nan data rate", models.Component{SKU: "A", Capability: models.Capability{
			Video: &models.VideoIO{MaxDataRateGbps: math.NaN()}}}},
		{"legacy without reason", models.Component{SKU: "A", Status: models.StatusLegacy}},
		{"empty sku", models.Component{Name: "nameless"}},
		{"unknown status", models.Component{SKU: "A", Status: "retired"}},
		{"unknown connector", models.Component{SKU: "A", Capability: models.Capability{
			Video: &models.VideoIO{Inputs: []models.Port{{Kind: "Thunderbolt", Count: 1}}}}}},
		{"unknown hdcp", models.Component{SKU: "A", Capability: models.Capability{
			Video: &models.VideoIO{HDCP: "3.0"}}}},
		{"unknown hdbaset class", models.Component{SKU: "A", Capability: models.Capability{
			HDBaseT: &models.HDBaseTSpec{Class: "Z"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]models.Component{tt.comp})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
		})
	}
}

func TestNew_RejectsDuplicateSKU(t *testing.T) {
	_, err := New([]models.Component{{SKU: "A"}, {SKU: "A"}})
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	in := []models.Component{{SKU: "A", Tags: []string{"casting"}}}
	c, err := New(in)
	require.NoError(t, err)

	in[0].Tags[0] = "mutated"
	comp, _ := c.Lookup("A")
	assert.Equal(t, []string{"casting"}, comp.Tags)
}

func TestAll_SortedBySKU(t *testing.T) {
	c, err := New([]models.Component{{SKU: "C"}, {SKU: "A"}, {SKU: "B"}})
	require.NoError(t, err)

	var skus []string
	for _, comp := range c.All() {
		skus = append(skus, comp.SKU)
	}
	assert.Equal(t, []string{"A", "B", "C"}, skus)
	assert.Equal(t, 3, c.Count())
}

func TestResolve_UnknownSKU(t *testing.T) {
	c, err := New([]models.Component{{SKU: "A"}})
	require.NoError(t, err)

	_, err = c.Resolve(models.Selection{Lines: []models.Line{{SKU: "A", Quantity: 1}, {SKU: "Z", Quantity: 1}}})
	require.ErrorIs(t, err, models.ErrPrecondition)
}

func TestBuiltin_Consistent(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	features, constraints, err := BuiltinTables()
	require.NoError(t, err)

	assert.Empty(t, features.CheckAgainst(c), "every built-in feature should have a carrier")
	for _, con := range constraints.All() {
		assert.NotEmpty(t, con.Tags, con.ID)
	}
}

func TestParse_YAML(t *testing.T) {
	doc := []byte(`
components:
  - sku: EXT-1
    name: Extender
    category: Extender
    dealer_price: 120
    list_price: 180
    tags: [HDBaseT, Bronze]
    capability:
      video:
        inputs: [{kind: HDMI, count: 1}]
        outputs: [{kind: HDBaseT, count: 1}]
        max_resolution: 4K
        max_chroma: "4:2:0"
        hdcp: "1.4"
      hdbaset:
        class: B
  - sku: OLD-1
    status: legacy
    legacy_reason: end of line
`)
	c, err := Parse(doc)
	require.NoError(t, err)
	require.Equal(t, 2, c.Count())

	ext, ok := c.Lookup("EXT-1")
	require.True(t, ok)
	assert.Equal(t, models.RoleDistribution, ext.Role())
	assert.Equal(t, models.HDCP14, ext.HDCP())
	assert.Equal(t, models.HDBaseTClassB, ext.Capability.HDBaseT.Class)
	assert.True(t, ext.HasTag("hdbaset"))

	old, _ := c.Lookup("OLD-1")
	assert.True(t, old.IsLegacy())
}

func TestParse_RejectsNonFinitePrice(t *testing.T) {
	_, err := Parse([]byte(`
components:
  - sku: X
    dealer_price: .nan
    list_price: .inf
`))
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "finite")
}

func TestLoadTablesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
features:
  Wireless Presentation: [Casting]
  Multiview: [Multiview]
constraints:
  - id: NO_WIRELESS_CASTING
    tags: [Casting]
  - id: NO_MULTIVIEW
    tags: [Multiview]
    waives: [Multiview]
`), 0o644))

	features, constraints, err := LoadTablesFile(path)
	require.NoError(t, err)

	tags, err := features.Tags("wireless presentation")
	require.NoError(t, err)
	assert.Equal(t, []string{"casting"}, tags)

	con, err := constraints.Get("NO_MULTIVIEW")
	require.NoError(t, err)
	assert.Equal(t, []string{"Multiview"}, con.Waives)
}

func TestFeatureTable_Validation(t *testing.T) {
	_, err := NewFeatureTable(map[string][]string{"Empty": {" "}})
	require.Error(t, err)

	_, err = NewFeatureTable(map[string][]string{"Casting": {"a"}, " casting ": {"b"}})
	require.Error(t, err)

	ft, err := NewFeatureTable(map[string][]string{"Casting": {"a"}})
	require.NoError(t, err)
	_, err = ft.Tags("Unknown")
	require.ErrorIs(t, err, ErrUnknownFeature)

	err = ft.ValidateRequirement(models.RoomRequirement{Features: []models.Feature{{Name: "Nope"}}})
	require.ErrorIs(t, err, models.ErrPrecondition)
	require.ErrorIs(t, err, ErrUnknownFeature)
}

func TestConstraintTable_Validation(t *testing.T) {
	ft, err := NewFeatureTable(map[string][]string{"Casting": {"casting"}})
	require.NoError(t, err)

	_, err = NewConstraintTable([]Constraint{{ID: "X", Tags: []string{"casting"}, Waives: []string{"Ghost"}}}, ft)
	require.ErrorIs(t, err, ErrUnknownFeature)

	_, err = NewConstraintTable([]Constraint{{ID: "X", Tags: []string{"a"}}, {ID: "X", Tags: []string{"b"}}}, ft)
	require.Error(t, err)

	ct, err := NewConstraintTable([]Constraint{{ID: "X", Tags: []string{"A"}}}, ft)
	require.NoError(t, err)
	_, err = ct.Get("Y")
	require.ErrorIs(t, err, ErrUnknownConstraint)
}
