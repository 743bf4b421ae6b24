package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/avforge/configurator/pkg/models"
)

var (
	// ErrUnknownFeature is returned for feature names outside the feature table.
	ErrUnknownFeature = errors.New("unknown feature")
	// ErrUnknownConstraint is returned for constraint identifiers outside the constraint table.
	ErrUnknownConstraint = errors.New("unknown constraint")
)

// ── Feature → Tag Table ─────────────────────────────────────

// FeatureTable is the closed mapping from feature names to the tags that
// satisfy them. Lookups are case-insensitive on the feature name.
type FeatureTable struct {
	entries map[string]featureEntry // key: lower-cased name
}

type featureEntry struct {
	name string
	tags []string
}

// NewFeatureTable validates the mapping: every feature needs a name and at
// least one non-empty tag, and names must not collide case-insensitively.
func NewFeatureTable(mapping map[string][]string) (*FeatureTable, error) {
	t := &FeatureTable{entries: make(map[string]featureEntry, len(mapping))}
	var errs []error
	for name, tags := range mapping {
		key := featureKey(name)
		if key == "" {
			errs = append(errs, errors.New("feature with empty name"))
			continue
		}
		norm := models.NormalizeTags(tags)
		if len(norm) == 0 {
			errs = append(errs, fmt.Errorf("feature %q: no tags", name))
			continue
		}
		if prev, dup := t.entries[key]; dup {
			errs = append(errs, fmt.Errorf("feature %q collides with %q", name, prev.name))
			continue
		}
		t.entries[key] = featureEntry{name: strings.TrimSpace(name), tags: norm}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("feature table: %w", errors.Join(errs...))
	}
	return t, nil
}

// Tags returns the tags satisfying feature.
func (t *FeatureTable) Tags(feature string) ([]string, error) {
	e, ok := t.entries[featureKey(feature)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, feature)
	}
	return append([]string(nil), e.tags...), nil
}

// Has reports whether feature is in the table.
func (t *FeatureTable) Has(feature string) bool {
	_, ok := t.entries[featureKey(feature)]
	return ok
}

// Names returns the canonical feature names, sorted.
func (t *FeatureTable) Names() []string {
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.name)
	}
	sort.Strings(out)
	return out
}

// Mapping returns a copy of the table keyed by canonical name.
func (t *FeatureTable) Mapping() map[string][]string {
	out := make(map[string][]string, len(t.entries))
	for _, e := range t.entries {
		out[e.name] = append([]string(nil), e.tags...)
	}
	return out
}

// Covers reports whether comp carries any tag of feature. Unknown features
// are never covered.
func (t *FeatureTable) Covers(feature string, comp *models.Component) bool {
	e, ok := t.entries[featureKey(feature)]
	return ok && models.IntersectsTags(comp.Tags, e.tags)
}

// CheckAgainst returns the features whose tags no catalog component carries.
func (t *FeatureTable) CheckAgainst(c *Catalog) []string {
	var orphaned []string
	for _, name := range t.Names() {
		found := false
		for _, comp := range c.All() {
			if t.Covers(name, comp) {
				found = true
				break
			}
		}
		if !found {
			orphaned = append(orphaned, name)
		}
	}
	return orphaned
}

// ValidateRequirement checks that every requested feature is in the table.
func (t *FeatureTable) ValidateRequirement(req models.RoomRequirement) error {
	for _, f := range req.Features {
		if !t.Has(f.Name) {
			return fmt.Errorf("%w: %w: %q", models.ErrPrecondition, ErrUnknownFeature, f.Name)
		}
	}
	return nil
}

func featureKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ── Value-Engineering Constraints ───────────────────────────

// Constraint is a disabled-feature identifier the value-engineering UI can
// switch on. Waives names the features whose must-have protection the
// constraint explicitly lifts.
type Constraint struct {
	ID     string   `json:"id" yaml:"id"`
	Label  string   `json:"label,omitempty" yaml:"label"`
	Tags   []string `json:"tags" yaml:"tags"`
	Waives []string `json:"waives,omitempty" yaml:"waives"`
}

// ConstraintTable is the closed set of constraints, keyed by ID.
type ConstraintTable struct {
	byID map[string]Constraint
	ids  []string
}

// NewConstraintTable validates constraints against the feature table:
// IDs are unique and non-empty, tags are non-empty and every waived feature exists.
func NewConstraintTable(constraints []Constraint, features *FeatureTable) (*ConstraintTable, error) {
	t := &ConstraintTable{byID: make(map[string]Constraint, len(constraints))}
	var errs []error
	for _, c := range constraints {
		if c.ID == "" {
			errs = append(errs, errors.New("constraint with empty id"))
			continue
		}
		if _, dup := t.byID[c.ID]; dup {
			errs = append(errs, fmt.Errorf("constraint %s: duplicate id", c.ID))
			continue
		}
		c.Tags = models.NormalizeTags(c.Tags)
		if len(c.Tags) == 0 {
			errs = append(errs, fmt.Errorf("constraint %s: no tags", c.ID))
			continue
		}
		for _, w := range c.Waives {
			if !features.Has(w) {
				errs = append(errs, fmt.Errorf("constraint %s: waives %w %q", c.ID, ErrUnknownFeature, w))
			}
		}
		c.Waives = append([]string(nil), c.Waives...)
		t.byID[c.ID] = c
		t.ids = append(t.ids, c.ID)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("constraint table: %w", errors.Join(errs...))
	}
	sort.Strings(t.ids)
	return t, nil
}

// Get returns the constraint for id.
func (t *ConstraintTable) Get(id string) (Constraint, error) {
	c, ok := t.byID[id]
	if !ok {
		return Constraint{}, fmt.Errorf("%w: %q", ErrUnknownConstraint, id)
	}
	return c, nil
}

// All returns the constraints in ID order.
func (t *ConstraintTable) All() []Constraint {
	out := make([]Constraint, len(t.ids))
	for i, id := range t.ids {
		out[i] = t.byID[id]
	}
	return out
}
