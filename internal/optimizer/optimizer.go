// Package optimizer re-works an existing equipment selection under a
// value-engineering directive.
//
// A directive carries explicit SKU substitutions and a set of disabled
// constraints. The optimizer applies the substitutions, drops components
// that only existed for a disabled constraint, then looks for strictly
// cheaper replacements for any feature the removal uncovered. Components
// backing a must-have feature are never touched unless a disabled constraint
// explicitly waives that feature.
package optimizer

import (
	"fmt"
	"strings"

	"github.com/avforge/configurator/internal/catalog"
	"github.com/avforge/configurator/internal/selector"
	"github.com/avforge/configurator/pkg/models"
	"github.com/rs/zerolog/log"
)

// ChangeKind classifies one step the optimizer took (or declined to take).
type ChangeKind string

const (
	ChangeSubstituted ChangeKind = "substituted"
	ChangeRemoved     ChangeKind = "removed"
	ChangeAdded       ChangeKind = "added"
	ChangeProtected   ChangeKind = "protected"
	ChangeUncovered   ChangeKind = "uncovered"
)

// Change records what happened to one SKU or feature.
type Change struct {
	Kind        ChangeKind `json:"kind"`
	SKU         string     `json:"sku,omitempty"`
	Replacement string     `json:"replacement,omitempty"`
	Feature     string     `json:"feature,omitempty"`
	Detail      string     `json:"detail"`
}

// Result is the revised selection plus the audit trail that produced it.
type Result struct {
	Selection models.Selection `json:"selection"`
	Changes   []Change         `json:"changes"`
}

// Optimizer holds the immutable reference tables. It is safe for concurrent use.
type Optimizer struct {
	catalog     *catalog.Catalog
	features    *catalog.FeatureTable
	constraints *catalog.ConstraintTable
	selector    *selector.Selector
}

// New creates an optimizer.
func New(cat *catalog.Catalog, features *catalog.FeatureTable, constraints *catalog.ConstraintTable) *Optimizer {
	return &Optimizer{
		catalog:     cat,
		features:    features,
		constraints: constraints,
		selector:    selector.New(cat, features),
	}
}

// plan is the resolved form of a directive.
type plan struct {
	disabledTags []string
	waived       []string
}

// Optimize applies dir to sel for the room req and returns a new selection.
// The input selection is never modified.
func (o *Optimizer) Optimize(req models.RoomRequirement, sel models.Selection, dir models.Directive) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if err := sel.Validate(); err != nil {
		return Result{}, err
	}
	if err := o.features.ValidateRequirement(req); err != nil {
		return Result{}, err
	}
	if _, err := o.catalog.Resolve(sel); err != nil {
		return Result{}, err
	}
	p, err := o.resolveDirective(sel, dir)
	if err != nil {
		return Result{}, err
	}

	res := Result{Selection: sel.Clone(), Changes: make([]Change, 0)}
	o.substitute(req, p, dir.Substitutions, &res)
	removed := o.removeDisabled(req, p, &res)
	if err := o.reselect(req, p, removed, &res); err != nil {
		return Result{}, err
	}

	log.Debug().
		Str("room", req.ID).
		Int("changes", len(res.Changes)).
		Int("lines", len(res.Selection.Lines)).
		Msg("Value engineering applied")
	return res, nil
}

// resolveDirective checks dir against the selection and tables.
func (o *Optimizer) resolveDirective(sel models.Selection, dir models.Directive) (plan, error) {
	var p plan
	for _, id := range dir.Disabled {
		c, err := o.constraints.Get(id)
		if err != nil {
			return plan{}, fmt.Errorf("%w: %w", models.ErrPrecondition, err)
		}
		p.disabledTags = append(p.disabledTags, c.Tags...)
		p.waived = append(p.waived, c.Waives...)
	}
	p.disabledTags = models.NormalizeTags(p.disabledTags)

	seen := make(map[string]bool, len(dir.Substitutions))
	for _, s := range dir.Substitutions {
		if !sel.Has(s.Original) {
			return plan{}, fmt.Errorf("%w: substitution original %s is not in the selection", models.ErrPrecondition, s.Original)
		}
		if seen[s.Original] {
			return plan{}, fmt.Errorf("%w: more than one substitution for %s", models.ErrPrecondition, s.Original)
		}
		seen[s.Original] = true
		if _, ok := o.catalog.Lookup(s.Replacement); !ok {
			return plan{}, fmt.Errorf("%w: substitution replacement %s is not in the catalog", models.ErrPrecondition, s.Replacement)
		}
	}
	return p, nil
}

func (p plan) waives(feature string) bool {
	for _, w := range p.waived {
		if strings.EqualFold(strings.TrimSpace(w), strings.TrimSpace(feature)) {
			return true
		}
	}
	return false
}

// ── Protection ──────────────────────────────────────────────

// protector returns, for a selected component, the first must-have feature
// it backs that the directive does not waive, or "" if it is unprotected.
func (o *Optimizer) protector(req models.RoomRequirement, p plan, comp *models.Component) string {
	for _, f := range req.MustHaves() {
		if p.waives(f.Name) {
			continue
		}
		if o.features.Covers(f.Name, comp) {
			return f.Name
		}
	}
	return ""
}

// ── Step 1: substitutions ───────────────────────────────────

func (o *Optimizer) substitute(req models.RoomRequirement, p plan, subs []models.Substitution, res *Result) {
	for _, s := range subs {
		orig, _ := o.catalog.Lookup(s.Original)
		if f := o.protector(req, p, orig); f != "" {
			res.Changes = append(res.Changes, Change{
				Kind: ChangeProtected, SKU: s.Original, Replacement: s.Replacement, Feature: f,
				Detail: fmt.Sprintf("%s backs must-have feature %q; substitution with %s skipped", s.Original, f, s.Replacement),
			})
			continue
		}
		if s.Original == s.Replacement {
			continue
		}
		res.Selection = replaceLine(res.Selection, s.Original, s.Replacement)
		repl, _ := o.catalog.Lookup(s.Replacement)
		res.Changes = append(res.Changes, Change{
			Kind: ChangeSubstituted, SKU: s.Original, Replacement: s.Replacement,
			Detail: fmt.Sprintf("%s replaced by %s (dealer %.2f → %.2f per unit)",
				s.Original, s.Replacement, orig.DealerPrice, repl.DealerPrice),
		})
	}
}

// replaceLine swaps original for replacement in place, keeping the quantity.
// A replacement already in the selection absorbs the original's quantity.
func replaceLine(sel models.Selection, original, replacement string) models.Selection {
	qty := sel.Quantity(original)
	if sel.Has(replacement) {
		out, _ := sel.Remove(original).Add(replacement, qty)
		return out
	}
	out := sel.Clone()
	for i := range out.Lines {
		if out.Lines[i].SKU == original {
			out.Lines[i].SKU = replacement
		}
	}
	return out
}

// ── Step 2: disabled constraints ────────────────────────────

// removal is a component dropped for a disabled constraint.
type removal struct {
	comp     *models.Component
	quantity int
}

// stillRequired returns the tags of every requested, unwaived feature minus
// the disabled tags.
func (o *Optimizer) stillRequired(req models.RoomRequirement, p plan) []string {
	var tags []string
	for _, f := range req.Features {
		if p.waives(f.Name) {
			continue
		}
		ft, err := o.features.Tags(f.Name)
		if err != nil {
			continue
		}
		for _, t := range ft {
			if !models.IntersectsTags([]string{t}, p.disabledTags) {
				tags = append(tags, t)
			}
		}
	}
	return models.NormalizeTags(tags)
}

func (o *Optimizer) removeDisabled(req models.RoomRequirement, p plan, res *Result) []removal {
	if len(p.disabledTags) == 0 {
		return nil
	}
	required := o.stillRequired(req, p)

	var removed []removal
	for _, l := range res.Selection.Lines {
		comp, _ := o.catalog.Lookup(l.SKU)
		if !models.IntersectsTags(comp.Tags, p.disabledTags) {
			continue
		}
		if f := o.protector(req, p, comp); f != "" {
			res.Changes = append(res.Changes, Change{
				Kind: ChangeProtected, SKU: comp.SKU, Feature: f,
				Detail: fmt.Sprintf("%s carries a disabled tag but backs must-have feature %q; kept", comp.SKU, f),
			})
			continue
		}
		if models.IntersectsTags(comp.Tags, required) {
			continue
		}
		removed = append(removed, removal{comp: comp, quantity: l.Quantity})
	}

	for _, r := range removed {
		res.Selection = res.Selection.Remove(r.comp.SKU)
		res.Changes = append(res.Changes, Change{
			Kind: ChangeRemoved, SKU: r.comp.SKU,
			Detail: fmt.Sprintf("%s removed: only justified by a disabled constraint", r.comp.SKU),
		})
	}
	return removed
}

// ── Step 3: cheaper re-selection ────────────────────────────

func (o *Optimizer) reselect(req models.RoomRequirement, p plan, removed []removal, res *Result) error {
	handled := make(map[string]bool)
	for _, r := range removed {
		for _, f := range req.Features {
			key := strings.ToLower(f.Name)
			if handled[key] || p.waives(f.Name) || !o.features.Covers(f.Name, r.comp) {
				continue
			}
			if o.covered(f.Name, res.Selection) {
				continue
			}
			handled[key] = true

			ceiling := r.comp.DealerPrice
			cands, err := o.selector.Select(selector.Query{
				Feature:     f.Name,
				Tier:        req.Tier,
				PriceBelow:  &ceiling,
				WithoutTags: p.disabledTags,
			})
			if err != nil {
				return err
			}
			pick := firstUnselected(cands, res.Selection)
			if pick == nil {
				res.Changes = append(res.Changes, Change{
					Kind: ChangeUncovered, SKU: r.comp.SKU, Feature: f.Name,
					Detail: fmt.Sprintf("no component cheaper than %s covers %q without a disabled tag", r.comp.SKU, f.Name),
				})
				continue
			}
			sel, err := res.Selection.Add(pick.SKU, r.quantity)
			if err != nil {
				return err
			}
			res.Selection = sel
			res.Changes = append(res.Changes, Change{
				Kind: ChangeAdded, SKU: r.comp.SKU, Replacement: pick.SKU, Feature: f.Name,
				Detail: fmt.Sprintf("%s added for %q in place of %s (dealer %.2f < %.2f)",
					pick.SKU, f.Name, r.comp.SKU, pick.DealerPrice, r.comp.DealerPrice),
			})
		}
	}
	return nil
}

func (o *Optimizer) covered(feature string, sel models.Selection) bool {
	for _, l := range sel.Lines {
		if comp, ok := o.catalog.Lookup(l.SKU); ok && o.features.Covers(feature, comp) {
			return true
		}
	}
	return false
}

func firstUnselected(cands []selector.Candidate, sel models.Selection) *models.Component {
	for _, c := range cands {
		if !sel.Has(c.Component.SKU) {
			return c.Component
		}
	}
	return nil
}
