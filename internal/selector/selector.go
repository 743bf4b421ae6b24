// Package selector matches requested room features to catalog components.
//
// A feature maps to a fixed set of tags through the feature table. A component
// is a candidate when it carries one of those tags, sits at or below the
// requested design tier, and fits the remaining budget. Candidates are ranked
// active-first, then cheapest, then by how many of the feature's tags they
// cover. An empty result is a valid "no match" answer.
package selector

import (
	"fmt"
	"sort"

	"github.com/avforge/configurator/internal/catalog"
	"github.com/avforge/configurator/pkg/models"
	"github.com/rs/zerolog/log"
)

// Query describes one feature lookup.
type Query struct {
	Feature string
	Tier    models.Tier

	// RemainingBudget, when set, is an inclusive ceiling on dealer price.
	RemainingBudget *float64

	// PriceBelow, when set, admits only components strictly cheaper than it.
	PriceBelow *float64

	// WithoutTags are dropped from the feature's tag set, and components
	// carrying any of them are excluded.
	WithoutTags []string
}

// Candidate is a ranked match.
type Candidate struct {
	Component *models.Component `json:"component"`
	Coverage  int               `json:"coverage"` // number of required tags carried
}

// Selector ranks catalog components for features. It holds only immutable
// reference data and is safe for concurrent use.
type Selector struct {
	catalog  *catalog.Catalog
	features *catalog.FeatureTable
}

// New creates a selector over cat and features.
func New(cat *catalog.Catalog, features *catalog.FeatureTable) *Selector {
	return &Selector{catalog: cat, features: features}
}

// Select returns the ranked candidates for q. Unknown features are an error;
// no candidates is not.
func (s *Selector) Select(q Query) ([]Candidate, error) {
	if !q.Tier.Valid() {
		return nil, fmt.Errorf("%w: unknown tier %q", models.ErrPrecondition, q.Tier)
	}
	tags, err := s.features.Tags(q.Feature)
	if err != nil {
		return nil, err
	}
	excluded := models.NormalizeTags(q.WithoutTags)
	required := withoutTags(tags, excluded)
	if len(required) == 0 {
		return nil, nil
	}

	var out []Candidate
	for _, comp := range s.catalog.All() {
		coverage := countTags(comp.Tags, required)
		if coverage == 0 {
			continue
		}
		if models.IntersectsTags(comp.Tags, excluded) {
			continue
		}
		if !withinTier(comp, q.Tier) {
			continue
		}
		if q.RemainingBudget != nil && comp.DealerPrice > *q.RemainingBudget {
			continue
		}
		if q.PriceBelow != nil && comp.DealerPrice >= *q.PriceBelow {
			continue
		}
		out = append(out, Candidate{Component: comp, Coverage: coverage})
	}

	rank(out)

	log.Debug().
		Str("feature", q.Feature).
		Str("tier", string(q.Tier)).
		Int("candidates", len(out)).
		Msg("Selector: ranked candidates")
	return out, nil
}

// rank orders candidates: active before legacy, lower dealer price, higher
// tag coverage, then SKU so equal candidates keep a stable order.
func rank(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].Component, cands[j].Component
		if a.IsLegacy() != b.IsLegacy() {
			return !a.IsLegacy()
		}
		if a.DealerPrice != b.DealerPrice {
			return a.DealerPrice < b.DealerPrice
		}
		if cands[i].Coverage != cands[j].Coverage {
			return cands[i].Coverage > cands[j].Coverage
		}
		return a.SKU < b.SKU
	})
}

// withinTier admits any component when the tier is unconstrained, otherwise
// only components carrying a tier marker at or below the requested tier.
func withinTier(comp *models.Component, tier models.Tier) bool {
	if tier == models.TierAny {
		return true
	}
	for _, marker := range models.TierMarkers(comp.Tags) {
		if marker.Rank() <= tier.Rank() {
			return true
		}
	}
	return false
}

func countTags(have, want []string) int {
	n := 0
	for _, w := range want {
		for _, h := range have {
			if h == w {
				n++
				break
			}
		}
	}
	return n
}

func withoutTags(tags, drop []string) []string {
	if len(drop) == 0 {
		return tags
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		keep := true
		for _, d := range drop {
			if t == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, t)
		}
	}
	return out
}
