// Package validator checks that a room's equipment selection forms working
// signal chains and covers the requested features.
//
// For every I/O point the validator infers a chain (source → distribution →
// destination) from the selected components' declared connectors, then runs
// the chain checks:
//   - format: every member supports the target resolution/chroma
//   - hdcp: every member negotiates the highest HDCP version in play
//   - distance: HDBaseT reach per class, passive limits for direct runs
//   - bandwidth: every member's data rate exceeds the target's rate
//
// Each check yields at most one item per I/O point. Room-level passes add an
// Insight per legacy component and a Warning per uncovered must-have feature.
// Validation is a pure function of its inputs; repeated runs on the same
// inputs return identical reports.
package validator

import (
	"fmt"

	"github.com/avforge/configurator/internal/catalog"
	"github.com/avforge/configurator/pkg/models"
)

// Validator reviews selections against the immutable catalog and feature table.
type Validator struct {
	catalog  *catalog.Catalog
	features *catalog.FeatureTable
}

// New creates a validator.
func New(cat *catalog.Catalog, features *catalog.FeatureTable) *Validator {
	return &Validator{catalog: cat, features: features}
}

// Validate reviews sel against req. The error is reserved for malformed
// input; every design problem is reported in the returned Report.
func (v *Validator) Validate(req models.RoomRequirement, sel models.Selection) (models.Report, error) {
	if err := req.Validate(); err != nil {
		return models.Report{}, err
	}
	if err := sel.Validate(); err != nil {
		return models.Report{}, err
	}
	if err := v.features.ValidateRequirement(req); err != nil {
		return models.Report{}, err
	}
	comps, err := v.catalog.Resolve(sel)
	if err != nil {
		return models.Report{}, err
	}

	report := models.Report{Items: make([]models.FeedbackItem, 0)}

	for _, p := range req.IOPoints {
		ch := InferChain(p, comps)
		for _, check := range chainChecks {
			if item, found := check(ch, req.Technical); found {
				report.Items = append(report.Items, item)
			}
		}
	}

	report.Items = append(report.Items, legacyInsights(comps)...)
	report.Items = append(report.Items, v.coverageGaps(req, comps)...)
	return report, nil
}

// Chains returns the inferred chain of every I/O point, for display.
func (v *Validator) Chains(req models.RoomRequirement, sel models.Selection) ([]Chain, error) {
	comps, err := v.catalog.Resolve(sel)
	if err != nil {
		return nil, err
	}
	out := make([]Chain, len(req.IOPoints))
	for i, p := range req.IOPoints {
		out[i] = InferChain(p, comps)
	}
	return out, nil
}

func legacyInsights(comps []*models.Component) []models.FeedbackItem {
	var out []models.FeedbackItem
	for _, c := range comps {
		if !c.IsLegacy() {
			continue
		}
		out = append(out, models.FeedbackItem{
			Category: models.FeedbackInsight,
			Subject:  c.SKU,
			Message:  fmt.Sprintf("%s (%s) is a legacy product: %s", c.SKU, c.Name, c.LegacyReason),
		})
	}
	return out
}

// coverageGaps reports requested features no selected component backs:
// Warning for must-haves, Opportunity for nice-to-haves.
func (v *Validator) coverageGaps(req models.RoomRequirement, comps []*models.Component) []models.FeedbackItem {
	var out []models.FeedbackItem
	for _, f := range req.Features {
		if v.backed(f.Name, comps) {
			continue
		}
		if f.Priority == models.PriorityMustHave {
			out = append(out, models.FeedbackItem{
				Category: models.FeedbackWarning,
				Subject:  f.Name,
				Message:  fmt.Sprintf("Must-have feature %q has no supporting component in the selection", f.Name),
			})
			continue
		}
		out = append(out, models.FeedbackItem{
			Category: models.FeedbackOpportunity,
			Subject:  f.Name,
			Message:  fmt.Sprintf("Nice-to-have feature %q is not covered; adding it is an upsell opportunity", f.Name),
		})
	}
	return out
}

func (v *Validator) backed(feature string, comps []*models.Component) bool {
	for _, c := range comps {
		if v.features.Covers(feature, c) {
			return true
		}
	}
	return false
}
