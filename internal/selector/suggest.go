package selector

import (
	"fmt"

	"github.com/avforge/configurator/pkg/models"
)

// Suggestion is the ranked candidate list for one requested feature.
type Suggestion struct {
	Feature    models.Feature `json:"feature"`
	Candidates []Candidate    `json:"candidates"`
}

// Suggestions is the result of matching every feature of a room.
type Suggestions struct {
	Features []Suggestion          `json:"features"`
	Feedback []models.FeedbackItem `json:"feedback"`
}

// NoMatchInsight is the feedback a caller surfaces when a feature has no candidates.
func NoMatchInsight(feature string, tier models.Tier, budget *float64) models.FeedbackItem {
	msg := fmt.Sprintf("No catalog component provides %q", feature)
	if tier != models.TierAny {
		msg += fmt.Sprintf(" at %s tier or below", tier)
	}
	if budget != nil {
		msg += fmt.Sprintf(" within the remaining budget of %.2f", *budget)
	}
	return models.FeedbackItem{Category: models.FeedbackInsight, Message: msg, Subject: feature}
}

// SelectAll matches every feature of req at the room's tier. The remaining
// budget passed in applies to each feature independently.
func (s *Selector) SelectAll(req models.RoomRequirement, remaining *float64) (Suggestions, error) {
	out := Suggestions{Features: make([]Suggestion, 0, len(req.Features))}
	for _, f := range req.Features {
		cands, err := s.Select(Query{Feature: f.Name, Tier: req.Tier, RemainingBudget: remaining})
		if err != nil {
			return Suggestions{}, fmt.Errorf("feature %q: %w", f.Name, err)
		}
		out.Features = append(out.Features, Suggestion{Feature: f, Candidates: cands})
		if len(cands) == 0 {
			out.Feedback = append(out.Feedback, NoMatchInsight(f.Name, req.Tier, remaining))
		}
	}
	return out, nil
}
