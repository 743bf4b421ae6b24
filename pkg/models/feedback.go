package models

// ── Feedback ─────────────────────────────────────────────────

// FeedbackCategory is one of the five display categories. There is no
// severity beyond the category itself.
type FeedbackCategory string

const (
	FeedbackWarning     FeedbackCategory = "Warning"
	FeedbackSuggestion  FeedbackCategory = "Suggestion"
	FeedbackOpportunity FeedbackCategory = "Opportunity"
	FeedbackInsight     FeedbackCategory = "Insight"
	FeedbackFinancial   FeedbackCategory = "Financial"
)

// FeedbackCategories lists the categories in display order.
var FeedbackCategories = []FeedbackCategory{
	FeedbackWarning, FeedbackSuggestion, FeedbackOpportunity, FeedbackInsight, FeedbackFinancial,
}

// FeedbackItem is an immutable review finding.
type FeedbackItem struct {
	Category FeedbackCategory `json:"category"`
	Message  string           `json:"message"`
	Subject  string           `json:"subject,omitempty"` // io point id, sku or feature name
}

// FeedbackGroup is the items of one category, in production order.
type FeedbackGroup struct {
	Category FeedbackCategory `json:"category"`
	Items    []FeedbackItem   `json:"items"`
}

// Report is the ordered result of a review pass.
type Report struct {
	Items []FeedbackItem `json:"items"`
}

// Grouped returns non-empty groups in display order.
func (r Report) Grouped() []FeedbackGroup {
	var groups []FeedbackGroup
	for _, c := range FeedbackCategories {
		var items []FeedbackItem
		for _, it := range r.Items {
			if it.Category == c {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			groups = append(groups, FeedbackGroup{Category: c, Items: items})
		}
	}
	return groups
}

// Count returns the number of items in category c.
func (r Report) Count(c FeedbackCategory) int {
	n := 0
	for _, it := range r.Items {
		if it.Category == c {
			n++
		}
	}
	return n
}

// ── Value Engineering ────────────────────────────────────────

// Substitution replaces one selected SKU with another catalog SKU.
type Substitution struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

// Directive is the user's value-engineering request for one room.
type Directive struct {
	Disabled      []string       `json:"disabled,omitempty"` // constraint identifiers, e.g. NO_WIRELESS_CASTING
	Substitutions []Substitution `json:"substitutions,omitempty"`
}
