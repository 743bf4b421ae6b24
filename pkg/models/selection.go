package models

import (
	"errors"
	"fmt"
)

// ErrPrecondition marks malformed input to the core. Callers match it with
// errors.Is; the core never repairs such input.
var ErrPrecondition = errors.New("precondition violated")

// ── Equipment Selection ──────────────────────────────────────

// Line is one SKU in a room's equipment list.
type Line struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Selection is a room's chosen equipment. A SKU appears at most once and
// every quantity is at least 1.
type Selection struct {
	Lines []Line `json:"lines"`
}

// NewSelection builds a selection from boundary input. Exact duplicate lines
// collapse; duplicates with conflicting quantities are rejected.
func NewSelection(lines []Line) (Selection, error) {
	var sel Selection
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.SKU == "" {
			return Selection{}, fmt.Errorf("%w: line with empty sku", ErrPrecondition)
		}
		if l.Quantity < 1 {
			return Selection{}, fmt.Errorf("%w: sku %s: quantity %d < 1", ErrPrecondition, l.SKU, l.Quantity)
		}
		if i, ok := index[l.SKU]; ok {
			if sel.Lines[i].Quantity != l.Quantity {
				return Selection{}, fmt.Errorf("%w: sku %s listed twice with quantities %d and %d",
					ErrPrecondition, l.SKU, sel.Lines[i].Quantity, l.Quantity)
			}
			continue
		}
		index[l.SKU] = len(sel.Lines)
		sel.Lines = append(sel.Lines, l)
	}
	return sel, nil
}

// Validate checks the selection invariants without modifying it.
func (s Selection) Validate() error {
	seen := make(map[string]bool, len(s.Lines))
	for _, l := range s.Lines {
		if l.Quantity < 1 {
			return fmt.Errorf("%w: sku %s: quantity %d < 1", ErrPrecondition, l.SKU, l.Quantity)
		}
		if seen[l.SKU] {
			return fmt.Errorf("%w: sku %s appears twice", ErrPrecondition, l.SKU)
		}
		seen[l.SKU] = true
	}
	return nil
}

// Add returns a copy of s with qty units of sku added; an existing line's
// quantity is increased.
func (s Selection) Add(sku string, qty int) (Selection, error) {
	if qty < 1 {
		return s, fmt.Errorf("%w: sku %s: quantity %d < 1", ErrPrecondition, sku, qty)
	}
	out := s.Clone()
	for i := range out.Lines {
		if out.Lines[i].SKU == sku {
			out.Lines[i].Quantity += qty
			return out, nil
		}
	}
	out.Lines = append(out.Lines, Line{SKU: sku, Quantity: qty})
	return out, nil
}

// Remove returns a copy of s without sku.
func (s Selection) Remove(sku string) Selection {
	out := Selection{Lines: make([]Line, 0, len(s.Lines))}
	for _, l := range s.Lines {
		if l.SKU != sku {
			out.Lines = append(out.Lines, l)
		}
	}
	return out
}

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	return Selection{Lines: append([]Line(nil), s.Lines...)}
}

// Has reports whether sku is selected.
func (s Selection) Has(sku string) bool {
	return s.Quantity(sku) > 0
}

// Quantity returns the selected quantity of sku, or 0.
func (s Selection) Quantity(sku string) int {
	for _, l := range s.Lines {
		if l.SKU == sku {
			return l.Quantity
		}
	}
	return 0
}

// SKUs returns the selected SKUs in line order.
func (s Selection) SKUs() []string {
	out := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		out[i] = l.SKU
	}
	return out
}
