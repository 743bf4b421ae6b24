// Package catalog provides the read-only AV component catalog.
//
// The catalog is built once from a pre-parsed list of components (from the
// YAML files in the host, or the built-in seed) and rejects inconsistent
// records at load time:
//
//  1. **Prices**: list and dealer prices must be finite and non-negative.
//  2. **Lifecycle**: a legacy component must carry a replacement reason.
//  3. **Identity**: SKUs are non-empty and unique.
//  4. **Capabilities**: connector kinds and format enums must be known values.
//
// Tags are trimmed, lower-cased and de-duplicated on the way in, so the rest
// of the engine can compare them directly. After New returns, the catalog
// never changes and is safe to share between goroutines without locking.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/avforge/configurator/pkg/models"
	"github.com/rs/zerolog/log"
)

// ErrInvalidCatalog wraps every load-time rejection.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is an immutable SKU-indexed component table.
type Catalog struct {
	components map[string]*models.Component
	skus       []string // sorted
}

// New validates and normalises components into a Catalog. All problems are
// reported together.
func New(components []models.Component) (*Catalog, error) {
	c := &Catalog{
		components: make(map[string]*models.Component, len(components)),
	}

	var errs []error
	for i := range components {
		comp := cloneComponent(components[i])
		comp.Tags = models.NormalizeTags(comp.Tags)
		if comp.Status == "" {
			comp.Status = models.StatusActive
		}

		if err := validateComponent(&comp); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.components[comp.SKU]; dup {
			errs = append(errs, fmt.Errorf("sku %s: duplicate entry", comp.SKU))
			continue
		}
		c.components[comp.SKU] = &comp
		c.skus = append(c.skus, comp.SKU)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}

	sort.Strings(c.skus)
	log.Debug().Int("components", len(c.skus)).Msg("Catalog: loaded")
	return c, nil
}

// Lookup returns the component for sku. The returned value is shared
// reference data and must not be modified.
func (c *Catalog) Lookup(sku string) (*models.Component, bool) {
	comp, ok := c.components[sku]
	return comp, ok
}

// All returns every component in SKU order.
func (c *Catalog) All() []*models.Component {
	out := make([]*models.Component, len(c.skus))
	for i, sku := range c.skus {
		out[i] = c.components[sku]
	}
	return out
}

// Count returns the number of components in the catalog.
func (c *Catalog) Count() int {
	return len(c.skus)
}

// Resolve looks up every SKU in a selection, in line order.
func (c *Catalog) Resolve(sel models.Selection) ([]*models.Component, error) {
	out := make([]*models.Component, 0, len(sel.Lines))
	for _, l := range sel.Lines {
		comp, ok := c.components[l.SKU]
		if !ok {
			return nil, fmt.Errorf("%w: sku %s is not in the catalog", models.ErrPrecondition, l.SKU)
		}
		out = append(out, comp)
	}
	return out, nil
}

func validateComponent(c *models.Component) error {
	if c.SKU == "" {
		return fmt.Errorf("component %q: empty sku", c.Name)
	}
	if !models.ValidAmount(c.ListPrice) || !models.ValidAmount(c.DealerPrice) {
		return fmt.Errorf("sku %s: prices must be finite and non-negative", c.SKU)
	}
	switch c.Status {
	case models.StatusActive:
	case models.StatusLegacy:
		if c.LegacyReason == "" {
			return fmt.Errorf("sku %s: legacy component without reason", c.SKU)
		}
	default:
		return fmt.Errorf("sku %s: unknown status %q", c.SKU, c.Status)
	}

	if v := c.Capability.Video; v != nil {
		for _, p := range append(append([]models.Port(nil), v.Inputs...), v.Outputs...) {
			if !p.Kind.Valid() {
				return fmt.Errorf("sku %s: unknown connector %q", c.SKU, p.Kind)
			}
			if p.Count < 0 {
				return fmt.Errorf("sku %s: negative %s port count", c.SKU, p.Kind)
			}
		}
		if !v.MaxResolution.Valid() || !v.MaxChroma.Valid() {
			return fmt.Errorf("sku %s: invalid max format %s", c.SKU, v.MaxFormat())
		}
		if !v.HDCP.Valid() {
			return fmt.Errorf("sku %s: unknown HDCP version %q", c.SKU, v.HDCP)
		}
		if !models.ValidAmount(v.MaxDataRateGbps) || v.MaxRefresh < 0 {
			return fmt.Errorf("sku %s: video limits must be finite and non-negative", c.SKU)
		}
	}
	if h := c.Capability.HDBaseT; h != nil && !h.Class.Valid() {
		return fmt.Errorf("sku %s: unknown HDBaseT class %q", c.SKU, h.Class)
	}
	return nil
}

func cloneComponent(c models.Component) models.Component {
	c.Tags = append([]string(nil), c.Tags...)
	if v := c.Capability.Video; v != nil {
		cp := *v
		cp.Inputs = append([]models.Port(nil), v.Inputs...)
		cp.Outputs = append([]models.Port(nil), v.Outputs...)
		c.Capability.Video = &cp
	}
	if h := c.Capability.HDBaseT; h != nil {
		cp := *h
		c.Capability.HDBaseT = &cp
	}
	if u := c.Capability.USB; u != nil {
		cp := *u
		c.Capability.USB = &cp
	}
	if n := c.Capability.Network; n != nil {
		cp := *n
		c.Capability.Network = &cp
	}
	if a := c.Capability.Audio; a != nil {
		cp := *a
		cp.Inputs = append([]string(nil), a.Inputs...)
		cp.Outputs = append([]string(nil), a.Outputs...)
		c.Capability.Audio = &cp
	}
	return c
}
