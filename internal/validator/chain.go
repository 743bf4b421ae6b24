package validator

import (
	"strings"

	"github.com/avforge/configurator/pkg/models"
)

// Chain is the inferred signal path for one I/O point. Source and
// Destination are nil when the device at that end is not part of the
// selection (a guest laptop, a customer-supplied display).
type Chain struct {
	Point        models.IOPoint
	Source       *models.Component
	Distribution []*models.Component
	Destination  *models.Component
}

// Components returns the chain members in signal order, without duplicates.
func (c Chain) Components() []*models.Component {
	var out []*models.Component
	add := func(comp *models.Component) {
		if comp == nil {
			return
		}
		for _, existing := range out {
			if existing.SKU == comp.SKU {
				return
			}
		}
		out = append(out, comp)
	}
	add(c.Source)
	for _, d := range c.Distribution {
		add(d)
	}
	add(c.Destination)
	return out
}

// InferChain builds the signal chain for p from the selected components.
//
// An input point anchors the source end: the source is a selected source
// emitting the point's connector, followed by a transmitter (accepts the
// point's connector, emits the transport) and a receiver (accepts the
// transport), then the first destination accepting what the leg delivers.
// An output point anchors the destination end and walks the same leg in
// reverse. Direct points have no distribution leg.
func InferChain(p models.IOPoint, comps []*models.Component) Chain {
	ch := Chain{Point: p}
	transport, remote := p.Distribution.Transport()

	switch p.Direction {
	case models.DirectionInput:
		ch.Source = pick(comps, models.RoleSource, p.DeviceType, func(c *models.Component) bool {
			return c.ProvidesOutput(p.Connector)
		})
		delivers := p.Connector
		if remote {
			ch.Distribution, delivers = forwardLeg(comps, p.Connector, transport)
		}
		ch.Destination = pick(comps, models.RoleDestination, "", func(c *models.Component) bool {
			return c.AcceptsInput(delivers)
		})

	case models.DirectionOutput:
		ch.Destination = pick(comps, models.RoleDestination, p.DeviceType, func(c *models.Component) bool {
			return c.AcceptsInput(p.Connector)
		})
		needs := p.Connector
		if remote {
			ch.Distribution, needs = reverseLeg(comps, p.Connector, transport)
		}
		ch.Source = pick(comps, models.RoleSource, "", func(c *models.Component) bool {
			return c.ProvidesOutput(needs)
		})
	}
	return ch
}

// forwardLeg finds transmitter then receiver for a signal entering on in.
// It returns the leg and the connector delivered at its far end.
func forwardLeg(comps []*models.Component, in, transport models.ConnectorKind) ([]*models.Component, models.ConnectorKind) {
	tx := pick(comps, models.RoleDistribution, "", func(c *models.Component) bool {
		return c.AcceptsInput(in) && c.ProvidesOutput(transport)
	})
	rx := pick(comps, models.RoleDistribution, "", func(c *models.Component) bool {
		return (tx == nil || c.SKU != tx.SKU) && c.AcceptsInput(transport) && firstOtherOutput(c, transport) != ""
	})
	if rx == nil && tx != nil && tx.AcceptsInput(transport) && firstOtherOutput(tx, transport) != "" {
		// a kit that contains both ends
		rx = tx
	}

	leg := compact(tx, rx)
	switch {
	case rx != nil:
		return leg, firstOtherOutput(rx, transport)
	case tx != nil:
		return leg, transport
	default:
		return nil, in
	}
}

// reverseLeg finds receiver then transmitter for a signal leaving on out.
// It returns the leg in signal order and the connector needed at its near end.
func reverseLeg(comps []*models.Component, out, transport models.ConnectorKind) ([]*models.Component, models.ConnectorKind) {
	rx := pick(comps, models.RoleDistribution, "", func(c *models.Component) bool {
		return c.AcceptsInput(transport) && c.ProvidesOutput(out)
	})
	tx := pick(comps, models.RoleDistribution, "", func(c *models.Component) bool {
		return (rx == nil || c.SKU != rx.SKU) && c.ProvidesOutput(transport) && firstOtherInput(c, transport) != ""
	})
	if tx == nil && rx != nil && rx.ProvidesOutput(transport) && firstOtherInput(rx, transport) != "" {
		tx = rx
	}

	leg := compact(tx, rx)
	switch {
	case tx != nil:
		return leg, firstOtherInput(tx, transport)
	case rx != nil:
		return leg, transport
	default:
		return nil, out
	}
}

// pick returns the first component in selection order with the given role
// that satisfies ok, preferring one whose category or name matches device.
func pick(comps []*models.Component, role models.ChainRole, device string, ok func(*models.Component) bool) *models.Component {
	var first *models.Component
	device = strings.ToLower(strings.TrimSpace(device))
	for _, c := range comps {
		if c.Role() != role || !ok(c) {
			continue
		}
		if device != "" && matchesDevice(c, device) {
			return c
		}
		if first == nil {
			first = c
		}
	}
	return first
}

func matchesDevice(c *models.Component, device string) bool {
	return strings.ToLower(c.Category) == device || strings.Contains(strings.ToLower(c.Name), device)
}

func firstOtherOutput(c *models.Component, not models.ConnectorKind) models.ConnectorKind {
	for _, p := range c.Capability.Video.Outputs {
		if p.Kind != not && p.Count > 0 {
			return p.Kind
		}
	}
	return ""
}

func firstOtherInput(c *models.Component, not models.ConnectorKind) models.ConnectorKind {
	for _, p := range c.Capability.Video.Inputs {
		if p.Kind != not && p.Count > 0 {
			return p.Kind
		}
	}
	return ""
}

func compact(comps ...*models.Component) []*models.Component {
	var out []*models.Component
	for _, c := range comps {
		if c == nil {
			continue
		}
		if len(out) > 0 && out[len(out)-1].SKU == c.SKU {
			continue
		}
		out = append(out, c)
	}
	return out
}
