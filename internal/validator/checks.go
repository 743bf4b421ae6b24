package validator

import (
	"fmt"
	"strings"

	"github.com/avforge/configurator/pkg/models"
)

// chainCheck inspects one chain and returns at most one feedback item.
type chainCheck func(ch Chain, tech models.TechnicalRequirement) (models.FeedbackItem, bool)

// chainChecks run in this order for every I/O point.
var chainChecks = []chainCheck{
	checkFormat,
	checkHDCP,
	checkDistance,
	checkBandwidth,
}

// ── Resolution / Chroma ─────────────────────────────────────

func checkFormat(ch Chain, tech models.TechnicalRequirement) (models.FeedbackItem, bool) {
	target := tech.Target()
	if target.Resolution == "" {
		return models.FeedbackItem{}, false
	}
	var short []string
	for _, c := range ch.Components() {
		best := c.Capability.Video.MaxFormat()
		if !best.AtLeast(target) {
			short = append(short, fmt.Sprintf("%s (max %s)", c.SKU, describeFormat(best)))
		}
	}
	if len(short) == 0 {
		return models.FeedbackItem{}, false
	}
	return warning(ch.Point, "%s cannot carry the required %s: %s",
		pointLabel(ch.Point), target, strings.Join(short, ", ")), true
}

// ── HDCP ────────────────────────────────────────────────────

func checkHDCP(ch Chain, tech models.TechnicalRequirement) (models.FeedbackItem, bool) {
	comps := ch.Components()
	need := tech.RequiredHDCP
	for _, c := range comps {
		if v := c.HDCP(); v.Level() > need.Level() {
			need = v
		}
	}
	protected := tech.ContentProtection || tech.RequiredHDCP.Level() > 0

	var weak []string
	for _, c := range comps {
		v := c.HDCP()
		switch {
		case v == models.HDCPNone && protected:
			weak = append(weak, c.SKU+" (no HDCP)")
		case v != models.HDCPNone && v.Level() < need.Level():
			weak = append(weak, fmt.Sprintf("%s (HDCP %s)", c.SKU, v))
		}
	}
	if len(weak) == 0 {
		return models.FeedbackItem{}, false
	}
	return warning(ch.Point, "%s requires HDCP %s end to end but %s cannot negotiate it; protected content will not pass (black screen risk)",
		pointLabel(ch.Point), need, strings.Join(weak, ", ")), true
}

// ── Distance ────────────────────────────────────────────────

func checkDistance(ch Chain, tech models.TechnicalRequirement) (models.FeedbackItem, bool) {
	p := ch.Point
	transport, remote := p.Distribution.Transport()

	if !remote {
		if p.Connector == models.ConnectorHDBaseT {
			return checkHDBaseTReach(ch, tech)
		}
		limit, ok := directRunLimit[p.Connector]
		if ok && p.RunDistance > limit {
			return warning(p, "%s runs %.1f over direct %s, beyond the %.0f passive limit; use an extender",
				pointLabel(p), p.RunDistance, p.Connector, limit), true
		}
		return models.FeedbackItem{}, false
	}

	if len(ch.Distribution) == 0 {
		return warning(p, "%s is distributed over %s but no selected component carries %s",
			pointLabel(p), p.Distribution, transport), true
	}
	if p.Distribution != models.DistributionHDBaseT {
		return models.FeedbackItem{}, false
	}
	return checkHDBaseTReach(ch, tech)
}

// checkHDBaseTReach compares the run against the shortest rated reach of the
// chain's HDBaseT-capable components. A chain with none is rated as Class B.
func checkHDBaseTReach(ch Chain, tech models.TechnicalRequirement) (models.FeedbackItem, bool) {
	p := ch.Point
	var worst *models.Component
	rated := 0.0
	for _, c := range ch.Components() {
		if !c.AcceptsInput(models.ConnectorHDBaseT) && !c.ProvidesOutput(models.ConnectorHDBaseT) {
			continue
		}
		class := models.HDBaseTClassB
		if c.Capability.HDBaseT != nil {
			class = c.Capability.HDBaseT.Class
		}
		r := RatedDistance(class, tech.TargetResolution)
		if worst == nil || r < rated {
			worst, rated = c, r
		}
	}
	link := "the HDBaseT link"
	if worst != nil {
		link = worst.SKU
	} else {
		rated = RatedDistance(models.HDBaseTClassB, tech.TargetResolution)
	}
	if p.RunDistance <= rated {
		return models.FeedbackItem{}, false
	}
	return warning(p, "%s run distance %.1f exceeds the %.0f rated reach of %s at %s",
		pointLabel(p), p.RunDistance, rated, link, targetLabel(tech)), true
}

// ── Bandwidth ───────────────────────────────────────────────

func checkBandwidth(ch Chain, tech models.TechnicalRequirement) (models.FeedbackItem, bool) {
	need := RequiredGbps(tech.Target(), tech.TargetRefresh)
	if need == 0 {
		return models.FeedbackItem{}, false
	}
	var tight []string
	for _, c := range ch.Components() {
		rate := c.Capability.Video.MaxDataRateGbps
		if rate > 0 && rate <= need {
			tight = append(tight, fmt.Sprintf("%s (%.1f Gbps)", c.SKU, rate))
		}
	}
	if len(tight) == 0 {
		return models.FeedbackItem{}, false
	}
	return models.FeedbackItem{
		Category: models.FeedbackSuggestion,
		Subject:  ch.Point.ID,
		Message:  fmt.Sprintf("%s needs about %.2f Gbps for %s; %s has no headroom and may fall back to a lower format",
			pointLabel(ch.Point), need, targetLabel(tech), strings.Join(tight, ", ")),
	}, true
}

// ── helpers ─────────────────────────────────────────────────

func warning(p models.IOPoint, format string, args ...any) models.FeedbackItem {
	return models.FeedbackItem{
		Category: models.FeedbackWarning,
		Subject:  p.ID,
		Message:  fmt.Sprintf(format, args...),
	}
}

func pointLabel(p models.IOPoint) string {
	if p.DeviceType != "" {
		return fmt.Sprintf("%s %s (%s)", p.Direction, p.ID, p.DeviceType)
	}
	return fmt.Sprintf("%s %s", p.Direction, p.ID)
}

func targetLabel(tech models.TechnicalRequirement) string {
	s := string(tech.TargetResolution)
	if tech.TargetRefresh > 0 {
		s += fmt.Sprintf("/%dHz", tech.TargetRefresh)
	}
	if tech.TargetChroma != "" {
		s += " " + string(tech.TargetChroma)
	}
	return s
}

func describeFormat(f models.VideoFormat) string {
	if f.Resolution == "" {
		return "undeclared"
	}
	return f.String()
}
