package models

import "strings"

// ── Connectors ───────────────────────────────────────────────

// ConnectorKind is a closed set of physical/transport connector types.
type ConnectorKind string

const (
	ConnectorHDMI        ConnectorKind = "HDMI"
	ConnectorDisplayPort ConnectorKind = "DisplayPort"
	ConnectorUSBC        ConnectorKind = "USB-C"
	ConnectorHDBaseT     ConnectorKind = "HDBaseT"
	ConnectorSDI         ConnectorKind = "SDI"
	ConnectorVGA         ConnectorKind = "VGA"
	ConnectorIP          ConnectorKind = "IP"
	ConnectorFiber       ConnectorKind = "Fiber"
)

var connectorKinds = map[ConnectorKind]bool{
	ConnectorHDMI: true, ConnectorDisplayPort: true, ConnectorUSBC: true, ConnectorHDBaseT: true,
	ConnectorSDI: true, ConnectorVGA: true, ConnectorIP: true, ConnectorFiber: true,
}

// Valid reports whether k is one of the known connector kinds.
func (k ConnectorKind) Valid() bool { return connectorKinds[k] }

// ── Video formats ────────────────────────────────────────────

// Resolution is an ordered video resolution class.
type Resolution string

const (
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
	Resolution1440p Resolution = "1440p"
	Resolution4K    Resolution = "4K"
	Resolution8K    Resolution = "8K"
)

var resolutionRank = map[Resolution]int{
	Resolution720p: 1, Resolution1080p: 2, Resolution1440p: 3, Resolution4K: 4, Resolution8K: 5,
}

// Rank orders resolutions; an unset or unknown resolution ranks 0.
func (r Resolution) Rank() int { return resolutionRank[r] }

// Valid reports whether r is empty or a known resolution.
func (r Resolution) Valid() bool { return r == "" || resolutionRank[r] > 0 }

// Chroma is a chroma subsampling ratio.
type Chroma string

const (
	Chroma420 Chroma = "4:2:0"
	Chroma422 Chroma = "4:2:2"
	Chroma444 Chroma = "4:4:4"
)

var chromaRank = map[Chroma]int{Chroma420: 1, Chroma422: 2, Chroma444: 3}

// Rank orders chroma ratios; unset ranks 0.
func (c Chroma) Rank() int { return chromaRank[c] }

// Valid reports whether c is empty or a known ratio.
func (c Chroma) Valid() bool { return c == "" || chromaRank[c] > 0 }

// VideoFormat is a resolution/chroma pair. Formats order by resolution first,
// then by chroma at equal resolution.
type VideoFormat struct {
	Resolution Resolution `json:"resolution" yaml:"resolution"`
	Chroma     Chroma     `json:"chroma" yaml:"chroma"`
}

// AtLeast reports whether f is greater than or equal to other.
func (f VideoFormat) AtLeast(other VideoFormat) bool {
	if f.Resolution.Rank() != other.Resolution.Rank() {
		return f.Resolution.Rank() > other.Resolution.Rank()
	}
	return f.Chroma.Rank() >= other.Chroma.Rank()
}

func (f VideoFormat) String() string {
	if f.Chroma == "" {
		return string(f.Resolution)
	}
	return string(f.Resolution) + " " + string(f.Chroma)
}

// HDCPVersion is a content-protection version. The empty value means no HDCP support.
type HDCPVersion string

const (
	HDCPNone HDCPVersion = ""
	HDCP14   HDCPVersion = "1.4"
	HDCP22   HDCPVersion = "2.2"
	HDCP23   HDCPVersion = "2.3"
)

var hdcpLevel = map[HDCPVersion]int{HDCPNone: 0, HDCP14: 14, HDCP22: 22, HDCP23: 23}

// Level orders HDCP versions; no support is level 0.
func (v HDCPVersion) Level() int { return hdcpLevel[v] }

// Valid reports whether v is a known version or empty.
func (v HDCPVersion) Valid() bool {
	_, ok := hdcpLevel[v]
	return ok
}

func (v HDCPVersion) String() string {
	if v == HDCPNone {
		return "none"
	}
	return string(v)
}

// HDBaseTClass is the HDBaseT distance/feature tier.
type HDBaseTClass string

const (
	HDBaseTClassA HDBaseTClass = "A"
	HDBaseTClassB HDBaseTClass = "B"
)

// Valid reports whether c is a known class.
func (c HDBaseTClass) Valid() bool { return c == HDBaseTClassA || c == HDBaseTClassB }

// ── Room enums ───────────────────────────────────────────────

// Distribution is how a signal travels between an I/O point and the system.
type Distribution string

const (
	DistributionDirect  Distribution = "direct"
	DistributionHDBaseT Distribution = "HDBaseT"
	DistributionAVoIP   Distribution = "AVoIP"
	DistributionFiber   Distribution = "fiber"
)

// Transport returns the connector kind carrying the signal over the
// distribution leg. Direct distribution has no transport.
func (d Distribution) Transport() (ConnectorKind, bool) {
	switch d {
	case DistributionHDBaseT:
		return ConnectorHDBaseT, true
	case DistributionAVoIP:
		return ConnectorIP, true
	case DistributionFiber:
		return ConnectorFiber, true
	default:
		return "", false
	}
}

// Valid reports whether d is a known distribution method.
func (d Distribution) Valid() bool {
	switch d {
	case DistributionDirect, DistributionHDBaseT, DistributionAVoIP, DistributionFiber:
		return true
	}
	return false
}

// Direction of an I/O point relative to the AV system.
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// Priority of a requested feature.
type Priority string

const (
	PriorityMustHave   Priority = "must-have"
	PriorityNiceToHave Priority = "nice-to-have"
)

// LifecycleStatus of a catalog component.
type LifecycleStatus string

const (
	StatusActive LifecycleStatus = "active"
	StatusLegacy LifecycleStatus = "legacy"
)

// Tier is a design tier. The empty tier is unconstrained.
type Tier string

const (
	TierAny    Tier = ""
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

var tierRank = map[Tier]int{TierBronze: 1, TierSilver: 2, TierGold: 3}

// Rank orders tiers; the unconstrained tier ranks 0.
func (t Tier) Rank() int { return tierRank[t] }

// Valid reports whether t is unconstrained or a known tier.
func (t Tier) Valid() bool { return t == TierAny || tierRank[t] > 0 }

// ParseTier normalises a tier name ("Gold", " silver ") to a Tier.
func ParseTier(s string) Tier {
	return Tier(strings.ToLower(strings.TrimSpace(s)))
}

// TierMarkers returns the tier ranks found in a normalised tag set.
func TierMarkers(tags []string) []Tier {
	var out []Tier
	for _, t := range tags {
		if tierRank[Tier(t)] > 0 {
			out = append(out, Tier(t))
		}
	}
	return out
}

// PanelTechnology of a video wall.
type PanelTechnology string

const (
	PanelLCD   PanelTechnology = "LCD"
	PanelDVLED PanelTechnology = "DVLED"
)

// Valid reports whether t is a known panel technology.
func (t PanelTechnology) Valid() bool { return t == PanelLCD || t == PanelDVLED }

// ── Tags ─────────────────────────────────────────────────────

// NormalizeTag trims and lower-cases a descriptive tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags normalises and de-duplicates tags, keeping first-seen order
// and dropping empty entries.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// IntersectsTags reports whether any tag in a is present in b.
func IntersectsTags(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
