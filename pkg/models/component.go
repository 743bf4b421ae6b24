package models

// ── Catalog Component ────────────────────────────────────────

// Component is a catalog entry. Components are reference data: they are built
// once at catalog load and never modified afterwards.
type Component struct {
	SKU          string          `json:"sku" yaml:"sku"`
	Name         string          `json:"name" yaml:"name"`
	Category     string          `json:"category" yaml:"category"`
	Description  string          `json:"description,omitempty" yaml:"description"`
	ListPrice    float64         `json:"list_price" yaml:"list_price"`
	DealerPrice  float64         `json:"dealer_price" yaml:"dealer_price"`
	Tags         []string        `json:"tags" yaml:"tags"`
	Status       LifecycleStatus `json:"status" yaml:"status"`
	LegacyReason string          `json:"legacy_reason,omitempty" yaml:"legacy_reason"`
	Capability   Capability      `json:"capability" yaml:"capability"`
}

// Capability groups the optional technical sub-records of a component.
type Capability struct {
	Video   *VideoIO     `json:"video,omitempty" yaml:"video"`
	HDBaseT *HDBaseTSpec `json:"hdbaset,omitempty" yaml:"hdbaset"`
	USB     *USBSpec     `json:"usb,omitempty" yaml:"usb"`
	Network *NetworkSpec `json:"network,omitempty" yaml:"network"`
	Audio   *AudioSpec   `json:"audio,omitempty" yaml:"audio"`
}

// Port is a connector type with a count, e.g. 4× HDMI.
type Port struct {
	Kind  ConnectorKind `json:"kind" yaml:"kind"`
	Count int           `json:"count" yaml:"count"`
}

// VideoIO describes the video side of a component.
type VideoIO struct {
	Inputs          []Port      `json:"inputs,omitempty" yaml:"inputs"`
	Outputs         []Port      `json:"outputs,omitempty" yaml:"outputs"`
	MaxResolution   Resolution  `json:"max_resolution,omitempty" yaml:"max_resolution"`
	MaxRefresh      int         `json:"max_refresh,omitempty" yaml:"max_refresh"`
	MaxChroma       Chroma      `json:"max_chroma,omitempty" yaml:"max_chroma"`
	HDMIVersion     string      `json:"hdmi_version,omitempty" yaml:"hdmi_version"`
	HDCP            HDCPVersion `json:"hdcp,omitempty" yaml:"hdcp"`
	MaxDataRateGbps float64     `json:"max_data_rate_gbps,omitempty" yaml:"max_data_rate_gbps"`
}

// MaxFormat returns the best resolution/chroma pair the component declares.
func (v *VideoIO) MaxFormat() VideoFormat {
	return VideoFormat{Resolution: v.MaxResolution, Chroma: v.MaxChroma}
}

type HDBaseTSpec struct {
	Version string       `json:"version,omitempty" yaml:"version"`
	Class   HDBaseTClass `json:"class" yaml:"class"`
	PoH     bool         `json:"poh,omitempty" yaml:"poh"` // power over HDBaseT
}

type USBSpec struct {
	Ports     int    `json:"ports" yaml:"ports"`
	Bandwidth string `json:"bandwidth,omitempty" yaml:"bandwidth"` // "2.0", "3.2 Gen1", ...
}

type NetworkSpec struct {
	Ethernet bool `json:"ethernet" yaml:"ethernet"`
	PoE      bool `json:"poe,omitempty" yaml:"poe"`
}

type AudioSpec struct {
	DSP          bool     `json:"dsp,omitempty" yaml:"dsp"`
	Speakerphone bool     `json:"speakerphone,omitempty" yaml:"speakerphone"`
	Inputs       []string `json:"inputs,omitempty" yaml:"inputs"`
	Outputs      []string `json:"outputs,omitempty" yaml:"outputs"`
}

// ChainRole is the position a component can take in a signal chain,
// inferred from its declared video ports.
type ChainRole string

const (
	RoleNone         ChainRole = ""
	RoleSource       ChainRole = "source"
	RoleDistribution ChainRole = "distribution"
	RoleDestination  ChainRole = "destination"
)

// Role infers the chain role: outputs only is a source, inputs only is a
// destination, both is a distribution component.
func (c *Component) Role() ChainRole {
	v := c.Capability.Video
	if v == nil {
		return RoleNone
	}
	hasIn, hasOut := portTotal(v.Inputs) > 0, portTotal(v.Outputs) > 0
	switch {
	case hasIn && hasOut:
		return RoleDistribution
	case hasOut:
		return RoleSource
	case hasIn:
		return RoleDestination
	default:
		return RoleNone
	}
}

// AcceptsInput reports whether the component has a video input of kind k.
func (c *Component) AcceptsInput(k ConnectorKind) bool {
	return c.Capability.Video != nil && hasPort(c.Capability.Video.Inputs, k)
}

// ProvidesOutput reports whether the component has a video output of kind k.
func (c *Component) ProvidesOutput(k ConnectorKind) bool {
	return c.Capability.Video != nil && hasPort(c.Capability.Video.Outputs, k)
}

// HasTag reports whether the component carries the (normalised) tag.
func (c *Component) HasTag(tag string) bool {
	n := NormalizeTag(tag)
	for _, t := range c.Tags {
		if t == n {
			return true
		}
	}
	return false
}

// IsLegacy reports whether the component is end-of-line.
func (c *Component) IsLegacy() bool { return c.Status == StatusLegacy }

// HDCP returns the declared HDCP version, HDCPNone when the component has no video record.
func (c *Component) HDCP() HDCPVersion {
	if c.Capability.Video == nil {
		return HDCPNone
	}
	return c.Capability.Video.HDCP
}

// DealerTotal is the dealer cost of qty units.
func (c *Component) DealerTotal(qty int) float64 {
	return c.DealerPrice * float64(qty)
}

func hasPort(ports []Port, k ConnectorKind) bool {
	for _, p := range ports {
		if p.Kind == k && p.Count > 0 {
			return true
		}
	}
	return false
}

func portTotal(ports []Port) int {
	n := 0
	for _, p := range ports {
		n += p.Count
	}
	return n
}
