package catalog

import "github.com/avforge/configurator/pkg/models"

// ── Built-in Seed Data ──────────────────────────────────────

// Builtin returns a small catalog of well-known components so the
// configurator works without a catalog file.
func Builtin() (*Catalog, error) {
	return New(builtinComponents())
}

// BuiltinTables returns the feature and constraint tables matching the
// built-in catalog.
func BuiltinTables() (*FeatureTable, *ConstraintTable, error) {
	features, err := NewFeatureTable(map[string][]string{
		"Wireless Presentation": {"Casting"},
		"Video Conferencing":    {"Video Conferencing", "USB Camera"},
		"4K Display":            {"4K60"},
		"Content Streaming":     {"Streaming"},
		"Long Cable Runs":       {"HDBaseT"},
		"Room Control":          {"Control"},
		"Voice Lift":            {"DSP"},
		"Speakerphone":          {"Speakerphone"},
		"Video Wall":            {"Video Wall"},
		"Multiview":             {"Multiview"},
		"AV over IP":            {"AVoIP"},
		"Table Connectivity":    {"Table Box"},
	})
	if err != nil {
		return nil, nil, err
	}
	constraints, err := NewConstraintTable([]Constraint{
		{ID: "NO_WIRELESS_CASTING", Label: "Remove wireless casting", Tags: []string{"Casting"}},
		{ID: "NO_VIDEO_CONFERENCING", Label: "Remove conferencing hardware", Tags: []string{"Video Conferencing", "USB Camera"}},
		{ID: "NO_ROOM_CONTROL", Label: "Remove control processor", Tags: []string{"Control"}},
		{ID: "NO_MULTIVIEW", Label: "Drop multiview processing", Tags: []string{"Multiview"}, Waives: []string{"Multiview"}},
		{ID: "NO_STREAMING", Label: "Remove streaming players", Tags: []string{"Streaming"}},
	}, features)
	if err != nil {
		return nil, nil, err
	}
	return features, constraints, nil
}

func ports(kind models.ConnectorKind, n int) []models.Port {
	return []models.Port{{Kind: kind, Count: n}}
}

func builtinComponents() []models.Component {
	return []models.Component{
		// Sources
		{SKU: "SRC-STREAM-4K", Name: "4K HDR Streaming Player", Category: "Source",
			ListPrice: 249, DealerPrice: 189, Tags: []string{"Streaming", "4K60", "HDR", "Silver"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{Outputs: ports(models.ConnectorHDMI, 1),
					MaxResolution: models.Resolution4K, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.0", HDCP: models.HDCP22, MaxDataRateGbps: 18},
				Network: &models.NetworkSpec{Ethernet: true},
			}},
		{SKU: "WP-CAST-PRO", Name: "Wireless Presentation Gateway Pro", Category: "Source",
			ListPrice: 1899, DealerPrice: 1420, Tags: []string{"Casting", "4K60", "Gold"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{Outputs: ports(models.ConnectorHDMI, 1),
					MaxResolution: models.Resolution4K, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.0", HDCP: models.HDCP22, MaxDataRateGbps: 18},
				Network: &models.NetworkSpec{Ethernet: true, PoE: true},
			}},
		{SKU: "WP-CAST-LITE", Name: "Wireless Presentation Gateway", Category: "Source",
			ListPrice: 899, DealerPrice: 640, Tags: []string{"Casting", "Bronze"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{Outputs: ports(models.ConnectorHDMI, 1),
					MaxResolution: models.Resolution1080p, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "1.4", HDCP: models.HDCP14, MaxDataRateGbps: 10.2},
				Network: &models.NetworkSpec{Ethernet: true},
			}},

		// Distribution
		{SKU: "SW-PRES-41", Name: "4x1 Presentation Switcher with HDBaseT Output", Category: "Switcher",
			ListPrice: 1650, DealerPrice: 1210, Tags: []string{"Switching", "HDBaseT", "Table Box", "Silver"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{
					Inputs:        []models.Port{{Kind: models.ConnectorHDMI, Count: 3}, {Kind: models.ConnectorUSBC, Count: 1}},
					Outputs:       []models.Port{{Kind: models.ConnectorHDBaseT, Count: 1}, {Kind: models.ConnectorHDMI, Count: 1}},
					MaxResolution: models.Resolution4K, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.0", HDCP: models.HDCP22, MaxDataRateGbps: 18},
				HDBaseT: &models.HDBaseTSpec{Version: "3.0", Class: models.HDBaseTClassA, PoH: true},
				USB:     &models.USBSpec{Ports: 2, Bandwidth: "3.2 Gen1"},
			}},
		{SKU: "EXT-HDBT-A-TX", Name: "HDBaseT 3.0 Class A Transmitter", Category: "Extender",
			ListPrice: 620, DealerPrice: 455, Tags: []string{"HDBaseT", "4K60", "Gold"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{Inputs: ports(models.ConnectorHDMI, 1), Outputs: ports(models.ConnectorHDBaseT, 1),
					MaxResolution: models.Resolution4K, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.0", HDCP: models.HDCP22, MaxDataRateGbps: 18},
				HDBaseT: &models.HDBaseTSpec{Version: "3.0", Class: models.HDBaseTClassA, PoH: true},
			}},
		{SKU: "EXT-HDBT-A-RX", Name: "HDBaseT 3.0 Class A Receiver", Category: "Extender",
			ListPrice: 620, DealerPrice: 455, Tags: []string{"HDBaseT", "4K60", "Gold"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{Inputs: ports(models.ConnectorHDBaseT, 1), Outputs: ports(models.ConnectorHDMI, 1),
					MaxResolution: models.Resolution4K, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.0", HDCP: models.HDCP22, MaxDataRateGbps: 18},
				HDBaseT: &models.HDBaseTSpec{Version: "3.0", Class: models.HDBaseTClassA},
			}},
		{SKU: "EXT-HDBT-B-KIT", Name: "HDBaseT Class B Extender Set", Category: "Extender",
			ListPrice: 380, DealerPrice: 260, Tags: []string{"HDBaseT", "Bronze"},
			Status: models.StatusLegacy, LegacyReason: "Superseded by EXT-HDBT-A-TX/RX (HDCP 2.2, Class A reach)",
			Capability: models.Capability{
				Video: &models.VideoIO{
					Inputs:        []models.Port{{Kind: models.ConnectorHDMI, Count: 1}, {Kind: models.ConnectorHDBaseT, Count: 1}},
					Outputs:       []models.Port{{Kind: models.ConnectorHDBaseT, Count: 1}, {Kind: models.ConnectorHDMI, Count: 1}},
					MaxResolution: models.Resolution4K, MaxRefresh: 30, MaxChroma: models.Chroma420,
					HDMIVersion: "1.4", HDCP: models.HDCP14, MaxDataRateGbps: 10.2},
				HDBaseT: &models.HDBaseTSpec{Version: "2.0", Class: models.HDBaseTClassB},
			}},
		{SKU: "AVIP-ENC-4K", Name: "AV-over-IP 4K Encoder", Category: "AVoIP",
			ListPrice: 1100, DealerPrice: 820, Tags: []string{"AVoIP", "4K60", "Gold"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{Inputs: ports(models.ConnectorHDMI, 1), Outputs: ports(models.ConnectorIP, 1),
					MaxResolution: models.Resolution4K, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.0", HDCP: models.HDCP22, MaxDataRateGbps: 18},
				Network: &models.NetworkSpec{Ethernet: true, PoE: true},
			}},
		{SKU: "AVIP-DEC-4K", Name: "AV-over-IP 4K Decoder", Category: "AVoIP",
			ListPrice: 1100, DealerPrice: 820, Tags: []string{"AVoIP", "4K60", "Multiview", "Gold"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{Inputs: ports(models.ConnectorIP, 1), Outputs: ports(models.ConnectorHDMI, 1),
					MaxResolution: models.Resolution4K, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.0", HDCP: models.HDCP22, MaxDataRateGbps: 18},
				Network: &models.NetworkSpec{Ethernet: true, PoE: true},
			}},
		{SKU: "VW-PROC-2X2", Name: "2x2 Video Wall Processor", Category: "Processor",
			ListPrice: 2400, DealerPrice: 1750, Tags: []string{"Video Wall", "Multiview", "Silver"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{Inputs: ports(models.ConnectorHDMI, 4), Outputs: ports(models.ConnectorHDMI, 4),
					MaxResolution: models.Resolution4K, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.0", HDCP: models.HDCP22, MaxDataRateGbps: 18},
			}},

		// Destinations
		{SKU: "DSP-65-4K", Name: "65in 4K Commercial Display", Category: "Display",
			ListPrice: 1499, DealerPrice: 1090, Tags: []string{"4K60", "HDR", "Silver"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{Inputs: ports(models.ConnectorHDMI, 3),
					MaxResolution: models.Resolution4K, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.0", HDCP: models.HDCP23, MaxDataRateGbps: 18},
				Network: &models.NetworkSpec{Ethernet: true},
			}},
		{SKU: "DSP-86-4K", Name: "86in 4K Commercial Display", Category: "Display",
			ListPrice: 3299, DealerPrice: 2480, Tags: []string{"4K60", "HDR", "Gold"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{
					Inputs:        []models.Port{{Kind: models.ConnectorHDMI, Count: 3}, {Kind: models.ConnectorHDBaseT, Count: 1}},
					MaxResolution: models.Resolution4K, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.1", HDCP: models.HDCP23, MaxDataRateGbps: 40},
				HDBaseT: &models.HDBaseTSpec{Version: "3.0", Class: models.HDBaseTClassA},
				Network: &models.NetworkSpec{Ethernet: true},
			}},
		{SKU: "PRJ-WUXGA", Name: "WUXGA Laser Projector", Category: "Projector",
			ListPrice: 2100, DealerPrice: 1520, Tags: []string{"Projection", "Bronze"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{
					Inputs:        []models.Port{{Kind: models.ConnectorHDMI, Count: 2}, {Kind: models.ConnectorHDBaseT, Count: 1}},
					MaxResolution: models.Resolution1080p, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "1.4", HDCP: models.HDCP14, MaxDataRateGbps: 10.2},
				HDBaseT: &models.HDBaseTSpec{Version: "2.0", Class: models.HDBaseTClassB},
			}},
		{SKU: "VW-LCD-55", Name: "55in Video Wall Panel, 0.88mm bezel", Category: "Display",
			ListPrice: 2900, DealerPrice: 2150, Tags: []string{"Video Wall", "Silver"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Video: &models.VideoIO{Inputs: ports(models.ConnectorHDMI, 1),
					MaxResolution: models.Resolution1080p, MaxRefresh: 60, MaxChroma: models.Chroma444,
					HDMIVersion: "2.0", HDCP: models.HDCP22, MaxDataRateGbps: 18},
			}},

		// Conferencing, audio, control
		{SKU: "VC-BAR-4K", Name: "4K Video Conferencing Bar", Category: "Conferencing",
			ListPrice: 1299, DealerPrice: 960, Tags: []string{"Video Conferencing", "USB Camera", "Speakerphone", "Silver"},
			Status: models.StatusActive,
			Capability: models.Capability{
				USB:   &models.USBSpec{Ports: 1, Bandwidth: "3.0"},
				Audio: &models.AudioSpec{DSP: true, Speakerphone: true, Outputs: []string{"USB"}},
			}},
		{SKU: "VC-CAM-PTZ", Name: "PTZ USB Camera", Category: "Conferencing",
			ListPrice: 999, DealerPrice: 720, Tags: []string{"USB Camera", "Gold"},
			Status: models.StatusLegacy, LegacyReason: "Replaced by VC-BAR-4K for huddle and medium rooms",
			Capability: models.Capability{
				USB: &models.USBSpec{Ports: 1, Bandwidth: "2.0"},
			}},
		{SKU: "AUD-DSP-12", Name: "12-Channel Conferencing DSP", Category: "Audio",
			ListPrice: 2600, DealerPrice: 1890, Tags: []string{"DSP", "Gold"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Network: &models.NetworkSpec{Ethernet: true, PoE: true},
				Audio: &models.AudioSpec{DSP: true,
					Inputs:  []string{"Mic/Line x12", "Dante"},
					Outputs: []string{"Line x8", "Dante"}},
			}},
		{SKU: "CTL-PROC-3", Name: "Room Control Processor", Category: "Control",
			ListPrice: 1400, DealerPrice: 1010, Tags: []string{"Control", "Silver"},
			Status: models.StatusActive,
			Capability: models.Capability{
				Network: &models.NetworkSpec{Ethernet: true, PoE: true},
			}},
	}
}
