package validator

import "github.com/avforge/configurator/pkg/models"

// ── Reference Tables ────────────────────────────────────────

// baseRateGbps is the uncompressed 8-bit 4:4:4 data rate at 60 Hz for each
// resolution class, including link encoding overhead.
var baseRateGbps = map[models.Resolution]float64{
	models.Resolution720p:  2.23,
	models.Resolution1080p: 4.46,
	models.Resolution1440p: 7.92,
	models.Resolution4K:    17.82,
	models.Resolution8K:    71.28,
}

// chromaFactor scales the 4:4:4 rate for subsampled formats.
var chromaFactor = map[models.Chroma]float64{
	models.Chroma444: 1.0,
	models.Chroma422: 2.0 / 3.0,
	models.Chroma420: 0.5,
}

// RequiredGbps returns the data rate implied by a format and refresh rate.
// An unset chroma is treated as 4:4:4 and a zero refresh as 60 Hz. Unknown
// resolutions need 0.
func RequiredGbps(f models.VideoFormat, refresh int) float64 {
	base, ok := baseRateGbps[f.Resolution]
	if !ok {
		return 0
	}
	if refresh == 0 {
		refresh = 60
	}
	factor, ok := chromaFactor[f.Chroma]
	if !ok {
		factor = 1
	}
	return base * factor * float64(refresh) / 60
}

// HDBaseT reach in distance units. Class B loses reach above 1080p.
const (
	hdbaseTClassAReach      = 100.0
	hdbaseTClassBReach      = 70.0
	hdbaseTClassBReachUHD   = 35.0
	hdbaseTClassBUHDCutover = 2 // resolution rank of 1080p
)

// RatedDistance returns the rated HDBaseT run length for class at the
// target resolution. Components that carry HDBaseT ports without declaring
// a class are rated as Class B.
func RatedDistance(class models.HDBaseTClass, target models.Resolution) float64 {
	if class == models.HDBaseTClassA {
		return hdbaseTClassAReach
	}
	if target.Rank() > hdbaseTClassBUHDCutover {
		return hdbaseTClassBReachUHD
	}
	return hdbaseTClassBReach
}

// directRunLimit is the longest passive run per connector for direct
// distribution. Connectors not listed are not checked.
var directRunLimit = map[models.ConnectorKind]float64{
	models.ConnectorHDMI:        15,
	models.ConnectorDisplayPort: 10,
	models.ConnectorUSBC:        3,
	models.ConnectorVGA:         30,
	models.ConnectorSDI:         100,
}
