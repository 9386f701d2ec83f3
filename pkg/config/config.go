// Package config defines the declarative station configuration and the
// normalizer that merges partial updates into a safe, internally
// consistent configuration. Invalid values are never an error; they are
// silently replaced by defaults so the viewer always has something
// reasonable to build.
package config

// BaseStyle selects the station's support structure.
type BaseStyle string

const (
	BasePedestal BaseStyle = "pedestal"
	BaseLegs     BaseStyle = "legs"
)

// SinkPosition places the primary sink relative to the station center.
type SinkPosition string

const (
	SinkLeft   SinkPosition = "left"
	SinkCenter SinkPosition = "center"
	SinkRight  SinkPosition = "right"
	SinkNone   SinkPosition = "none"
)

// Width limits in inches. The canonical layout is CanonicalWidth wide;
// every sub-assembly scales by Width/CanonicalWidth.
const (
	MinWidth       = 48
	MaxWidth       = 96
	CanonicalWidth = 72
)

// Station is the full configuration of one station. It is owned by the
// viewer and replaced wholesale on each update, never partially
// mutated.
type Station struct {
	Width        int          `json:"width"`
	BaseStyle    BaseStyle    `json:"baseStyle"`
	SinkPosition SinkPosition `json:"sinkPosition"`

	// Feature flags.
	HeightAdjust      bool `json:"heightAdjust"`
	FrontAirSystem    bool `json:"frontAirSystem"`
	FormalinDetection bool `json:"formalinDetection"`
	DowndraftVent     bool `json:"downdraftVent"`
	Disposal          bool `json:"disposal"`
	SecondSink        bool `json:"secondSink"`

	// Accessory flags.
	PathCam           bool `json:"pathCam"`
	MonitorArm        bool `json:"monitorArm"`
	MagnetBar         bool `json:"magnetBar"`
	Drawers           bool `json:"drawers"`
	LEDStrip          bool `json:"ledStrip"`
	PegboardWing      bool `json:"pegboardWing"`
	FormalinDispenser bool `json:"formalinDispenser"`
}

// Default returns the out-of-the-box configuration.
func Default() Station {
	return Station{
		Width:        CanonicalWidth,
		BaseStyle:    BasePedestal,
		SinkPosition: SinkLeft,
	}
}

// WidthScale returns the factor applied to the canonical layout:
// clamp(width, 48, 96) / 72.
func (s Station) WidthScale() float32 {
	return float32(clampWidth(s.Width)) / CanonicalWidth
}

// HasSink reports whether any sink sub-assembly exists. SinkNone
// cascades: it suppresses disposal, the second sink, and the formalin
// dispenser regardless of their flags.
func (s Station) HasSink() bool {
	return s.SinkPosition != SinkNone
}

func clampWidth(w int) int {
	if w < MinWidth {
		return MinWidth
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}
