package config

import (
	"encoding/json"
	"math"
	"strconv"
)

// Patch is a partial configuration: nil fields are left untouched by
// Apply. Patches come from UI bindings (JSON) or preset scripts.
type Patch struct {
	Width        *int
	BaseStyle    *string
	SinkPosition *string

	HeightAdjust      *bool
	FrontAirSystem    *bool
	FormalinDetection *bool
	DowndraftVent     *bool
	Disposal          *bool
	SecondSink        *bool

	PathCam           *bool
	MonitorArm        *bool
	MagnetBar         *bool
	Drawers           *bool
	LEDStrip          *bool
	PegboardWing      *bool
	FormalinDispenser *bool
}

// boolPatchKeys maps recognized JSON keys to their Patch fields.
func (p *Patch) boolFields() map[string]**bool {
	return map[string]**bool{
		"heightAdjust":      &p.HeightAdjust,
		"frontAirSystem":    &p.FrontAirSystem,
		"formalinDetection": &p.FormalinDetection,
		"downdraftVent":     &p.DowndraftVent,
		"disposal":          &p.Disposal,
		"secondSink":        &p.SecondSink,
		"pathCam":           &p.PathCam,
		"monitorArm":        &p.MonitorArm,
		"magnetBar":         &p.MagnetBar,
		"drawers":           &p.Drawers,
		"ledStrip":          &p.LEDStrip,
		"pegboardWing":      &p.PegboardWing,
		"formalinDispenser": &p.FormalinDispenser,
	}
}

// PatchFromJSON decodes a partial configuration from frontend JSON.
// Unknown keys are ignored. A width that is present but non-numeric is
// treated as the canonical default rather than an error; everything
// else that fails to coerce is dropped. The function never fails: at
// worst it returns an empty patch.
func PatchFromJSON(data []byte) Patch {
	var p Patch
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return p
	}

	if v, ok := raw["width"]; ok {
		w, numeric := coerceNumber(v)
		if !numeric {
			w = CanonicalWidth
		}
		wi := int(math.Round(w))
		p.Width = &wi
	}
	if v, ok := raw["baseStyle"]; ok {
		if s, sok := v.(string); sok {
			p.BaseStyle = &s
		}
	}
	if v, ok := raw["sinkPosition"]; ok {
		if s, sok := v.(string); sok {
			p.SinkPosition = &s
		}
	}
	for key, field := range p.boolFields() {
		if v, ok := raw[key]; ok {
			if b, bok := coerceBool(v); bok {
				*field = &b
			}
		}
	}
	return p
}

func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func coerceBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// Apply merges a patch over current and normalizes the result:
// width clamped to [MinWidth, MaxWidth]; baseStyle pedestal unless
// exactly legs; sinkPosition left unless one of the four enum values;
// secondSink forced false below 96". No other cross-field validation
// happens here; sink-position cascades are the builder's concern.
func Apply(current Station, p Patch) Station {
	out := current

	if p.Width != nil {
		out.Width = *p.Width
	}
	out.Width = clampWidth(out.Width)

	if p.BaseStyle != nil {
		out.BaseStyle = BaseStyle(*p.BaseStyle)
	}
	if out.BaseStyle != BaseLegs {
		out.BaseStyle = BasePedestal
	}

	if p.SinkPosition != nil {
		out.SinkPosition = SinkPosition(*p.SinkPosition)
	}
	switch out.SinkPosition {
	case SinkLeft, SinkCenter, SinkRight, SinkNone:
	default:
		out.SinkPosition = SinkLeft
	}

	applyBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	applyBool(&out.HeightAdjust, p.HeightAdjust)
	applyBool(&out.FrontAirSystem, p.FrontAirSystem)
	applyBool(&out.FormalinDetection, p.FormalinDetection)
	applyBool(&out.DowndraftVent, p.DowndraftVent)
	applyBool(&out.Disposal, p.Disposal)
	applyBool(&out.SecondSink, p.SecondSink)
	applyBool(&out.PathCam, p.PathCam)
	applyBool(&out.MonitorArm, p.MonitorArm)
	applyBool(&out.MagnetBar, p.MagnetBar)
	applyBool(&out.Drawers, p.Drawers)
	applyBool(&out.LEDStrip, p.LEDStrip)
	applyBool(&out.PegboardWing, p.PegboardWing)
	applyBool(&out.FormalinDispenser, p.FormalinDispenser)

	// A second basin needs the full 96" top.
	if out.Width < MaxWidth {
		out.SecondSink = false
	}

	return out
}
