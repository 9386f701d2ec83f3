// Package validate performs the post-build structural check: every
// node implied by the configuration must be present, above ground, and
// within the station's spatial envelope. Violations are advisory; the
// viewer logs them and keeps rendering.
package validate

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/apexpath/stationviz/pkg/assembly"
	"github.com/apexpath/stationviz/pkg/config"
)

// Warning is one advisory finding. Never an error; never fatal.
type Warning struct {
	Part    string
	Code    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Code, w.Part, w.Message)
}

// Warning codes.
const (
	CodeMissing     = "MISSING_PART"
	CodeBelowGround = "BELOW_GROUND"
	CodeOffStation  = "OFF_STATION"
	CodeOutOfDepth  = "OUT_OF_DEPTH"
)

// Tolerances hold the spatial heuristics. The zero value is unusable;
// start from Defaults and override from settings.
type Tolerances struct {
	// Ground is how far a part's lower extent may sit below the
	// ground plane before it counts as sunken.
	Ground float32
	// RadiusFactor scales the station's half width into the allowed
	// horizontal envelope.
	RadiusFactor float32
	// Depth is the absolute limit for a part's depth-axis center.
	Depth float32
}

// Defaults returns the standard tolerances.
func Defaults() Tolerances {
	return Tolerances{Ground: 0.02, RadiusFactor: 1.2, Depth: 1.0}
}

// ExpectedParts computes the set of part names that should exist for a
// normalized configuration. It deliberately mirrors the builder's own
// inclusion rules so a builder regression shows up as missing-part
// warnings rather than silently shipping an incomplete station.
func ExpectedParts(cfg config.Station) []assembly.Part {
	parts := []assembly.Part{
		assembly.PartTableTop,
		assembly.PartBase,
		assembly.PartHood,
		assembly.PartControlPanel,
		assembly.PartPegboard,
		assembly.PartBrandingAccent,
	}
	if cfg.HasSink() {
		parts = append(parts, assembly.PartSink)
		if cfg.SecondSink {
			parts = append(parts, assembly.PartSecondSink)
		}
		if cfg.Disposal {
			parts = append(parts, assembly.PartDisposal)
		}
		if cfg.FormalinDispenser {
			parts = append(parts, assembly.PartFormalinDispenser)
		}
	}
	if cfg.HeightAdjust {
		parts = append(parts, assembly.PartHeightAdjustMechanism)
	}
	if cfg.FrontAirSystem {
		parts = append(parts, assembly.PartFrontAirSystem)
	}
	if cfg.FormalinDetection {
		parts = append(parts, assembly.PartFormalinSensor)
	}
	if cfg.DowndraftVent {
		parts = append(parts, assembly.PartDowndraftVents)
	}
	if cfg.PathCam {
		parts = append(parts, assembly.PartPathCam)
	}
	if cfg.MonitorArm {
		parts = append(parts, assembly.PartMonitorArm)
	}
	if cfg.MagnetBar {
		parts = append(parts, assembly.PartMagnetBar)
	}
	if cfg.Drawers {
		parts = append(parts, assembly.PartDrawers)
	}
	if cfg.LEDStrip {
		parts = append(parts, assembly.PartLEDStrip)
	}
	if cfg.PegboardWing {
		parts = append(parts, assembly.PartPegboardWing)
	}
	return parts
}

// Check runs the structural pass against a built assembly. Lookup is
// by name against the live tree, exercising the same surface external
// collaborators use.
func Check(a *assembly.Assembly, tol Tolerances) []Warning {
	var warnings []Warning

	halfWidth := assembly.TableWidth * a.WidthScale / 2
	radius := tol.RadiusFactor * halfWidth

	for _, part := range ExpectedParts(a.Config) {
		name := part.String()
		node := a.Find(name)
		if node == nil {
			warnings = append(warnings, Warning{
				Part: name, Code: CodeMissing,
				Message: "expected by configuration but absent from the tree",
			})
			continue
		}

		bounds, ok := node.Bounds()
		if !ok {
			continue // no geometry to check
		}
		center := bounds.Center()

		if bounds.Min.Y < -tol.Ground {
			warnings = append(warnings, Warning{
				Part: name, Code: CodeBelowGround,
				Message: fmt.Sprintf("lower extent %.3f sits below the ground plane", bounds.Min.Y),
			})
		}
		if math32.Abs(center.X) > radius {
			warnings = append(warnings, Warning{
				Part: name, Code: CodeOffStation,
				Message: fmt.Sprintf("horizontal center %.3f outside station radius %.3f", center.X, radius),
			})
		}
		if math32.Abs(center.Z) > tol.Depth {
			warnings = append(warnings, Warning{
				Part: name, Code: CodeOutOfDepth,
				Message: fmt.Sprintf("depth-axis center %.3f outside envelope %.3f", center.Z, tol.Depth),
			})
		}
	}
	return warnings
}
