// Package assembly turns a station configuration into a tree of
// positioned, materialed scene nodes. Build is a pure function of
// (configuration, palette): no dependency on any previous tree, so a
// rebuild with an unchanged configuration reproduces the same tree.
package assembly

// Part is the closed enumeration of top-level sub-assembly
// identifiers. The String values are a stable external contract: UI
// and export collaborators look nodes up by these names, so they must
// never be renamed while the corresponding feature is enabled.
type Part int

const (
	PartTableTop Part = iota
	PartSink
	PartSecondSink
	PartDisposal
	PartPegboard
	PartPegboardWing
	PartHood
	PartControlPanel
	PartBase
	PartLEDStrip
	PartFrontAirSystem
	PartDowndraftVents
	PartFormalinSensor
	PartHeightAdjustMechanism
	PartMonitorArm
	PartMagnetBar
	PartDrawers
	PartPathCam
	PartFormalinDispenser
	PartBrandingAccent

	numParts // sentinel, keep last
)

var partNames = [numParts]string{
	PartTableTop:              "tableTop",
	PartSink:                  "sink",
	PartSecondSink:            "secondSink",
	PartDisposal:              "disposal",
	PartPegboard:              "pegboard",
	PartPegboardWing:          "pegboardWing",
	PartHood:                  "hood",
	PartControlPanel:          "controlPanel",
	PartBase:                  "base",
	PartLEDStrip:              "ledStrip",
	PartFrontAirSystem:        "frontAirSystem",
	PartDowndraftVents:        "downdraftVents",
	PartFormalinSensor:        "formalinSensor",
	PartHeightAdjustMechanism: "heightAdjustMechanism",
	PartMonitorArm:            "monitorArm",
	PartMagnetBar:             "magnetBar",
	PartDrawers:               "drawers",
	PartPathCam:               "pathCam",
	PartFormalinDispenser:     "formalinDispenser",
	PartBrandingAccent:        "brandingAccent",
}

func (p Part) String() string {
	if p < 0 || p >= numParts {
		return "unknown"
	}
	return partNames[p]
}

// AllParts returns every part identifier in declaration order.
func AllParts() []Part {
	parts := make([]Part, numParts)
	for i := range parts {
		parts[i] = Part(i)
	}
	return parts
}
