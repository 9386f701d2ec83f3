package assembly

import (
	"github.com/apexpath/stationviz/pkg/config"
	"github.com/apexpath/stationviz/pkg/scene"
)

// sinkPreset is a fixed basin dimension set. Basin proportions step by
// width bracket rather than scaling linearly, which keeps them visually
// stable across the product line.
type sinkPreset struct {
	outerW, outerD, depth float32
}

var (
	sinkLarge = sinkPreset{0.62, 0.50, 0.30} // 96" stations
	sinkSmall = sinkPreset{0.50, 0.42, 0.25} // up to 60"
	sinkMid   = sinkPreset{0.56, 0.46, 0.28}
)

func (b *builder) sinkDims() sinkPreset {
	switch {
	case b.cfg.Width >= config.MaxWidth:
		return sinkLarge
	case b.cfg.Width <= 60:
		return sinkSmall
	default:
		return sinkMid
	}
}

// sinkPlacement resolves the basin X offsets. A second basin on a
// center-sink 96" station renders as a symmetric left+right pair
// instead of overlapping a center basin with a right one; for left or
// right primaries the second basin mirrors to the other side.
func (b *builder) sinkPlacement() (primaryX, secondX float32, hasSecond bool) {
	span := sinkOffsetSpan * b.s
	hasSecond = b.cfg.SecondSink

	switch b.cfg.SinkPosition {
	case config.SinkCenter:
		if hasSecond {
			return -span, span, true
		}
		return 0, 0, false
	case config.SinkRight:
		return span, -span, hasSecond
	default: // left
		return -span, span, hasSecond
	}
}

// sink builds one basin sub-assembly: recessed basin, gooseneck
// faucet, and the instanced drain hole field in the basin floor.
func (b *builder) sink(name string, offsetX float32) *scene.Node {
	dims := b.sinkDims()
	sink := scene.NewGroup(name)
	sink.Pos = scene.Vec3{X: offsetX, Y: WorkHeight}

	basin := scene.NewMesh("basin",
		scene.NewBox(dims.outerW, dims.depth, dims.outerD), b.pal.Metal)
	basin.Pos = scene.Vec3{Y: -dims.depth / 2}

	rim := scene.NewMesh("rim",
		scene.NewBox(dims.outerW+0.04, 0.015, dims.outerD+0.04), b.pal.Metal)
	rim.Pos = scene.Vec3{Y: 0.0075}

	faucet := scene.NewGroup("faucet")
	faucet.Pos = scene.Vec3{Z: -dims.outerD/2 - 0.05}
	riser := scene.NewMesh("riser", scene.NewCylinder(0.012, 0.28), b.pal.Brushed)
	riser.Pos = scene.Vec3{Y: 0.14}
	spout := scene.NewMesh("spout", scene.NewBox(0.02, 0.02, 0.16), b.pal.Brushed)
	spout.Pos = scene.Vec3{Y: 0.28, Z: 0.07}
	faucet.Add(riser, spout)

	drains := scene.NewMesh("drainHoles",
		scene.NewCylinder(0.004, 0.006), b.pal.Dark)
	drains.Instances = gridXZ(
		-0.04, 0.02, 0.04,
		-0.04, 0.02, 0.04,
		-dims.depth+0.003,
	)

	return sink.Add(basin, rim, faucet, drains)
}

// disposal is the in-counter waste unit under the primary basin.
func (b *builder) disposal(sinkX float32) *scene.Node {
	disp := scene.NewGroup(PartDisposal.String())
	disp.Pos = scene.Vec3{X: sinkX, Y: WorkHeight - 0.52}

	body := scene.NewMesh("body", scene.NewCylinder(0.14, 0.34), b.pal.Dark)
	collar := scene.NewMesh("collar", scene.NewCylinder(0.08, 0.1), b.pal.Brushed)
	collar.Pos = scene.Vec3{Y: 0.22}
	lamp := scene.NewMesh("statusLamp",
		scene.NewBox(0.02, 0.02, 0.005), ownedMaterial("disposalLamp", "#200a0a", "#e23d2e"))
	lamp.Pos = scene.Vec3{Z: 0.145}

	return disp.Add(body, collar, lamp)
}

// formalinDispenser hangs the metered tank next to the primary basin.
// Requires a sink; the builder cascades suppression from SinkNone.
func (b *builder) formalinDispenser(sinkX float32) *scene.Node {
	side := float32(1)
	if sinkX > 0 {
		side = -1
	}
	disp := scene.NewGroup(PartFormalinDispenser.String())
	disp.Pos = scene.Vec3{X: sinkX + side*0.42, Y: WorkHeight + 0.35, Z: -TableDepth/2 + 0.12}

	tank := scene.NewMesh("tank",
		scene.NewCylinder(0.07, 0.24), ownedMaterial("formalinTank", "#d9b44a", ""))
	nozzle := scene.NewMesh("nozzle", scene.NewCylinder(0.008, 0.1), b.pal.Brushed)
	nozzle.Pos = scene.Vec3{Y: -0.17}
	bracket := scene.NewMesh("bracket", scene.NewBox(0.03, 0.2, 0.06), b.pal.Brushed)
	bracket.Pos = scene.Vec3{Z: -0.08}

	return disp.Add(tank, nozzle, bracket)
}

// heightAdjustMechanism adds telescoping lift columns and the paddle
// control on the front edge.
func (b *builder) heightAdjustMechanism() *scene.Node {
	mech := scene.NewGroup(PartHeightAdjustMechanism.String())

	for i, x := range []float32{-b.w / 3, b.w / 3} {
		col := scene.NewMesh([...]string{"columnLeft", "columnRight"}[i],
			scene.NewCylinder(0.045, 0.5), b.pal.Brushed)
		col.Pos = scene.Vec3{X: x, Y: 0.35}
		inner := scene.NewMesh([...]string{"columnLeftInner", "columnRightInner"}[i],
			scene.NewCylinder(0.03, 0.3), b.pal.Dark)
		inner.Pos = scene.Vec3{X: x, Y: 0.72}
		mech.Add(col, inner)
	}

	paddle := scene.NewMesh("paddle", scene.NewBox(0.12, 0.03, 0.05), b.pal.Plastic)
	paddle.Pos = scene.Vec3{X: -b.w/2 + 0.2, Y: WorkHeight - 0.1, Z: TableDepth/2 + 0.02}
	return mech.Add(paddle)
}

// frontAirSystem is the operator-side clean air intake: housing plus an
// instanced slot row along the front edge.
func (b *builder) frontAirSystem() *scene.Node {
	fas := scene.NewGroup(PartFrontAirSystem.String())
	fas.Pos = scene.Vec3{Y: WorkHeight + 0.045, Z: TableDepth/2 - 0.04}

	housing := scene.NewMesh("housing",
		scene.NewBox(b.w*0.8, 0.06, 0.08), b.pal.Brushed)

	slots := scene.NewMesh("slots",
		scene.NewBox(0.03, 0.012, 0.002), b.pal.Dark)
	span := b.w*0.4 - 0.05
	slots.Instances = gridXZ(-span, 0.05, span, 0, 1, 0.5, 0)
	slots.Pos = scene.Vec3{Z: 0.041}

	return fas.Add(housing, slots)
}

// formalinSensor is the vapor monitor puck under the canopy.
func (b *builder) formalinSensor() *scene.Node {
	sensor := scene.NewGroup(PartFormalinSensor.String())
	sensor.Pos = scene.Vec3{X: 0, Y: WorkHeight + hoodHeight - 0.12, Z: -TableDepth * 0.1}

	body := scene.NewMesh("body", scene.NewCylinder(0.035, 0.03), b.pal.Plastic)
	lamp := scene.NewMesh("indicator",
		scene.NewCylinder(0.006, 0.004), ownedMaterial("sensorLamp", "#0a2010", "#35d95a"))
	lamp.Pos = scene.Vec3{Y: -0.018}

	return sensor.Add(body, lamp)
}

// downdraftVents places the slotted extraction plates flanking the work
// area on the table surface.
func (b *builder) downdraftVents() *scene.Node {
	vents := scene.NewGroup(PartDowndraftVents.String())
	vents.Pos = scene.Vec3{Y: WorkHeight + 0.005}

	for i, x := range []float32{-b.w * 0.32, b.w * 0.32} {
		plate := scene.NewMesh([...]string{"plateLeft", "plateRight"}[i],
			scene.NewBox(0.22, 0.01, TableDepth*0.7), b.pal.Brushed)
		plate.Pos = scene.Vec3{X: x}

		slots := scene.NewMesh([...]string{"slotsLeft", "slotsRight"}[i],
			scene.NewBox(0.16, 0.004, 0.01), b.pal.Dark)
		slots.Pos = scene.Vec3{X: x, Y: 0.006}
		slots.Instances = gridXZ(0, 1, 0.5, -TableDepth*0.3, 0.045, TableDepth*0.3, 0)
		vents.Add(plate, slots)
	}
	return vents
}

// pathCam mounts the specimen documentation camera over the work area.
func (b *builder) pathCam() *scene.Node {
	cam := scene.NewGroup(PartPathCam.String())
	cam.Pos = scene.Vec3{X: b.w * 0.15, Y: WorkHeight + hoodHeight - 0.08, Z: TableDepth * 0.15}

	arm := scene.NewMesh("arm", scene.NewBox(0.03, 0.03, 0.3), b.pal.Brushed)
	arm.Pos = scene.Vec3{Z: -0.15}
	body := scene.NewMesh("body", scene.NewBox(0.09, 0.07, 0.12), b.pal.Dark)
	lens := scene.NewMesh("lens", scene.NewCylinder(0.022, 0.03), b.pal.Glass)
	lens.Rot = scene.Vec3{X: 90}
	lens.Pos = scene.Vec3{Y: -0.045}

	return cam.Add(arm, body, lens)
}

// monitorArm builds the rear-post display arm and panel.
func (b *builder) monitorArm() *scene.Node {
	ma := scene.NewGroup(PartMonitorArm.String())
	ma.Pos = scene.Vec3{X: -b.w/2 + 0.08, Z: -TableDepth/2 + 0.06}

	pole := scene.NewMesh("pole", scene.NewCylinder(0.02, 0.5), b.pal.Brushed)
	pole.Pos = scene.Vec3{Y: WorkHeight + 0.25}
	arm := scene.NewMesh("arm", scene.NewBox(0.35, 0.025, 0.025), b.pal.Brushed)
	arm.Pos = scene.Vec3{X: 0.17, Y: WorkHeight + 0.48}
	panel := scene.NewMesh("display",
		scene.NewBox(0.48, 0.3, 0.02), ownedMaterial("displayPanel", "#0b0d10", "#1b2b38"))
	panel.Pos = scene.Vec3{X: 0.35, Y: WorkHeight + 0.48, Z: 0.07}
	panel.Rot = scene.Vec3{Y: 12}

	return ma.Add(pole, arm, panel)
}

// magnetBar is the instrument strip on the pegboard.
func (b *builder) magnetBar() *scene.Node {
	bar := scene.NewMesh(PartMagnetBar.String(),
		scene.NewBox(0.5*b.s, 0.04, 0.012), b.pal.Dark)
	bar.Pos = scene.Vec3{X: b.w * 0.18, Y: WorkHeight + 0.62, Z: -TableDepth/2 + 0.03}
	return bar
}

// drawers hangs the under-counter drawer stack opposite the sink side.
func (b *builder) drawers() *scene.Node {
	dr := scene.NewGroup(PartDrawers.String())
	side := float32(1)
	if b.cfg.SinkPosition == config.SinkRight {
		side = -1
	}
	dr.Pos = scene.Vec3{X: side * b.w / 4, Z: TableDepth/2 - 0.26}

	heights := []float32{WorkHeight - 0.14, WorkHeight - 0.28, WorkHeight - 0.42}
	for i, y := range heights {
		face := scene.NewMesh(drawerName(i),
			scene.NewBox(0.44*b.s, 0.12, 0.5), b.pal.Plastic)
		face.Pos = scene.Vec3{Y: y}
		handle := scene.NewMesh(drawerName(i)+"Handle",
			scene.NewBox(0.16, 0.012, 0.012), b.pal.Brushed)
		handle.Pos = scene.Vec3{Y: y + 0.04, Z: 0.256}
		dr.Add(face, handle)
	}
	return dr
}

func drawerName(i int) string {
	return [...]string{"drawerTop", "drawerMiddle", "drawerBottom"}[i]
}

// ledStrip is the task light under the canopy front edge.
func (b *builder) ledStrip() *scene.Node {
	strip := scene.NewMesh(PartLEDStrip.String(),
		scene.NewBox(b.w*0.9, 0.014, 0.02), b.pal.Emissive)
	strip.Pos = scene.Vec3{Y: WorkHeight + hoodHeight - 0.1, Z: TableDepth * 0.28}
	return strip
}

// pegboardWing is the fold-out side panel with its own hole grid.
func (b *builder) pegboardWing() *scene.Node {
	wing := scene.NewGroup(PartPegboardWing.String())
	wing.Pos = scene.Vec3{X: b.w/2 + 0.01, Y: WorkHeight + 0.42}

	panel := scene.NewMesh("panel", scene.NewBox(0.015, 0.42, TableDepth*0.6), b.pal.Plastic)
	holes := scene.NewMesh("holes", scene.NewCylinder(0.004, 0.02), b.pal.Dark)
	holes.Rot = scene.Vec3{Z: 90} // hole axis along X
	holes.Instances = gridXZ(
		0, 1, 0.5,
		-TableDepth*0.3+0.04, 0.05, TableDepth*0.3-0.04,
		0,
	)
	// vertical spread comes from instancing along Y
	holes.Instances = crossY(holes.Instances, gridPoints(-0.16, 0.05, 0.16))

	return wing.Add(panel, holes)
}

// crossY replicates a set of offsets at each of the given Y levels.
func crossY(offsets []scene.Vec3, ys []float32) []scene.Vec3 {
	if len(offsets) == 0 || len(ys) == 0 {
		return nil
	}
	out := make([]scene.Vec3, 0, len(offsets)*len(ys))
	for _, y := range ys {
		for _, o := range offsets {
			out = append(out, scene.Vec3{X: o.X, Y: o.Y + y, Z: o.Z})
		}
	}
	return out
}
