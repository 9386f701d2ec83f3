package assembly

import (
	"github.com/apexpath/stationviz/pkg/config"
	"github.com/apexpath/stationviz/pkg/scene"
)

// builder carries the per-build inputs so the sub-assembly helpers stay
// readable. s is the width scale, w the scaled table width.
type builder struct {
	cfg config.Station
	pal *scene.Palette
	s   float32
	w   float32
}

// Build constructs the complete station tree for a normalized
// configuration. The tree is fresh on every call: no node, geometry or
// assembly-owned material is ever shared with a previous build.
// Disabled features produce no named node at all.
func Build(cfg config.Station, pal *scene.Palette) *Assembly {
	b := &builder{cfg: cfg, pal: pal, s: cfg.WidthScale()}
	b.w = TableWidth * b.s

	root := scene.NewGroup(RootName)
	parts := make(map[Part]*scene.Node)
	add := func(p Part, n *scene.Node) {
		parts[p] = n
		root.Add(n)
	}

	// Always-present structure.
	add(PartTableTop, b.tableTop())
	add(PartBase, b.base())
	add(PartHood, b.hood())
	add(PartControlPanel, b.controlPanel())
	add(PartPegboard, b.pegboard())
	add(PartBrandingAccent, b.brandingAccent())

	// Sink layout. SinkNone suppresses the whole wet side regardless
	// of the disposal/secondSink/formalinDispenser flags.
	if cfg.HasSink() {
		primaryX, secondX, hasSecond := b.sinkPlacement()
		add(PartSink, b.sink(PartSink.String(), primaryX))
		if hasSecond {
			add(PartSecondSink, b.sink(PartSecondSink.String(), secondX))
		}
		if cfg.Disposal {
			add(PartDisposal, b.disposal(primaryX))
		}
		if cfg.FormalinDispenser {
			add(PartFormalinDispenser, b.formalinDispenser(primaryX))
		}
	}

	// Features.
	if cfg.HeightAdjust {
		add(PartHeightAdjustMechanism, b.heightAdjustMechanism())
	}
	if cfg.FrontAirSystem {
		add(PartFrontAirSystem, b.frontAirSystem())
	}
	if cfg.FormalinDetection {
		add(PartFormalinSensor, b.formalinSensor())
	}
	if cfg.DowndraftVent {
		add(PartDowndraftVents, b.downdraftVents())
	}

	// Accessories.
	if cfg.PathCam {
		add(PartPathCam, b.pathCam())
	}
	if cfg.MonitorArm {
		add(PartMonitorArm, b.monitorArm())
	}
	if cfg.MagnetBar {
		add(PartMagnetBar, b.magnetBar())
	}
	if cfg.Drawers {
		add(PartDrawers, b.drawers())
	}
	if cfg.LEDStrip {
		add(PartLEDStrip, b.ledStrip())
	}
	if cfg.PegboardWing {
		add(PartPegboardWing, b.pegboardWing())
	}

	a := &Assembly{
		Root:       root,
		Parts:      parts,
		WidthScale: b.s,
		Config:     cfg,
	}
	a.captureOriginals()
	return a
}

// ownedMaterial creates a per-assembly material. These are disposed
// with the tree, unlike the shared palette materials.
func ownedMaterial(name, color string, emissive string) *scene.Material {
	return &scene.Material{
		Name:      name,
		Color:     color,
		Emissive:  emissive,
		Metalness: 0.1,
		Roughness: 0.6,
		Opacity:   1,
		Owner:     scene.OwnerAssembly,
	}
}

// tableTop builds the work surface: stainless slab, raised marine edge
// and a dark front trim strip.
func (b *builder) tableTop() *scene.Node {
	top := scene.NewGroup(PartTableTop.String())

	slab := scene.NewMesh("surface",
		scene.NewBox(b.w, topThickness, TableDepth), b.pal.Metal)
	slab.Pos = scene.Vec3{Y: WorkHeight - topThickness/2}

	// Raised edge around the perimeter keeps fluids on the table.
	lipH := float32(0.03)
	lip := scene.NewGroup("marineEdge")
	back := scene.NewMesh("edgeBack",
		scene.NewBox(b.w, lipH, 0.02), b.pal.Metal)
	back.Pos = scene.Vec3{Y: WorkHeight + lipH/2, Z: -TableDepth/2 + 0.01}
	left := scene.NewMesh("edgeLeft",
		scene.NewBox(0.02, lipH, TableDepth), b.pal.Metal)
	left.Pos = scene.Vec3{X: -b.w/2 + 0.01, Y: WorkHeight + lipH/2}
	right := scene.NewMesh("edgeRight",
		scene.NewBox(0.02, lipH, TableDepth), b.pal.Metal)
	right.Pos = scene.Vec3{X: b.w/2 - 0.01, Y: WorkHeight + lipH/2}
	lip.Add(back, left, right)

	trim := scene.NewMesh("frontTrim",
		scene.NewBox(b.w, 0.05, 0.01), b.pal.Dark)
	trim.Pos = scene.Vec3{Y: WorkHeight - topThickness - 0.025, Z: TableDepth/2 - 0.005}

	return top.Add(slab, lip, trim)
}

// base builds the support structure for the selected style.
func (b *builder) base() *scene.Node {
	base := scene.NewGroup(PartBase.String())
	h := float32(WorkHeight - topThickness)

	switch b.cfg.BaseStyle {
	case config.BaseLegs:
		legInset := float32(0.06)
		lx := b.w/2 - legInset
		lz := TableDepth/2 - legInset
		corners := []scene.Vec3{
			{X: -lx, Z: -lz}, {X: lx, Z: -lz},
			{X: -lx, Z: lz}, {X: lx, Z: lz},
		}
		for i, c := range corners {
			leg := scene.NewMesh(legName(i),
				scene.NewCylinder(0.025, h), b.pal.Brushed)
			leg.Pos = scene.Vec3{X: c.X, Y: h / 2, Z: c.Z}
			base.Add(leg)
		}
		shelf := scene.NewMesh("lowerShelf",
			scene.NewBox(b.w-2*legInset, 0.02, TableDepth-2*legInset), b.pal.Brushed)
		shelf.Pos = scene.Vec3{Y: 0.18}
		base.Add(shelf)

	default: // pedestal
		pw := 0.5 * b.s
		for i, x := range []float32{-b.w / 4, b.w / 4} {
			ped := scene.NewMesh(pedName(i),
				scene.NewBox(pw, h, TableDepth*0.85), b.pal.Dark)
			ped.Pos = scene.Vec3{X: x, Y: h / 2}
			base.Add(ped)
		}
		kick := scene.NewMesh("kickPlate",
			scene.NewBox(b.w*0.9, 0.08, TableDepth*0.7), b.pal.Dark)
		kick.Pos = scene.Vec3{Y: 0.04}
		base.Add(kick)
	}
	return base
}

func legName(i int) string {
	return [...]string{"legBackLeft", "legBackRight", "legFrontLeft", "legFrontRight"}[i]
}

func pedName(i int) string {
	return [...]string{"pedestalLeft", "pedestalRight"}[i]
}

// hood builds the ventilation canopy with its glass sash and side posts.
func (b *builder) hood() *scene.Node {
	hood := scene.NewGroup(PartHood.String())

	canopy := scene.NewMesh("canopy",
		scene.NewBox(b.w, 0.16, TableDepth*0.8), b.pal.Brushed)
	canopy.Pos = scene.Vec3{Y: WorkHeight + hoodHeight, Z: -TableDepth * 0.1}

	sash := scene.NewMesh("sash",
		scene.NewBox(b.w*0.96, 0.5, 0.008), b.pal.Glass)
	sash.Pos = scene.Vec3{Y: WorkHeight + hoodHeight - 0.38, Z: TableDepth*0.22 - 0.004}
	sash.Rot = scene.Vec3{X: -8}

	for i, x := range []float32{-b.w/2 + 0.03, b.w/2 - 0.03} {
		post := scene.NewMesh([...]string{"postLeft", "postRight"}[i],
			scene.NewBox(0.05, hoodHeight, 0.05), b.pal.Brushed)
		post.Pos = scene.Vec3{X: x, Y: WorkHeight + hoodHeight/2, Z: -TableDepth/2 + 0.05}
		hood.Add(post)
	}

	baffle := scene.NewMesh("baffle",
		scene.NewBox(b.w*0.9, 0.02, TableDepth*0.6), b.pal.Metal)
	baffle.Pos = scene.Vec3{Y: WorkHeight + hoodHeight - 0.09, Z: -TableDepth * 0.1}

	return hood.Add(canopy, sash, baffle)
}

// controlPanel builds the touch panel on the right front post, angled
// toward the operator. The screen material is per-assembly so its glow
// can be tinted by future catalog data without touching the palette.
func (b *builder) controlPanel() *scene.Node {
	panel := scene.NewGroup(PartControlPanel.String())
	panel.Pos = scene.Vec3{X: b.w/2 - 0.1, Y: WorkHeight + 0.32, Z: TableDepth/2 - 0.08}
	panel.Rot = scene.Vec3{X: -15}

	housing := scene.NewMesh("housing",
		scene.NewBox(0.28, 0.18, 0.03), b.pal.Plastic)
	screen := scene.NewMesh("screen",
		scene.NewBox(0.24, 0.14, 0.005), ownedMaterial("screenGlow", "#10222c", "#2ee6a8"))
	screen.Pos = scene.Vec3{Z: 0.017}

	return panel.Add(housing, screen)
}

// pegboard builds the rear tool panel with its instanced hole grid.
func (b *builder) pegboard() *scene.Node {
	board := scene.NewGroup(PartPegboard.String())
	board.Pos = scene.Vec3{Y: WorkHeight + 0.45, Z: -TableDepth/2 + 0.015}

	pw := b.w * 0.88
	ph := float32(0.5)
	panel := scene.NewMesh("panel", scene.NewBox(pw, ph, 0.015), b.pal.Plastic)

	holes := scene.NewMesh("holes",
		scene.NewCylinder(0.004, 0.02), b.pal.Dark)
	holes.Rot = scene.Vec3{X: 90} // hole axis along Z
	holes.Instances = gridXY(
		-pw/2+0.05, 0.05, pw/2-0.05,
		-ph/2+0.05, 0.05, ph/2-0.05,
		0.008,
	)

	return board.Add(panel, holes)
}

// brandingAccent is the product accent strip on the canopy fascia.
func (b *builder) brandingAccent() *scene.Node {
	accent := scene.NewMesh(PartBrandingAccent.String(),
		scene.NewBox(0.42*b.s, 0.06, 0.012), b.pal.Accent)
	accent.Pos = scene.Vec3{Y: WorkHeight + hoodHeight, Z: TableDepth*0.3 + 0.006}
	return accent
}
