package scene

// GeometryKind distinguishes the primitive shapes the builder emits.
type GeometryKind int

const (
	GeomBox GeometryKind = iota
	GeomCylinder
)

func (k GeometryKind) String() string {
	switch k {
	case GeomBox:
		return "box"
	case GeomCylinder:
		return "cylinder"
	default:
		return "unknown"
	}
}

// Geometry is a GPU-resident shape owned by exactly one assembly.
// Dimensions are local; placement lives on the owning Node.
//
// For GeomBox, W/H/D are the full extents. For GeomCylinder, R is the
// radius and H the height along Y.
type Geometry struct {
	Kind GeometryKind
	W    float32
	H    float32
	D    float32
	R    float32

	disposed bool
}

// NewBox creates a box geometry with the given full extents.
func NewBox(w, h, d float32) *Geometry {
	return &Geometry{Kind: GeomBox, W: w, H: h, D: d}
}

// NewCylinder creates a Y-axis cylinder geometry.
func NewCylinder(r, h float32) *Geometry {
	return &Geometry{Kind: GeomCylinder, R: r, H: h}
}

// HalfExtents returns the local-space half extents of the geometry's
// axis-aligned bounding box.
func (g *Geometry) HalfExtents() Vec3 {
	switch g.Kind {
	case GeomCylinder:
		return Vec3{g.R, g.H / 2, g.R}
	default:
		return Vec3{g.W / 2, g.H / 2, g.D / 2}
	}
}

// Dispose releases the geometry. Calling it twice is a lifecycle bug;
// the viewer's swap traversal guarantees at-most-once disposal.
func (g *Geometry) Dispose() {
	g.disposed = true
}

// Disposed reports whether Dispose has been called.
func (g *Geometry) Disposed() bool {
	return g.disposed
}
