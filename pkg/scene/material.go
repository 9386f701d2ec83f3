package scene

// Owner tags who is responsible for disposing a material. Ownership is
// fixed at creation time so the lifecycle manager never has to guess
// whether a material is shared.
type Owner int

const (
	OwnerAssembly Owner = iota // disposed with the assembly that built it
	OwnerPalette               // shared; disposed only at viewer teardown
)

func (o Owner) String() string {
	switch o {
	case OwnerAssembly:
		return "assembly"
	case OwnerPalette:
		return "palette"
	default:
		return "unknown"
	}
}

// Material describes a surface. Palette materials are shared across
// every node that references them; assembly-owned materials belong to
// exactly one tree.
type Material struct {
	Name      string
	Color     string // #rrggbb
	Emissive  string // #rrggbb, empty = none
	Metalness float32
	Roughness float32
	Opacity   float32 // 1 = opaque
	Wireframe bool
	Owner     Owner

	disposed bool
}

// Transparent reports whether the material needs alpha blending.
func (m *Material) Transparent() bool {
	return m.Opacity < 1
}

// Dispose releases the material. The lifecycle manager skips
// OwnerPalette materials during assembly teardown.
func (m *Material) Dispose() {
	m.disposed = true
}

// Disposed reports whether Dispose has been called.
func (m *Material) Disposed() bool {
	return m.disposed
}
