package scene

// NodeKind is the explicit node-kind tag: composites group children,
// meshes carry geometry and a material. Appearance logic switches on
// this tag rather than sniffing fields.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindMesh
)

// Node is a positioned element of an assembly tree. Mesh nodes own
// their Geometry exclusively; Material may be shared from the palette.
// Instances holds local-space offsets for instanced repeated geometry
// (drain holes, pegboard holes, vent slots): one geometry, many
// placements.
type Node struct {
	Kind      NodeKind
	Name      string
	Pos       Vec3
	Rot       Vec3 // Euler degrees, cosmetic only
	Scale     Vec3
	Geometry  *Geometry
	Material  *Material
	Instances []Vec3
	Children  []*Node
}

// NewGroup creates an empty composite node.
func NewGroup(name string) *Node {
	return &Node{Kind: KindGroup, Name: name, Scale: One}
}

// NewMesh creates a leaf node carrying one geometry and one material.
func NewMesh(name string, g *Geometry, m *Material) *Node {
	return &Node{Kind: KindMesh, Name: name, Geometry: g, Material: m, Scale: One}
}

// At sets the node position and returns the node for chaining.
func (n *Node) At(x, y, z float32) *Node {
	n.Pos = Vec3{x, y, z}
	return n
}

// Rotated sets the node rotation (Euler degrees) and returns the node.
func (n *Node) Rotated(x, y, z float32) *Node {
	n.Rot = Vec3{x, y, z}
	return n
}

// Add appends children and returns the node for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Walk visits n and every descendant depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node named name in a depth-first search of the
// subtree rooted at n, or nil. Node names are a stable external
// contract; UI collaborators look parts up this way.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) {
		if found == nil && c.Name == name {
			found = c
		}
	})
	return found
}

// MeshCount returns the number of mesh nodes in the subtree.
func (n *Node) MeshCount() int {
	count := 0
	n.Walk(func(c *Node) {
		if c.Kind == KindMesh {
			count++
		}
	})
	return count
}

// Bounds is a world-space axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec3
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b Bounds) union(o Bounds) Bounds {
	return Bounds{
		Min: Vec3{min32(b.Min.X, o.Min.X), min32(b.Min.Y, o.Min.Y), min32(b.Min.Z, o.Min.Z)},
		Max: Vec3{max32(b.Max.X, o.Max.X), max32(b.Max.Y, o.Max.Y), max32(b.Max.Z, o.Max.Z)},
	}
}

// Bounds computes the world-space AABB of the subtree. Rotation is
// ignored: station parts are axis-aligned and rotations in the builder
// are small cosmetic tilts; the validation heuristics only need rough
// envelopes. Returns false if the subtree contains no geometry.
func (n *Node) Bounds() (Bounds, bool) {
	return n.bounds(Vec3{}, One)
}

func (n *Node) bounds(origin, scale Vec3) (Bounds, bool) {
	pos := origin.Add(n.Pos.Mul(scale))
	sc := scale.Mul(n.Scale)

	var out Bounds
	ok := false

	if n.Kind == KindMesh && n.Geometry != nil {
		he := n.Geometry.HalfExtents().Mul(sc)
		centers := []Vec3{pos}
		if len(n.Instances) > 0 {
			centers = centers[:0]
			for _, inst := range n.Instances {
				centers = append(centers, pos.Add(inst.Mul(sc)))
			}
		}
		for _, c := range centers {
			b := Bounds{Min: c.Sub(he), Max: c.Add(he)}
			if !ok {
				out, ok = b, true
			} else {
				out = out.union(b)
			}
		}
	}

	for _, child := range n.Children {
		if cb, cok := child.bounds(pos, sc); cok {
			if !ok {
				out, ok = cb, true
			} else {
				out = out.union(cb)
			}
		}
	}
	return out, ok
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
