package scene

import (
	"math"
	"testing"
)

func almost(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestVecOps(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -2, 0.5}

	if got := a.Add(b); got != (Vec3{5, 0, 3.5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 4, 2.5}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Mul(b); got != (Vec3{4, -4, 1.5}) {
		t.Errorf("Mul = %v", got)
	}
	if got := (Vec3{3, 4, 0}).Length(); !almost(got, 5) {
		t.Errorf("Length = %f, expected 5", got)
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, -4, 2}
	tests := []struct {
		t    float32
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, -2, 1}},
	}
	for _, tt := range tests {
		got := Lerp(a, b, tt.t)
		if !almost(got.X, tt.want.X) || !almost(got.Y, tt.want.Y) || !almost(got.Z, tt.want.Z) {
			t.Errorf("Lerp(t=%f) = %v, expected %v", tt.t, got, tt.want)
		}
	}
}

func TestGeometryHalfExtents(t *testing.T) {
	box := NewBox(1.83, 0.04, 0.76)
	if he := box.HalfExtents(); !almost(he.X, 0.915) || !almost(he.Y, 0.02) || !almost(he.Z, 0.38) {
		t.Errorf("box half extents = %v", he)
	}

	cyl := NewCylinder(0.03, 0.9)
	if he := cyl.HalfExtents(); !almost(he.X, 0.03) || !almost(he.Y, 0.45) || !almost(he.Z, 0.03) {
		t.Errorf("cylinder half extents = %v", he)
	}
}

func TestGeometryDispose(t *testing.T) {
	g := NewBox(1, 1, 1)
	if g.Disposed() {
		t.Fatal("fresh geometry reports disposed")
	}
	g.Dispose()
	if !g.Disposed() {
		t.Fatal("Dispose did not mark geometry")
	}
}

func TestMaterialTransparent(t *testing.T) {
	opaque := &Material{Opacity: 1}
	if opaque.Transparent() {
		t.Error("opacity 1 reports transparent")
	}
	glass := &Material{Opacity: 0.3}
	if !glass.Transparent() {
		t.Error("opacity 0.3 reports opaque")
	}
}

func TestNodeChaining(t *testing.T) {
	n := NewMesh("m", NewBox(1, 1, 1), &Material{}).At(1, 2, 3).Rotated(0, 45, 0)
	if n.Pos != (Vec3{1, 2, 3}) {
		t.Errorf("Pos = %v", n.Pos)
	}
	if n.Rot != (Vec3{0, 45, 0}) {
		t.Errorf("Rot = %v", n.Rot)
	}
	if n.Scale != One {
		t.Errorf("Scale = %v, expected identity", n.Scale)
	}
}

func TestWalkDepthFirst(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	a.Add(NewGroup("a1"), NewGroup("a2"))
	b := NewGroup("b")
	root.Add(a, b)

	var order []string
	root.Walk(func(n *Node) { order = append(order, n.Name) })

	want := []string{"root", "a", "a1", "a2", "b"}
	if len(order) != len(want) {
		t.Fatalf("visited %d nodes, expected %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, expected %q", i, order[i], want[i])
		}
	}
}

func TestFindFirstMatch(t *testing.T) {
	root := NewGroup("root")
	first := NewGroup("dup")
	second := NewGroup("dup")
	root.Add(first, second)

	if got := root.Find("dup"); got != first {
		t.Error("Find did not return the first depth-first match")
	}
	if got := root.Find("absent"); got != nil {
		t.Errorf("Find(absent) = %v, expected nil", got)
	}
}

func TestMeshCount(t *testing.T) {
	root := NewGroup("root")
	inner := NewGroup("inner")
	inner.Add(NewMesh("m1", NewBox(1, 1, 1), nil))
	root.Add(inner, NewMesh("m2", NewCylinder(0.1, 1), nil))

	if got := root.MeshCount(); got != 2 {
		t.Errorf("MeshCount = %d, expected 2", got)
	}
}

func TestBoundsScaledChild(t *testing.T) {
	root := NewGroup("root")
	root.Scale = Vec3{2, 2, 2}
	child := NewMesh("cube", NewBox(1, 1, 1), nil).At(1, 0, 0)
	root.Add(child)

	b, ok := root.Bounds()
	if !ok {
		t.Fatal("no bounds for tree with geometry")
	}
	if !almost(b.Min.X, 1) || !almost(b.Max.X, 3) {
		t.Errorf("X bounds = [%f, %f], expected [1, 3]", b.Min.X, b.Max.X)
	}
	if !almost(b.Min.Y, -1) || !almost(b.Max.Y, 1) {
		t.Errorf("Y bounds = [%f, %f], expected [-1, 1]", b.Min.Y, b.Max.Y)
	}
}

func TestBoundsInstances(t *testing.T) {
	mesh := NewMesh("holes", NewBox(0.5, 0.5, 0.5), nil)
	mesh.Instances = []Vec3{{X: -1}, {X: 1}}

	b, ok := mesh.Bounds()
	if !ok {
		t.Fatal("no bounds for instanced mesh")
	}
	if !almost(b.Min.X, -1.25) || !almost(b.Max.X, 1.25) {
		t.Errorf("X bounds = [%f, %f], expected [-1.25, 1.25]", b.Min.X, b.Max.X)
	}
}

func TestBoundsEmptyTree(t *testing.T) {
	root := NewGroup("root")
	root.Add(NewGroup("empty"))
	if _, ok := root.Bounds(); ok {
		t.Error("geometry-free tree reports bounds")
	}
}

func TestBoundsCenter(t *testing.T) {
	b := Bounds{Min: Vec3{-1, 0, 2}, Max: Vec3{3, 4, 6}}
	if c := b.Center(); c != (Vec3{1, 2, 4}) {
		t.Errorf("Center = %v, expected {1 2 4}", c)
	}
}

func TestPaletteOwnership(t *testing.T) {
	p := NewPalette(PaletteColors{})
	mats := p.Materials()
	if len(mats) != 8 {
		t.Fatalf("palette has %d materials, expected 8", len(mats))
	}
	for _, m := range mats {
		if m.Owner != OwnerPalette {
			t.Errorf("material %q owner = %v, expected palette", m.Name, m.Owner)
		}
	}
	if !p.Schematic.Wireframe {
		t.Error("schematic material is not wireframe")
	}
	if !p.Schematic.Transparent() {
		t.Error("schematic material is not transparent")
	}
}

func TestPaletteColorOverride(t *testing.T) {
	p := NewPalette(PaletteColors{Metal: "#112233"})
	if p.Metal.Color != "#112233" {
		t.Errorf("metal color = %q, expected override", p.Metal.Color)
	}
	if p.Dark.Color == "" {
		t.Error("unset dark color did not fall back to a default")
	}
}

func TestPaletteDispose(t *testing.T) {
	p := NewPalette(PaletteColors{})
	p.Dispose()
	for _, m := range p.Materials() {
		if !m.Disposed() {
			t.Errorf("material %q not disposed", m.Name)
		}
	}
	// Second call must not panic or un-dispose anything.
	p.Dispose()
}
