//go:build manifold

package manifold

import (
	"math"
	"testing"

	"github.com/apexpath/stationviz/pkg/kernel"
)

func mustNew(t *testing.T) kernel.Kernel {
	t.Helper()
	k, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return k
}

func TestBox(t *testing.T) {
	k := mustNew(t)
	s := k.Box(1.83, 0.04, 0.76)
	if s == nil {
		t.Fatal("Box() returned nil")
	}
	min, max := s.BoundingBox()

	// Box is centered, so bounds should be symmetric.
	wantMin := [3]float64{-0.915, -0.02, -0.38}
	wantMax := [3]float64{0.915, 0.02, 0.38}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("Box min[%d] = %f, want %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("Box max[%d] = %f, want %f", i, max[i], wantMax[i])
		}
	}
}

func TestCylinderAxis(t *testing.T) {
	k := mustNew(t)
	s := k.Cylinder(0.9, 0.03, 32)
	if s == nil {
		t.Fatal("Cylinder() returned nil")
	}
	min, max := s.BoundingBox()

	// Cylinders run along Y: height 0.9 on Y, radius 0.03 on X/Z.
	if min[1] < -0.451 || min[1] > -0.449 {
		t.Errorf("Cylinder min Y = %f, want ~-0.45", min[1])
	}
	if max[1] < 0.449 || max[1] > 0.451 {
		t.Errorf("Cylinder max Y = %f, want ~0.45", max[1])
	}

	// X/Z bounds within the radius (polygon inscribed in circle).
	for _, i := range []int{0, 2} {
		if min[i] > -0.027 {
			t.Errorf("Cylinder min[%d] = %f, want <= -0.027", i, min[i])
		}
		if max[i] < 0.027 {
			t.Errorf("Cylinder max[%d] = %f, want >= 0.027", i, max[i])
		}
	}
}

func TestUnion(t *testing.T) {
	k := mustNew(t)
	a := k.Box(0.5, 0.5, 0.5)
	b := k.Translate(k.Box(0.5, 0.5, 0.5), 0.3, 0, 0)
	u := k.Union(a, b)
	if u == nil {
		t.Fatal("Union() returned nil")
	}

	min, max := u.BoundingBox()
	if math.Abs(min[0]+0.25) > 1e-6 {
		t.Errorf("Union min X = %f, want -0.25", min[0])
	}
	if math.Abs(max[0]-0.55) > 1e-6 {
		t.Errorf("Union max X = %f, want 0.55", max[0])
	}
}

func TestTranslate(t *testing.T) {
	k := mustNew(t)
	box := k.Box(0.1, 0.1, 0.1)
	moved := k.Translate(box, 1, 2, 3)
	if moved == nil {
		t.Fatal("Translate() returned nil")
	}

	min, max := moved.BoundingBox()
	wantMin := [3]float64{0.95, 1.95, 2.95}
	wantMax := [3]float64{1.05, 2.05, 3.05}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("Translate min[%d] = %f, want %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("Translate max[%d] = %f, want %f", i, max[i], wantMax[i])
		}
	}
}

func TestToMesh(t *testing.T) {
	k := mustNew(t)
	box := k.Box(0.5, 0.5, 0.5)
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if mesh == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if mesh.IsEmpty() {
		t.Error("ToMesh() returned empty mesh for a box")
	}

	// A box has 8 vertices and 12 triangles. Manifold may produce more
	// vertices where sharp edges need separate normals, but never fewer.
	if mesh.TriangleCount() < 12 {
		t.Errorf("ToMesh() triangle count = %d, want >= 12", mesh.TriangleCount())
	}
	if mesh.VertexCount() < 8 {
		t.Errorf("ToMesh() vertex count = %d, want >= 8", mesh.VertexCount())
	}

	if len(mesh.Normals) != len(mesh.Vertices) {
		t.Errorf("ToMesh() normals length = %d, vertices length = %d, want equal",
			len(mesh.Normals), len(mesh.Vertices))
	}
}
