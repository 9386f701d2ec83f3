package prism

import (
	"math"
	"testing"
)

func TestBoxexact(t *testing.T) {
	k := New()
	box := k.Box(1.83, 0.04, 0.76)
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("triangle count = %d, expected 12", mesh.TriangleCount())
	}
	if mesh.VertexCount() != 24 {
		t.Errorf("vertex count = %d, expected 24", mesh.VertexCount())
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}

	min, max := box.BoundingBox()
	expectMin := [3]float64{-0.915, -0.02, -0.38}
	expectMax := [3]float64{0.915, 0.02, 0.38}
	const tol = 1e-6
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestCylinderAxis(t *testing.T) {
	k := New()
	cyl := k.Cylinder(0.9, 0.03, 16)
	min, max := cyl.BoundingBox()

	// Cylinders run along Y: tall in Y, equal and small in X and Z.
	const tol = 0.001
	if y := max[1] - min[1]; math.Abs(y-0.9) > tol {
		t.Errorf("Y extent = %f, expected 0.9", y)
	}
	if x := max[0] - min[0]; math.Abs(x-0.06) > tol {
		t.Errorf("X extent = %f, expected 0.06", x)
	}
	if z := max[2] - min[2]; math.Abs(z-0.06) > tol {
		t.Errorf("Z extent = %f, expected 0.06", z)
	}
}

func TestCylinderCaps(t *testing.T) {
	k := New()
	const segments = 16
	cyl := k.Cylinder(0.5, 0.1, segments)
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	// Side wall: 2 triangles per segment. Caps: 1 per segment each.
	want := segments*2 + segments*2
	if mesh.TriangleCount() != want {
		t.Errorf("triangle count = %d, expected %d", mesh.TriangleCount(), want)
	}
}

func TestCylinderSegmentFallback(t *testing.T) {
	k := New()
	a := k.Cylinder(0.5, 0.1, 0)
	b := k.Cylinder(0.5, 0.1, defaultSegments)
	ma, _ := k.ToMesh(a)
	mb, _ := k.ToMesh(b)
	if ma.TriangleCount() != mb.TriangleCount() {
		t.Errorf("fallback triangle count = %d, expected %d", ma.TriangleCount(), mb.TriangleCount())
	}
}

func TestUnionOffsetsIndices(t *testing.T) {
	k := New()
	a := k.Box(0.5, 0.5, 0.5)
	b := k.Translate(k.Box(0.5, 0.5, 0.5), 0.3, 0, 0)
	u := k.Union(a, b)
	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.TriangleCount() != 24 {
		t.Errorf("union triangle count = %d, expected 24", mesh.TriangleCount())
	}
	// Second half of the index list must address the second mesh's
	// vertices, not alias the first.
	half := len(mesh.Indices) / 2
	for _, idx := range mesh.Indices[half:] {
		if idx < 24 {
			t.Fatalf("union index %d addresses the first solid's vertices", idx)
		}
	}

	min, max := u.BoundingBox()
	const tol = 1e-6
	if math.Abs(min[0]+0.25) > tol || math.Abs(max[0]-0.55) > tol {
		t.Errorf("union X bounds = [%f, %f], expected [-0.25, 0.55]", min[0], max[0])
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box := k.Box(0.1, 0.1, 0.1)
	translated := k.Translate(box, 1, 2, 3)

	min, max := translated.BoundingBox()

	const tol = 1e-6
	expectMin := [3]float64{0.95, 1.95, 2.95}
	expectMax := [3]float64{1.05, 2.05, 3.05}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}

	// The source solid is untouched.
	srcMin, _ := box.BoundingBox()
	if math.Abs(srcMin[0]+0.05) > tol {
		t.Errorf("source min X = %f after translate, expected -0.05", srcMin[0])
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Box(1.0, 0.1, 0.1)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	const tol = 0.001
	if x := max[0] - min[0]; math.Abs(x-0.1) > tol {
		t.Errorf("rotated X extent = %f, expected 0.1", x)
	}
	if y := max[1] - min[1]; math.Abs(y-1.0) > tol {
		t.Errorf("rotated Y extent = %f, expected 1.0", y)
	}
}

func TestToMeshCopies(t *testing.T) {
	k := New()
	box := k.Box(0.2, 0.2, 0.2)
	m1, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	m1.Vertices[0] = 99

	m2, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if m2.Vertices[0] == 99 {
		t.Error("ToMesh shares vertex storage between calls")
	}
}
