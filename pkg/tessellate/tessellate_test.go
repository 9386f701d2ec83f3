package tessellate

import (
	"math"
	"testing"

	"github.com/apexpath/stationviz/pkg/assembly"
	"github.com/apexpath/stationviz/pkg/config"
	"github.com/apexpath/stationviz/pkg/kernel"
	"github.com/apexpath/stationviz/pkg/kernel/prism"
	"github.com/apexpath/stationviz/pkg/scene"
)

// meshBounds computes the axis-aligned bounds of a mesh from its vertex array.
func meshBounds(m *kernel.Mesh) (min, max [3]float64) {
	min = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		for a := 0; a < 3; a++ {
			v := float64(m.Vertices[i+a])
			if v < min[a] {
				min[a] = v
			}
			if v > max[a] {
				max[a] = v
			}
		}
	}
	return min, max
}

func TestAssemblyNil(t *testing.T) {
	meshes, err := Assembly(nil, prism.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meshes != nil {
		t.Fatalf("expected nil meshes, got %d", len(meshes))
	}
}

func TestSingleBox(t *testing.T) {
	mat := &scene.Material{Name: "steel"}
	root := scene.NewGroup("root").Add(
		scene.NewMesh("slab", scene.NewBox(1.0, 0.2, 0.5), mat).At(1, 2, 3),
	)
	a := &assembly.Assembly{Root: root}

	meshes, err := Assembly(a, prism.New())
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	pm := meshes[0]
	if pm.Name != "slab" {
		t.Errorf("mesh name = %q, expected %q", pm.Name, "slab")
	}
	if pm.Mesh.PartName != "slab" {
		t.Errorf("mesh PartName = %q, expected %q", pm.Mesh.PartName, "slab")
	}
	if pm.Material != mat {
		t.Error("mesh material should be the node's material")
	}
	if pm.Mesh.TriangleCount() != 12 {
		t.Errorf("box triangle count = %d, expected 12", pm.Mesh.TriangleCount())
	}

	min, max := meshBounds(pm.Mesh)
	expectMin := [3]float64{0.5, 1.9, 2.75}
	expectMax := [3]float64{1.5, 2.1, 3.25}
	const tol = 1e-5
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestNestedTranslationAndScale(t *testing.T) {
	mat := &scene.Material{Name: "plastic"}
	inner := scene.NewMesh("cube", scene.NewBox(0.5, 0.5, 0.5), mat).At(0.5, 0, 0)
	group := scene.NewGroup("wing").At(1, 0, 0).Add(inner)
	group.Scale = scene.Vec3{X: 2, Y: 1, Z: 1}
	a := &assembly.Assembly{Root: scene.NewGroup("root").Add(group)}

	meshes, err := Assembly(a, prism.New())
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}

	// Child at local x=0.5 under a group scaled 2x and shifted to x=1
	// lands at world x=2, with its width scaled from 0.5 to 1.
	min, max := meshBounds(meshes[0].Mesh)
	const tol = 1e-5
	if math.Abs(min[0]-1.5) > tol || math.Abs(max[0]-2.5) > tol {
		t.Errorf("X bounds = [%f, %f], expected [1.5, 2.5]", min[0], max[0])
	}
	if math.Abs(max[1]-min[1]-0.5) > tol {
		t.Errorf("Y extent = %f, expected 0.5 (unscaled)", max[1]-min[1])
	}
}

func TestCylinderNode(t *testing.T) {
	mat := &scene.Material{Name: "steel"}
	root := scene.NewGroup("root").Add(
		scene.NewMesh("leg", scene.NewCylinder(0.03, 0.9), mat),
	)
	a := &assembly.Assembly{Root: root}

	meshes, err := Assembly(a, prism.New())
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}

	min, max := meshBounds(meshes[0].Mesh)
	const tol = 1e-5
	if y := max[1] - min[1]; math.Abs(y-0.9) > tol {
		t.Errorf("cylinder Y extent = %f, expected 0.9", y)
	}
	if x := max[0] - min[0]; math.Abs(x-0.06) > tol {
		t.Errorf("cylinder X extent = %f, expected 0.06", x)
	}
}

func TestInstanceOffsetsScaled(t *testing.T) {
	mat := &scene.Material{Name: "plastic"}
	holes := scene.NewMesh("holes", scene.NewCylinder(0.02, 0.005), mat)
	holes.Instances = []scene.Vec3{{X: 0.1}, {X: 0.2}}
	group := scene.NewGroup("panel").Add(holes)
	group.Scale = scene.Vec3{X: 2, Y: 1, Z: 1}
	a := &assembly.Assembly{Root: group}

	meshes, err := Assembly(a, prism.New())
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	pm := meshes[0]
	if len(pm.Instances) != 2 {
		t.Fatalf("expected 2 instance offsets, got %d", len(pm.Instances))
	}
	const tol = 1e-5
	if math.Abs(float64(pm.Instances[0].X)-0.2) > tol {
		t.Errorf("instance[0].X = %f, expected 0.2", pm.Instances[0].X)
	}
	if math.Abs(float64(pm.Instances[1].X)-0.4) > tol {
		t.Errorf("instance[1].X = %f, expected 0.4", pm.Instances[1].X)
	}
}

func TestFullStation(t *testing.T) {
	pal := scene.NewPalette(scene.PaletteColors{})
	defer pal.Dispose()
	asm := assembly.Build(config.Default(), pal)

	meshes, err := Assembly(asm, prism.New())
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}
	if len(meshes) != asm.Root.MeshCount() {
		t.Fatalf("mesh count %d != tree mesh count %d", len(meshes), asm.Root.MeshCount())
	}
	for _, pm := range meshes {
		if pm.Name == "" {
			t.Error("tessellated mesh missing a name")
		}
		if pm.Material == nil {
			t.Errorf("mesh %q missing a material", pm.Name)
		}
		if pm.Mesh.IsEmpty() {
			t.Errorf("mesh %q is empty", pm.Name)
		}
	}
}
