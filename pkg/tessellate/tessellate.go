// Package tessellate walks an assembled station tree and produces
// triangle meshes using a geometry kernel. One mesh is produced per
// mesh node, paired with the node's material and instance offsets so
// the frontend can render repeated geometry without duplicating it.
package tessellate

import (
	"fmt"

	"github.com/apexpath/stationviz/pkg/assembly"
	"github.com/apexpath/stationviz/pkg/kernel"
	"github.com/apexpath/stationviz/pkg/scene"
)

// PartMesh is a tessellated mesh node: the triangle mesh in world
// space plus the appearance data needed to draw it.
type PartMesh struct {
	Name      string
	Mesh      *kernel.Mesh
	Material  *scene.Material
	Instances []scene.Vec3
}

// transformStack accumulates spatial transforms during tree traversal.
type transformStack struct {
	translations []scene.Vec3
	scales       []scene.Vec3
}

func newTransformStack() *transformStack {
	return &transformStack{}
}

func (ts *transformStack) push(pos, scale scene.Vec3) {
	ts.translations = append(ts.translations, pos)
	ts.scales = append(ts.scales, scale)
}

func (ts *transformStack) pop() {
	if len(ts.translations) > 0 {
		ts.translations = ts.translations[:len(ts.translations)-1]
	}
	if len(ts.scales) > 0 {
		ts.scales = ts.scales[:len(ts.scales)-1]
	}
}

// worldPosition maps a local point through the accumulated transforms,
// applying scale before translation at each level, outermost first.
func (ts *transformStack) worldPosition(local scene.Vec3) scene.Vec3 {
	p := local
	for i := len(ts.translations) - 1; i >= 0; i-- {
		p = p.Mul(ts.scales[i]).Add(ts.translations[i])
	}
	return p
}

// worldScale returns the componentwise product of all scales on the stack.
func (ts *transformStack) worldScale() scene.Vec3 {
	s := scene.One
	for _, sc := range ts.scales {
		s = s.Mul(sc)
	}
	return s
}

// Assembly tessellates every mesh node of an assembled station.
// It is read-only and never mutates the tree.
func Assembly(a *assembly.Assembly, k kernel.Kernel) ([]PartMesh, error) {
	if a == nil || a.Root == nil {
		return nil, nil
	}

	ts := newTransformStack()
	meshes, err := walkNode(a.Root, k, ts)
	if err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}
	return meshes, nil
}

// walkNode recursively traverses a node and its children, collecting meshes.
func walkNode(n *scene.Node, k kernel.Kernel, ts *transformStack) ([]PartMesh, error) {
	if n == nil {
		return nil, nil
	}

	ts.push(n.Pos, n.Scale)
	defer ts.pop()

	var out []PartMesh

	if n.Kind == scene.KindMesh && n.Geometry != nil {
		pm, err := meshNode(n, k, ts)
		if err != nil {
			return nil, err
		}
		out = append(out, pm)
	}

	for _, child := range n.Children {
		collected, err := walkNode(child, k, ts)
		if err != nil {
			return nil, err
		}
		out = append(out, collected...)
	}

	return out, nil
}

// meshNode tessellates a single mesh node in world space.
func meshNode(n *scene.Node, k kernel.Kernel, ts *transformStack) (PartMesh, error) {
	ws := ts.worldScale()

	var solid kernel.Solid
	switch n.Geometry.Kind {
	case scene.GeomBox:
		solid = k.Box(
			float64(n.Geometry.W*ws.X),
			float64(n.Geometry.H*ws.Y),
			float64(n.Geometry.D*ws.Z),
		)
	case scene.GeomCylinder:
		solid = k.Cylinder(
			float64(n.Geometry.H*ws.Y),
			float64(n.Geometry.R*ws.X),
			24,
		)
	default:
		return PartMesh{}, fmt.Errorf("node %q has unsupported geometry kind %v", n.Name, n.Geometry.Kind)
	}

	if n.Rot.X != 0 || n.Rot.Y != 0 || n.Rot.Z != 0 {
		solid = k.Rotate(solid, float64(n.Rot.X), float64(n.Rot.Y), float64(n.Rot.Z))
	}

	// The node's own Pos is already on the stack, so the world position
	// of the node origin is the mapping of the local origin.
	world := ts.worldPosition(scene.Vec3{})
	if world.X != 0 || world.Y != 0 || world.Z != 0 {
		solid = k.Translate(solid, float64(world.X), float64(world.Y), float64(world.Z))
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return PartMesh{}, fmt.Errorf("ToMesh failed for node %q: %w", n.Name, err)
	}
	mesh.PartName = n.Name

	pm := PartMesh{Name: n.Name, Mesh: mesh, Material: n.Material}
	if len(n.Instances) > 0 {
		// Instance offsets are local to the node, so scale them into
		// world units without re-adding the node's world position.
		pm.Instances = make([]scene.Vec3, len(n.Instances))
		for i, off := range n.Instances {
			pm.Instances[i] = off.Mul(ws)
		}
	}
	return pm, nil
}
