// Package prism implements kernel.Kernel with direct analytic meshing
// of boxes and cylinders. The station is built from prismatic solids,
// so exact vertex generation is both faster and cleaner than marching
// cubes; the sdfx backend remains available where watertight SDF
// output matters.
//
// Solids are centered at the origin; placement happens via Translate.
package prism

import (
	"math"

	"github.com/apexpath/stationviz/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Prism)(nil)

// defaultSegments is the circle resolution for cylinders.
const defaultSegments = 24

// prismSolid carries a baked mesh; transforms are applied eagerly and
// solids are immutable, so sharing is safe.
type prismSolid struct {
	mesh *kernel.Mesh
}

// BoundingBox returns the axis-aligned bounding box of the baked mesh.
func (s *prismSolid) BoundingBox() (min, max [3]float64) {
	v := s.mesh.Vertices
	if len(v) == 0 {
		return
	}
	min = [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
	max = min
	for i := 0; i+2 < len(v); i += 3 {
		for a := 0; a < 3; a++ {
			val := float64(v[i+a])
			if val < min[a] {
				min[a] = val
			}
			if val > max[a] {
				max[a] = val
			}
		}
	}
	return min, max
}

// Prism implements kernel.Kernel.
type Prism struct{}

// New returns a new analytic kernel.
func New() *Prism {
	return &Prism{}
}

// Box creates a box centered at the origin with the given full extents.
func (p *Prism) Box(x, y, z float64) kernel.Solid {
	hx, hy, hz := float32(x/2), float32(y/2), float32(z/2)
	m := &kernel.Mesh{}

	// face: 4 corners counter-clockwise seen from outside, one normal.
	face := func(corners [4][3]float32, n [3]float32) {
		base := uint32(m.VertexCount())
		for _, c := range corners {
			m.Vertices = append(m.Vertices, c[0], c[1], c[2])
			m.Normals = append(m.Normals, n[0], n[1], n[2])
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	face([4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}, [3]float32{0, 0, 1})    // front
	face([4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}, [3]float32{0, 0, -1}) // back
	face([4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}, [3]float32{1, 0, 0})    // right
	face([4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}, [3]float32{-1, 0, 0}) // left
	face([4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}, [3]float32{0, 1, 0})    // top
	face([4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}, [3]float32{0, -1, 0}) // bottom

	return &prismSolid{mesh: m}
}

// Cylinder creates a Y-axis cylinder centered at the origin.
func (p *Prism) Cylinder(height, radius float64, segments int) kernel.Solid {
	if segments <= 2 {
		segments = defaultSegments
	}
	hy := float32(height / 2)
	r := float32(radius)
	m := &kernel.Mesh{}

	// Side wall with smooth normals.
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		c, s := float32(math.Cos(a)), float32(math.Sin(a))
		m.Vertices = append(m.Vertices, r*c, -hy, r*s, r*c, hy, r*s)
		m.Normals = append(m.Normals, c, 0, s, c, 0, s)
	}
	for i := 0; i < segments; i++ {
		base := uint32(2 * i)
		m.Indices = append(m.Indices,
			base, base+2, base+1,
			base+1, base+2, base+3)
	}

	// Caps as triangle fans.
	for _, end := range []struct {
		y  float32
		ny float32
	}{{hy, 1}, {-hy, -1}} {
		center := uint32(m.VertexCount())
		m.Vertices = append(m.Vertices, 0, end.y, 0)
		m.Normals = append(m.Normals, 0, end.ny, 0)
		ring := uint32(m.VertexCount())
		for i := 0; i <= segments; i++ {
			a := 2 * math.Pi * float64(i) / float64(segments)
			c, s := float32(math.Cos(a)), float32(math.Sin(a))
			m.Vertices = append(m.Vertices, r*c, end.y, r*s)
			m.Normals = append(m.Normals, 0, end.ny, 0)
		}
		for i := 0; i < segments; i++ {
			a, b := ring+uint32(i), ring+uint32(i)+1
			if end.ny > 0 {
				m.Indices = append(m.Indices, center, b, a)
			} else {
				m.Indices = append(m.Indices, center, a, b)
			}
		}
	}

	return &prismSolid{mesh: m}
}

// Union concatenates two solids into one renderable solid. Overlap is
// left as-is: for rendering, coincident interior faces are harmless.
func (p *Prism) Union(a, b kernel.Solid) kernel.Solid {
	ma := a.(*prismSolid).mesh
	mb := b.(*prismSolid).mesh
	out := &kernel.Mesh{
		Vertices: append(append([]float32{}, ma.Vertices...), mb.Vertices...),
		Normals:  append(append([]float32{}, ma.Normals...), mb.Normals...),
	}
	out.Indices = append([]uint32{}, ma.Indices...)
	offset := uint32(ma.VertexCount())
	for _, idx := range mb.Indices {
		out.Indices = append(out.Indices, idx+offset)
	}
	return &prismSolid{mesh: out}
}

// Translate moves a solid by (x, y, z).
func (p *Prism) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	src := s.(*prismSolid).mesh
	out := &kernel.Mesh{
		Vertices: make([]float32, len(src.Vertices)),
		Normals:  append([]float32{}, src.Normals...),
		Indices:  append([]uint32{}, src.Indices...),
	}
	dx, dy, dz := float32(x), float32(y), float32(z)
	for i := 0; i+2 < len(src.Vertices); i += 3 {
		out.Vertices[i] = src.Vertices[i] + dx
		out.Vertices[i+1] = src.Vertices[i+1] + dy
		out.Vertices[i+2] = src.Vertices[i+2] + dz
	}
	return &prismSolid{mesh: out}
}

// Rotate rotates a solid by Euler angles (degrees), X then Y then Z,
// matching the sdfx backend's composition order.
func (p *Prism) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	src := s.(*prismSolid).mesh
	rx, ry, rz := x*math.Pi/180, y*math.Pi/180, z*math.Pi/180

	rot := compose(rotZ(rz), compose(rotY(ry), rotX(rx)))

	out := &kernel.Mesh{
		Vertices: make([]float32, len(src.Vertices)),
		Normals:  make([]float32, len(src.Normals)),
		Indices:  append([]uint32{}, src.Indices...),
	}
	apply(rot, src.Vertices, out.Vertices)
	apply(rot, src.Normals, out.Normals)
	return &prismSolid{mesh: out}
}

// mat3 is a row-major 3x3 rotation matrix.
type mat3 [9]float64

func rotX(a float64) mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

func rotY(a float64) mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func rotZ(a float64) mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

func compose(a, b mat3) mat3 {
	var out mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			for k := 0; k < 3; k++ {
				out[r*3+c] += a[r*3+k] * b[k*3+c]
			}
		}
	}
	return out
}

func apply(m mat3, src, dst []float32) {
	for i := 0; i+2 < len(src); i += 3 {
		x, y, z := float64(src[i]), float64(src[i+1]), float64(src[i+2])
		dst[i] = float32(m[0]*x + m[1]*y + m[2]*z)
		dst[i+1] = float32(m[3]*x + m[4]*y + m[5]*z)
		dst[i+2] = float32(m[6]*x + m[7]*y + m[8]*z)
	}
}

// ToMesh returns the baked mesh.
func (p *Prism) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	src := s.(*prismSolid).mesh
	return &kernel.Mesh{
		Vertices: append([]float32{}, src.Vertices...),
		Normals:  append([]float32{}, src.Normals...),
		Indices:  append([]uint32{}, src.Indices...),
	}, nil
}
