//go:build manifold

// Package manifold binds the Manifold C library (manifoldc) as an
// optional geometry backend. Manifold guarantees watertight boolean
// results, which matters when station meshes are handed to downstream
// CAM or 3MF tooling rather than the viewer.
//
// Requires libmanifoldc; build with -tags=manifold.
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/apexpath/stationviz/pkg/kernel"
)

var (
	_ kernel.Kernel = (*Backend)(nil)
	_ kernel.Solid  = (*solid)(nil)
)

// solid owns one C-side ManifoldManifold. The finalizer frees it when
// the Go wrapper is collected; station builds create thousands of
// short-lived solids per rebuild, so leaking them is not an option.
type solid struct {
	ptr *C.ManifoldManifold
}

func wrap(ptr *C.ManifoldManifold) *solid {
	s := &solid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *solid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

// BoundingBox returns the axis-aligned bounds of the solid.
func (s *solid) BoundingBox() (min, max [3]float64) {
	box := C.manifold_bounding_box(C.manifold_alloc_box(), s.ptr)
	defer C.manifold_delete_box(box)

	min = [3]float64{
		float64(C.manifold_box_min_x(box)),
		float64(C.manifold_box_min_y(box)),
		float64(C.manifold_box_min_z(box)),
	}
	max = [3]float64{
		float64(C.manifold_box_max_x(box)),
		float64(C.manifold_box_max_y(box)),
		float64(C.manifold_box_max_z(box)),
	}
	return min, max
}

// Backend implements kernel.Kernel on top of manifoldc.
type Backend struct{}

// New returns the manifold-backed kernel.
func New() (kernel.Kernel, error) {
	return &Backend{}, nil
}

// Box creates a box with the given full extents, centered at the origin.
func (b *Backend) Box(x, y, z float64) kernel.Solid {
	return wrap(C.manifold_cube(C.manifold_alloc_manifold(),
		C.double(x), C.double(y), C.double(z), C.int(1)))
}

// Cylinder creates a cylinder centered at the origin with its axis
// along Y. Manifold's native cylinders run along Z.
func (b *Backend) Cylinder(height, radius float64, segments int) kernel.Solid {
	zAxis := C.manifold_cylinder(C.manifold_alloc_manifold(),
		C.double(height),
		C.double(radius), C.double(radius), // no taper
		C.int(segments),
		C.int(1))
	upright := C.manifold_rotate(C.manifold_alloc_manifold(), zAxis,
		C.double(-90), C.double(0), C.double(0))
	C.manifold_delete_manifold(zAxis)
	return wrap(upright)
}

// Union returns the boolean union of two solids.
func (b *Backend) Union(a, o kernel.Solid) kernel.Solid {
	return wrap(C.manifold_union(C.manifold_alloc_manifold(),
		a.(*solid).ptr, o.(*solid).ptr))
}

// Translate moves a solid by (x, y, z).
func (b *Backend) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return wrap(C.manifold_translate(C.manifold_alloc_manifold(),
		s.(*solid).ptr, C.double(x), C.double(y), C.double(z)))
}

// Rotate rotates a solid by Euler angles in degrees about X, Y, Z.
func (b *Backend) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return wrap(C.manifold_rotate(C.manifold_alloc_manifold(),
		s.(*solid).ptr, C.double(x), C.double(y), C.double(z)))
}

// ToMesh extracts the triangle mesh in the kernel's flat-array layout.
// MeshGL interleaves per-vertex properties: position in slots 0..2,
// normals in slots 3..5 when present.
func (b *Backend) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	gl := C.manifold_get_meshgl(C.manifold_alloc_meshgl(), s.(*solid).ptr)
	defer C.manifold_delete_meshgl(gl)

	vertCount := int(C.manifold_meshgl_num_vert(gl))
	triCount := int(C.manifold_meshgl_num_tri(gl))
	if vertCount == 0 || triCount == 0 {
		return &kernel.Mesh{}, nil
	}

	propCount := int(C.manifold_meshgl_num_prop(gl))
	props := make([]float32, vertCount*propCount)
	C.manifold_meshgl_vert_properties((*C.float)(unsafe.Pointer(&props[0])), gl)

	indices := make([]uint32, triCount*3)
	C.manifold_meshgl_tri_verts((*C.uint32_t)(unsafe.Pointer(&indices[0])), gl)

	mesh := &kernel.Mesh{
		Vertices: make([]float32, vertCount*3),
		Indices:  indices,
	}
	hasNormals := propCount >= 6
	if hasNormals {
		mesh.Normals = make([]float32, vertCount*3)
	}
	for i := 0; i < vertCount; i++ {
		copy(mesh.Vertices[i*3:i*3+3], props[i*propCount:i*propCount+3])
		if hasNormals {
			copy(mesh.Normals[i*3:i*3+3], props[i*propCount+3:i*propCount+6])
		}
	}
	if !hasNormals {
		mesh.Normals = averagedNormals(mesh.Vertices, indices)
	}

	if mesh.VertexCount() != vertCount {
		return nil, fmt.Errorf("manifold: vertex count mismatch: got %d, expected %d",
			mesh.VertexCount(), vertCount)
	}
	return mesh, nil
}

// averagedNormals derives per-vertex normals by accumulating the
// unnormalized face normal of every incident triangle, then
// normalizing. Used when MeshGL carries positions only.
func averagedNormals(vertices []float32, indices []uint32) []float32 {
	normals := make([]float32, len(vertices))

	at := func(i uint32) [3]float64 {
		return [3]float64{
			float64(vertices[i*3]),
			float64(vertices[i*3+1]),
			float64(vertices[i*3+2]),
		}
	}

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		a, b, c := at(i0), at(i1), at(i2)

		var e1, e2 [3]float64
		for k := 0; k < 3; k++ {
			e1[k] = b[k] - a[k]
			e2[k] = c[k] - a[k]
		}
		n := [3]float32{
			float32(e1[1]*e2[2] - e1[2]*e2[1]),
			float32(e1[2]*e2[0] - e1[0]*e2[2]),
			float32(e1[0]*e2[1] - e1[1]*e2[0]),
		}
		for _, idx := range [3]uint32{i0, i1, i2} {
			normals[idx*3] += n[0]
			normals[idx*3+1] += n[1]
			normals[idx*3+2] += n[2]
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		x, y, z := float64(normals[i]), float64(normals[i+1]), float64(normals[i+2])
		length := math.Sqrt(x*x + y*y + z*z)
		if length > 1e-12 {
			normals[i] = float32(x / length)
			normals[i+1] = float32(y / length)
			normals[i+2] = float32(z / length)
		}
	}
	return normals
}
