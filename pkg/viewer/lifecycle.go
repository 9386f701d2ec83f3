package viewer

import (
	"github.com/apexpath/stationviz/pkg/assembly"
	"github.com/apexpath/stationviz/pkg/scene"
)

// release disposes every distinct geometry and every distinct
// assembly-owned material of an assembly, in a single traversal.
// Materials come from the captured original map rather than the live
// tree, so a station released while in blueprint mode still frees the
// materials hidden behind the schematic swap. Palette materials are
// shared across rebuilds and are never touched here. Resources already
// disposed are not double-counted, so the returned counts are exactly
// what this call freed.
func release(a *assembly.Assembly) (geometries, materials int) {
	if a == nil || a.Root == nil {
		return 0, 0
	}

	seenGeom := map[*scene.Geometry]struct{}{}
	seenMat := map[*scene.Material]struct{}{}

	disposeMat := func(m *scene.Material) {
		if m == nil || m.Owner != scene.OwnerAssembly {
			return
		}
		if _, ok := seenMat[m]; ok {
			return
		}
		seenMat[m] = struct{}{}
		if !m.Disposed() {
			m.Dispose()
			materials++
		}
	}

	a.Root.Walk(func(n *scene.Node) {
		if g := n.Geometry; g != nil {
			if _, ok := seenGeom[g]; !ok {
				seenGeom[g] = struct{}{}
				if !g.Disposed() {
					g.Dispose()
					geometries++
				}
			}
		}
		disposeMat(n.Material)
	})

	// Originals cover materials displaced by a mode swap.
	for _, m := range a.Original {
		disposeMat(m)
	}

	return geometries, materials
}
