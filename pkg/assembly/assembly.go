package assembly

import (
	"github.com/apexpath/stationviz/pkg/config"
	"github.com/apexpath/stationviz/pkg/scene"
)

// RootName is the name of the assembly root node.
const RootName = "grossingStation"

// Canonical 72-inch layout, in meters. Every horizontal dimension
// scales by config.Station.WidthScale(); heights and depths are fixed
// across the product line.
const (
	TableWidth     = 1.83 // X extent of the 72" work surface
	TableDepth     = 0.76 // Z extent
	WorkHeight     = 0.92 // Y of the work surface
	topThickness   = 0.04
	hoodHeight     = 1.05 // canopy Y offset above the work surface
	sinkOffsetSpan = 0.55 // |X| of the left/right sink offsets, pre-scale
)

// Assembly is the full procedurally built tree for one configuration,
// with the typed part lookup and the original-material map captured at
// build time. It is owned by the viewer for exactly one configuration
// period and torn down in full on the next rebuild.
type Assembly struct {
	Root *scene.Node

	// Parts maps the closed part enumeration to the named top-level
	// sub-assembly nodes actually built. Disabled features have no
	// entry.
	Parts map[Part]*scene.Node

	// Original records, per mesh node, the material it held at build
	// time. The render-mode machinery restores from this map after a
	// blueprint excursion. Discarded and rebuilt with each assembly.
	Original map[*scene.Node]*scene.Material

	// WidthScale is the factor the whole layout was scaled by.
	WidthScale float32

	// Config is the normalized configuration this tree was built from.
	Config config.Station
}

// Find returns the node with the given name, or nil. This is the
// string-lookup surface external collaborators use; internal code
// prefers the typed Parts map.
func (a *Assembly) Find(name string) *scene.Node {
	return a.Root.Find(name)
}

// OwnedResources counts the distinct geometries and assembly-owned
// materials in the tree. Palette materials are excluded; they are not
// this assembly's to dispose.
func (a *Assembly) OwnedResources() (geometries, materials int) {
	geoms := map[*scene.Geometry]struct{}{}
	mats := map[*scene.Material]struct{}{}
	a.Root.Walk(func(n *scene.Node) {
		if n.Geometry != nil {
			geoms[n.Geometry] = struct{}{}
		}
		if n.Material != nil && n.Material.Owner == scene.OwnerAssembly {
			mats[n.Material] = struct{}{}
		}
	})
	return len(geoms), len(mats)
}

// captureOriginals records the build-time material of every mesh node.
func (a *Assembly) captureOriginals() {
	a.Original = make(map[*scene.Node]*scene.Material)
	a.Root.Walk(func(n *scene.Node) {
		if n.Kind == scene.KindMesh {
			a.Original[n] = n.Material
		}
	})
}
