package viewer

import (
	"github.com/apexpath/stationviz/pkg/scene"
	"github.com/apexpath/stationviz/pkg/tessellate"
)

// ViewMode selects how the station is presented: full materials or a
// translucent wireframe schematic.
type ViewMode int

const (
	ModeRender ViewMode = iota
	ModeBlueprint
)

func (m ViewMode) String() string {
	if m == ModeBlueprint {
		return "blueprint"
	}
	return "render"
}

// ModeFromString maps a mode name to a ViewMode. Anything that is not
// "blueprint" is treated as render, so garbage input degrades to the
// default presentation rather than erroring.
func ModeFromString(s string) ViewMode {
	if s == "blueprint" {
		return ModeBlueprint
	}
	return ModeRender
}

// Background colors per mode. Render mode leaves the background empty
// so the frontend's own scene backdrop shows through.
const (
	BlueprintBackground = "#dce8f2"
	RenderBackground    = ""
)

// Background returns the scene background for the mode.
func (m ViewMode) Background() string {
	if m == ModeBlueprint {
		return BlueprintBackground
	}
	return RenderBackground
}

// applyMode swaps every mesh node's material for the mode: the shared
// schematic material in blueprint mode, the captured original in
// render mode. Nodes missing from the original map keep whatever they
// have, which can only happen for nodes added after capture.
func applyMode(root *scene.Node, mode ViewMode, original map[*scene.Node]*scene.Material, schematic *scene.Material) {
	root.Walk(func(n *scene.Node) {
		if n.Kind != scene.KindMesh {
			return
		}
		if mode == ModeBlueprint {
			n.Material = schematic
			return
		}
		if orig, ok := original[n]; ok {
			n.Material = orig
		}
	})
}

// refreshPartMaterials re-points cached part meshes at their nodes'
// current materials, so a mode switch can republish without
// re-tessellating. Tessellation emits one part per mesh node in walk
// order; the nodes line up 1:1 with the slice.
func refreshPartMaterials(root *scene.Node, parts []tessellate.PartMesh) {
	i := 0
	root.Walk(func(n *scene.Node) {
		if n.Kind != scene.KindMesh || i >= len(parts) {
			return
		}
		parts[i].Material = n.Material
		i++
	})
}
