package main

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/apexpath/stationviz/pkg/config"
	"github.com/apexpath/stationviz/pkg/viewer"
)

// Event names for the frontend. Scene updates carry full geometry and
// arrive on rebuilds; frames carry only view state and arrive per tick.
const (
	eventScene = "stationviz:scene"
	eventFrame = "stationviz:frame"
)

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices  []float32    `json:"vertices"`
	Normals   []float32    `json:"normals"`
	Indices   []uint32     `json:"indices"`
	PartName  string       `json:"partName"`
	Color     string       `json:"color"`
	Emissive  string       `json:"emissive,omitempty"`
	Metalness float32      `json:"metalness"`
	Roughness float32      `json:"roughness"`
	Opacity   float32      `json:"opacity"`
	Wireframe bool         `json:"wireframe"`
	Instances [][3]float32 `json:"instances,omitempty"`
}

// WarningData is a JSON-serializable validation warning.
type WarningData struct {
	Part    string `json:"part"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScenePayload is the full scene sent on each rebuild.
type ScenePayload struct {
	Meshes   []MeshData     `json:"meshes"`
	Warnings []WarningData  `json:"warnings"`
	Config   config.Station `json:"config"`
}

// FramePayload is the per-tick view state.
type FramePayload struct {
	CameraPos    [3]float32 `json:"cameraPos"`
	CameraTarget [3]float32 `json:"cameraTarget"`
	Aspect       float32    `json:"aspect"`
	Yaw          float32    `json:"yaw"`
	Background   string     `json:"background"`
	Mode         string     `json:"mode"`
}

// wailsDisplay bridges viewer output to Wails runtime events.
type wailsDisplay struct {
	ctx context.Context
}

func (d *wailsDisplay) SceneUpdate(s viewer.SceneSnapshot) {
	payload := ScenePayload{
		Meshes:   make([]MeshData, 0, len(s.Parts)),
		Warnings: make([]WarningData, 0, len(s.Warnings)),
		Config:   s.Config,
	}
	for _, pm := range s.Parts {
		md := MeshData{
			Vertices: pm.Mesh.Vertices,
			Normals:  pm.Mesh.Normals,
			Indices:  pm.Mesh.Indices,
			PartName: pm.Name,
		}
		if m := pm.Material; m != nil {
			md.Color = m.Color
			md.Emissive = m.Emissive
			md.Metalness = m.Metalness
			md.Roughness = m.Roughness
			md.Opacity = m.Opacity
			md.Wireframe = m.Wireframe
		}
		for _, off := range pm.Instances {
			md.Instances = append(md.Instances, [3]float32{off.X, off.Y, off.Z})
		}
		payload.Meshes = append(payload.Meshes, md)
	}
	for _, w := range s.Warnings {
		payload.Warnings = append(payload.Warnings, WarningData{
			Part:    w.Part,
			Code:    w.Code,
			Message: w.Message,
		})
	}
	runtime.EventsEmit(d.ctx, eventScene, payload)
}

func (d *wailsDisplay) Present(f viewer.Frame) {
	runtime.EventsEmit(d.ctx, eventFrame, FramePayload{
		CameraPos:    [3]float32{f.CameraPos.X, f.CameraPos.Y, f.CameraPos.Z},
		CameraTarget: [3]float32{f.CameraTarget.X, f.CameraTarget.Y, f.CameraTarget.Z},
		Aspect:       f.Aspect,
		Yaw:          f.Yaw,
		Background:   f.Background,
		Mode:         f.Mode.String(),
	})
}

// wailsHost reports the native window size.
type wailsHost struct {
	ctx context.Context
}

func (h *wailsHost) Size() (int, int) {
	return runtime.WindowGetSize(h.ctx)
}
