// Package camera holds the viewer camera state: orbit position, named
// view presets, eased transitions and zoom clamping. Transitions are
// plain state advanced by the render loop's tick; starting a new one
// supersedes whatever was in flight, so exactly one interpolation ever
// writes the camera position.
package camera

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/apexpath/stationviz/pkg/scene"
)

// Orbit distance clamps, matching the frontend orbit control limits.
const (
	MinDistance float32 = 1.5
	MaxDistance float32 = 20
)

// TransitionDuration is how long a preset fly-to takes.
const TransitionDuration = 800 * time.Millisecond

// presets are the named camera positions. The target stays fixed on
// the station regardless of preset.
var presets = map[string]scene.Vec3{
	"front": {X: 0, Y: 2, Z: 6},
	"side":  {X: 6, Y: 2, Z: 0},
	"top":   {X: 0, Y: 8, Z: 0.1},
	"iso":   {X: 5, Y: 3, Z: 5},
}

// Preset returns the position of a named preset.
func Preset(name string) (scene.Vec3, bool) {
	p, ok := presets[name]
	return p, ok
}

// DefaultTarget is the fixed orbit target, mid-height on the station.
var DefaultTarget = scene.Vec3{X: 0, Y: 0.8, Z: 0}

// Camera is the current view state.
type Camera struct {
	Position scene.Vec3
	Target   scene.Vec3
	Aspect   float32
}

// New returns a camera at the iso preset aimed at the station.
func New() Camera {
	return Camera{
		Position: presets["iso"],
		Target:   DefaultTarget,
		Aspect:   16.0 / 9.0,
	}
}

// Distance returns the camera-to-target distance.
func (c *Camera) Distance() float32 {
	return c.Position.Sub(c.Target).Length()
}

// Zoom scales the camera-to-target distance by factor, clamped to the
// orbit limits. A factor below 1 moves in.
func (c *Camera) Zoom(factor float32) {
	offset := c.Position.Sub(c.Target)
	dist := offset.Length()
	if dist == 0 {
		return
	}
	next := dist * factor
	if next < MinDistance {
		next = MinDistance
	}
	if next > MaxDistance {
		next = MaxDistance
	}
	c.Position = c.Target.Add(offset.Scale(next / dist))
}

// Transition is one in-flight fly-to. At most one is authoritative at
// a time: the viewer replaces the current transition wholesale when a
// new preset is requested.
type Transition struct {
	from     scene.Vec3
	to       scene.Vec3
	start    time.Time
	duration time.Duration
}

// NewTransition captures the start position and time for a fly-to.
func NewTransition(from, to scene.Vec3, now time.Time) *Transition {
	return &Transition{from: from, to: to, start: now, duration: TransitionDuration}
}

// Position returns the eased camera position at now and whether the
// transition has completed. Progress is clamped to [0,1] and shaped by
// a cubic ease-out.
func (t *Transition) Position(now time.Time) (scene.Vec3, bool) {
	progress := float32(now.Sub(t.start)) / float32(t.duration)
	if progress <= 0 {
		return t.from, false
	}
	if progress >= 1 {
		return t.to, true
	}
	eased := 1 - math32.Pow(1-progress, 3)
	return scene.Lerp(t.from, t.to, eased), false
}
