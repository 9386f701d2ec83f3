package viewer

import (
	"context"
	"time"

	"github.com/apexpath/stationviz/pkg/config"
	"github.com/apexpath/stationviz/pkg/scene"
	"github.com/apexpath/stationviz/pkg/tessellate"
	"github.com/apexpath/stationviz/pkg/validate"
)

// Clock supplies the current time. The render loop and camera
// transitions go through it so tests can drive time directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SceneSnapshot is the full scene payload sent after a rebuild or a
// mode switch: the tessellated parts, the advisory warnings, and the
// configuration the station was built from.
type SceneSnapshot struct {
	Parts    []tessellate.PartMesh
	Warnings []validate.Warning
	Config   config.Station
}

// Frame is the per-tick view state: where the camera is, how the tree
// is spun, and how the mode wants the backdrop drawn.
type Frame struct {
	CameraPos    scene.Vec3
	CameraTarget scene.Vec3
	Aspect       float32
	Yaw          float32
	Background   string
	Mode         ViewMode
}

// Display receives scene updates and per-tick frames. The desktop
// shell implements this by emitting runtime events to the web
// frontend; tests implement it with a recorder.
type Display interface {
	SceneUpdate(SceneSnapshot)
	Present(Frame)
}

// Host reports the window the viewer renders into.
type Host interface {
	Size() (width, height int)
}

// DefaultTickInterval is the render loop period, about 60 fps.
const DefaultTickInterval = 16 * time.Millisecond

// Run drives the render loop until ctx is done. Each tick advances
// auto-rotation and any in-flight camera transition, then presents a
// frame. interval <= 0 uses DefaultTickInterval.
func (v *Viewer) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v.Step(v.clock.Now())
		}
	}
}

// Step advances one tick of viewer time: yaw rotation, camera
// transition interpolation, and a Present to the display. It is safe
// to call directly from tests instead of Run.
func (v *Viewer) Step(now time.Time) {
	v.mu.Lock()
	if v.disposed {
		v.mu.Unlock()
		return
	}

	if v.autoRotate {
		v.yaw += v.rotSpeed
	}

	if v.transition != nil {
		pos, done := v.transition.Position(now)
		v.cam.Position = pos
		if done {
			v.transition = nil
		}
	}

	frame := Frame{
		CameraPos:    v.cam.Position,
		CameraTarget: v.cam.Target,
		Aspect:       v.cam.Aspect,
		Yaw:          v.yaw,
		Background:   v.mode.Background(),
		Mode:         v.mode,
	}
	v.mu.Unlock()

	v.display.Present(frame)
}
