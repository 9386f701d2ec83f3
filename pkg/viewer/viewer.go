// Package viewer owns the interactive station view: it rebuilds the
// assembly when the configuration changes, swaps materials for the
// render/blueprint modes, runs the camera and the render loop, and
// accounts for every geometry and material it allocates. The frontend
// is a thin shell; all view state lives here.
package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/apexpath/stationviz/pkg/assembly"
	"github.com/apexpath/stationviz/pkg/camera"
	"github.com/apexpath/stationviz/pkg/config"
	"github.com/apexpath/stationviz/pkg/kernel"
	"github.com/apexpath/stationviz/pkg/kernel/prism"
	"github.com/apexpath/stationviz/pkg/scene"
	"github.com/apexpath/stationviz/pkg/settings"
	"github.com/apexpath/stationviz/pkg/tessellate"
	"github.com/apexpath/stationviz/pkg/validate"
)

// Viewer holds all view state for one station window.
type Viewer struct {
	display Display
	host    Host
	log     *slog.Logger
	kern    kernel.Kernel
	clock   Clock

	mu         sync.Mutex
	palette    *scene.Palette
	cfg        config.Station
	asm        *assembly.Assembly
	parts      []tessellate.PartMesh
	warnings   []validate.Warning
	mode       ViewMode
	cam        camera.Camera
	transition *camera.Transition
	autoRotate bool
	yaw        float32
	rotSpeed   float32
	tol        validate.Tolerances
	disposed   bool
}

// Option configures a Viewer at construction.
type Option func(*Viewer)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) { v.log = l }
}

// WithSettings applies a decoded theme: palette colors, validation
// tolerances and auto-rotate speed.
func WithSettings(s settings.Settings) Option {
	return func(v *Viewer) {
		v.palette = scene.NewPalette(s.PaletteColors())
		v.tol = s.Tolerances()
		v.rotSpeed = s.AutoRotateSpeed()
	}
}

// WithKernel overrides the geometry kernel. Defaults to the analytic
// prism backend.
func WithKernel(k kernel.Kernel) Option {
	return func(v *Viewer) { v.kern = k }
}

// WithClock overrides the time source, for tests.
func WithClock(c Clock) Option {
	return func(v *Viewer) { v.clock = c }
}

// New constructs a viewer, builds the default station, and publishes
// the initial scene. A nil display or host is a construction error;
// everything downstream assumes both exist.
func New(display Display, host Host, opts ...Option) (*Viewer, error) {
	if display == nil {
		return nil, errors.New("viewer: display is required")
	}
	if host == nil {
		return nil, errors.New("viewer: host is required")
	}

	v := &Viewer{
		display:  display,
		host:     host,
		cfg:      config.Default(),
		mode:     ModeRender,
		cam:      camera.New(),
		rotSpeed: settings.DefaultAutoRotateSpeed,
		tol:      validate.Defaults(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.log == nil {
		v.log = slog.Default()
	}
	if v.kern == nil {
		v.kern = prism.New()
	}
	if v.clock == nil {
		v.clock = systemClock{}
	}
	if v.palette == nil {
		v.palette = scene.NewPalette(scene.PaletteColors{})
	}

	v.OnResize()

	if err := v.rebuild(); err != nil {
		return nil, fmt.Errorf("viewer: initial build: %w", err)
	}
	return v, nil
}

// Config returns the active station configuration.
func (v *Viewer) Config() config.Station {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cfg
}

// Mode returns the active view mode.
func (v *Viewer) Mode() ViewMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Update applies a configuration patch and rebuilds the station. The
// previous assembly's resources are released after the new one is
// built, so a failed rebuild leaves the old scene intact.
func (v *Viewer) Update(p config.Patch) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return errors.New("viewer: disposed")
	}
	v.cfg = config.Apply(v.cfg, p)
	return v.rebuildLocked()
}

func (v *Viewer) rebuild() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rebuildLocked()
}

// rebuildLocked builds a fresh assembly from v.cfg, swaps it in,
// releases the old one, and publishes the scene. Callers hold v.mu.
func (v *Viewer) rebuildLocked() error {
	next := assembly.Build(v.cfg, v.palette)
	applyMode(next.Root, v.mode, next.Original, v.palette.Schematic)

	parts, err := tessellate.Assembly(next, v.kern)
	if err != nil {
		release(next)
		return fmt.Errorf("tessellate: %w", err)
	}

	old := v.asm
	v.asm = next

	if old != nil {
		geoms, mats := release(old)
		v.log.Debug("released station resources",
			"geometries", geoms, "materials", mats)
	}

	warnings := validate.Check(v.asm, v.tol)
	for _, w := range warnings {
		v.log.Warn("station validation", "part", w.Part, "code", w.Code, "detail", w.Message)
	}

	v.parts = parts
	v.warnings = warnings
	v.publishLocked()
	return nil
}

// publishLocked sends the cached scene to the display. Callers hold
// v.mu.
func (v *Viewer) publishLocked() {
	v.display.SceneUpdate(SceneSnapshot{
		Parts:    v.parts,
		Warnings: v.warnings,
		Config:   v.cfg,
	})
}

// SetViewMode switches between render and blueprint presentation and
// publishes the re-skinned scene. Setting the current mode is a no-op.
func (v *Viewer) SetViewMode(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}
	mode := ModeFromString(name)
	if mode == v.mode {
		return
	}
	v.mode = mode
	if v.asm == nil {
		return
	}
	applyMode(v.asm.Root, v.mode, v.asm.Original, v.palette.Schematic)
	refreshPartMaterials(v.asm.Root, v.parts)
	v.publishLocked()
}

// SetView starts an eased fly-to toward a named camera preset. An
// unknown name is ignored. A new request supersedes any transition
// still in flight, starting from wherever the camera is now.
func (v *Viewer) SetView(name string) {
	target, ok := camera.Preset(name)
	if !ok {
		v.log.Debug("unknown view preset", "name", name)
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}
	v.transition = camera.NewTransition(v.cam.Position, target, v.clock.Now())
}

// ZoomIn moves the camera toward the target by one step.
func (v *Viewer) ZoomIn() { v.zoom(0.85) }

// ZoomOut moves the camera away from the target by one step.
func (v *Viewer) ZoomOut() { v.zoom(1.15) }

func (v *Viewer) zoom(factor float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}
	// Manual zoom takes over from any fly-to in progress.
	v.transition = nil
	v.cam.Zoom(factor)
}

// ToggleAutoRotate flips turntable rotation and reports the new state.
func (v *Viewer) ToggleAutoRotate() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.autoRotate = !v.autoRotate
	return v.autoRotate
}

// OnResize re-reads the host window size and updates the camera aspect.
func (v *Viewer) OnResize() {
	w, h := v.host.Size()
	if w <= 0 || h <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cam.Aspect = float32(w) / float32(h)
}

// Dispose releases the current assembly and the palette. The viewer is
// unusable afterwards; lifecycle methods become no-ops.
func (v *Viewer) Dispose() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}
	v.disposed = true
	if v.asm != nil {
		geoms, mats := release(v.asm)
		v.log.Debug("released station resources", "geometries", geoms, "materials", mats)
		v.asm = nil
	}
	v.parts = nil
	v.warnings = nil
	v.palette.Dispose()
}
