package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/apexpath/stationviz/pkg/config"
	"github.com/apexpath/stationviz/pkg/engine"
	"github.com/apexpath/stationviz/pkg/settings"
	"github.com/apexpath/stationviz/pkg/viewer"
)

// settingsEnv names the environment variable pointing at an optional
// HCL theme file.
const settingsEnv = "STATIONVIZ_SETTINGS"

// App is the Wails backend. It exposes methods to the frontend via
// bindings and forwards everything to the viewer.
type App struct {
	ctx    context.Context
	log    *slog.Logger
	engine *engine.Engine
	viewer *viewer.Viewer
	cancel context.CancelFunc
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// PresetResult is returned from preset evaluation. On success Errors
// is empty and the scene event carries the rebuilt station.
type PresetResult struct {
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates a new App. The viewer is constructed in startup once
// the Wails context exists.
func NewApp() *App {
	return &App{
		log:    slog.New(slog.NewTextHandler(os.Stderr, nil)),
		engine: engine.NewEngine(),
	}
}

// startup is called by Wails on app startup. It loads settings, builds
// the viewer against the Wails display, and starts the render loop.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	s := settings.Default()
	if path := os.Getenv(settingsEnv); path != "" {
		loaded, err := settings.Load(path)
		if err != nil {
			a.log.Error("settings load failed", "path", path, "error", err)
			os.Exit(1)
		}
		s = loaded
	}

	v, err := viewer.New(
		&wailsDisplay{ctx: ctx},
		&wailsHost{ctx: ctx},
		viewer.WithLogger(a.log),
		viewer.WithSettings(s),
	)
	if err != nil {
		a.log.Error("viewer construction failed", "error", err)
		os.Exit(1)
	}
	a.viewer = v

	loopCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	go v.Run(loopCtx, viewer.DefaultTickInterval)
}

// shutdown stops the render loop and releases viewer resources.
func (a *App) shutdown(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
	if a.viewer != nil {
		a.viewer.Dispose()
	}
}

// UpdateConfig applies a partial configuration from the frontend as a
// JSON object and rebuilds the station. Unknown keys and malformed
// values are tolerated; the patch decoder drops them.
func (a *App) UpdateConfig(data string) error {
	return a.viewer.Update(config.PatchFromJSON([]byte(data)))
}

// Config returns the active station configuration.
func (a *App) Config() config.Station {
	return a.viewer.Config()
}

// EvaluatePreset runs a preset script and applies the resulting patch.
// Script errors come back in the result; they never crash the app.
func (a *App) EvaluatePreset(source string) PresetResult {
	result := PresetResult{Errors: []EvalErrorData{}}

	patch, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, superseded).
		a.log.Error("preset evaluation failed", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	if err := a.viewer.Update(patch); err != nil {
		a.log.Error("preset apply failed", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
	}
	return result
}

// SetView flies the camera to a named preset: front, side, top or iso.
func (a *App) SetView(name string) {
	a.viewer.SetView(name)
}

// SetViewMode switches between "render" and "blueprint".
func (a *App) SetViewMode(name string) {
	a.viewer.SetViewMode(name)
}

// ZoomIn moves the camera toward the station.
func (a *App) ZoomIn() {
	a.viewer.ZoomIn()
}

// ZoomOut moves the camera away from the station.
func (a *App) ZoomOut() {
	a.viewer.ZoomOut()
}

// ToggleAutoRotate flips turntable rotation and returns the new state.
func (a *App) ToggleAutoRotate() bool {
	return a.viewer.ToggleAutoRotate()
}

// Resize tells the viewer the window size changed.
func (a *App) Resize() {
	a.viewer.OnResize()
}
