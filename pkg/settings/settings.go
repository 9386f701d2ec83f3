// Package settings loads the optional HCL theme file: palette colors,
// validation tolerances and viewer tuning. A missing file is fine (the
// defaults apply); an explicitly named file that fails to parse is a
// construction-time error, since a half-applied theme is worse than
// none.
package settings

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/apexpath/stationviz/pkg/scene"
	"github.com/apexpath/stationviz/pkg/validate"
)

// Settings is the decoded theme file. All blocks are optional.
type Settings struct {
	Palette    *PaletteBlock    `hcl:"palette,block"`
	Validation *ValidationBlock `hcl:"validation,block"`
	Viewer     *ViewerBlock     `hcl:"viewer,block"`
}

// PaletteBlock overrides palette material colors. Colors are #rrggbb
// strings; the rgb() function is available in the file for readability.
type PaletteBlock struct {
	Metal    *string `hcl:"metal,optional"`
	Brushed  *string `hcl:"brushed,optional"`
	Plastic  *string `hcl:"plastic,optional"`
	Glass    *string `hcl:"glass,optional"`
	Emissive *string `hcl:"emissive,optional"`
	Accent   *string `hcl:"accent,optional"`
	Dark     *string `hcl:"dark,optional"`
}

// ValidationBlock overrides the spatial check tolerances.
type ValidationBlock struct {
	GroundTolerance *float64 `hcl:"ground_tolerance,optional"`
	RadiusFactor    *float64 `hcl:"radius_factor,optional"`
	DepthLimit      *float64 `hcl:"depth_limit,optional"`
}

// ViewerBlock tunes render-loop behavior.
type ViewerBlock struct {
	AutoRotateSpeed *float64 `hcl:"auto_rotate_speed,optional"`
}

// Default returns empty settings: every consumer falls back to its
// built-in defaults.
func Default() Settings {
	return Settings{}
}

// rgbFunc exposes rgb(r, g, b) -> "#rrggbb" to theme files.
var rgbFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "r", Type: cty.Number},
		{Name: "g", Type: cty.Number},
		{Name: "b", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		var r, g, b int
		if err := gocty.FromCtyValue(args[0], &r); err != nil {
			return cty.NilVal, err
		}
		if err := gocty.FromCtyValue(args[1], &g); err != nil {
			return cty.NilVal, err
		}
		if err := gocty.FromCtyValue(args[2], &b); err != nil {
			return cty.NilVal, err
		}
		for _, c := range []int{r, g, b} {
			if c < 0 || c > 255 {
				return cty.NilVal, fmt.Errorf("rgb component %d out of range [0,255]", c)
			}
		}
		return cty.StringVal(fmt.Sprintf("#%02x%02x%02x", r, g, b)), nil
	},
})

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{"rgb": rgbFunc},
	}
}

// Load reads and decodes a theme file.
func Load(path string) (Settings, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: read %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes theme source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Settings{}, fmt.Errorf("settings: parse %s: %w", filename, diags)
	}

	var s Settings
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &s); diags.HasErrors() {
		return Settings{}, fmt.Errorf("settings: decode %s: %w", filename, diags)
	}
	return s, nil
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// PaletteColors maps the theme onto palette construction input; unset
// fields keep the built-in colors.
func (s Settings) PaletteColors() scene.PaletteColors {
	if s.Palette == nil {
		return scene.PaletteColors{}
	}
	return scene.PaletteColors{
		Metal:    strOr(s.Palette.Metal),
		Brushed:  strOr(s.Palette.Brushed),
		Plastic:  strOr(s.Palette.Plastic),
		Glass:    strOr(s.Palette.Glass),
		Emissive: strOr(s.Palette.Emissive),
		Accent:   strOr(s.Palette.Accent),
		Dark:     strOr(s.Palette.Dark),
	}
}

// Tolerances returns the validation tolerances with overrides applied.
func (s Settings) Tolerances() validate.Tolerances {
	tol := validate.Defaults()
	if s.Validation == nil {
		return tol
	}
	if v := s.Validation.GroundTolerance; v != nil {
		tol.Ground = float32(*v)
	}
	if v := s.Validation.RadiusFactor; v != nil {
		tol.RadiusFactor = float32(*v)
	}
	if v := s.Validation.DepthLimit; v != nil {
		tol.Depth = float32(*v)
	}
	return tol
}

// DefaultAutoRotateSpeed is the per-tick yaw increment in radians.
const DefaultAutoRotateSpeed = 0.006

// AutoRotateSpeed returns the per-tick yaw increment.
func (s Settings) AutoRotateSpeed() float32 {
	if s.Viewer == nil || s.Viewer.AutoRotateSpeed == nil {
		return DefaultAutoRotateSpeed
	}
	return float32(*s.Viewer.AutoRotateSpeed)
}
