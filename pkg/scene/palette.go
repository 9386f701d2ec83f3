package scene

// PaletteColors carries the configurable surface colors. Zero-value
// fields fall back to the built-in defaults, so a settings file only
// needs to override what it cares about.
type PaletteColors struct {
	Metal    string
	Brushed  string
	Plastic  string
	Glass    string
	Emissive string
	Accent   string
	Dark     string
}

// Palette is the fixed set of shared surface materials plus the one
// schematic/wireframe material. Created once per viewer; assemblies
// reference these but never own them. Disposed only at viewer teardown.
type Palette struct {
	Metal    *Material // stainless work surfaces
	Brushed  *Material // brushed structural steel
	Plastic  *Material // enclosures, drawers
	Glass    *Material // hood sash
	Emissive *Material // indicator lights, LED strips, screens
	Accent   *Material // branding accent
	Dark     *Material // base, shadow-line trim

	// Schematic is the shared blueprint-mode material: wireframe,
	// translucent, applied to every mesh in blueprint mode.
	Schematic *Material
}

func pick(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}

// NewPalette builds the shared palette. All materials are tagged
// OwnerPalette so assembly teardown never touches them.
func NewPalette(colors PaletteColors) *Palette {
	return &Palette{
		Metal: &Material{
			Name: "metal", Color: pick(colors.Metal, "#c8ccd0"),
			Metalness: 0.85, Roughness: 0.35, Opacity: 1, Owner: OwnerPalette,
		},
		Brushed: &Material{
			Name: "brushed", Color: pick(colors.Brushed, "#9aa0a6"),
			Metalness: 0.7, Roughness: 0.55, Opacity: 1, Owner: OwnerPalette,
		},
		Plastic: &Material{
			Name: "plastic", Color: pick(colors.Plastic, "#e8e6e1"),
			Metalness: 0.05, Roughness: 0.8, Opacity: 1, Owner: OwnerPalette,
		},
		Glass: &Material{
			Name: "glass", Color: pick(colors.Glass, "#bcd7e0"),
			Metalness: 0.1, Roughness: 0.05, Opacity: 0.3, Owner: OwnerPalette,
		},
		Emissive: &Material{
			Name: "emissive", Color: pick(colors.Emissive, "#ffffff"),
			Emissive: pick(colors.Emissive, "#ffffff"),
			Opacity:  1, Owner: OwnerPalette,
		},
		Accent: &Material{
			Name: "accent", Color: pick(colors.Accent, "#0e6e8c"),
			Metalness: 0.3, Roughness: 0.5, Opacity: 1, Owner: OwnerPalette,
		},
		Dark: &Material{
			Name: "dark", Color: pick(colors.Dark, "#3a3d40"),
			Metalness: 0.4, Roughness: 0.7, Opacity: 1, Owner: OwnerPalette,
		},
		Schematic: &Material{
			Name: "schematic", Color: "#1a4a6b",
			Opacity: 0.25, Wireframe: true, Owner: OwnerPalette,
		},
	}
}

// Materials returns every palette material including the schematic one.
func (p *Palette) Materials() []*Material {
	return []*Material{
		p.Metal, p.Brushed, p.Plastic, p.Glass,
		p.Emissive, p.Accent, p.Dark, p.Schematic,
	}
}

// Dispose releases all palette materials. Called exactly once, from
// viewer teardown, after the final assembly has been torn down.
func (p *Palette) Dispose() {
	for _, m := range p.Materials() {
		if !m.Disposed() {
			m.Dispose()
		}
	}
}
