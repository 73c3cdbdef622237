package config

// Presets are ready-made binary configurations. "wr140"-style numbers
// follow the well-observed long-period WC7+O binary; the others are generic
// systems sized to fit the default grid.
var Presets = map[string]*Config{
	"circular": DefaultConfig(),

	"eccentric": func() *Config {
		c := DefaultConfig()
		c.Orbit.Eccentricity = 0.5
		return c
	}(),

	"wr140": func() *Config {
		c := DefaultConfig()
		c.Orbit.PeriodYr = 7.93
		c.Orbit.Eccentricity = 0.896
		c.Orbit.SeparationAU = 14.9
		c.Orbit.MassRatio = 0.52
		c.Grid.WidthAU = 60
		c.Wind1.MdotMSunYr = 1.7e-5
		c.Wind1.VinfKms = 2860
		c.Wind2.MdotMSunYr = 1.6e-6
		c.Wind2.VinfKms = 3100
		c.Wind1.RadiusAU = 2.0
		c.Wind2.RadiusAU = 2.0
		return c
	}(),

	"slow-dense": func() *Config {
		c := DefaultConfig()
		c.Wind1.VinfKms = 500
		c.Wind1.MdotMSunYr = 5.0e-5
		c.Run.Orbits = 2
		return c
	}(),
}

// GetPreset returns a named preset, or nil when it does not exist.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
