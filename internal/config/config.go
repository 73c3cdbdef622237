// Package config loads and validates run configuration: orbital elements,
// the two winds' physical parameters, grid layout for the standalone
// harness, and unit scales. Values are written in astronomer-friendly units
// and converted to the internal system when the driver is assembled.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bbw7561135/Stellar-winds/internal/driver"
	"github.com/bbw7561135/Stellar-winds/internal/geom"
	"github.com/bbw7561135/Stellar-winds/internal/grid"
	"github.com/bbw7561135/Stellar-winds/internal/orbit"
	"github.com/bbw7561135/Stellar-winds/internal/units"
)

const (
	DefaultGamma       = 5.0 / 3.0
	DefaultPhaseOffset = 0.25
	DefaultGhost       = 2
)

type Config struct {
	Gamma   float64       `yaml:"gamma"`
	Orbit   OrbitConfig   `yaml:"orbit"`
	Wind1   WindConfig    `yaml:"wind1"`
	Wind2   WindConfig    `yaml:"wind2"`
	Grid    GridConfig    `yaml:"grid"`
	Ambient AmbientConfig `yaml:"ambient"`
	Run     RunConfig     `yaml:"run"`
}

type OrbitConfig struct {
	PeriodYr     float64 `yaml:"period_yr"`
	Eccentricity float64 `yaml:"eccentricity"`
	SeparationAU float64 `yaml:"separation_au"` // semi-major axis of the relative orbit
	MassRatio    float64 `yaml:"mass_ratio"`
	PhaseOffset  float64 `yaml:"phase_offset"`
	InitialPhase float64 `yaml:"initial_phase"`
}

type WindConfig struct {
	RadiusAU     float64 `yaml:"radius_au"`
	MdotMSunYr   float64 `yaml:"mdot_msun_yr"`
	VinfKms      float64 `yaml:"vinf_kms"`
	TemperatureK float64 `yaml:"temperature_k"`
	Mu           float64 `yaml:"mu"`
}

// GridConfig describes the single cubic block the standalone harness
// builds. The host engine supplies its own grid in production.
type GridConfig struct {
	N       int     `yaml:"n"`        // interior cells per axis
	Ghost   int     `yaml:"ghost"`    // ghost-layer depth
	WidthAU float64 `yaml:"width_au"` // physical edge length
	NVar    int     `yaml:"nvar"`     // equations per cell
}

// AmbientConfig is the uniform background the harness imposes before
// initialization, mirroring the host's precondition.
type AmbientConfig struct {
	DensityGcc   float64 `yaml:"density_gcc"` // g/cm^3
	TemperatureK float64 `yaml:"temperature_k"`
	Mu           float64 `yaml:"mu"`
}

type RunConfig struct {
	Orbits        float64 `yaml:"orbits"` // how long to run, in periods
	StepsPerOrbit int     `yaml:"steps_per_orbit"`
}

func DefaultConfig() *Config {
	return &Config{
		Gamma: DefaultGamma,
		Orbit: OrbitConfig{
			PeriodYr:     1.0,
			Eccentricity: 0.0,
			SeparationAU: 4.0,
			MassRatio:    0.5,
			PhaseOffset:  DefaultPhaseOffset,
			InitialPhase: DefaultPhaseOffset,
		},
		Wind1: WindConfig{
			RadiusAU:     1.0,
			MdotMSunYr:   1.0e-5,
			VinfKms:      2000,
			TemperatureK: 1.0e4,
			Mu:           1.3,
		},
		Wind2: WindConfig{
			RadiusAU:     1.0,
			MdotMSunYr:   4.5e-7,
			VinfKms:      1000,
			TemperatureK: 1.0e4,
			Mu:           0.6,
		},
		Grid: GridConfig{
			N:       64,
			Ghost:   DefaultGhost,
			WidthAU: 16,
			NVar:    grid.NumHydro,
		},
		Ambient: AmbientConfig{
			DensityGcc:   1.0e-22,
			TemperatureK: 1.0e4,
			Mu:           0.6,
		},
		Run: RunConfig{
			Orbits:        1.0,
			StepsPerOrbit: 100,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Scales returns the internal unit system: AU, solar mass, year.
func (c *Config) Scales() units.Scales {
	return units.DefaultScales()
}

// DriverConfig converts the configuration into internal units and assembles
// the driver config. The orbit is centered in the grid cube, in the
// mid-z plane.
func (c *Config) DriverConfig() driver.Config {
	sc := c.Scales()
	half := sc.LengthFromAU(c.Grid.WidthAU) / 2
	return driver.Config{
		Orbit: orbit.Elements{
			Period:        sc.TimeFromYears(c.Orbit.PeriodYr),
			Eccentricity:  c.Orbit.Eccentricity,
			SemiMajorAxis: sc.LengthFromAU(c.Orbit.SeparationAU),
			MassRatio:     c.Orbit.MassRatio,
			Center:        geom.Vec3{X: half, Y: half, Z: half},
		},
		Wind1:        c.windParams(c.Wind1),
		Wind2:        c.windParams(c.Wind2),
		Gamma:        c.Gamma,
		Scales:       sc,
		InitialPhase: c.Orbit.InitialPhase,
		PhaseOffset:  c.Orbit.PhaseOffset,
	}
}

func (c *Config) windParams(w WindConfig) driver.WindParams {
	sc := c.Scales()
	return driver.WindParams{
		Radius:           sc.LengthFromAU(w.RadiusAU),
		MassLossRate:     sc.MassRateFromMSunYr(w.MdotMSunYr),
		TerminalVelocity: sc.VelocityFromKms(w.VinfKms),
		Temperature:      w.TemperatureK,
		Mu:               w.Mu,
	}
}

// NewBlock builds the harness block with the ambient background imposed.
func (c *Config) NewBlock() (*grid.Block, error) {
	sc := c.Scales()
	width := sc.LengthFromAU(c.Grid.WidthAU)
	d := width / float64(c.Grid.N)
	b, err := grid.NewBlock(c.Grid.N, c.Grid.N, c.Grid.N, c.Grid.Ghost, c.Grid.NVar, geom.Vec3{}, d, d, d)
	if err != nil {
		return nil, err
	}

	rho := c.Ambient.DensityGcc / sc.Density()
	thermal := rho * sc.SpecificThermal(c.Ambient.TemperatureK, c.Ambient.Mu) / (c.Gamma - 1)
	b.FillUniform(grid.Rho, rho)
	b.FillUniform(grid.Energy, thermal)
	return b, nil
}
