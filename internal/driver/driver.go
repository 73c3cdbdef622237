// Package driver orchestrates the colliding-wind binary boundary condition:
// it owns the orbital phase and the two wind sources, and re-imposes both
// winds on the conserved-variable field once at startup and once per host
// timestep after the host's boundary exchange.
package driver

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/bbw7561135/Stellar-winds/internal/geom"
	"github.com/bbw7561135/Stellar-winds/internal/grid"
	"github.com/bbw7561135/Stellar-winds/internal/metrics"
	"github.com/bbw7561135/Stellar-winds/internal/orbit"
	"github.com/bbw7561135/Stellar-winds/internal/units"
	"github.com/bbw7561135/Stellar-winds/internal/wind"
)

type state int

const (
	uninitialized state = iota
	active
)

// WindParams are the fixed physical parameters of one wind, in internal
// units (temperature in Kelvin).
type WindParams struct {
	Radius           float64
	MassLossRate     float64
	TerminalVelocity float64
	Temperature      float64
	Mu               float64
}

// Config assembles everything the driver needs. All values are validated at
// New; nothing fails afterwards except the state-machine rules.
type Config struct {
	Orbit        orbit.Elements
	Wind1, Wind2 WindParams
	Gamma        float64
	Scales       units.Scales

	InitialPhase float64 // phase imposed by Initialize
	PhaseOffset  float64 // lag between the time origin and periastron
	TimeScale    float64 // host time units per internal time unit; 0 means 1
}

// Driver is the condition state machine: Uninitialized until Initialize,
// Active for the rest of the run. Advance mutates shared source state and
// must run strictly between timesteps; Inject only reads it and may be
// applied to distinct blocks concurrently.
type Driver struct {
	cfg      Config
	model    *orbit.Model
	injector *wind.Injector
	wind1    *wind.Source
	wind2    *wind.Source
	phase    float64
	state    state
	log      zerolog.Logger

	seenNonConverged uint64
}

// New validates the configuration and builds the driver. Both wind sources
// are constructed here so malformed parameters abort setup rather than a
// running simulation.
func New(cfg Config, log zerolog.Logger) (*Driver, error) {
	model, err := orbit.NewModel(cfg.Orbit)
	if err != nil {
		return nil, err
	}
	injector, err := wind.NewInjector(cfg.Gamma, cfg.Scales)
	if err != nil {
		return nil, err
	}
	w1, err := newSource(cfg.Wind1, cfg.Orbit.Center)
	if err != nil {
		return nil, fmt.Errorf("wind1: %w", err)
	}
	w2, err := newSource(cfg.Wind2, cfg.Orbit.Center)
	if err != nil {
		return nil, fmt.Errorf("wind2: %w", err)
	}
	if cfg.TimeScale < 0 {
		return nil, fmt.Errorf("driver: time scale must be non-negative, got %g", cfg.TimeScale)
	}
	if cfg.TimeScale == 0 {
		cfg.TimeScale = 1
	}
	return &Driver{
		cfg:      cfg,
		model:    model,
		injector: injector,
		wind1:    w1,
		wind2:    w2,
		log:      log,
	}, nil
}

func newSource(p WindParams, center geom.Vec3) (*wind.Source, error) {
	return wind.NewSource(center, p.Radius, p.MassLossRate, p.TerminalVelocity, p.Temperature, p.Mu)
}

// Phase returns the current orbital phase in [0,1).
func (d *Driver) Phase() float64 { return d.phase }

// Sources returns the two wind sources, primary first.
func (d *Driver) Sources() (*wind.Source, *wind.Source) { return d.wind1, d.wind2 }

// Orbit returns the underlying orbit model.
func (d *Driver) Orbit() *orbit.Model { return d.model }

// Initialize imposes both winds for the first time at the configured
// initial phase and activates the driver. A second call is a logic error.
func (d *Driver) Initialize(b *grid.Block) error {
	if d.state != uninitialized {
		return ErrAlreadyInitialized
	}
	d.setPhase(orbit.WrapPhase(d.cfg.InitialPhase))
	d.state = active
	n := d.Inject(b)
	d.log.Info().
		Float64("phase", d.phase).
		Int("cells", n).
		Msg("wind sources initialized")
	return nil
}

// Refresh recomputes the orbit for the given simulation time, moves both
// source centers, and re-imposes the winds. Call once per host timestep,
// after the host's boundary exchange.
func (d *Driver) Refresh(b *grid.Block, simTime float64) error {
	if d.state != active {
		return ErrNotInitialized
	}
	d.Advance(simTime)
	d.Inject(b)
	metrics.RefreshesTotal.Inc()
	return nil
}

// Advance updates the phase and both source centers for the given time.
// Write access to shared source state: run it strictly between timesteps,
// before any block's injection pass. A host that parallelizes over blocks
// calls Advance once, then Inject per block.
func (d *Driver) Advance(simTime float64) {
	period := d.cfg.Orbit.Period
	phase := math.Mod(simTime*d.cfg.TimeScale, period)/period + d.cfg.PhaseOffset
	d.setPhase(orbit.WrapPhase(phase))
}

func (d *Driver) setPhase(phase float64) {
	d.phase = phase
	st := d.model.Binary(phase)
	d.wind1.SetCenter(st.Pos1)
	d.wind2.SetCenter(st.Pos2)

	if nc := d.model.NonConverged(); nc > d.seenNonConverged {
		delta := nc - d.seenNonConverged
		d.seenNonConverged = nc
		metrics.KeplerNonConvergedTotal.Add(float64(delta))
		d.log.Warn().
			Float64("phase", phase).
			Uint64("total", nc).
			Msg("kepler solver returned best estimate without converging")
	}

	d.log.Debug().
		Float64("phase", phase).
		Float64("separation", st.Separation()).
		Msg("orbit advanced")
}

// Inject imposes both winds on one block. Read-only with respect to driver
// state; safe to call concurrently for distinct blocks. Returns the number
// of cells overwritten.
func (d *Driver) Inject(b *grid.Block) int {
	n1 := d.injector.Impose(d.wind1, b)
	n2 := d.injector.Impose(d.wind2, b)
	metrics.CellsInjectedTotal.WithLabelValues("primary").Add(float64(n1))
	metrics.CellsInjectedTotal.WithLabelValues("secondary").Add(float64(n2))
	return n1 + n2
}
