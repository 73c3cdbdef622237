// Package wind holds the physical state of a spherical stellar-wind source
// and the routine that imposes its steady analytic profile onto a block of
// conserved variables.
package wind

import "github.com/bbw7561135/Stellar-winds/internal/geom"

// Source is one star's wind. Everything but the center is fixed at
// construction; the center tracks the star's orbital position between
// timesteps. Radius, mass-loss rate and terminal velocity are in internal
// units, temperature in Kelvin.
type Source struct {
	center      geom.Vec3
	radius      float64
	massLoss    float64
	termVel     float64
	temperature float64
	mu          float64
}

// NewSource validates the wind parameters once, so that injection itself
// has no failure path.
func NewSource(center geom.Vec3, radius, massLoss, termVel, temperature, mu float64) (*Source, error) {
	switch {
	case radius <= 0:
		return nil, ErrBadRadius
	case massLoss <= 0:
		return nil, ErrBadMassLoss
	case termVel <= 0:
		return nil, ErrBadVelocity
	case temperature <= 0:
		return nil, ErrBadTemperature
	case mu <= 0:
		return nil, ErrBadMu
	}
	return &Source{
		center:      center,
		radius:      radius,
		massLoss:    massLoss,
		termVel:     termVel,
		temperature: temperature,
		mu:          mu,
	}, nil
}

func (s *Source) Center() geom.Vec3            { return s.center }
func (s *Source) Radius() float64              { return s.radius }
func (s *Source) MassLossRate() float64        { return s.massLoss }
func (s *Source) TerminalVelocity() float64    { return s.termVel }
func (s *Source) Temperature() float64         { return s.temperature }
func (s *Source) MeanMolecularWeight() float64 { return s.mu }

// SetCenter moves the source to a new orbital position. Must only be called
// between timesteps, strictly before any block begins its injection pass.
func (s *Source) SetCenter(c geom.Vec3) { s.center = c }
