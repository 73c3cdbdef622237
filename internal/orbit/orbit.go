// Package orbit models the Keplerian motion of a two-star binary. Phase is
// the fractional position within one period: 0 at periastron, 0.5 at
// apoastron, wrapping modulo 1. The orbit is confined to a fixed z-plane;
// the host grid's mid-plane in the observed configuration.
package orbit

import (
	"math"
	"sync/atomic"

	"github.com/bbw7561135/Stellar-winds/internal/geom"
)

// Elements are the fixed orbital elements of the binary, in internal units.
// Immutable after validation.
type Elements struct {
	Period        float64 // orbital period
	Eccentricity  float64 // in [0,1)
	SemiMajorAxis float64 // of the relative orbit
	MassRatio     float64 // m2/m1
	Center        geom.Vec3
}

// BinaryState is the instantaneous configuration of the two stars.
type BinaryState struct {
	Phase float64
	Pos1  geom.Vec3
	Pos2  geom.Vec3
	Vel1  geom.Vec3
	Vel2  geom.Vec3
}

// Separation returns the instantaneous distance between the two stars.
func (b BinaryState) Separation() float64 {
	return b.Pos1.DistanceTo(b.Pos2)
}

// Model evaluates the binary at a given phase. Same phase, same output; the
// only internal state is a non-convergence counter for the Kepler solver.
type Model struct {
	el           Elements
	nonConverged atomic.Uint64
}

func NewModel(el Elements) (*Model, error) {
	if el.Period <= 0 {
		return nil, ErrBadPeriod
	}
	if el.Eccentricity < 0 || el.Eccentricity >= 1 {
		return nil, ErrBadEccentricity
	}
	if el.SemiMajorAxis <= 0 {
		return nil, ErrBadSeparation
	}
	if el.MassRatio <= 0 {
		return nil, ErrBadMassRatio
	}
	return &Model{el: el}, nil
}

func (m *Model) Elements() Elements { return m.el }

// NonConverged reports how many Binary evaluations hit the Kepler solver's
// iteration bound since construction.
func (m *Model) NonConverged() uint64 { return m.nonConverged.Load() }

// WrapPhase reduces an arbitrary phase into [0,1).
func WrapPhase(phase float64) float64 {
	p := phase - math.Floor(phase)
	if p >= 1 { // guards -1e-18 wrapping to 1.0
		p = 0
	}
	return p
}

// Binary returns the positions and velocities of both stars at the given
// phase. A non-converged Kepler solve still yields the best estimate and is
// counted; it never invalidates the returned state.
func (m *Model) Binary(phase float64) BinaryState {
	el := m.el
	p := WrapPhase(phase)

	meanAnomaly := 2 * math.Pi * p
	E, err := solveKepler(meanAnomaly, el.Eccentricity)
	if err != nil {
		m.nonConverged.Add(1)
	}

	a, e := el.SemiMajorAxis, el.Eccentricity
	sinE, cosE := math.Sin(E), math.Cos(E)
	b := a * math.Sqrt(1-e*e)

	// Relative orbit, periastron along +x.
	relX := a * (cosE - e)
	relY := b * sinE

	// dE/dt from Kepler's equation, n = 2*pi/P.
	n := 2 * math.Pi / el.Period
	eDot := n / (1 - e*cosE)
	relVX := -a * sinE * eDot
	relVY := b * cosE * eDot

	// Split about the barycenter: m1*r1 = m2*r2, q = m2/m1.
	q := el.MassRatio
	f1 := q / (1 + q)
	f2 := -1 / (1 + q)

	c := el.Center
	return BinaryState{
		Phase: p,
		Pos1:  geom.Vec3{X: c.X + f1*relX, Y: c.Y + f1*relY, Z: c.Z},
		Pos2:  geom.Vec3{X: c.X + f2*relX, Y: c.Y + f2*relY, Z: c.Z},
		Vel1:  geom.Vec3{X: f1 * relVX, Y: f1 * relVY},
		Vel2:  geom.Vec3{X: f2 * relVX, Y: f2 * relVY},
	}
}
