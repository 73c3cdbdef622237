// Package units holds physical constants in cgs and the scale factors that
// map configuration values (AU, solar masses per year, km/s, Kelvin) into
// the code's internal unit system.
package units

import "fmt"

// Physical constants, cgs.
const (
	AU        = 1.495978707e13  // cm
	MSun      = 1.98892e33      // g
	Year      = 3.15576e7       // s
	KmPerSec  = 1.0e5           // cm/s
	Boltzmann = 1.380649e-16    // erg/K
	MHydrogen = 1.6735575e-24   // g
	GGrav     = 6.674299999e-8  // cm^3 g^-1 s^-2
	MSunYr    = MSun / Year     // g/s
)

// Scales converts between cgs and internal units. Length, mass and time are
// the free choices; everything else is derived.
type Scales struct {
	Length float64 // cm per internal length unit
	Mass   float64 // g per internal mass unit
	Time   float64 // s per internal time unit
}

// DefaultScales uses 1 AU, 1 solar mass and 1 year, a natural system for
// binary-star separations and wind mass-loss rates.
func DefaultScales() Scales {
	return Scales{Length: AU, Mass: MSun, Time: Year}
}

func (s Scales) Validate() error {
	if s.Length <= 0 || s.Mass <= 0 || s.Time <= 0 {
		return fmt.Errorf("units: scale factors must be positive, got length=%g mass=%g time=%g",
			s.Length, s.Mass, s.Time)
	}
	return nil
}

// Velocity returns cm/s per internal velocity unit.
func (s Scales) Velocity() float64 { return s.Length / s.Time }

// Density returns g/cm^3 per internal density unit.
func (s Scales) Density() float64 { return s.Mass / (s.Length * s.Length * s.Length) }

// MassRate returns g/s per internal mass-loss-rate unit.
func (s Scales) MassRate() float64 { return s.Mass / s.Time }

// EnergyDensity returns erg/cm^3 per internal energy-density unit.
func (s Scales) EnergyDensity() float64 {
	v := s.Velocity()
	return s.Density() * v * v
}

// LengthFromAU converts a length in astronomical units to internal units.
func (s Scales) LengthFromAU(au float64) float64 { return au * AU / s.Length }

// VelocityFromKms converts a speed in km/s to internal units.
func (s Scales) VelocityFromKms(kms float64) float64 { return kms * KmPerSec / s.Velocity() }

// MassRateFromMSunYr converts a mass-loss rate in solar masses per year to
// internal units.
func (s Scales) MassRateFromMSunYr(mdot float64) float64 { return mdot * MSunYr / s.MassRate() }

// TimeFromYears converts a duration in years to internal units.
func (s Scales) TimeFromYears(yr float64) float64 { return yr * Year / s.Time }

// SpecificThermal returns kT/(mu*mH) for a temperature in Kelvin, expressed
// in internal velocity-squared units. This is the pressure-over-density term
// of the ideal-gas relation.
func (s Scales) SpecificThermal(temperature, mu float64) float64 {
	v := s.Velocity()
	return Boltzmann * temperature / (mu * MHydrogen) / (v * v)
}
