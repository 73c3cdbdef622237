package orbit

import "errors"

// Configuration errors surface at construction and abort setup.
var (
	// ErrBadPeriod indicates a non-positive orbital period.
	ErrBadPeriod = errors.New("orbit: period must be positive")

	// ErrBadEccentricity indicates an eccentricity outside [0,1).
	ErrBadEccentricity = errors.New("orbit: eccentricity must be in [0,1)")

	// ErrBadSeparation indicates a non-positive semi-major axis.
	ErrBadSeparation = errors.New("orbit: semi-major axis must be positive")

	// ErrBadMassRatio indicates a non-positive mass ratio.
	ErrBadMassRatio = errors.New("orbit: mass ratio must be positive")

	// ErrNoConvergence indicates the Kepler solver exceeded its iteration
	// bound. The best estimate is still returned; a run never halts on it.
	ErrNoConvergence = errors.New("orbit: kepler solver did not converge")
)
