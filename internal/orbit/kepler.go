package orbit

import "math"

const (
	keplerTolerance = 1e-10
	keplerMaxIter   = 50
)

// solveKepler finds the eccentric anomaly E satisfying M = E - e*sin(E) by
// Newton iteration. M is the mean anomaly in radians. When the iteration
// bound is hit the best estimate is returned with ErrNoConvergence; the
// caller decides whether to count or log it.
func solveKepler(meanAnomaly, e float64) (float64, error) {
	if e == 0 {
		return meanAnomaly, nil
	}

	// Starting guess: M itself for low eccentricity, pi otherwise.
	E := meanAnomaly
	if e > 0.8 {
		E = math.Pi
	}

	for i := 0; i < keplerMaxIter; i++ {
		f := E - e*math.Sin(E) - meanAnomaly
		if math.Abs(f) < keplerTolerance {
			return E, nil
		}
		E -= f / (1 - e*math.Cos(E))
	}
	return E, ErrNoConvergence
}
