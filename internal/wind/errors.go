package wind

import "errors"

// Configuration errors surface at construction, never during injection.
var (
	ErrBadRadius      = errors.New("wind: source radius must be positive")
	ErrBadMassLoss    = errors.New("wind: mass-loss rate must be positive")
	ErrBadVelocity    = errors.New("wind: terminal velocity must be positive")
	ErrBadTemperature = errors.New("wind: temperature must be positive")
	ErrBadMu          = errors.New("wind: mean molecular weight must be positive")
	ErrBadGamma       = errors.New("wind: adiabatic index must exceed 1")
)
