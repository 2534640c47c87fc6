package thermal

import "errors"

var (
	ErrInvalidGeometry  = errors.New("invalid structure geometry")
	ErrInvalidAirVolume = errors.New("air volume must not be negative")
	ErrInvalidDeltaT    = errors.New("radiator delta-t must be strictly positive")
	ErrInvalidTimeStep  = errors.New("interpolation window must be strictly positive")
	ErrInvalidPower     = errors.New("heating power must not be negative")
)
