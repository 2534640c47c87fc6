package retrofit

import "errors"

var (
	ErrUnknownIntervention = errors.New("unknown intervention")
	ErrNonPhysicalModel    = errors.New("non-physical model parameter")
)
