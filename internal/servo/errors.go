package servo

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is the base of every configuration error returned by
// ComputeControlLaw. errors.Is(err, ErrNotConfigured) matches them all.
var ErrNotConfigured = errors.New("servo: task not configured")

var (
	ErrServoModeUnset   = fmt.Errorf("%w: servo mode not set", ErrNotConfigured)
	ErrInteractionUnset = fmt.Errorf("%w: interaction matrix type not set", ErrNotConfigured)
	ErrGainUnset        = fmt.Errorf("%w: gain not set", ErrNotConfigured)
	ErrNoFeatures       = fmt.Errorf("%w: no features added", ErrNotConfigured)
	ErrTwistUnset       = fmt.Errorf("%w: camera twist not set for joint-space mode", ErrNotConfigured)
	ErrJacobianUnset    = fmt.Errorf("%w: robot jacobian not set for joint-space mode", ErrNotConfigured)
)

var (
	// ErrNilFeature reports AddFeature called without a current feature.
	ErrNilFeature = errors.New("servo: nil current feature")

	// ErrJacobianShape reports a robot jacobian without 6 rows.
	ErrJacobianShape = errors.New("servo: robot jacobian must have 6 rows")

	// ErrSecondaryDimension reports a secondary-task vector whose length
	// differs from the command dimension.
	ErrSecondaryDimension = errors.New("servo: secondary task dimension differs from command dimension")
)
