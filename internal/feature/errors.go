package feature

import "errors"

var (
	// ErrDimensionMismatch reports current and desired features of
	// different dimensions.
	ErrDimensionMismatch = errors.New("feature: current and desired dimensions differ")

	// ErrKindMismatch reports current and desired features of different
	// kinds.
	ErrKindMismatch = errors.New("feature: current and desired kinds differ")

	// ErrBadSelection reports a selector addressing rows outside the
	// feature dimension, or selecting nothing.
	ErrBadSelection = errors.New("feature: invalid component selection")

	// ErrInvalidDepth reports a non-positive depth on a kind whose
	// interaction matrix needs 1/Z.
	ErrInvalidDepth = errors.New("feature: depth must be strictly positive")

	// ErrNoInteraction reports a generic feature used before its
	// interaction matrix was set.
	ErrNoInteraction = errors.New("feature: interaction matrix not set")
)
