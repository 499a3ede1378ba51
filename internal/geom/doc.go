// Package geom provides the small geometric toolbox the servo engine is
// built on: plain float64 vectors, SO(3) rotations with theta-u minimal
// representation, SE(3) homogeneous transforms, velocity-twist matrices
// and the SE(3) exponential map used to integrate camera twists.
//
// Rotations and transforms are value types; all operations return new
// values and never mutate their receiver.
package geom
