// Package robot defines the collaborator the control loop drives and a
// free-flying camera simulator for closed-loop runs without hardware.
package robot

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/geom"
)

// ControlFrame names the frame a velocity command is expressed in.
type ControlFrame int

const (
	FrameCamera ControlFrame = iota + 1
	FrameJoint
	FrameReference
)

func (f ControlFrame) String() string {
	switch f {
	case FrameCamera:
		return "camera"
	case FrameJoint:
		return "joint"
	case FrameReference:
		return "reference"
	default:
		return "unknown"
	}
}

var (
	// ErrCommunication is the base error for transport failures between
	// the process and a robot. Callers surface it unchanged and never
	// retry within a cycle; retry policy belongs to the outer loop.
	ErrCommunication = errors.New("robot: communication failed")

	// ErrUnsupportedFrame reports a velocity command in a frame the
	// robot cannot accept.
	ErrUnsupportedFrame = errors.New("robot: unsupported control frame")
)

// Robot is the device a servo loop commands once per cycle.
type Robot interface {
	// Position returns the pose the scenario tracks, camera from
	// object for the simulators in this package.
	Position() (geom.Transform, error)

	// SetVelocity applies a velocity command expressed in the given
	// frame, held until the next call.
	SetVelocity(frame ControlFrame, v geom.Vector) error

	// Jacobian returns the 6 x dof robot jacobian. Joint-space servo
	// modes refresh it every cycle.
	Jacobian() (*mat.Dense, error)
}
