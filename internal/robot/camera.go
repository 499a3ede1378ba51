package robot

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/geom"
)

// Camera is a perfect free-flying camera: six degrees of freedom, no
// dynamics, no noise. SetVelocity integrates the commanded twist over
// one sampling period and moves the tracked pose accordingly.
type Camera struct {
	cMo geom.Transform
	dt  float64
}

// NewCamera places the camera so the tracked object sits at cMo, with
// the given sampling period in seconds.
func NewCamera(cMo geom.Transform, dt float64) *Camera {
	return &Camera{cMo: cMo, dt: dt}
}

func (c *Camera) Position() (geom.Transform, error) {
	return c.cMo, nil
}

// SetVelocity moves the camera with the twist for one sampling period.
// Joint and camera frames coincide for a free-flying camera; reference
// frame commands are not supported.
func (c *Camera) SetVelocity(frame ControlFrame, v geom.Vector) error {
	if frame != FrameCamera && frame != FrameJoint {
		return fmt.Errorf("%w: %s", ErrUnsupportedFrame, frame)
	}
	if len(v) != 6 {
		return fmt.Errorf("robot: camera velocity needs 6 components, got %d", len(v))
	}
	c.cMo = geom.Exp(v, c.dt).Inverse().Mul(c.cMo)
	return nil
}

// Jacobian of a free-flying camera is the identity: joint velocities
// are camera twists.
func (c *Camera) Jacobian() (*mat.Dense, error) {
	j := mat.NewDense(6, 6, nil)
	for i := 0; i < 6; i++ {
		j.Set(i, i, 1)
	}
	return j, nil
}

// SamplingTime returns the integration period.
func (c *Camera) SamplingTime() float64 { return c.dt }
