// Package scenario assembles ready-to-run servo setups: a configured
// task, a simulated robot and the update hook that refreshes features
// from the robot pose each cycle.
package scenario

import (
	"fmt"

	"github.com/davrolle/vservo/internal/geom"
	"github.com/davrolle/vservo/internal/robot"
	"github.com/davrolle/vservo/internal/servo"
	"github.com/davrolle/vservo/internal/sim"
)

// Scenario bundles everything a sim.Loop needs.
type Scenario struct {
	Name        string
	Description string
	Task        *servo.Task
	Robot       robot.Robot
	Update      sim.UpdateFunc
}

// Params configures a scenario instance. Poses are 6-component vectors
// (translation then theta-u) giving the camera-from-object transform at
// the start and at the goal.
type Params struct {
	Mode        servo.Mode
	Interaction servo.InteractionType

	Gain      float64
	Adaptive  bool
	GainZero  float64
	GainInf   float64
	GainSlope float64

	InitialPose geom.Vector
	DesiredPose geom.Vector
	Dt          float64
}

func validate(p Params) error {
	if p.Mode == 0 {
		return fmt.Errorf("servo mode not set")
	}
	if p.Interaction == 0 {
		return fmt.Errorf("interaction type not set")
	}
	if len(p.InitialPose) != 6 {
		return fmt.Errorf("initial pose needs 6 components, got %d", len(p.InitialPose))
	}
	if len(p.DesiredPose) != 6 {
		return fmt.Errorf("desired pose needs 6 components, got %d", len(p.DesiredPose))
	}
	if p.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", p.Dt)
	}
	if p.Adaptive {
		if p.GainZero <= 0 || p.GainInf <= 0 || p.GainSlope <= 0 {
			return fmt.Errorf("adaptive gain parameters must be positive")
		}
	} else if p.Gain <= 0 {
		return fmt.Errorf("gain must be positive, got %f", p.Gain)
	}
	return nil
}

func newTask(p Params) *servo.Task {
	task := servo.New()
	task.SetServoMode(p.Mode)
	task.SetInteractionType(p.Interaction)
	if p.Adaptive {
		task.SetAdaptiveGain(p.GainZero, p.GainInf, p.GainSlope)
	} else {
		task.SetGain(p.Gain)
	}
	if p.Mode.JointSpace() {
		task.SetTwist(geom.IdentityTransform())
	}
	return task
}

func transformOf(pose geom.Vector) geom.Transform {
	return geom.TransformFromPose(pose[0], pose[1], pose[2], pose[3], pose[4], pose[5])
}

// project maps an object-frame point through cMo onto the normalized
// image plane, returning the image coordinates and the depth.
func project(cMo geom.Transform, p [3]float64) (x, y, z float64, err error) {
	q := cMo.Apply(p)
	if q[2] <= 0 {
		return 0, 0, 0, fmt.Errorf("point behind the camera, Z = %f", q[2])
	}
	return q[0] / q[2], q[1] / q[2], q[2], nil
}
