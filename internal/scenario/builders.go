package scenario

import (
	"fmt"
	"math"

	"github.com/davrolle/vservo/internal/feature"
	"github.com/davrolle/vservo/internal/geom"
	"github.com/davrolle/vservo/internal/robot"
)

// squarePoints is a 0.2 m square in the object plane, the standard
// four-point target.
var squarePoints = [4][3]float64{
	{-0.1, -0.1, 0},
	{0.1, -0.1, 0},
	{0.1, 0.1, 0},
	{-0.1, 0.1, 0},
}

func buildPoint(p Params) (*Scenario, error) {
	cMo := transformOf(p.InitialPose)
	cdMo := transformOf(p.DesiredPose)
	cam := robot.NewCamera(cMo, p.Dt)

	target := [3]float64{0, 0, 0}
	cur := feature.NewPoint()
	des := feature.NewPoint()
	x, y, z, err := project(cdMo, target)
	if err != nil {
		return nil, fmt.Errorf("desired view: %w", err)
	}
	des.Set(x, y, z)

	task := newTask(p)
	if err := task.AddFeature(cur, des, feature.SelectAll); err != nil {
		return nil, err
	}

	update := func(pose geom.Transform) error {
		x, y, z, err := project(pose, target)
		if err != nil {
			return err
		}
		cur.Set(x, y, z)
		return nil
	}
	return &Scenario{Task: task, Robot: cam, Update: update}, nil
}

func buildIBVS4(p Params) (*Scenario, error) {
	cMo := transformOf(p.InitialPose)
	cdMo := transformOf(p.DesiredPose)
	cam := robot.NewCamera(cMo, p.Dt)

	task := newTask(p)
	currents := make([]*feature.Point, len(squarePoints))
	for i, pt := range squarePoints {
		cur := feature.NewPoint()
		des := feature.NewPoint()
		x, y, z, err := project(cdMo, pt)
		if err != nil {
			return nil, fmt.Errorf("desired view of point %d: %w", i, err)
		}
		des.Set(x, y, z)
		if err := task.AddFeature(cur, des, feature.SelectAll); err != nil {
			return nil, err
		}
		currents[i] = cur
	}

	update := func(pose geom.Transform) error {
		for i, pt := range squarePoints {
			x, y, z, err := project(pose, pt)
			if err != nil {
				return fmt.Errorf("point %d: %w", i, err)
			}
			currents[i].Set(x, y, z)
		}
		return nil
	}
	return &Scenario{Task: task, Robot: cam, Update: update}, nil
}

// buildPBVS servos on the desired-from-current relative pose split into
// a translation and a theta-u feature, both with auto-built zero goals.
func buildPBVS(p Params) (*Scenario, error) {
	cMo := transformOf(p.InitialPose)
	cdMo := transformOf(p.DesiredPose)
	cam := robot.NewCamera(cMo, p.Dt)

	tr := feature.NewTranslation(feature.DesiredFromCurrent)
	tu := feature.NewThetaU(feature.DesiredFromCurrent)

	task := newTask(p)
	if err := task.AddFeature(tr, nil, feature.SelectAll); err != nil {
		return nil, err
	}
	if err := task.AddFeature(tu, nil, feature.SelectAll); err != nil {
		return nil, err
	}

	update := func(pose geom.Transform) error {
		cdMc := cdMo.Mul(pose.Inverse())
		tr.BuildFrom(cdMc)
		tu.BuildFrom(cdMc)
		return nil
	}
	return &Scenario{Task: task, Robot: cam, Update: update}, nil
}

func buildPose(p Params) (*Scenario, error) {
	cMo := transformOf(p.InitialPose)
	cdMo := transformOf(p.DesiredPose)
	cam := robot.NewCamera(cMo, p.Dt)

	pf := feature.NewPose(feature.CurrentFromDesired)

	task := newTask(p)
	if err := task.AddFeature(pf, nil, feature.SelectAll); err != nil {
		return nil, err
	}

	update := func(pose geom.Transform) error {
		pf.BuildFrom(pose.Mul(cdMo.Inverse()))
		return nil
	}
	return &Scenario{Task: task, Robot: cam, Update: update}, nil
}

// buildHybrid is the 2.5-D scheme: image coordinates of one point, the
// log ratio of its depth to the desired depth, and the theta-u rotation
// of the relative pose. Six rows, decoupled enough to behave well far
// from the goal.
func buildHybrid(p Params) (*Scenario, error) {
	cMo := transformOf(p.InitialPose)
	cdMo := transformOf(p.DesiredPose)
	cam := robot.NewCamera(cMo, p.Dt)

	target := [3]float64{0, 0, 0}
	xd, yd, zStar, err := project(cdMo, target)
	if err != nil {
		return nil, fmt.Errorf("desired view: %w", err)
	}

	cur := feature.NewPoint()
	des := feature.NewPoint()
	des.Set(xd, yd, zStar)
	depth := feature.NewDepth()
	tu := feature.NewThetaU(feature.CurrentFromDesired)

	task := newTask(p)
	if err := task.AddFeature(cur, des, feature.SelectAll); err != nil {
		return nil, err
	}
	if err := task.AddFeature(depth, nil, feature.SelectAll); err != nil {
		return nil, err
	}
	if err := task.AddFeature(tu, nil, feature.SelectAll); err != nil {
		return nil, err
	}

	update := func(pose geom.Transform) error {
		x, y, z, err := project(pose, target)
		if err != nil {
			return err
		}
		cur.Set(x, y, z)
		depth.Set(x, y, z, math.Log(z/zStar))
		tu.BuildFromRotation(pose.Mul(cdMo.Inverse()).R)
		return nil
	}
	return &Scenario{Task: task, Robot: cam, Update: update}, nil
}
