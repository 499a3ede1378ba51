// Package sim closes the loop between a servo task and a robot: one
// synchronous cycle per iteration, metrics and observers on the side.
package sim

import (
	"context"
	"fmt"

	"github.com/davrolle/vservo/internal/robot"
	"github.com/davrolle/vservo/internal/servo"
)

type Loop struct {
	task      *servo.Task
	rob       robot.Robot
	update    UpdateFunc
	metrics   []Metric
	observers []Observer
}

func New(task *servo.Task, rob robot.Robot, update UpdateFunc) *Loop {
	return &Loop{
		task:      task,
		rob:       rob,
		update:    update,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Run executes up to cfg.Iterations control cycles, stopping early once
// the error norm falls below cfg.Threshold. Robot and engine errors end
// the run and are returned unchanged, together with the cycles recorded
// so far.
func (l *Loop) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Records: make([]Record, 0, cfg.Iterations),
		Metrics: make(map[string]float64),
	}

	for _, m := range l.metrics {
		m.Reset()
	}

	frame := robot.FrameCamera
	joint := l.task.ServoMode().JointSpace()
	if joint {
		frame = robot.FrameJoint
	}

	t := 0.0
	for i := 0; i < cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		pose, err := l.rob.Position()
		if err != nil {
			return result, err
		}
		if err := l.update(pose); err != nil {
			return result, err
		}

		if joint {
			j, err := l.rob.Jacobian()
			if err != nil {
				return result, err
			}
			if err := l.task.SetEffectorJacobian(j); err != nil {
				return result, err
			}
		}

		v, err := l.task.ComputeControlLaw()
		if err != nil {
			return result, err
		}

		e := l.task.TaskError()
		rec := Record{
			Iteration: i,
			Time:      t,
			Velocity:  v,
			Error:     e,
			ErrorNorm: e.Norm(),
			Rank:      l.task.Rank(),
			Degraded:  l.task.Degraded(),
		}

		for _, m := range l.metrics {
			m.Observe(v, e, t)
		}
		for _, o := range l.observers {
			o.OnCycle(rec)
		}

		result.Records = append(result.Records, rec)
		result.Iterations++
		result.FinalError = rec.ErrorNorm
		if rec.Degraded {
			result.Degraded = true
		}

		if rec.ErrorNorm < cfg.Threshold {
			result.Converged = true
			break
		}

		if err := l.rob.SetVelocity(frame, v); err != nil {
			return result, err
		}
		t += cfg.Dt
	}

	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}
	if cfg.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %f", cfg.Threshold)
	}
	return nil
}
