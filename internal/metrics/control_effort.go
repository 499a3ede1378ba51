package metrics

import (
	"math"

	"github.com/davrolle/vservo/internal/geom"
)

// ControlEffort accumulates the mean absolute velocity commanded per
// cycle, a proxy for how hard the law works the robot.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(v, e geom.Vector, t float64) {
	for _, val := range v {
		c.sum += math.Abs(val)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
