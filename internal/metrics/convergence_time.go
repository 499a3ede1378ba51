package metrics

import (
	"github.com/davrolle/vservo/internal/geom"
)

// ConvergenceTime records when the error norm first fell below a
// threshold. If it never did, Value reports the last observed time, so
// slower runs always score worse than converged ones.
type ConvergenceTime struct {
	name      string
	threshold float64
	hit       bool
	at        float64
	last      float64
}

func NewConvergenceTime(threshold float64) *ConvergenceTime {
	return &ConvergenceTime{
		name:      "convergence_time",
		threshold: threshold,
	}
}

func (c *ConvergenceTime) Name() string {
	return c.name
}

func (c *ConvergenceTime) Observe(v, e geom.Vector, t float64) {
	c.last = t
	if !c.hit && e.Norm() < c.threshold {
		c.hit = true
		c.at = t
	}
}

func (c *ConvergenceTime) Value() float64 {
	if !c.hit {
		return c.last
	}
	return c.at
}

func (c *ConvergenceTime) Reset() {
	c.hit = false
	c.at = 0
	c.last = 0
}
