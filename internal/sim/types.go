package sim

import (
	"github.com/davrolle/vservo/internal/geom"
)

// UpdateFunc refreshes the task's current features from the pose the
// robot reports at the start of a cycle. Scenario builders supply one
// per feature set.
type UpdateFunc func(pose geom.Transform) error

type Metric interface {
	Name() string
	Observe(v, e geom.Vector, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnCycle(rec Record)
}

type Config struct {
	Iterations int
	Dt         float64
	Threshold  float64
}

// Record is one control cycle as seen from outside the engine.
type Record struct {
	Iteration int
	Time      float64
	Velocity  geom.Vector
	Error     geom.Vector
	ErrorNorm float64
	Rank      int
	Degraded  bool
}

type Result struct {
	Records    []Record
	Iterations int
	Converged  bool
	FinalError float64
	Degraded   bool
	Metrics    map[string]float64
}
