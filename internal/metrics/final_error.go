package metrics

import (
	"github.com/davrolle/vservo/internal/geom"
)

// FinalError tracks the most recent error norm, the residual left when
// the run stopped.
type FinalError struct {
	name string
	norm float64
}

func NewFinalError() *FinalError {
	return &FinalError{
		name: "final_error",
	}
}

func (f *FinalError) Name() string {
	return f.name
}

func (f *FinalError) Observe(v, e geom.Vector, t float64) {
	f.norm = e.Norm()
}

func (f *FinalError) Value() float64 {
	return f.norm
}

func (f *FinalError) Reset() {
	f.norm = 0
}
