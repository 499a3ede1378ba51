package servo

import "math"

// Gain maps the norm of the task error to the control gain lambda.
type Gain interface {
	Value(errNorm float64) float64
}

// ConstantGain is a fixed lambda, whatever the error.
type ConstantGain float64

func (g ConstantGain) Value(float64) float64 { return float64(g) }

// AdaptiveGain follows
//
//	lambda(x) = (zero - inf) * exp(-slope*x/(zero - inf)) + inf
//
// so lambda(0) = zero, lambda(x) tends to inf for large errors, and
// slope is the absolute slope at x = 0.
type AdaptiveGain struct {
	Zero  float64
	Inf   float64
	Slope float64
}

// NewAdaptiveGain builds an adaptive gain from its value at zero error,
// its value at infinity and its slope at zero.
func NewAdaptiveGain(zero, inf, slope float64) AdaptiveGain {
	return AdaptiveGain{Zero: zero, Inf: inf, Slope: slope}
}

func (g AdaptiveGain) Value(errNorm float64) float64 {
	span := g.Zero - g.Inf
	if span == 0 {
		return g.Zero
	}
	return span*math.Exp(-g.Slope*errNorm/span) + g.Inf
}
