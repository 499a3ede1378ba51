package servo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstantGain(t *testing.T) {
	g := ConstantGain(2.5)
	assert.Equal(t, 2.5, g.Value(0))
	assert.Equal(t, 2.5, g.Value(100))
}

func TestAdaptiveGainAsymptotics(t *testing.T) {
	g := NewAdaptiveGain(1.0, 0.1, 30.0)

	assert.InDelta(t, 1.0, g.Value(0), 1e-9, "lambda(0) must equal lambda0")
	assert.InDelta(t, 0.1, g.Value(50.0/30.0), 1e-3, "lambda at 50/slope must reach lambdaInf")
}

func TestAdaptiveGainMonotone(t *testing.T) {
	g := NewAdaptiveGain(4.0, 0.4, 30.0)

	prev := g.Value(0)
	for _, x := range []float64{0.01, 0.05, 0.2, 0.5, 1, 2} {
		cur := g.Value(x)
		assert.Less(t, cur, prev, "gain must shrink as the error grows (x=%v)", x)
		prev = cur
	}
	assert.Greater(t, prev, g.Inf-1e-12)
}

func TestAdaptiveGainDegenerateSpan(t *testing.T) {
	g := NewAdaptiveGain(0.7, 0.7, 30.0)
	assert.Equal(t, 0.7, g.Value(0))
	assert.Equal(t, 0.7, g.Value(10))
}
