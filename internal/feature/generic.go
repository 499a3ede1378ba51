package feature

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/geom"
)

// Generic is a user-defined feature of fixed dimension. The caller
// supplies both the values and the interaction matrix; the kind exists
// so producers can feed quantities the built-in kinds do not cover.
type Generic struct {
	base
	l *mat.Dense
}

// NewGeneric returns a zero generic feature of the given dimension with
// no interaction matrix.
func NewGeneric(dim int) *Generic {
	return &Generic{base: newBase(dim)}
}

func (g *Generic) Kind() Kind     { return KindGeneric }
func (g *Generic) Dimension() int { return len(g.s) }

// SetValues replaces the feature vector.
func (g *Generic) SetValues(v geom.Vector) error {
	if len(v) != len(g.s) {
		return fmt.Errorf("%w: got %d values for dimension %d", ErrDimensionMismatch, len(v), len(g.s))
	}
	copy(g.s, v)
	return nil
}

// SetInteraction replaces the interaction matrix, which must be
// dimension x 6.
func (g *Generic) SetInteraction(l *mat.Dense) error {
	r, c := l.Dims()
	if r != len(g.s) || c != 6 {
		return fmt.Errorf("%w: interaction is %dx%d, want %dx6", ErrDimensionMismatch, r, c, len(g.s))
	}
	g.l = mat.DenseCopyOf(l)
	return nil
}

func (g *Generic) Interaction(sel Selector) (*mat.Dense, error) {
	if g.l == nil {
		return nil, ErrNoInteraction
	}
	return selectRows(g.l, sel, len(g.s))
}

func (g *Generic) Error(desired Feature, sel Selector) (geom.Vector, error) {
	return subError(g, desired, sel)
}

func (g *Generic) Blank() Feature {
	b := &Generic{base: newBase(len(g.s))}
	if g.l != nil {
		b.l = mat.DenseCopyOf(g.l)
	}
	return b
}
