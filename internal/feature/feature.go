package feature

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/geom"
)

// Kind identifies a feature type.
type Kind int

const (
	KindPoint Kind = iota + 1
	KindPoint3D
	KindDepth
	KindTranslation
	KindRotation
	KindPose
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindPoint3D:
		return "point3d"
	case KindDepth:
		return "depth"
	case KindTranslation:
		return "translation"
	case KindRotation:
		return "rotation"
	case KindPose:
		return "pose"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Feature is the capability set every servo feature provides. Values
// are owned by the feature and only mutated through its setters; the
// engine reads them and never writes back.
type Feature interface {
	Kind() Kind
	Dimension() int

	// Values returns a copy of the feature vector s.
	Values() geom.Vector

	// Interaction returns the selected rows of the interaction matrix,
	// Count(sel) x 6, computed from the feature's current state.
	Interaction(sel Selector) (*mat.Dense, error)

	// Error returns s - s_desired for the selected components. Kinds
	// with a rotational part use the minimal-representation difference
	// instead of literal subtraction.
	Error(desired Feature, sel Selector) (geom.Vector, error)

	// Blank returns a new zero-valued feature of the same kind and
	// dimension, keeping auxiliary parameters such as depth or frame
	// convention.
	Blank() Feature
}

// base carries the feature vector shared by every kind.
type base struct {
	s        geom.Vector
	released bool
}

func newBase(dim int) base {
	return base{s: make(geom.Vector, dim)}
}

func (b *base) Values() geom.Vector { return b.s.Clone() }

// Release zeroes the feature vector and marks the feature unusable.
// Tasks call it on the desired features they own when killed.
func (b *base) Release() {
	for i := range b.s {
		b.s[i] = 0
	}
	b.released = true
}

// Valid reports whether the feature is still usable, i.e. has not been
// released by a task that owned it.
func (b *base) Valid() bool { return !b.released }

// checkPair validates a current/desired pair and the selector against
// the current feature's dimension.
func checkPair(cur, des Feature, sel Selector) error {
	if cur.Kind() != des.Kind() {
		return fmt.Errorf("%w: %s vs %s", ErrKindMismatch, cur.Kind(), des.Kind())
	}
	if cur.Dimension() != des.Dimension() {
		return fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, cur.Dimension(), des.Dimension())
	}
	return sel.Validate(cur.Dimension())
}

// subError is the literal component-wise error used by every kind
// without a rotational part.
func subError(cur, des Feature, sel Selector) (geom.Vector, error) {
	if err := checkPair(cur, des, sel); err != nil {
		return nil, err
	}
	s := cur.Values()
	sd := des.Values()
	rows := sel.Rows(cur.Dimension())
	e := make(geom.Vector, len(rows))
	for i, r := range rows {
		e[i] = s[r] - sd[r]
	}
	return e, nil
}

// selectRows extracts the selected rows of a full dim x 6 interaction
// matrix.
func selectRows(full *mat.Dense, sel Selector, dim int) (*mat.Dense, error) {
	if err := sel.Validate(dim); err != nil {
		return nil, err
	}
	rows := sel.Rows(dim)
	out := mat.NewDense(len(rows), 6, nil)
	for i, r := range rows {
		for j := 0; j < 6; j++ {
			out.Set(i, j, full.At(r, j))
		}
	}
	return out, nil
}
