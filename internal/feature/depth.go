package feature

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/geom"
)

// Depth is the scalar feature s = log(Z/Z*), the log ratio of the
// current to the desired depth of an image point. It carries the image
// coordinates of the point, which its interaction matrix needs.
type Depth struct {
	base
	x, y, z float64
}

// NewDepth returns a depth feature at the image origin with unit depth
// and zero log ratio.
func NewDepth() *Depth {
	return &Depth{base: newBase(1), z: 1}
}

func (d *Depth) Kind() Kind     { return KindDepth }
func (d *Depth) Dimension() int { return 1 }

// Set updates the point coordinates, its depth and the log-ratio value.
func (d *Depth) Set(x, y, z, logZOverZStar float64) {
	d.x, d.y, d.z = x, y, z
	d.s[0] = logZOverZStar
}

func (d *Depth) Interaction(sel Selector) (*mat.Dense, error) {
	if d.z <= 0 {
		return nil, fmt.Errorf("%w: Z = %v", ErrInvalidDepth, d.z)
	}
	full := mat.NewDense(1, 6, []float64{
		0, 0, -1 / d.z, -d.y, d.x, 0,
	})
	return selectRows(full, sel, 1)
}

func (d *Depth) Error(desired Feature, sel Selector) (geom.Vector, error) {
	return subError(d, desired, sel)
}

func (d *Depth) Blank() Feature {
	return &Depth{base: newBase(1), x: d.x, y: d.y, z: d.z}
}
