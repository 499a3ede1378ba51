package feature

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/geom"
)

// Point is a 2-D image point (x, y) in normalized coordinates. Its
// interaction matrix needs the point depth Z in the camera frame, which
// is not observable from the image and must be supplied by the caller.
type Point struct {
	base
	z float64
}

// NewPoint returns a point feature at the origin with unit depth.
func NewPoint() *Point {
	return &Point{base: newBase(2), z: 1}
}

func (p *Point) Kind() Kind     { return KindPoint }
func (p *Point) Dimension() int { return 2 }

// Set updates the image coordinates and the depth at once.
func (p *Point) Set(x, y, z float64) {
	p.s[0], p.s[1] = x, y
	p.z = z
}

// SetXY updates the image coordinates, leaving the depth untouched.
func (p *Point) SetXY(x, y float64) {
	p.s[0], p.s[1] = x, y
}

// SetDepth updates the depth used by Interaction.
func (p *Point) SetDepth(z float64) { p.z = z }

func (p *Point) X() float64     { return p.s[0] }
func (p *Point) Y() float64     { return p.s[1] }
func (p *Point) Depth() float64 { return p.z }

func (p *Point) Interaction(sel Selector) (*mat.Dense, error) {
	if p.z <= 0 {
		return nil, fmt.Errorf("%w: Z = %v", ErrInvalidDepth, p.z)
	}
	x, y, zi := p.s[0], p.s[1], 1.0/p.z
	full := mat.NewDense(2, 6, []float64{
		-zi, 0, x * zi, x * y, -(1 + x*x), y,
		0, -zi, y * zi, 1 + y*y, -x * y, -x,
	})
	return selectRows(full, sel, 2)
}

func (p *Point) Error(desired Feature, sel Selector) (geom.Vector, error) {
	return subError(p, desired, sel)
}

func (p *Point) Blank() Feature {
	return &Point{base: newBase(2), z: p.z}
}
