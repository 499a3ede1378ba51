package feature

import (
	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/geom"
)

// Point3D is a 3-D point (X, Y, Z) expressed in the camera frame.
type Point3D struct {
	base
}

func NewPoint3D() *Point3D {
	return &Point3D{base: newBase(3)}
}

func (p *Point3D) Kind() Kind     { return KindPoint3D }
func (p *Point3D) Dimension() int { return 3 }

func (p *Point3D) Set(x, y, z float64) {
	p.s[0], p.s[1], p.s[2] = x, y, z
}

func (p *Point3D) Interaction(sel Selector) (*mat.Dense, error) {
	sk := geom.Skew([3]float64{p.s[0], p.s[1], p.s[2]})
	full := mat.NewDense(3, 6, nil)
	for i := 0; i < 3; i++ {
		full.Set(i, i, -1)
		for j := 0; j < 3; j++ {
			full.Set(i, j+3, sk[i][j])
		}
	}
	return selectRows(full, sel, 3)
}

func (p *Point3D) Error(desired Feature, sel Selector) (geom.Vector, error) {
	return subError(p, desired, sel)
}

func (p *Point3D) Blank() Feature {
	return &Point3D{base: newBase(3)}
}
