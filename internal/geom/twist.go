package geom

import "gonum.org/v1/gonum/mat"

// TwistMatrix returns the 6x6 velocity-twist matrix of the transform,
//
//	[ R  skew(T)*R ]
//	[ 0  R         ]
//
// which maps a velocity twist (linear, angular) expressed in the source
// frame to the same twist expressed in the destination frame.
func (m Transform) TwistMatrix() *mat.Dense {
	w := mat.NewDense(6, 6, nil)
	sk := Skew(m.T)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			w.Set(i, j, m.R[i][j])
			w.Set(i+3, j+3, m.R[i][j])
			skr := 0.0
			for k := 0; k < 3; k++ {
				skr += sk[i][k] * m.R[k][j]
			}
			w.Set(i, j+3, skr)
		}
	}
	return w
}
