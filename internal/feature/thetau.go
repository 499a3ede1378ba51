package feature

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/geom"
)

// ThetaU is the minimal axis-angle representation of the rotation part
// of a relative pose, s = theta*u. Only CurrentFromDesired and
// DesiredFromCurrent conventions apply.
type ThetaU struct {
	base
	frame Frame
}

// NewThetaU returns a zero rotation feature for the given frame
// convention.
func NewThetaU(frame Frame) *ThetaU {
	return &ThetaU{base: newBase(3), frame: frame}
}

func (r *ThetaU) Kind() Kind     { return KindRotation }
func (r *ThetaU) Dimension() int { return 3 }
func (r *ThetaU) Frame() Frame   { return r.frame }

// BuildFrom extracts theta-u from a relative pose.
func (r *ThetaU) BuildFrom(m geom.Transform) {
	r.BuildFromRotation(m.R)
}

// BuildFromRotation extracts theta-u from a rotation matrix.
func (r *ThetaU) BuildFromRotation(rot geom.Rotation) {
	tu := rot.ThetaU()
	r.s[0], r.s[1], r.s[2] = tu[0], tu[1], tu[2]
}

func (r *ThetaU) Interaction(sel Selector) (*mat.Dense, error) {
	lw := rotationJacobian(geom.Vector{r.s[0], r.s[1], r.s[2]}, r.frame)
	full := mat.NewDense(3, 6, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			full.Set(i, j+3, lw[i][j])
		}
	}
	return selectRows(full, sel, 3)
}

// rotationJacobian returns the 3x3 block relating d(theta*u)/dt to the
// angular velocity: Lw = I +/- (theta/2)*skew(u) +
// (1 - sinc(theta)/sinc^2(theta/2))*skew(u)^2, negated as a whole for
// the CurrentFromDesired convention where the feature decreases when
// the camera rotates toward the goal. In both conventions
// Lw * (theta*u) = +/- theta*u, so the control law reduces the rotation
// along its own axis.
func rotationJacobian(tu geom.Vector, frame Frame) [3][3]float64 {
	theta := tu.Norm()

	var lw [3][3]float64
	for i := 0; i < 3; i++ {
		lw[i][i] = 1
	}
	if theta > 1e-12 {
		u := [3]float64{tu[0] / theta, tu[1] / theta, tu[2] / theta}
		sk := geom.Skew(u)
		half := theta / 2.0
		if frame == CurrentFromDesired {
			half = -half
		}
		k := 1.0 - geom.Sinc(theta)/sqf(geom.Sinc(theta/2.0))
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				sk2 := 0.0
				for l := 0; l < 3; l++ {
					sk2 += sk[i][l] * sk[l][j]
				}
				lw[i][j] += half*sk[i][j] + k*sk2
			}
		}
	}
	if frame == CurrentFromDesired {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				lw[i][j] = -lw[i][j]
			}
		}
	}
	return lw
}

func sqf(x float64) float64 { return x * x }

// Error composes the two rotations and extracts theta-u of the
// remainder, so rotations never subtract component-wise. With a zero
// desired feature this reduces to the feature value itself.
func (r *ThetaU) Error(desired Feature, sel Selector) (geom.Vector, error) {
	if err := checkPair(r, desired, sel); err != nil {
		return nil, err
	}
	d, ok := desired.(*ThetaU)
	if !ok {
		return nil, fmt.Errorf("%w: desired is not a theta-u feature", ErrKindMismatch)
	}
	e := rotationError(r.Values(), d.Values())
	rows := sel.Rows(3)
	out := make(geom.Vector, len(rows))
	for i, row := range rows {
		out[i] = e[row]
	}
	return out, nil
}

// rotationError returns theta-u of R(cur)*R(des)^T.
func rotationError(cur, des geom.Vector) geom.Vector {
	rc := geom.RotationFromThetaU(cur)
	rd := geom.RotationFromThetaU(des)
	return rc.Mul(rd.Transpose()).ThetaU()
}

func (r *ThetaU) Blank() Feature {
	return &ThetaU{base: newBase(3), frame: r.frame}
}
