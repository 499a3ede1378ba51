package feature

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/geom"
)

// Pose stacks a translation and a theta-u rotation into one 6-D
// feature, the usual parametrization for pose-based servoing.
type Pose struct {
	base
	frame Frame
	rot   geom.Rotation
}

// NewPose returns an identity pose feature for the given frame
// convention.
func NewPose(frame Frame) *Pose {
	return &Pose{base: newBase(6), frame: frame, rot: geom.IdentityRotation()}
}

func (p *Pose) Kind() Kind     { return KindPose }
func (p *Pose) Dimension() int { return 6 }
func (p *Pose) Frame() Frame   { return p.frame }

// BuildFrom fills the feature from a relative pose: components 0..2 are
// the translation, 3..5 the theta-u rotation.
func (p *Pose) BuildFrom(m geom.Transform) {
	tu := m.R.ThetaU()
	p.s[0], p.s[1], p.s[2] = m.T[0], m.T[1], m.T[2]
	p.s[3], p.s[4], p.s[5] = tu[0], tu[1], tu[2]
	p.rot = m.R
}

func (p *Pose) Interaction(sel Selector) (*mat.Dense, error) {
	full := mat.NewDense(6, 6, nil)
	switch p.frame {
	case DesiredFromCurrent:
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				full.Set(i, j, p.rot[i][j])
			}
		}
	default:
		sk := geom.Skew([3]float64{p.s[0], p.s[1], p.s[2]})
		for i := 0; i < 3; i++ {
			full.Set(i, i, -1)
			for j := 0; j < 3; j++ {
				full.Set(i, j+3, sk[i][j])
			}
		}
	}
	lw := rotationJacobian(geom.Vector{p.s[3], p.s[4], p.s[5]}, p.frame)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			full.Set(i+3, j+3, lw[i][j])
		}
	}
	return selectRows(full, sel, 6)
}

// Error subtracts translations literally and composes rotations for the
// theta-u half.
func (p *Pose) Error(desired Feature, sel Selector) (geom.Vector, error) {
	if err := checkPair(p, desired, sel); err != nil {
		return nil, err
	}
	d, ok := desired.(*Pose)
	if !ok {
		return nil, fmt.Errorf("%w: desired is not a pose feature", ErrKindMismatch)
	}
	s := p.Values()
	sd := d.Values()
	full := make(geom.Vector, 6)
	for i := 0; i < 3; i++ {
		full[i] = s[i] - sd[i]
	}
	re := rotationError(geom.Vector{s[3], s[4], s[5]}, geom.Vector{sd[3], sd[4], sd[5]})
	copy(full[3:], re)

	rows := sel.Rows(6)
	out := make(geom.Vector, len(rows))
	for i, r := range rows {
		out[i] = full[r]
	}
	return out, nil
}

func (p *Pose) Blank() Feature {
	return &Pose{base: newBase(6), frame: p.frame, rot: geom.IdentityRotation()}
}
