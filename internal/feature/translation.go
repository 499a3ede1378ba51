package feature

import (
	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/geom"
)

// Translation is the 3-D translation part of a relative pose. Built
// from a homogeneous transform, it keeps the rotation around because
// the DesiredFromCurrent interaction matrix needs it.
type Translation struct {
	base
	frame Frame
	rot   geom.Rotation
}

// NewTranslation returns a zero translation feature for the given frame
// convention.
func NewTranslation(frame Frame) *Translation {
	return &Translation{base: newBase(3), frame: frame, rot: geom.IdentityRotation()}
}

func (t *Translation) Kind() Kind     { return KindTranslation }
func (t *Translation) Dimension() int { return 3 }
func (t *Translation) Frame() Frame   { return t.frame }

// BuildFrom extracts the translation from a relative pose following the
// feature's frame convention.
func (t *Translation) BuildFrom(m geom.Transform) {
	t.s[0], t.s[1], t.s[2] = m.T[0], m.T[1], m.T[2]
	t.rot = m.R
}

func (t *Translation) Interaction(sel Selector) (*mat.Dense, error) {
	full := mat.NewDense(3, 6, nil)
	switch t.frame {
	case DesiredFromCurrent:
		// s = cd_t_c moves with the camera rotated into the desired
		// frame: L = [R 0].
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				full.Set(i, j, t.rot[i][j])
			}
		}
	default:
		// s is a fixed point expressed in the moving camera frame:
		// L = [-I skew(t)].
		sk := geom.Skew([3]float64{t.s[0], t.s[1], t.s[2]})
		for i := 0; i < 3; i++ {
			full.Set(i, i, -1)
			for j := 0; j < 3; j++ {
				full.Set(i, j+3, sk[i][j])
			}
		}
	}
	return selectRows(full, sel, 3)
}

func (t *Translation) Error(desired Feature, sel Selector) (geom.Vector, error) {
	return subError(t, desired, sel)
}

func (t *Translation) Blank() Feature {
	return &Translation{base: newBase(3), frame: t.frame, rot: geom.IdentityRotation()}
}
