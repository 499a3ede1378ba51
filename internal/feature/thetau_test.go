package feature

import (
	"math"
	"testing"

	"github.com/davrolle/vservo/internal/geom"
)

// The rotation block must map theta-u onto itself (up to the convention
// sign), since skew(u)*u = 0. This is what makes the control law rotate
// straight about the error axis.
func TestRotationJacobianFixesAxis(t *testing.T) {
	tu := geom.Vector{0.3, -0.5, 0.7}

	for _, tc := range []struct {
		frame Frame
		sign  float64
	}{
		{DesiredFromCurrent, 1},
		{CurrentFromDesired, -1},
	} {
		lw := rotationJacobian(tu, tc.frame)
		for i := 0; i < 3; i++ {
			got := lw[i][0]*tu[0] + lw[i][1]*tu[1] + lw[i][2]*tu[2]
			if math.Abs(got-tc.sign*tu[i]) > 1e-12 {
				t.Errorf("%s: (Lw*tu)[%d] = %v, want %v", tc.frame, i, got, tc.sign*tu[i])
			}
		}
	}
}

func TestRotationJacobianAtZero(t *testing.T) {
	lw := rotationJacobian(geom.Vector{0, 0, 0}, DesiredFromCurrent)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(lw[i][j]-want) > 1e-12 {
				t.Errorf("Lw[%d][%d] = %v, want %v", i, j, lw[i][j], want)
			}
		}
	}
}

func TestThetaUInteractionShape(t *testing.T) {
	r := NewThetaU(CurrentFromDesired)
	r.BuildFrom(geom.TransformFromPose(0.5, 0.5, 0.5, 0.1, -0.2, 0.3))

	l, err := r.Interaction(SelectAll)
	if err != nil {
		t.Fatal(err)
	}
	// Translation columns are zero: pure rotation feature.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if l.At(i, j) != 0 {
				t.Errorf("translation block [%d][%d] = %v, want 0", i, j, l.At(i, j))
			}
		}
	}
}

func TestThetaUErrorZeroDesired(t *testing.T) {
	r := NewThetaU(CurrentFromDesired)
	r.BuildFromRotation(geom.RotationFromThetaU(geom.Vector{0.2, -0.1, 0.4}))

	e, err := r.Error(r.Blank(), SelectAll)
	if err != nil {
		t.Fatal(err)
	}
	s := r.Values()
	for i := 0; i < 3; i++ {
		if math.Abs(e[i]-s[i]) > 1e-12 {
			t.Errorf("error[%d] = %v, want %v", i, e[i], s[i])
		}
	}
}

// With a non-zero desired rotation the error must come from composing
// the rotations, not from subtracting angle vectors.
func TestThetaUErrorMinimalRepresentation(t *testing.T) {
	cur := NewThetaU(CurrentFromDesired)
	cur.BuildFromRotation(geom.RotationFromThetaU(geom.Vector{0, 0.9, 0}))
	des := NewThetaU(CurrentFromDesired)
	des.BuildFromRotation(geom.RotationFromThetaU(geom.Vector{0.4, 0, 0}))

	e, err := cur.Error(des, SelectAll)
	if err != nil {
		t.Fatal(err)
	}

	want := geom.RotationFromThetaU(geom.Vector{0, 0.9, 0}).
		Mul(geom.RotationFromThetaU(geom.Vector{0.4, 0, 0}).Transpose()).
		ThetaU()
	naive := geom.Vector{-0.4, 0.9, 0}

	for i := 0; i < 3; i++ {
		if math.Abs(e[i]-want[i]) > 1e-12 {
			t.Errorf("error[%d] = %v, want %v", i, e[i], want[i])
		}
	}
	// Sanity: the composed error differs from naive subtraction here.
	diff := 0.0
	for i := 0; i < 3; i++ {
		diff += math.Abs(want[i] - naive[i])
	}
	if diff < 1e-3 {
		t.Fatal("test rotations too close to commuting, composed error equals naive subtraction")
	}
}
