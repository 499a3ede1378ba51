package geom

import (
	"math"
	"testing"
)

func TestTransformInverse(t *testing.T) {
	m := TransformFromPose(0.1, -0.2, 0.5, 0.3, 0.2, -0.4)
	id := m.Mul(m.Inverse())

	pose := id.Pose()
	for i, x := range pose {
		if math.Abs(x) > 1e-12 {
			t.Errorf("m*m^-1 pose[%d] = %v, want 0", i, x)
		}
	}
}

func TestTransformApply(t *testing.T) {
	// Quarter turn about z then shift along x.
	m := TransformFromPose(1, 0, 0, 0, 0, math.Pi/2)
	p := m.Apply([3]float64{1, 0, 0})

	want := [3]float64{1, 1, 0}
	for i := 0; i < 3; i++ {
		if math.Abs(p[i]-want[i]) > 1e-12 {
			t.Errorf("apply[%d] = %v, want %v", i, p[i], want[i])
		}
	}
}

func TestTwistMatrixBlocks(t *testing.T) {
	m := TransformFromPose(0.2, -0.1, 0.4, 0, 0, 0)
	w := m.TwistMatrix()

	// Rotation blocks are identity, lower-left is zero, upper-right is
	// skew(T) for an identity rotation.
	sk := Skew(m.T)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			eye := 0.0
			if i == j {
				eye = 1.0
			}
			if math.Abs(w.At(i, j)-eye) > 1e-12 {
				t.Errorf("upper-left[%d][%d] = %v", i, j, w.At(i, j))
			}
			if math.Abs(w.At(i+3, j+3)-eye) > 1e-12 {
				t.Errorf("lower-right[%d][%d] = %v", i, j, w.At(i+3, j+3))
			}
			if w.At(i+3, j) != 0 {
				t.Errorf("lower-left[%d][%d] = %v, want 0", i, j, w.At(i+3, j))
			}
			if math.Abs(w.At(i, j+3)-sk[i][j]) > 1e-12 {
				t.Errorf("upper-right[%d][%d] = %v, want %v", i, j, w.At(i, j+3), sk[i][j])
			}
		}
	}
}

func TestTwistMatrixMapsAngularByRotationOnly(t *testing.T) {
	m := TransformFromPose(0.3, 0.1, -0.2, 0.2, -0.1, 0.3)
	w := m.TwistMatrix()

	// A pure angular twist stays angular up to rotation.
	wb := Vector{0, 0, 0, 0.1, -0.2, 0.3}
	var out [6]float64
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			out[i] += w.At(i, j) * wb[j]
		}
	}
	rw := m.R.Apply([3]float64{wb[3], wb[4], wb[5]})
	sk := Skew(m.T)
	for i := 0; i < 3; i++ {
		// Linear part picks up skew(T)*R*omega.
		want := sk[i][0]*rw[0] + sk[i][1]*rw[1] + sk[i][2]*rw[2]
		if math.Abs(out[i]-want) > 1e-12 {
			t.Errorf("linear[%d] = %v, want %v", i, out[i], want)
		}
		if math.Abs(out[i+3]-rw[i]) > 1e-12 {
			t.Errorf("angular[%d] = %v, want %v", i, out[i+3], rw[i])
		}
	}
}

func TestExpZeroTwist(t *testing.T) {
	m := Exp(Vector{0, 0, 0, 0, 0, 0}, 0.04)
	pose := m.Pose()
	for i, x := range pose {
		if math.Abs(x) > 1e-12 {
			t.Errorf("pose[%d] = %v, want 0", i, x)
		}
	}
}

func TestExpPureTranslation(t *testing.T) {
	m := Exp(Vector{0.5, -0.25, 1.0, 0, 0, 0}, 0.1)
	want := [3]float64{0.05, -0.025, 0.1}
	for i := 0; i < 3; i++ {
		if math.Abs(m.T[i]-want[i]) > 1e-12 {
			t.Errorf("T[%d] = %v, want %v", i, m.T[i], want[i])
		}
	}
}

func TestExpPureRotation(t *testing.T) {
	m := Exp(Vector{0, 0, 0, 0, 0, 1.0}, 0.2)
	tu := m.R.ThetaU()
	if math.Abs(tu[2]-0.2) > 1e-12 || math.Abs(tu[0]) > 1e-12 || math.Abs(tu[1]) > 1e-12 {
		t.Errorf("theta-u = %v, want (0,0,0.2)", tu)
	}
	for i := 0; i < 3; i++ {
		if math.Abs(m.T[i]) > 1e-12 {
			t.Errorf("T[%d] = %v, want 0", i, m.T[i])
		}
	}
}
