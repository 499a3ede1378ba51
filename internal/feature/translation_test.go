package feature

import (
	"math"
	"testing"

	"github.com/davrolle/vservo/internal/geom"
)

func TestTranslationCurrentFromDesired(t *testing.T) {
	tr := NewTranslation(CurrentFromDesired)
	tr.BuildFrom(geom.TransformFromPose(0.1, -0.2, 0.3, 0.4, 0, 0))

	l, err := tr.Interaction(SelectAll)
	if err != nil {
		t.Fatal(err)
	}

	// [-I | skew(t)] regardless of the rotation part.
	sk := geom.Skew([3]float64{0.1, -0.2, 0.3})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			left := 0.0
			if i == j {
				left = -1
			}
			if math.Abs(l.At(i, j)-left) > 1e-12 {
				t.Errorf("left[%d][%d] = %v, want %v", i, j, l.At(i, j), left)
			}
			if math.Abs(l.At(i, j+3)-sk[i][j]) > 1e-12 {
				t.Errorf("right[%d][%d] = %v, want %v", i, j, l.At(i, j+3), sk[i][j])
			}
		}
	}
}

func TestTranslationDesiredFromCurrent(t *testing.T) {
	m := geom.TransformFromPose(0.1, -0.2, 0.3, 0, 0, math.Pi/4)
	tr := NewTranslation(DesiredFromCurrent)
	tr.BuildFrom(m)

	l, err := tr.Interaction(SelectAll)
	if err != nil {
		t.Fatal(err)
	}

	// [R | 0].
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(l.At(i, j)-m.R[i][j]) > 1e-12 {
				t.Errorf("left[%d][%d] = %v, want %v", i, j, l.At(i, j), m.R[i][j])
			}
			if l.At(i, j+3) != 0 {
				t.Errorf("right[%d][%d] = %v, want 0", i, j, l.At(i, j+3))
			}
		}
	}
}

func TestTranslationValuesAndError(t *testing.T) {
	tr := NewTranslation(CurrentFromObject)
	tr.BuildFrom(geom.TransformFromPose(1, 2, 3, 0.1, 0.2, 0.3))

	v := tr.Values()
	if v[0] != 1 || v[1] != 2 || v[2] != 3 {
		t.Errorf("values = %v", v)
	}

	e, err := tr.Error(tr.Blank(), SelectAll)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if e[i] != v[i] {
			t.Errorf("error[%d] = %v, want %v", i, e[i], v[i])
		}
	}
}
