package geom

// Transform is a rigid-body transform (element of SE(3)): rotation R
// and translation T, mapping points of the source frame into the
// destination frame as R*p + T.
type Transform struct {
	R Rotation
	T [3]float64
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	return Transform{R: IdentityRotation()}
}

// NewTransform builds a transform from a rotation and a translation.
func NewTransform(r Rotation, t [3]float64) Transform {
	return Transform{R: r, T: t}
}

// TransformFromPose builds a transform from a 6-component pose vector:
// translation (tx, ty, tz) followed by a theta-u rotation
// (tux, tuy, tuz) in radians.
func TransformFromPose(tx, ty, tz, tux, tuy, tuz float64) Transform {
	return Transform{
		R: RotationFromThetaU(Vector{tux, tuy, tuz}),
		T: [3]float64{tx, ty, tz},
	}
}

// Pose returns the 6-component pose vector (translation, theta-u).
func (m Transform) Pose() Vector {
	tu := m.R.ThetaU()
	return Vector{m.T[0], m.T[1], m.T[2], tu[0], tu[1], tu[2]}
}

// Mul composes transforms: (m.Mul(n))*p == m*(n*p).
func (m Transform) Mul(n Transform) Transform {
	return Transform{
		R: m.R.Mul(n.R),
		T: add3(m.R.Apply(n.T), m.T),
	}
}

// Inverse returns the inverse transform.
func (m Transform) Inverse() Transform {
	rt := m.R.Transpose()
	t := rt.Apply(m.T)
	return Transform{
		R: rt,
		T: [3]float64{-t[0], -t[1], -t[2]},
	}
}

// Apply maps a point of the source frame into the destination frame.
func (m Transform) Apply(p [3]float64) [3]float64 {
	return add3(m.R.Apply(p), m.T)
}

// Exp integrates the twist v = (vx, vy, vz, wx, wy, wz) applied for dt
// seconds and returns the resulting displacement as a transform: the
// pose of the moved frame expressed in the frame it started from.
func Exp(v Vector, dt float64) Transform {
	w := Vector{v[3] * dt, v[4] * dt, v[5] * dt}
	theta := w.Norm()
	r := RotationFromThetaU(w)

	// Translation part p = V * (linear velocity * dt), with
	// V = I + mcosc(theta)*[w]x + msinc(theta)*[w]x^2.
	sk := Skew([3]float64{w[0], w[1], w[2]})
	a := mcosc(theta)
	b := msinc(theta)
	var vm [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sk2 := 0.0
			for k := 0; k < 3; k++ {
				sk2 += sk[i][k] * sk[k][j]
			}
			vm[i][j] = a*sk[i][j] + b*sk2
			if i == j {
				vm[i][j] += 1.0
			}
		}
	}
	u := [3]float64{v[0] * dt, v[1] * dt, v[2] * dt}
	var p [3]float64
	for i := 0; i < 3; i++ {
		p[i] = vm[i][0]*u[0] + vm[i][1]*u[1] + vm[i][2]*u[2]
	}
	return Transform{R: r, T: p}
}

func add3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}
