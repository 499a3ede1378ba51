package geom

import "math"

// Rotation is a 3x3 rotation matrix, row major.
type Rotation [3][3]float64

// IdentityRotation returns the identity rotation.
func IdentityRotation() Rotation {
	return Rotation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mul composes two rotations: r followed by expressing s in r's frame,
// i.e. the matrix product r*s.
func (r Rotation) Mul(s Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += r[i][k] * s[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Transpose returns the transpose, which for a rotation is its inverse.
func (r Rotation) Transpose() Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[j][i]
		}
	}
	return out
}

// Apply rotates a 3-vector.
func (r Rotation) Apply(p [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = r[i][0]*p[0] + r[i][1]*p[1] + r[i][2]*p[2]
	}
	return out
}

// Skew returns the skew-symmetric cross-product matrix of v, so that
// Skew(v)*w = v x w.
func Skew(v [3]float64) [3][3]float64 {
	return [3][3]float64{
		{0, -v[2], v[1]},
		{v[2], 0, -v[0]},
		{-v[1], v[0], 0},
	}
}

// Sinc returns sin(x)/x, stable near zero.
func Sinc(x float64) float64 {
	if math.Abs(x) < 1e-8 {
		return 1.0 - x*x/6.0
	}
	return math.Sin(x) / x
}

// mcosc returns (1-cos(x))/x^2, stable near zero.
func mcosc(x float64) float64 {
	if math.Abs(x) < 1e-8 {
		return 0.5 - x*x/24.0
	}
	return (1.0 - math.Cos(x)) / (x * x)
}

// msinc returns (x-sin(x))/x^3, stable near zero.
func msinc(x float64) float64 {
	if math.Abs(x) < 1e-8 {
		return 1.0/6.0 - x*x/120.0
	}
	return (x - math.Sin(x)) / (x * x * x)
}

// RotationFromThetaU builds the rotation matrix for the axis-angle
// vector tu (axis scaled by the angle in radians) via the Rodrigues
// formula. tu must have length 3.
func RotationFromThetaU(tu Vector) Rotation {
	theta := tu.Norm()
	c := math.Cos(theta)
	s := Sinc(theta)
	m := mcosc(theta)

	v0, v1, v2 := tu[0], tu[1], tu[2]
	return Rotation{
		{c + m*v0*v0, m*v0*v1 - s*v2, m*v0*v2 + s*v1},
		{m*v0*v1 + s*v2, c + m*v1*v1, m*v1*v2 - s*v0},
		{m*v0*v2 - s*v1, m*v1*v2 + s*v0, c + m*v2*v2},
	}
}

// ThetaU extracts the minimal axis-angle representation of r. The
// returned vector has length 3 and norm equal to the rotation angle in
// [0, pi].
func (r Rotation) ThetaU() Vector {
	s := math.Sqrt(sq(r[2][1]-r[1][2])+sq(r[0][2]-r[2][0])+sq(r[1][0]-r[0][1])) / 2.0
	c := (r[0][0] + r[1][1] + r[2][2] - 1.0) / 2.0
	theta := math.Atan2(s, c)

	if s > 1e-9 || c > 0 {
		k := 2.0 * Sinc(theta)
		return Vector{
			(r[2][1] - r[1][2]) / k,
			(r[0][2] - r[2][0]) / k,
			(r[1][0] - r[0][1]) / k,
		}
	}

	// Angle near pi: R = 2*u*u^T - I, recover u from the strongest
	// column of (R+I)/2 and fix the magnitude to theta.
	var b [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			b[i][j] = r[i][j] / 2.0
			if i == j {
				b[i][j] += 0.5
			}
		}
	}
	k := 0
	if b[1][1] > b[k][k] {
		k = 1
	}
	if b[2][2] > b[k][k] {
		k = 2
	}
	d := math.Sqrt(b[k][k])
	return Vector{
		theta * b[0][k] / d,
		theta * b[1][k] / d,
		theta * b[2][k] / d,
	}
}

func sq(x float64) float64 { return x * x }
