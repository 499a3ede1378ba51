package geom

import "math"

// Vector is a plain dense vector. Task errors, velocity commands and
// theta-u rotations all travel as Vectors.
type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// Norm returns the Euclidean norm.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v Vector) Add(w Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i] + w[i]
	}
	return r
}

func (v Vector) Sub(w Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i] - w[i]
	}
	return r
}

func (v Vector) Scale(a float64) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = a * v[i]
	}
	return r
}
