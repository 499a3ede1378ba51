// Package pinv computes Moore-Penrose pseudo-inverses by singular value
// decomposition, with explicit rank control. It is the single place the
// engine inverts anything.
package pinv

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultEpsilon is the relative singular-value cutoff used when the
// caller passes a non-positive epsilon.
const DefaultEpsilon = 1e-6

var ErrFactorization = errors.New("pinv: svd factorization failed")

// Result holds the pseudo-inverse of an m x n matrix together with the
// numerical-rank information of the decomposition.
type Result struct {
	// Inverse is the n x m pseudo-inverse.
	Inverse *mat.Dense
	// Rank is the number of singular values kept.
	Rank int
	// Singular holds all singular values in descending order.
	Singular []float64
	// Cond is the ratio of the largest singular value to the smallest
	// retained one, +Inf for a zero matrix.
	Cond float64
	// Degraded reports that Rank fell short of min(m, n), so the
	// inverse is a least-squares best effort.
	Degraded bool
}

// Compute factorizes a and returns its pseudo-inverse. Singular values
// at or below eps times the largest singular value are treated as zero.
// The same path serves square, tall and wide matrices.
func Compute(a mat.Matrix, eps float64) (*Result, error) {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	m, n := a.Dims()

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, ErrFactorization
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sv := svd.Values(nil)

	smax := sv[0]
	k := len(sv)
	rank := 0
	vs := mat.NewDense(n, k, nil)
	for j := 0; j < k; j++ {
		if smax > 0 && sv[j] > eps*smax {
			rank++
			inv := 1.0 / sv[j]
			for i := 0; i < n; i++ {
				vs.Set(i, j, v.At(i, j)*inv)
			}
		}
	}

	inv := mat.NewDense(n, m, nil)
	inv.Mul(vs, u.T())

	cond := math.Inf(1)
	if rank > 0 {
		cond = smax / sv[rank-1]
	}
	minDim := m
	if n < m {
		minDim = n
	}
	return &Result{
		Inverse:  inv,
		Rank:     rank,
		Singular: sv,
		Cond:     cond,
		Degraded: rank < minDim,
	}, nil
}

// NullProjector returns P = I - Inverse*a, the orthogonal projector on
// the null space of a. P is idempotent and symmetric; applied to a
// secondary command it removes every component that would disturb the
// primary task.
func NullProjector(a mat.Matrix, r *Result) *mat.Dense {
	_, n := a.Dims()
	p := mat.NewDense(n, n, nil)
	p.Mul(r.Inverse, a)
	p.Scale(-1, p)
	for i := 0; i < n; i++ {
		p.Set(i, i, p.At(i, i)+1)
	}
	return p
}
