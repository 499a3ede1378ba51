package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DecayRate estimates the exponential convergence rate of an error
// trace by fitting ln|e| against time. The returned value is positive
// for a shrinking error and matches the loop gain when the decoupling
// is exact.
//
// Rows with a non-positive norm carry no information for the fit and
// are skipped. Fewer than two usable rows yield 0.
func DecayRate(times, norms []float64) float64 {
	xs := make([]float64, 0, len(norms))
	ys := make([]float64, 0, len(norms))

	for i, n := range norms {
		if i >= len(times) || n <= 0 {
			continue
		}
		xs = append(xs, times[i])
		ys = append(ys, math.Log(n))
	}

	if len(xs) < 2 {
		return 0
	}

	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return -beta
}

// SettlingTime returns the time after which the error norm stays below
// the threshold for the rest of the trace. The second return is false
// when the trace never settles.
func SettlingTime(times, norms []float64, threshold float64) (float64, bool) {
	settled := -1

	for i, n := range norms {
		if n < threshold {
			if settled < 0 {
				settled = i
			}
		} else {
			settled = -1
		}
	}

	if settled < 0 || settled >= len(times) {
		return 0, false
	}
	return times[settled], true
}

// PeakVelocity scans a velocity trace for the largest component
// magnitude and reports it with the row where it occurs.
func PeakVelocity(velocities [][]float64) (float64, int) {
	peak := 0.0
	row := 0

	for i, v := range velocities {
		for _, val := range v {
			if math.Abs(val) > peak {
				peak = math.Abs(val)
				row = i
			}
		}
	}

	return peak, row
}

// Overshoot measures how far the error norm rose above its initial
// value, as a fraction of that value. A monotone trace scores 0.
func Overshoot(norms []float64) float64 {
	if len(norms) == 0 || norms[0] <= 0 {
		return 0
	}

	peak := norms[0]
	for _, n := range norms[1:] {
		if n > peak {
			peak = n
		}
	}

	return (peak - norms[0]) / norms[0]
}
