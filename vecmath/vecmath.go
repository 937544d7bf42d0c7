// Package vecmath: dense/sparse vector kernels and permutation helpers.

package vecmath

import (
	"errors"
	"math"
)

// ErrLengthMismatch is returned when paired vector arguments disagree in size.
var ErrLengthMismatch = errors.New("vecmath: vector length mismatch")

// NormInf computes || x ||_inf = max_j |x[j]|. Zero for an empty vector.
func NormInf(x []float64) float64 {
	a := 0.0
	for _, v := range x {
		if t := math.Abs(v); t > a {
			a = t
		}
	}

	return a
}

// Norm2Squared computes || x ||_2^2.
func Norm2Squared(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v * v
	}

	return s
}

// Norm2 computes || x ||_2.
func Norm2(x []float64) float64 { return math.Sqrt(Norm2Squared(x)) }

// Norm1 computes || x ||_1.
func Norm1(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += math.Abs(v)
	}

	return s
}

// Dot computes x'*y for dense vectors of equal length.
func Dot(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrLengthMismatch
	}
	s := 0.0
	for k := range x {
		s += x[k] * y[k]
	}

	return s, nil
}

// SparseDot computes x'*y for two sparse vectors given as (index, value)
// pairs with strictly increasing indices. Complexity: O(len(xind)+len(yind)).
func SparseDot(xind []int, xval []float64, yind []int, yval []float64) (float64, error) {
	if len(xind) != len(xval) || len(yind) != len(yval) {
		return 0, ErrLengthMismatch
	}
	s := 0.0
	var i, j int
	for i < len(xind) && j < len(yind) {
		switch {
		case xind[i] == yind[j]:
			s += xval[i] * yval[j]
			i++
			j++
		case xind[i] < yind[j]:
			i++
		default:
			j++
		}
	}

	return s, nil
}

// ScatterDot computes x'*y where x is sparse (index/value pairs) and y is a
// dense scatter of length >= max(xind)+1. Complexity: O(len(xind)).
func ScatterDot(xind []int, xval []float64, y []float64) float64 {
	s := 0.0
	for k, i := range xind {
		s += xval[k] * y[i]
	}

	return s
}

// PermuteVector computes x = P*b, i.e. x[k] = b[p[k]] for all k
// (x = b(p) in MATLAB notation).
func PermuteVector(p []int, b []float64) ([]float64, error) {
	if len(p) != len(b) {
		return nil, ErrLengthMismatch
	}
	x := make([]float64, len(b))
	for k := range p {
		x[k] = b[p[k]]
	}

	return x, nil
}

// InversePermuteVector computes x = P'*b, i.e. x[p[k]] = b[k] for all k
// (x(p) = b in MATLAB notation).
func InversePermuteVector(p []int, b []float64) ([]float64, error) {
	if len(p) != len(b) {
		return nil, ErrLengthMismatch
	}
	x := make([]float64, len(b))
	for k := range p {
		x[p[k]] = b[k]
	}

	return x, nil
}

// InversePermutation computes pinv from p such that pinv[p[k]] == k
// (pinv(p) = 1:n in MATLAB notation).
func InversePermutation(p []int) []int {
	pinv := make([]int, len(p))
	for k := range p {
		pinv[p[k]] = k
	}

	return pinv
}

// IsPermutation reports whether p is a bijection on [0,len(p)).
func IsPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}

	return true
}
