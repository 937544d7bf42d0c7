// Package lu: the right-looking factorization kernel.

package lu

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/dusim/sparse"
	"github.com/katalvlaran/dusim/vecmath"
)

// deadlineStride: the row-permutation-only probe polls its deadline once per
// this many columns; the check stays off the per-entry hot path.
const deadlineStride = 64

// Factorize runs the full right-looking LU factorization of a over the
// prescribed column visitation order with pivoting tolerance tol.
// On a numerically singular column it returns a *SingularColumnError
// (matching ErrSingular) naming the first failing column.
// Complexity: O(sum of eliminated column work); worst case O(n * nnz(L)).
func Factorize(a *sparse.CSC, columnList []int, tol float64) (*Factorization, error) {
	return run(a, columnList, tol, time.Time{}, true)
}

// RowPermutationOnly derives only the permutations pinv and q, skipping the
// construction of the L/U factor matrices. It is the cheap structural probe
// used to re-validate pivoting before paying for a full refactorization.
// A non-zero deadline is polled between columns; expiry yields ErrTimeLimit.
func RowPermutationOnly(a *sparse.CSC, columnList []int, tol float64, deadline time.Time) (q, pinv []int, err error) {
	f, err := run(a, columnList, tol, deadline, false)
	if err != nil {
		return nil, nil, err
	}

	return f.Q, f.PInv, nil
}

// run is the shared elimination loop. keepFactors controls whether the U
// entries are accumulated and the final CSC factors assembled; the L
// multipliers are always kept transiently since later columns need them.
func run(a *sparse.CSC, columnList []int, tol float64, deadline time.Time, keepFactors bool) (*Factorization, error) {
	if a.M != a.N {
		return nil, fmt.Errorf("lu: %dx%d: %w", a.M, a.N, ErrNotSquare)
	}
	n := a.N
	if len(columnList) != n || !vecmath.IsPermutation(columnList) {
		return nil, ErrBadColumnList
	}

	var (
		x       = make([]float64, n) // dense column workspace
		mark    = make([]bool, n)    // which workspace slots are live
		touched = make([]int, 0, n)  // live slots, for O(live) reset

		pinv  = make([]int, n) // original row -> pivot step, -1 while free
		rowOf = make([]int, n) // pivot step -> original row
		q     = make([]int, n) // pivot step -> original column

		// L multipliers per pivot step, in original row indices.
		lrows = make([][]int, n)
		lvals = make([][]float64, n)

		// U entries per column (pivot-step rows, diagonal last).
		urows [][]int
		uvals [][]float64
		unnz  int
		lnnz  int
	)
	for i := 0; i < n; i++ {
		pinv[i] = -1
	}
	if keepFactors {
		urows = make([][]int, n)
		uvals = make([][]float64, n)
	}

	for k := 0; k < n; k++ {
		if !deadline.IsZero() && k%deadlineStride == 0 && time.Now().After(deadline) {
			return nil, ErrTimeLimit
		}
		col := columnList[k]

		// Scatter the column into the dense workspace.
		rows, vals := a.Column(col)
		for p, i := range rows {
			if !mark[i] {
				mark[i] = true
				touched = append(touched, i)
				x[i] = vals[p]
				continue
			}
			x[i] += vals[p] // duplicate-tolerant, same as FromTriplets
		}

		// Apply previously computed L columns: each pivoted row that carries
		// a value contributes an elimination update, scattered immediately.
		for t := 0; t < k; t++ {
			r := rowOf[t]
			alpha := x[r]
			if alpha == 0 {
				continue
			}
			if keepFactors {
				urows[k] = append(urows[k], t)
				uvals[k] = append(uvals[k], alpha)
				unnz++
			}
			lr, lv := lrows[t], lvals[t]
			for idx, i := range lr {
				if !mark[i] {
					mark[i] = true
					touched = append(touched, i)
				}
				x[i] -= alpha * lv[idx]
			}
		}

		// Pivot selection among the rows not yet pivoted: largest magnitude
		// wins, unless the structural (diagonal) candidate is within tol of
		// that maximum.
		xmax := 0.0
		prow := -1
		for _, i := range touched {
			if pinv[i] >= 0 {
				continue
			}
			if t := math.Abs(x[i]); t > xmax {
				xmax = t
				prow = i
			}
		}
		if prow < 0 || xmax <= tol {
			return nil, &SingularColumnError{Column: col, Position: k}
		}
		if d := col; d != prow && d < n && pinv[d] < 0 && mark[d] {
			if t := math.Abs(x[d]); t > tol && t >= tol*xmax {
				prow = d
			}
		}

		pivot := x[prow]
		pinv[prow] = k
		rowOf[k] = prow
		q[k] = col

		// Subdiagonal multipliers become L column k.
		for _, i := range touched {
			if pinv[i] >= 0 || x[i] == 0 {
				continue
			}
			lrows[k] = append(lrows[k], i)
			lvals[k] = append(lvals[k], x[i]/pivot)
		}
		lnnz += len(lrows[k])
		if keepFactors {
			urows[k] = append(urows[k], k)
			uvals[k] = append(uvals[k], pivot)
			unnz++
		}

		// Reset only the live workspace slots.
		for _, i := range touched {
			x[i] = 0
			mark[i] = false
		}
		touched = touched[:0]
	}

	f := &Factorization{N: n, PInv: pinv, Q: q}
	if !keepFactors {
		return f, nil
	}

	// Assemble L (explicit unit diagonal first, subdiagonal rows remapped to
	// pivot-step numbering) and U (already in pivot-step numbering).
	f.L = assembleL(n, lnnz, pinv, lrows, lvals)
	f.U = assembleU(n, unnz, urows, uvals)

	return f, nil
}

func assembleL(n, lnnz int, pinv []int, lrows [][]int, lvals [][]float64) *sparse.CSC {
	l := &sparse.CSC{
		M:        n,
		N:        n,
		ColStart: make([]int, n+1),
		RowIndex: make([]int, 0, lnnz+n),
		Values:   make([]float64, 0, lnnz+n),
	}
	for k := 0; k < n; k++ {
		l.ColStart[k] = len(l.Values)
		l.RowIndex = append(l.RowIndex, k)
		l.Values = append(l.Values, 1.0)
		for idx, i := range lrows[k] {
			l.RowIndex = append(l.RowIndex, pinv[i])
			l.Values = append(l.Values, lvals[k][idx])
		}
	}
	l.ColStart[n] = len(l.Values)

	return l
}

func assembleU(n, unnz int, urows [][]int, uvals [][]float64) *sparse.CSC {
	u := &sparse.CSC{
		M:        n,
		N:        n,
		ColStart: make([]int, n+1),
		RowIndex: make([]int, 0, unnz),
		Values:   make([]float64, 0, unnz),
	}
	for k := 0; k < n; k++ {
		u.ColStart[k] = len(u.Values)
		u.RowIndex = append(u.RowIndex, urows[k]...)
		u.Values = append(u.Values, uvals[k]...)
	}
	u.ColStart[n] = len(u.Values)

	return u
}
