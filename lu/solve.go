// Package lu: sparse triangular solves on a completed factorization.

package lu

import "fmt"

// FTran solves B x = b where B is the factorized matrix (L*U == P*B*Q):
// permute b by P, forward-solve L, back-solve U, undo the column
// permutation. Returns a freshly allocated x. Complexity: O(nnz(L)+nnz(U)).
func (f *Factorization) FTran(b []float64) ([]float64, error) {
	if len(b) != f.N {
		return nil, fmt.Errorf("lu: FTran rhs length %d want %d: %w", len(b), f.N, ErrVectorLength)
	}
	n := f.N

	// z = P*b
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		z[f.PInv[i]] = b[i]
	}

	// L z' = z, column-oriented forward sweep; the explicit unit diagonal is
	// the first entry of each column and is skipped.
	for k := 0; k < n; k++ {
		zk := z[k]
		if zk == 0 {
			continue
		}
		rows, vals := f.L.Column(k)
		for p := 1; p < len(rows); p++ {
			z[rows[p]] -= vals[p] * zk
		}
	}

	// U v = z', column-oriented backward sweep; the diagonal is the last
	// entry of each column.
	for k := n - 1; k >= 0; k-- {
		rows, vals := f.U.Column(k)
		last := len(rows) - 1
		vk := z[k] / vals[last]
		z[k] = vk
		if vk == 0 {
			continue
		}
		for p := 0; p < last; p++ {
			z[rows[p]] -= vals[p] * vk
		}
	}

	// x = Q*v
	x := make([]float64, n)
	for k := 0; k < n; k++ {
		x[f.Q[k]] = z[k]
	}

	return x, nil
}

// BTran solves Bᵀ y = c: permute c by Qᵀ, forward-solve Uᵀ, back-solve Lᵀ,
// undo the row permutation. Returns a freshly allocated y.
// Complexity: O(nnz(L)+nnz(U)).
func (f *Factorization) BTran(c []float64) ([]float64, error) {
	if len(c) != f.N {
		return nil, fmt.Errorf("lu: BTran rhs length %d want %d: %w", len(c), f.N, ErrVectorLength)
	}
	n := f.N

	// a = Qᵀ*c
	a := make([]float64, n)
	for k := 0; k < n; k++ {
		a[k] = c[f.Q[k]]
	}

	// Uᵀ w = a: column k of U is row k of Uᵀ, so each w[k] closes over the
	// already-computed prefix.
	for k := 0; k < n; k++ {
		rows, vals := f.U.Column(k)
		last := len(rows) - 1
		s := a[k]
		for p := 0; p < last; p++ {
			s -= vals[p] * a[rows[p]]
		}
		a[k] = s / vals[last]
	}

	// Lᵀ d = w: backward sweep with implicit unit diagonal.
	for k := n - 1; k >= 0; k-- {
		rows, vals := f.L.Column(k)
		s := a[k]
		for p := 1; p < len(rows); p++ {
			s -= vals[p] * a[rows[p]]
		}
		a[k] = s
	}

	// y = Pᵀ*d
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = a[f.PInv[i]]
	}

	return y, nil
}
