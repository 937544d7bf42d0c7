// Package lu: result types.

package lu

import "github.com/katalvlaran/dusim/sparse"

// Factorization holds L, U and the permutations of a successful run such
// that L*U == P*A*Q, where P permutes row i of A to position PInv[i] and
// column Q[k] of A lands at position k.
//
// Storage conventions:
//   - L is unit lower triangular in permuted row indices; the unit diagonal
//     is stored explicitly as the first entry of each column.
//   - U is upper triangular with both indices in pivot-step numbering; each
//     column stores its off-diagonal entries in ascending row order with the
//     diagonal last.
type Factorization struct {
	N    int
	L    *sparse.CSC
	U    *sparse.CSC
	PInv []int // original row -> pivot step
	Q    []int // pivot step -> original column
}
