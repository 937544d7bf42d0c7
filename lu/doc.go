// Package lu factors a square sparse matrix column-by-column into a unit
// lower triangular L and an upper triangular U with row/column permutations,
// using right-looking elimination with threshold partial pivoting.
//
// 🚀 How a column is processed
//
//	For each column of the prescribed visitation order (typically the
//	singletons ordering: singleton block, then the unresolved block in a
//	fill-reducing order):
//	  1. scatter the column into a dense workspace;
//	  2. apply the previously computed L columns, eliminating contributions
//	     from already-pivoted rows (each update scattered immediately);
//	  3. pick a pivot among the not-yet-pivoted rows: the entry of largest
//	     magnitude, unless the structural (diagonal) candidate is within the
//	     tolerance of that maximum — trading a little stability for sparsity;
//	  4. reject the column as numerically singular if no candidate exceeds
//	     tol in absolute value.
//
// All zero/near-zero comparisons use the caller-supplied tol, not machine
// epsilon: stability is tunable per solve. A singular column is a
// recoverable condition — *SingularColumnError (matching ErrSingular via
// errors.Is) names the first failing column so the caller can retry with a
// relaxed tolerance, a different ordering, or the cheaper
// RowPermutationOnly probe.
//
// The Factorization result carries FTran/BTran sparse triangular solves
// (B x = b and Bᵀ y = c), which is what the basis update engine and the dual
// simplex iteration consume.
package lu
