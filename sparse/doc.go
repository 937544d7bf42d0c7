// Package sparse provides the compressed sparse matrix storage used by the
// whole solving core: ordering, factorization, basis maintenance and the
// simplex loop all operate directly on these index/value arrays.
//
// 🚀 What is in here?
//
//	Two standard layouts over the same nonzero set:
//	  • CSC — compressed sparse column: ColStart/RowIndex/Values
//	  • CSR — compressed sparse row:    RowStart/ColIndex/Values
//
// ✨ Guarantees:
//   - Offsets are strictly non-decreasing with ColStart[0]==0 and
//     ColStart[N]==NNZ (resp. RowStart for CSR); Validate enforces this.
//   - All stored indices lie in [0,M) / [0,N).
//   - Row indices within a column are NOT required to be sorted; every
//     consumer in this module scatters into dense workspaces instead.
//
// ⚙️ Usage:
//
//	A, err := sparse.FromTriplets(m, n, rows, cols, vals)
//	R, err := A.ToCSR() // counting-sort transpose, O(m + n + nnz)
//
// Complexity: constructors O(nnz), ToCSR O(m+n+nnz), accessors O(1).
package sparse
