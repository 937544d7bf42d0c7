// Package basis maintains the simplex basis across pivots: the
// basic/nonbasic column partition and an incrementally updated
// factorization of the basis matrix.
//
// A fresh factorization is produced by Refactorize: the basis columns are
// gathered into an m×m matrix, preordered by the singleton orderer and
// handed to the right-looking LU. Each subsequent single-column swap is
// absorbed as a product-form eta (B' = B·E with E differing from the
// identity in one column), so FTran/BTran stay available at a fraction of
// the refactorization cost.
//
// The eta chain both lengthens solves and accumulates numerical drift, so
// the owner polls NeedsRefactorization and pays for a fresh factorization
// when the chain exceeds its budget or a pivot is too small to absorb —
// that policy lives in the caller (the worker), not here.
//
// Invariant: Basic and Nonbasic always partition [0,n) exactly with
// len(Basic) == m, no matter what sequence of updates was applied.
package basis
