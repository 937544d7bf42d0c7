// Package singletons implements the bipartite singleton-elimination
// preordering used to precondition sparse matrices before LU factorization.
//
// 🚀 What does it do?
//
//	A singleton is a row or column with exactly one nonzero in the still
//	unresolved submatrix. Peeling singletons in dependency order yields a
//	leading triangular block that the factorizer gets for free: the larger
//	the block, the less numerical elimination work remains.
//
// The orderer runs two passes over a shared degree bookkeeping:
//  1. seeded with every degree-1 column, in descending column order;
//  2. seeded with every row still at degree 1 after the first pass.
//
// The row-major adjacency needed by those passes is built lazily and at most
// once: matrices without any singleton never pay the O(nnz) row-form cost.
//
// Elimination state is an explicit per-entity tag (Active → Eliminated, with
// Empty assigned during permutation completion) rather than an encoded
// sign-bit; the degree an entity had at the moment of elimination stays
// readable for diagnostics.
//
// After both passes CompletePermutation has routed every entity: singleton
// pairs first (in elimination order), unresolved entities next (in original
// index order), structurally empty entities at the tail. Both output
// permutations are total bijections.
//
// Complexity: O(n + m + nnz) amortized. The returned WorkEstimate is a cost
// model score (not wall-clock time) callers may use to pick between ordering
// strategies. The algorithm always terminates and has no failure mode: a
// matrix without singletons simply yields an all-unresolved ordering.
package singletons
