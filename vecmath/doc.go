// Package vecmath collects the small dense/sparse vector kernels shared by
// the ordering, factorization and simplex packages: norms, dot products and
// permutation plumbing.
//
// Permutation conventions (used consistently across the module):
//
//	PermuteVector(p, b)        → x with x[k]    = b[p[k]]   ("x = P*b")
//	InversePermuteVector(p, b) → x with x[p[k]] = b[k]      ("x = P'*b")
//	InversePermutation(p)      → pinv with pinv[p[k]] == k
//
// PermuteVector followed by InversePermuteVector with the same p is the
// identity. All kernels are O(n) (SparseDot is O(nx+ny) on sorted patterns)
// and allocate only their result.
package vecmath
