// Package lp defines the linear-programming problem model shared by the
// presolver, the simplex loop and the branch-and-bound workers:
//
//	minimize    Obj' x
//	subject to  RowLower ≤ A·x ≤ RowUpper
//	            Lower    ≤   x ≤ Upper
//
// with per-variable types (continuous, integer, binary). Equality rows are
// expressed as RowLower[i] == RowUpper[i]; one-sided rows use ±Inf.
//
// The root problem is owned immutably by the solve; each worker Clones it
// once and then applies tree-node bound deltas onto its private copy. Clone
// is a full deep copy — nothing in a clone aliases the original.
package lp
