// Package simplex provides the solver configuration and the iterative LP
// solve the branch-and-bound workers run: a bounded-variable dual simplex
// over the incrementally maintained basis factorization.
//
// 🚀 Why dual simplex?
//
//	Branch-and-bound tightens variable bounds between solves. Bound changes
//	leave the parent basis dual feasible, so each node re-optimization
//	warm-starts from the previous basis and typically finishes in a handful
//	of pivots instead of solving from scratch.
//
// The solver works on the computational (slack) form
//
//	[A | -I]·[x; s] = 0,   Lower ≤ x ≤ Upper,   RowLower ≤ s ≤ RowUpper,
//
// built once per Solver and refreshed in place when the owner's bounds
// move. The initial all-slack basis is made dual feasible by bound
// flipping; a problem whose objective pushes an unbounded variable cannot
// be started this way and is reported as ErrNotDualFeasible.
//
// Iteration shape (one pivot each):
//  1. cooperative deadline/iteration-limit poll — expiry returns the best
//     available point with StatusTimeLimit/StatusIterationLimit, never an
//     error;
//  2. leaving: the basic variable with the largest bound violation
//     (primal feasible ⇒ StatusOptimal);
//  3. entering: dual ratio test over the pivot row (no eligible column ⇒
//     StatusInfeasible);
//  4. pivot: product-form update of the factorization, with a full
//     refactorization whenever the eta budget is hit or a pivot is too
//     small to absorb.
//
// All comparisons run against the caller-supplied tolerances in Settings,
// never machine epsilon.
package simplex
