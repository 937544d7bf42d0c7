// Package presolve tightens variable bounds at a branch-and-bound node by
// propagating row activities — the node presolver the workers consult
// before paying for an LP re-solve.
//
// For each row l ≤ a·x ≤ u the minimal/maximal activity over the current
// bounds implies, per variable, a bound the variable cannot cross without
// violating the row. Sweeps repeat until a fixed point or the round budget;
// two outcomes are possible:
//
//   - feasible: the tightened bounds are written in place and every touched
//     variable is flagged in the changed markers, so the caller knows
//     whether its cached LP state went stale;
//   - infeasible: some row cannot be satisfied, or a variable's bounds
//     crossed — the node can be pruned without any LP work. A verdict, not
//     an error.
//
// Integer and binary variables round their implied bounds inward before
// comparison, which is where most of the pruning power comes from.
//
// Infinite bounds are handled by counting unbounded contributions per row
// rather than by ±Inf arithmetic, so no NaN can leak out of a residual.
package presolve
