// Package dusim is the solving core of a dual-simplex branch-and-bound
// engine for mixed-integer linear programs: sparse linear algebra,
// factorization, basis maintenance, bound propagation, and the concurrent
// tree search on top of them.
//
// 🚀 What is dusim?
//
//	A pure-Go MILP solving core that brings together:
//		• Sparse storage: CSC/CSR matrices with validation & conversions
//		• Singleton ordering: two-pass elimination preordering for LU
//		• Factorization: right-looking LU with threshold partial pivoting
//		• Basis updates: product-form eta chain over a fresh factorization
//		• Bound strengthening: activity-based presolve per tree node
//		• Dual simplex: bounded-variable phase 2 with warm restarts
//		• Branch & bound: fixed worker pool, best-first frontier, diving
//
// ✨ Why this shape?
//
//   - Deterministic – fixed tie-breaking everywhere, reproducible orderings
//   - Warm-start friendly – node bound changes preserve dual feasibility,
//     so every tree node reoptimizes from the parent basis
//   - Lock-free where it counts – per-worker state is exclusively owned;
//     shared counters and published bounds are single-writer atomics
//   - Cooperative – deadlines are polled between iterations and nodes,
//     never enforced by interruption
//
// Under the hood, everything is organized under nine subpackages:
//
//	sparse/     — CSC/CSR matrix types, triplet assembly, validation
//	vecmath/    — dense/sparse vector kernels & permutation utilities
//	singletons/ — singleton-based column/row preordering
//	lu/         — right-looking LU factorization & triangular solves
//	basis/      — basic/nonbasic partition, LU + eta-chain updates
//	lp/         — the LP/MIP problem type
//	presolve/   — per-node activity-based bound strengthening
//	simplex/    — settings (TOML-loadable) & the dual simplex solver
//	bnb/        — workers, tree nodes, shared stats, the pool driver
//
// Quick example:
//
//	p := &lp.Problem{ /* A, bounds, objective, variable types */ }
//	set := simplex.Default()
//	set.Workers = 4
//	res, err := bnb.Solve(p, set)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Status, res.Objective, res.X)
//
// See each subpackage's doc.go for algorithmic details and complexity
// notes.
package dusim
