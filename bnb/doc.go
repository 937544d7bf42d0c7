// Package bnb implements the branch-and-bound layer of the solving core:
// the worker that owns a leaf LP relaxation and its live basis
// factorization, the value-copyable tree nodes it is assigned, the shared
// atomic solve statistics, and a fixed-pool best-first driver with
// detached diving.
//
// 🚀 Worker lifecycle
//
//	INACTIVE → EXPLORING (InitBestFirst: attached to a shared frontier node
//	by reference, never mutating it) or DIVING (InitDiving: the node is
//	value-copied into worker-private storage first, so the shared node
//	stays valid whatever the dive does) → INACTIVE on completion.
//
// Per-worker state — the private leaf problem, the basis factors, the
// basic/nonbasic partition, the presolver scratch — is exclusively owned:
// no lock is ever taken for it. The fields other threads do read
// (worker type, activity, current lower bound) are published atomically
// with exactly one writer each, and the per-solve aggregate counters in
// Stats are lock-free atomics whose final values are exact sums of all
// worker contributions.
//
// Staleness is tracked with two flags: recomputeBounds and recomputeBasis.
// Whether to pay the full cost or update incrementally is a performance
// policy; solving against stale bounds or a stale factorization is a bug,
// so Solve consults both flags before the first iteration, always.
//
// Cancellation is cooperative: the deadline derived from
// simplex.Settings.TimeLimit is polled between simplex iterations and
// between tree nodes, and an expired solve returns the best available
// bound instead of an error.
package bnb
