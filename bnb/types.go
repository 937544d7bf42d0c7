// Package bnb: worker types, tree nodes and solve results.

package bnb

import "math"

// WorkerType distinguishes the two search modes a worker runs in.
type WorkerType int32

const (
	// Exploration — best-first search on a shared frontier node.
	Exploration WorkerType = iota

	// Diving — depth-first probe on a worker-private node copy.
	Diving
)

// String implements fmt.Stringer.
func (t WorkerType) String() string {
	if t == Diving {
		return "diving"
	}

	return "exploration"
}

// BoundDelta overrides one variable's bounds relative to the root problem.
type BoundDelta struct {
	Var   int
	Lower float64
	Upper float64
}

// Node is one leaf of the branch-and-bound tree. Nodes are plain values:
// the frontier owns the shared instances, and a diving worker copies one
// before mutating anything, so no pointer ever aliases across owners.
type Node struct {
	ID         int
	Depth      int
	LowerBound float64      // best-known objective bound for this subtree
	BranchVar  int          // variable whose branching created the node; -1 at the root
	Deltas     []BoundDelta // cumulative overrides relative to the root bounds
}

// RootNode returns the tree root: no deltas, unbounded-below bound.
func RootNode() Node {
	return Node{ID: 0, BranchVar: -1, LowerBound: math.Inf(-1)}
}

// Copy returns a deep value copy; mutating the copy's deltas never touches
// the receiver.
func (nd *Node) Copy() Node {
	cp := *nd
	cp.Deltas = append([]BoundDelta(nil), nd.Deltas...)

	return cp
}

// Child derives a node one level deeper with an extra bound override.
func (nd *Node) Child(id int, bound float64, delta BoundDelta) Node {
	child := nd.Copy()
	child.ID = id
	child.Depth = nd.Depth + 1
	child.LowerBound = bound
	child.BranchVar = delta.Var
	child.Deltas = append(child.Deltas, delta)

	return child
}

// ApplyTo overlays the node's deltas onto bound vectors already holding the
// root bounds. Later deltas win, which makes cumulative lists idempotent to
// re-apply.
func (nd *Node) ApplyTo(lower, upper []float64) {
	for _, d := range nd.Deltas {
		lower[d.Var] = d.Lower
		upper[d.Var] = d.Upper
	}
}

// SolveStatus is the outcome of a full branch-and-bound run.
type SolveStatus uint8

const (
	// SolveOptimal — the tree was exhausted and an incumbent proves optimal.
	SolveOptimal SolveStatus = iota

	// SolveInfeasible — the tree was exhausted without any integral point.
	SolveInfeasible

	// SolveTimeLimit — the deadline expired; Result carries the incumbent
	// and bound reached so far.
	SolveTimeLimit

	// SolveNodeLimit — MaxNodes was reached before the tree was exhausted.
	SolveNodeLimit
)

// String implements fmt.Stringer.
func (s SolveStatus) String() string {
	switch s {
	case SolveOptimal:
		return "optimal"
	case SolveInfeasible:
		return "infeasible"
	case SolveTimeLimit:
		return "time-limit"
	case SolveNodeLimit:
		return "node-limit"
	default:
		return "unknown"
	}
}

// Result of one mixed-integer solve.
type Result struct {
	Status     SolveStatus
	Objective  float64   // incumbent objective (meaningful unless infeasible)
	X          []float64 // incumbent point, len NumCols
	LowerBound float64   // best proven bound across the remaining tree
	Nodes      int       // nodes explored
}
