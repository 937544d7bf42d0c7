// Package bnb: the branch-and-bound worker.

package bnb

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/dusim/lp"
	"github.com/katalvlaran/dusim/presolve"
	"github.com/katalvlaran/dusim/simplex"
)

// Worker owns one leaf LP relaxation, its live basis factorization (inside
// the simplex solver) and its search state. All of that is private to the
// owning goroutine; only the three published fields below are read
// concurrently, and each has exactly one writer.
type Worker struct {
	ID int

	workerType atomic.Int32  // WorkerType, published for the scheduler
	active     atomic.Bool   // published for termination checks
	lowerBound atomic.Uint64 // float64 bits, published for best-bound scans

	leaf      *lp.Problem // private mutable copy of the root problem
	solver    *simplex.Solver
	presolver *presolve.Strengthener

	boundsChanged []bool // presolver change markers, reset per node

	startLower []float64 // root bounds snapshot, deltas apply on top
	startUpper []float64
	startNode  *Node // assigned node; points at internal when diving
	internal   Node  // private storage for the detached diving copy

	// Staleness flags: policy decides when to pay, correctness demands the
	// flags are honored before any solve.
	recomputeBasis  bool
	recomputeBounds bool

	set *simplex.Settings
}

// NewWorker clones the original problem into worker-private storage and
// prepares the solver and presolver scratch. Called once per solve per
// worker; nodes are then assigned repeatedly via the Init methods.
func NewWorker(id int, original *lp.Problem, set *simplex.Settings) (*Worker, error) {
	leaf := original.Clone()
	solver, err := simplex.New(leaf, set)
	if err != nil {
		return nil, err
	}
	strength, err := presolve.New(leaf)
	if err != nil {
		return nil, err
	}
	w := &Worker{
		ID:              id,
		leaf:            leaf,
		solver:          solver,
		presolver:       strength,
		boundsChanged:   make([]bool, original.NumCols()),
		startLower:      append([]float64(nil), original.Lower...),
		startUpper:      append([]float64(nil), original.Upper...),
		recomputeBasis:  true,
		recomputeBounds: true,
		set:             set,
	}
	w.setLowerBound(math.Inf(-1))

	return w, nil
}

// InitBestFirst attaches the worker to a shared frontier node by reference.
// The shared node is never mutated; the worker's bound snapshot resets to
// the original problem's bounds and the node's bound becomes the worker's
// published lower bound.
func (w *Worker) InitBestFirst(node *Node, original *lp.Problem) {
	w.startNode = node
	copy(w.startLower, original.Lower)
	copy(w.startUpper, original.Upper)
	w.workerType.Store(int32(Exploration))
	w.setLowerBound(node.LowerBound)
	w.active.Store(true)
	w.recomputeBounds = true
}

// InitDiving value-copies the node into worker-private storage (the shared
// node stays independent of anything the dive mutates) and immediately runs
// bounds propagation. Returns false — without starting a solve — when
// propagation proves the node infeasible.
func (w *Worker) InitDiving(node *Node, typ WorkerType, original *lp.Problem, set *simplex.Settings) bool {
	w.internal = node.Copy()
	w.startNode = &w.internal
	copy(w.startLower, original.Lower)
	copy(w.startUpper, original.Upper)
	w.workerType.Store(int32(typ))
	w.setLowerBound(node.LowerBound)
	w.active.Store(true)

	if !w.SetLPVariableBoundsFor(w.startNode, set) {
		w.active.Store(false)

		return false
	}

	return true
}

// SetLPVariableBoundsFor applies the node's bound deltas on top of the root
// snapshot and runs the presolver. Idempotent: the leaf bounds are rebuilt
// from the snapshot on every call, so re-applying the same node after a
// basis-only change cannot tighten twice. Returns false on proven
// infeasibility.
func (w *Worker) SetLPVariableBoundsFor(node *Node, set *simplex.Settings) bool {
	copy(w.leaf.Lower, w.startLower)
	copy(w.leaf.Upper, w.startUpper)
	node.ApplyTo(w.leaf.Lower, w.leaf.Upper)

	for j := range w.boundsChanged {
		w.boundsChanged[j] = false
	}
	for j := range w.leaf.Lower {
		if w.leaf.Lower[j] > w.leaf.Upper[j]+set.FeasTol {
			return false
		}
	}
	if !w.presolver.Strengthen(w.leaf.Lower, w.leaf.Upper, w.boundsChanged,
		set.FeasTol, set.MaxPresolveRounds) {
		return false
	}

	w.solver.RefreshBounds()
	w.recomputeBounds = false

	return true
}

// BoundsChanged exposes the presolver's change markers for the current node.
func (w *Worker) BoundsChanged() []bool { return w.boundsChanged }

// SolveNode re-optimizes the worker's leaf relaxation, honoring the
// staleness flags first — stale bounds or a stale basis are never solved
// against. Statistics are reported into st; the published lower bound is
// raised when the solve proves a better one.
func (w *Worker) SolveNode(st *Stats, deadline time.Time) (*simplex.Result, error) {
	if w.recomputeBounds {
		if !w.SetLPVariableBoundsFor(w.startNode, w.set) {
			st.AddExplored()

			return &simplex.Result{Status: simplex.StatusInfeasible}, nil
		}
	}
	if w.recomputeBasis {
		if err := w.solver.ResetBasis(); err != nil {
			return nil, err
		}
		w.recomputeBasis = false
	}

	begin := time.Now()
	res, err := w.solver.Solve(deadline)
	if err != nil {
		return nil, err
	}
	st.AddLPSolveTime(time.Since(begin))
	st.AddLPIters(res.Iterations)
	st.AddExplored()

	if res.Status == simplex.StatusOptimal && res.Objective > w.LowerBound() {
		w.setLowerBound(res.Objective)
	}

	return res, nil
}

// Finish returns the worker to the INACTIVE state.
func (w *Worker) Finish() { w.active.Store(false) }

// Leaf exposes the worker-private relaxation (bounds reflect the current
// node after SetLPVariableBoundsFor).
func (w *Worker) Leaf() *lp.Problem { return w.leaf }

// WorkerType is the atomically published search mode.
func (w *Worker) WorkerType() WorkerType { return WorkerType(w.workerType.Load()) }

// IsActive is the atomically published activity flag.
func (w *Worker) IsActive() bool { return w.active.Load() }

// LowerBound is the atomically published bound estimate; the scheduler
// combines these across active workers for the global best bound.
func (w *Worker) LowerBound() float64 {
	return math.Float64frombits(w.lowerBound.Load())
}

func (w *Worker) setLowerBound(v float64) {
	w.lowerBound.Store(math.Float64bits(v))
}
