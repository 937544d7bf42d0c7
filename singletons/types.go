// Package singletons: domain types for the elimination bookkeeping.

package singletons

// State tags one row or column of the bipartite dependency graph.
//
//   - Active     — still part of the unresolved submatrix; its degree counts
//     live neighbors.
//   - Eliminated — peeled as one half of a singleton pair; its degree field
//     is frozen at the value it had when eliminated.
//   - Empty      — structurally empty (degree 0 after all eliminations);
//     assigned during permutation completion and routed to the tail.
type State uint8

const (
	Active State = iota
	Eliminated
	Empty
)

// String implements fmt.Stringer for diagnostics.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Eliminated:
		return "eliminated"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// Ordering is the full result of FindSingletons.
//
// ColPerm/RowPerm are bijections on [0,N)/[0,M): the first Singletons slots
// hold the pivot pairs in elimination order, then the unresolved block in
// original index order, then structurally empty entities.
type Ordering struct {
	ColPerm []int
	RowPerm []int

	// Per-entity classification and the degree each entity had when its
	// state froze (Eliminated: degree at elimination; Active/Empty: final
	// live degree).
	ColState  []State
	RowState  []State
	ColDegree []int
	RowDegree []int

	Singletons    int // total pivot pairs found (== ColSingletons+RowSingletons)
	ColSingletons int // pairs found while peeling column singletons
	RowSingletons int // pairs found while peeling remaining row singletons
	EmptyCols     int
	EmptyRows     int

	// WorkEstimate accumulates the cost-model score of the run.
	WorkEstimate float64
}

// side is one half of the bipartite dependency graph: degrees, states, the
// output permutation and the adjacency of this side's entities.
type side struct {
	deg   []int
	state []State
	perm  []int
	ptr   []int // adjacency offsets (CSC ColStart or row-form RowStart)
	ind   []int // adjacency indices into the opposite side
}

// fifo is a plain slice-backed FIFO queue; head only moves forward, so a run
// allocates at most max(m,n) slots up front.
type fifo struct {
	items []int
	head  int
}

func newFIFO(capacity int) *fifo { return &fifo{items: make([]int, 0, capacity)} }

func (q *fifo) push(v int) { q.items = append(q.items, v) }

func (q *fifo) pop() int {
	v := q.items[q.head]
	q.head++

	return v
}

func (q *fifo) empty() bool { return q.head == len(q.items) }

func (q *fifo) reset() {
	q.items = q.items[:0]
	q.head = 0
}
