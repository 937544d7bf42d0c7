// Package singletons: the two-pass singleton elimination algorithm.

package singletons

import (
	"fmt"

	"github.com/katalvlaran/dusim/sparse"
)

// FindSingletons builds the singleton elimination ordering of A.
// See the package documentation for the algorithm outline; the only error
// condition is a structurally invalid input matrix.
// Complexity: O(n + m + nnz) amortized.
func FindSingletons(a *sparse.CSC) (*Ordering, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("FindSingletons: %w", err)
	}

	n, m, nnz := a.N, a.M, a.NNZ()
	ord := &Ordering{
		ColPerm:   make([]int, n),
		RowPerm:   make([]int, m),
		ColState:  make([]State, n),
		RowState:  make([]State, m),
		ColDegree: make([]int, n),
		RowDegree: make([]int, m),
	}
	ord.WorkEstimate += float64(3*m + n + nnz)

	// Stage 1: initial degrees from a single matrix scan.
	var j, p int
	for j = 0; j < n; j++ {
		ord.ColDegree[j] = a.ColStart[j+1] - a.ColStart[j]
		for p = a.ColStart[j]; p < a.ColStart[j+1]; p++ {
			ord.RowDegree[a.RowIndex[p]]++
		}
	}
	ord.WorkEstimate += float64(2*n + 2*nnz)

	cols := &side{deg: ord.ColDegree, state: ord.ColState, perm: ord.ColPerm,
		ptr: a.ColStart, ind: a.RowIndex}
	rows := &side{deg: ord.RowDegree, state: ord.RowState, perm: ord.RowPerm}

	// Stage 2: seed with all degree-1 columns, descending index order, so
	// later user columns resolve first (deterministic, reproducible).
	queue := newFIFO(max(m, n))
	for j = n - 1; j >= 0; j-- {
		if cols.deg[j] == 1 {
			queue.push(j)
		}
	}
	ord.WorkEstimate += float64(n + len(queue.items))

	// Stage 3: peel column singletons. The row-major adjacency is built
	// lazily: a matrix with no column singletons skips it entirely.
	rowForm := false
	found := 0
	if !queue.empty() {
		buildRowForm(a, rows, &ord.WorkEstimate)
		rowForm = true
		ord.ColSingletons = orderSingletons(queue, &found, cols, rows, &ord.WorkEstimate)
	}

	// Stage 4: seed with every row still active at degree 1.
	queue.reset()
	var i int
	for i = m - 1; i >= 0; i-- {
		if rows.state[i] == Active && rows.deg[i] == 1 {
			queue.push(i)
		}
	}
	ord.WorkEstimate += float64(m + len(queue.items))

	// Stage 5: peel the remaining row singletons. If the first pass found
	// nothing, the row form is built here — still at most once per run.
	if !queue.empty() {
		if !rowForm {
			buildRowForm(a, rows, &ord.WorkEstimate)
		}
		before := found
		orderSingletons(queue, &found, rows, cols, &ord.WorkEstimate)
		ord.RowSingletons = found - before
	}
	ord.Singletons = found

	// Stage 6: complete both permutations — unresolved block in original
	// index order, structurally empty entities at the tail.
	ord.EmptyCols = completePermutation(found, cols)
	ord.WorkEstimate += float64(2 * n)
	ord.EmptyRows = completePermutation(found, rows)
	ord.WorkEstimate += float64(2 * m)

	return ord, nil
}

// orderSingletons drains the queue, eliminating one singleton pair per pop.
// x is the side the queue indexes into; y is the opposite side. Returns the
// number of pairs eliminated during this pass; *found advances by the same
// amount and names the next free permutation slot throughout.
func orderSingletons(queue *fifo, found *int, x, y *side, work *float64) int {
	eliminated := 0
	for !queue.empty() {
		xpivot := queue.pop()
		if x.state[xpivot] != Active {
			// Queue entries are enqueued while active and never re-enter
			// after elimination; anything else is a corrupted graph.
			panic(fmt.Sprintf("singletons: queued %s entity %d", x.state[xpivot], xpivot))
		}
		if x.deg[xpivot] != 1 {
			// Degraded to 0 by an elimination after it was enqueued.
			continue
		}

		// The unique active neighbor is the pivot partner.
		ypivot := -1
		xend := x.ptr[xpivot+1]
		for p := x.ptr[xpivot]; p < xend; p++ {
			if y.state[x.ind[p]] == Active {
				ypivot = x.ind[p]
				break
			}
		}
		*work += float64(2 * (xend - x.ptr[xpivot]))
		if ypivot < 0 {
			panic(fmt.Sprintf("singletons: degree-1 entity %d has no active neighbor", xpivot))
		}

		// Remove the pair: every other active neighbor of the partner loses
		// one live edge; fresh degree-1 entities join the queue.
		yend := y.ptr[ypivot+1]
		for p := y.ptr[ypivot]; p < yend; p++ {
			xn := y.ind[p]
			if x.state[xn] != Active || xn == xpivot {
				continue
			}
			x.deg[xn]--
			if x.deg[xn] < 0 {
				panic(fmt.Sprintf("singletons: entity %d degree below zero", xn))
			}
			if x.deg[xn] == 1 {
				queue.push(xn)
			}
		}
		*work += float64(2 * (yend - y.ptr[ypivot]))

		// Freeze both entities; their degree fields keep the value held at
		// this moment for diagnostics.
		x.state[xpivot] = Eliminated
		y.state[ypivot] = Eliminated

		x.perm[*found] = xpivot
		y.perm[*found] = ypivot
		*found++
		eliminated++
	}

	return eliminated
}

// buildRowForm materializes the row-major adjacency (offsets + column
// indices, no values) of A into the rows side via a counting sort.
// Complexity: O(m + n + nnz).
func buildRowForm(a *sparse.CSC, rows *side, work *float64) {
	m, n, nnz := a.M, a.N, a.NNZ()

	next := make([]int, m)
	for p := 0; p < nnz; p++ {
		next[a.RowIndex[p]]++
	}
	*work += float64(m + 3*nnz)

	rowStart := make([]int, m+1)
	total := 0
	for i := 0; i < m; i++ {
		rowStart[i] = total
		total += next[i]
		next[i] = rowStart[i]
	}
	rowStart[m] = total
	*work += float64(4 * m)

	colIndex := make([]int, nnz)
	for j := 0; j < n; j++ {
		for p := a.ColStart[j]; p < a.ColStart[j+1]; p++ {
			colIndex[next[a.RowIndex[p]]] = j
			next[a.RowIndex[p]]++
		}
	}
	*work += float64(2*n + 4*nnz)

	rows.ptr = rowStart
	rows.ind = colIndex
}

// completePermutation fills the tail of a side's permutation: entities still
// active with positive degree go to the unresolved block (ascending index),
// zero-degree entities are tagged Empty and packed at the very end.
// Returns the number of empty entities.
func completePermutation(found int, s *side) int {
	n := len(s.deg)
	numEmpty := 0
	next := found
	for k := 0; k < n; k++ {
		if s.state[k] != Active {
			continue // eliminated entities already occupy leading slots
		}
		if s.deg[k] == 0 {
			numEmpty++
			s.state[k] = Empty
			s.perm[n-numEmpty] = k
			continue
		}
		s.perm[next] = k
		next++
	}
	if next != n-numEmpty {
		panic("singletons: permutation completion lost entities")
	}

	return numEmpty
}
