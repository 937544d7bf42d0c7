// Package bnb: shared solve statistics. One writer per worker, any number
// of concurrent readers, no locks anywhere.

package bnb

import (
	"sync/atomic"
	"time"
)

// Stats aggregates process-wide counters for one solve invocation. Reset is
// called at solve start; final values after the solve terminates are the
// exact sums of all worker contributions. Mid-solve reads see a consistent
// (linearizable per field) snapshot suitable for progress reporting.
type Stats struct {
	startUnixNano   atomic.Int64
	lpSolveNanos    atomic.Int64
	lpIters         atomic.Int64
	nodesExplored   atomic.Int64
	nodesUnexplored atomic.Int64
}

// Reset zeroes every counter and stamps the solve start time.
func (st *Stats) Reset() {
	st.startUnixNano.Store(time.Now().UnixNano())
	st.lpSolveNanos.Store(0)
	st.lpIters.Store(0)
	st.nodesExplored.Store(0)
	st.nodesUnexplored.Store(0)
}

// AddLPSolveTime accumulates wall time spent inside LP solves.
func (st *Stats) AddLPSolveTime(d time.Duration) { st.lpSolveNanos.Add(int64(d)) }

// AddLPIters accumulates simplex iterations.
func (st *Stats) AddLPIters(n int) { st.lpIters.Add(int64(n)) }

// AddExplored counts one explored node.
func (st *Stats) AddExplored() { st.nodesExplored.Add(1) }

// AddUnexplored adjusts the open-node gauge (positive on push, negative on
// pop).
func (st *Stats) AddUnexplored(delta int) { st.nodesUnexplored.Add(int64(delta)) }

// TotalLPSolveTime returns the accumulated LP wall time.
func (st *Stats) TotalLPSolveTime() time.Duration {
	return time.Duration(st.lpSolveNanos.Load())
}

// TotalLPIters returns the accumulated simplex iteration count.
func (st *Stats) TotalLPIters() int64 { return st.lpIters.Load() }

// NodesExplored returns the number of nodes fully processed.
func (st *Stats) NodesExplored() int64 { return st.nodesExplored.Load() }

// NodesUnexplored returns the current open-node count.
func (st *Stats) NodesUnexplored() int64 { return st.nodesUnexplored.Load() }

// Elapsed returns wall time since Reset.
func (st *Stats) Elapsed() time.Duration {
	return time.Since(time.Unix(0, st.startUnixNano.Load()))
}
