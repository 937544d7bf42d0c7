// Package bnb: the shared frontier of unexplored nodes.

package bnb

import (
	"container/heap"
	"math"
	"sync"
)

// nodeHeap is a best-first min-heap over node lower bounds.
type nodeHeap []Node

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].LowerBound < h[j].LowerBound }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)        { *h = append(*h, x.(Node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	nd := old[n-1]
	*h = old[:n-1]

	return nd
}

// frontier hands out shared nodes to workers in best-bound order. Pop blocks
// while the heap is empty but some popped node is still being expanded (its
// children may yet arrive); it returns false only when the tree is truly
// exhausted or the search was shut down.
type frontier struct {
	mu          sync.Mutex
	cond        *sync.Cond
	heap        nodeHeap
	outstanding int // nodes popped, children not yet pushed
	closed      bool
}

func newFrontier() *frontier {
	f := &frontier{}
	f.cond = sync.NewCond(&f.mu)

	return f
}

// push hands ownership of nd to the frontier.
func (f *frontier) push(nd Node) {
	f.mu.Lock()
	heap.Push(&f.heap, nd)
	f.mu.Unlock()
	f.cond.Signal()
}

// pop returns the best-bound node. The caller owes a matching call to done
// after pushing the node's children (or deciding there are none).
func (f *frontier) pop() (Node, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		if f.closed {
			return Node{}, false
		}
		if len(f.heap) > 0 {
			f.outstanding++

			return heap.Pop(&f.heap).(Node), true
		}
		if f.outstanding == 0 {
			return Node{}, false
		}
		f.cond.Wait()
	}
}

// done marks one popped node fully expanded. The last done on an empty heap
// wakes every blocked pop so the pool can drain.
func (f *frontier) done() {
	f.mu.Lock()
	f.outstanding--
	empty := len(f.heap) == 0 && f.outstanding == 0
	f.mu.Unlock()
	if empty {
		f.cond.Broadcast()
	}
}

// close aborts the search: all blocked and future pops return false.
func (f *frontier) close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.cond.Broadcast()
}

// bestBound is the smallest lower bound still in the heap, +Inf when empty.
func (f *frontier) bestBound() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	best := math.Inf(1)
	for i := range f.heap {
		if f.heap[i].LowerBound < best {
			best = f.heap[i].LowerBound
		}
	}

	return best
}

// size reports heap length plus nodes currently being expanded.
func (f *frontier) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.heap) + f.outstanding
}
