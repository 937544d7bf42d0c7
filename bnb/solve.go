// Package bnb: the fixed-pool best-first driver.

package bnb

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/katalvlaran/dusim/lp"
	"github.com/katalvlaran/dusim/simplex"
)

// diveStride selects the exploration nodes that seed a detached dive: one
// dive per this many tree levels keeps diving cheap while still probing for
// early incumbents.
const diveStride = 8

// incumbent is the best integer-feasible point found so far. One mutex
// guards both fields; reads are cheap because workers consult it once per
// node, not per iteration.
type incumbent struct {
	mu    sync.Mutex
	found bool
	obj   float64
	x     []float64
}

func (inc *incumbent) objective() (float64, bool) {
	inc.mu.Lock()
	defer inc.mu.Unlock()
	if !inc.found {
		return math.Inf(1), false
	}

	return inc.obj, true
}

// offer installs a candidate when it beats the current incumbent; reports
// whether it won.
func (inc *incumbent) offer(obj float64, x []float64) bool {
	inc.mu.Lock()
	defer inc.mu.Unlock()
	if inc.found && obj >= inc.obj {
		return false
	}
	inc.found = true
	inc.obj = obj
	inc.x = append(inc.x[:0], x...)

	return true
}

// driver owns everything shared across the worker pool.
type driver struct {
	prob     *lp.Problem
	set      *simplex.Settings
	front    *frontier
	inc      incumbent
	stats    *Stats
	nextID   atomic.Int64
	deadline time.Time
	limit    atomic.Int32 // SolveStatus override set by limit hits, -1 when unset
}

// Solve runs branch and bound on p with a fixed pool of set.Workers workers
// sharing one best-first frontier. Integer variables are branched on; a
// problem with none reduces to a single LP solve.
func Solve(p *lp.Problem, set *simplex.Settings) (*Result, error) {
	return SolveWithStats(p, set, &Stats{})
}

// SolveWithStats is Solve reporting into a caller-owned Stats, typically one
// registered with Prometheus through NewStatsCollector. The Stats is reset
// at the start of the run.
func SolveWithStats(p *lp.Problem, set *simplex.Settings, st *Stats) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	workers := set.Workers
	if workers < 1 {
		workers = 1
	}

	d := &driver{
		prob:     p,
		set:      set,
		front:    newFrontier(),
		stats:    st,
		deadline: set.Deadline(time.Now()),
	}
	d.stats.Reset()
	d.limit.Store(-1)
	d.front.push(RootNode())
	d.stats.AddUnexplored(1)

	pool := make([]*Worker, workers)
	for i := range pool {
		w, err := NewWorker(i, p, set)
		if err != nil {
			return nil, err
		}
		pool[i] = w
	}

	var firstErr atomic.Pointer[error]
	var wg conc.WaitGroup
	for _, w := range pool {
		wg.Go(func() {
			if err := d.run(w); err != nil {
				firstErr.CompareAndSwap(nil, &err)
				d.front.close()
			}
		})
	}
	wg.Wait()

	if ep := firstErr.Load(); ep != nil {
		return nil, *ep
	}

	return d.assemble(pool), nil
}

// run is one worker's life: pop, prune, solve, branch, repeat until the
// frontier drains or a limit fires.
func (d *driver) run(w *Worker) error {
	for {
		if d.hitLimit() {
			d.front.close()

			return nil
		}
		node, ok := d.front.pop()
		if !ok {
			return nil
		}
		d.stats.AddUnexplored(-1)

		if err := d.expand(w, node); err != nil {
			return err
		}
		d.front.done()
	}
}

// expand solves one exploration node and pushes its children.
func (d *driver) expand(w *Worker, node Node) error {
	defer w.Finish()

	best, _ := d.inc.objective()
	if node.LowerBound >= best-d.set.IntegralityTol {
		d.stats.AddExplored()

		return nil // bound pruning before any LP work
	}

	w.InitBestFirst(&node, d.prob)
	res, err := w.SolveNode(d.stats, d.deadline)
	if err != nil {
		return err
	}
	switch res.Status {
	case simplex.StatusInfeasible:
		return nil
	case simplex.StatusTimeLimit:
		d.limit.CompareAndSwap(-1, int32(SolveTimeLimit))
		// The node goes back so its subtree bound survives into the final
		// gap report; nothing was proven about it.
		d.front.push(node)
		d.stats.AddUnexplored(1)

		return nil
	case simplex.StatusIterationLimit:
		// The relaxation hit its own budget; its point is unusable, so the
		// node goes back for another pass.
		d.front.push(node)
		d.stats.AddUnexplored(1)

		return nil
	}

	best, _ = d.inc.objective()
	if res.Objective >= best-d.set.IntegralityTol {
		return nil
	}

	branch := d.mostFractional(res.X)
	if branch < 0 {
		if d.inc.offer(res.Objective, res.X) {
			d.set.Logf("incumbent",
				"objective", res.Objective,
				"node", node.ID,
				"depth", node.Depth,
				"explored", d.stats.NodesExplored())
		}

		return nil
	}

	down, up := d.branch(&node, branch, res.X[branch], res.Objective)
	d.front.push(down)
	d.front.push(up)
	d.stats.AddUnexplored(2)

	if node.Depth%diveStride == 0 {
		d.dive(w, down)
	}

	return nil
}

// branch splits node on variable j at fractional value v into the floor and
// ceil children. Both inherit the parent relaxation objective as their
// subtree bound.
func (d *driver) branch(node *Node, j int, v, bound float64) (down, up Node) {
	lo, hi := d.prob.Lower[j], d.prob.Upper[j]
	for _, dl := range node.Deltas {
		if dl.Var == j {
			lo, hi = dl.Lower, dl.Upper
		}
	}
	down = node.Child(int(d.nextID.Add(1)), bound,
		BoundDelta{Var: j, Lower: lo, Upper: math.Floor(v)})
	up = node.Child(int(d.nextID.Add(1)), bound,
		BoundDelta{Var: j, Lower: math.Ceil(v), Upper: hi})

	return down, up
}

// dive probes depth-first from a private copy of start, fixing the branch
// variable toward its nearest integer at every level. Dive nodes never enter
// the frontier: they exist only inside the worker, and the only thing a dive
// can produce is an incumbent.
func (d *driver) dive(w *Worker, start Node) {
	node := start
	for depth := 0; ; depth++ {
		if d.hitLimit() {
			return
		}
		best, _ := d.inc.objective()
		if node.LowerBound >= best-d.set.IntegralityTol {
			return
		}
		if !w.InitDiving(&node, Diving, d.prob, d.set) {
			d.stats.AddExplored()

			return
		}
		res, err := w.SolveNode(d.stats, d.deadline)
		if err != nil || res.Status != simplex.StatusOptimal {
			return // dives are advisory, any trouble just ends them
		}
		if res.Objective >= best-d.set.IntegralityTol {
			return
		}
		branch := d.mostFractional(res.X)
		if branch < 0 {
			if d.inc.offer(res.Objective, res.X) {
				d.set.Logf("incumbent (dive)",
					"objective", res.Objective,
					"depth", depth,
					"explored", d.stats.NodesExplored())
			}

			return
		}
		node = d.roundToward(&node, branch, res.X[branch], res.Objective)
	}
}

// roundToward derives the dive child fixing variable j toward the nearest
// integer of its relaxation value.
func (d *driver) roundToward(node *Node, j int, v, bound float64) Node {
	lo, hi := d.prob.Lower[j], d.prob.Upper[j]
	for _, dl := range node.Deltas {
		if dl.Var == j {
			lo, hi = dl.Lower, dl.Upper
		}
	}
	if v-math.Floor(v) < 0.5 {
		hi = math.Floor(v)
	} else {
		lo = math.Ceil(v)
	}

	return node.Child(int(d.nextID.Add(1)), bound, BoundDelta{Var: j, Lower: lo, Upper: hi})
}

// mostFractional picks the integer variable whose relaxation value is
// furthest from an integer, or -1 when x is integer feasible.
func (d *driver) mostFractional(x []float64) int {
	branch, worst := -1, d.set.IntegralityTol
	for j, vt := range d.prob.VarTypes {
		if vt == lp.Continuous {
			continue
		}
		frac := math.Abs(x[j] - math.Round(x[j]))
		if frac > worst {
			worst, branch = frac, j
		}
	}

	return branch
}

// hitLimit records limit violations exactly once and reports whether any
// limit has fired.
func (d *driver) hitLimit() bool {
	if d.limit.Load() >= 0 {
		return true
	}
	if !d.deadline.IsZero() && time.Now().After(d.deadline) {
		d.limit.CompareAndSwap(-1, int32(SolveTimeLimit))

		return true
	}
	if d.set.MaxNodes > 0 && d.stats.NodesExplored() >= int64(d.set.MaxNodes) {
		d.limit.CompareAndSwap(-1, int32(SolveNodeLimit))

		return true
	}

	return false
}

// assemble builds the final Result from the incumbent, the surviving
// frontier and the workers' published bounds.
func (d *driver) assemble(pool []*Worker) *Result {
	res := &Result{Nodes: int(d.stats.NodesExplored())}

	obj, found := d.inc.objective()
	if found {
		res.Objective = obj
		d.inc.mu.Lock()
		res.X = append([]float64(nil), d.inc.x...)
		d.inc.mu.Unlock()
	}

	bound := d.front.bestBound()
	for _, w := range pool {
		if w.IsActive() && w.LowerBound() < bound {
			bound = w.LowerBound()
		}
	}
	if math.IsInf(bound, 1) {
		bound = obj // tree exhausted: the incumbent bound is tight
	}
	res.LowerBound = bound

	if lim := d.limit.Load(); lim >= 0 {
		res.Status = SolveStatus(lim)

		return res
	}
	if !found {
		res.Status = SolveInfeasible
		res.LowerBound = math.Inf(1)

		return res
	}
	res.Status = SolveOptimal

	return res
}
