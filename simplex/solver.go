// Package simplex: bounded-variable dual simplex over the computational
// (slack) form.

package simplex

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/dusim/basis"
	"github.com/katalvlaran/dusim/lp"
	"github.com/katalvlaran/dusim/lu"
	"github.com/katalvlaran/dusim/sparse"
	"github.com/katalvlaran/dusim/vecmath"
)

// ratioEps screens pivot-row entries in the dual ratio test; entries this
// small would produce wild steps regardless of tolerances.
const ratioEps = 1e-9

// relaxRatio scales PivotTol down for the singularity-recovery rebuild.
const relaxRatio = 1e-4

// Solver owns the computational form of one LP instance plus the basis
// state that survives between solves (the dual warm start). It is not safe
// for concurrent use: exactly one worker owns a Solver.
type Solver struct {
	prob *lp.Problem
	set  *Settings

	m     int // rows
	n     int // structural columns
	total int // n + m, slacks appended

	afull *sparse.CSC // m x total: [A | -I]
	cost  []float64   // len total, zero on slacks
	lower []float64   // len total
	upper []float64   // len total

	part    *basis.Partition
	factors *basis.Factors
	status  []VStatus // len total
}

// New builds the computational form for p and installs the all-slack
// starting basis. The problem is referenced, not copied: the caller owns it
// and signals bound changes via RefreshBounds.
func New(p *lp.Problem, set *Settings) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	m, n := p.NumRows(), p.NumCols()
	s := &Solver{
		prob:  p,
		set:   set,
		m:     m,
		n:     n,
		total: n + m,
		cost:  make([]float64, n+m),
		lower: make([]float64, n+m),
		upper: make([]float64, n+m),
	}
	copy(s.cost, p.Obj)
	s.afull = appendSlacks(p.A)
	s.RefreshBounds()
	s.factors = basis.NewFactors(m, set.RefactorInterval, set.PivotTol)
	if err := s.ResetBasis(); err != nil {
		return nil, err
	}

	return s, nil
}

// RefreshBounds re-reads variable and row bounds from the owned problem.
// Call it after node bound deltas were applied; nonbasic variables keep
// their status and simply follow the moved bound.
func (s *Solver) RefreshBounds() {
	copy(s.lower[:s.n], s.prob.Lower)
	copy(s.upper[:s.n], s.prob.Upper)
	copy(s.lower[s.n:], s.prob.RowLower)
	copy(s.upper[s.n:], s.prob.RowUpper)
}

// Basis exposes the current partition for invariant checks and reporting.
func (s *Solver) Basis() *basis.Partition { return s.part }

// ResetBasis installs the all-slack basis and parks every structural
// variable at a dual-feasible bound (bound flipping on the sign of its
// objective coefficient). Returns ErrNotDualFeasible when an attractive
// objective coefficient meets an unbounded variable.
func (s *Solver) ResetBasis() error {
	slacks := make([]int, s.m)
	for i := 0; i < s.m; i++ {
		slacks[i] = s.n + i
	}
	part, err := basis.NewPartition(s.total, slacks)
	if err != nil {
		return err
	}
	status := make([]VStatus, s.total)
	for i := 0; i < s.m; i++ {
		status[s.n+i] = Basic
	}
	for j := 0; j < s.n; j++ {
		st, err := dualFeasibleStatus(s.cost[j], s.lower[j], s.upper[j], s.set.DualTol)
		if err != nil {
			return fmt.Errorf("simplex: variable %d (cost %g): %w", j, s.cost[j], err)
		}
		status[j] = st
	}
	s.part = part
	s.status = status

	return s.factors.Refactorize(s.afull, s.part.Basic)
}

// Solve runs dual simplex iterations until optimality, proven
// infeasibility, or a resource limit. The deadline is polled once per
// iteration (cooperative cancellation); zero means no deadline.
func (s *Solver) Solve(deadline time.Time) (*Result, error) {
	if s.factors.NeedsRefactorization() {
		if err := s.refactorize(); err != nil {
			return nil, err
		}
	}

	iters := 0
	banned := make(map[int]bool) // columns refused by Replace this pivot
	for {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return s.finish(StatusTimeLimit, iters)
		}
		if s.set.IterationLimit > 0 && iters >= s.set.IterationLimit {
			return s.finish(StatusIterationLimit, iters)
		}
		iters++

		x, err := s.primal()
		if err != nil {
			return nil, err
		}

		// Leaving variable: largest bound violation among basic positions.
		r, dir := s.chooseLeaving(x)
		if r < 0 {
			return &Result{
				Status:     StatusOptimal,
				Objective:  objective(s.cost[:s.n], x[:s.n]),
				X:          x[:s.n:s.n],
				Iterations: iters,
			}, nil
		}

		// Pivot row rho = Bᵀ⁻¹ e_r and simplex multipliers y = Bᵀ⁻¹ c_B.
		er := make([]float64, s.m)
		er[r] = 1.0
		rho, err := s.factors.BTran(er)
		if err != nil {
			return nil, err
		}
		y, err := s.factors.BTran(s.gatherBasicCost())
		if err != nil {
			return nil, err
		}

		jstar, sIdx, _ := s.chooseEntering(rho, y, dir, banned)
		lastResort := false
		if jstar < 0 && len(banned) > 0 {
			// Every remaining candidate was set aside by an unstable pivot;
			// with the factors already refreshed they deserve a second look
			// before the node is declared infeasible.
			clear(banned)
			lastResort = true
			jstar, sIdx, _ = s.chooseEntering(rho, y, dir, banned)
		}
		if jstar < 0 {
			return s.finish(StatusInfeasible, iters)
		}

		// w = B⁻¹ a_{jstar} drives the product-form update.
		w, err := s.factors.FTran(s.scatterColumn(jstar))
		if err != nil {
			return nil, err
		}
		forceRefactor := false
		if err := s.factors.Replace(r, w); err != nil {
			if !errors.Is(err, basis.ErrUnstablePivot) {
				return nil, err
			}
			if !lastResort {
				// Refactorize once for accuracy and refuse this entering
				// column for the retry; guarantees forward progress.
				if err := s.refactorize(); err != nil {
					return nil, err
				}
				banned[jstar] = true
				continue
			}
			// Fresh factors refused this column once already. Take the swap
			// anyway and absorb it by refactorizing the post-swap basis:
			// the update form is what is untrustworthy, not the pivot.
			forceRefactor = true
		}

		// Bookkeeping: the leaving variable lands on its violated bound.
		jleave := s.part.Basic[r]
		if dir < 0 {
			s.status[jleave] = AtLower
		} else {
			s.status[jleave] = AtUpper
		}
		s.status[jstar] = Basic
		if err := s.part.Swap(r, sIdx); err != nil {
			return nil, err
		}
		if forceRefactor || s.factors.NeedsRefactorization() {
			if err := s.refactorize(); err != nil {
				return nil, err
			}
		}
		clear(banned)
	}
}

// refactorize rebuilds the basis factors, treating numerical singularity as
// recoverable: probe the current basis at a relaxed pivot tolerance, rebuild
// relaxed when the probe passes, and restart from the all-slack basis when
// even the relaxed sequence has no pivots. Only structural defects or a
// dual-infeasible restart surface as errors.
func (s *Solver) refactorize() error {
	err := s.factors.Refactorize(s.afull, s.part.Basic)
	if err == nil || !errors.Is(err, lu.ErrSingular) {
		return err
	}
	relaxed := s.set.PivotTol * relaxRatio
	if s.factors.Probe(s.afull, s.part.Basic, relaxed) == nil {
		return s.factors.RefactorizeRelaxed(s.afull, s.part.Basic, relaxed)
	}

	return s.ResetBasis()
}

// primal computes the full variable vector for the current basis: nonbasic
// variables sit on their bounds, basic values solve B x_B = -N x_N.
func (s *Solver) primal() ([]float64, error) {
	rhs := make([]float64, s.m)
	x := make([]float64, s.total)
	for _, j := range s.part.Nonbasic {
		v := s.nonbasicValue(j)
		x[j] = v
		if v == 0 {
			continue
		}
		rows, vals := s.afull.Column(j)
		for p, i := range rows {
			rhs[i] -= vals[p] * v
		}
	}
	xb, err := s.factors.FTran(rhs)
	if err != nil {
		return nil, err
	}
	for i, j := range s.part.Basic {
		x[j] = xb[i]
	}

	return x, nil
}

// chooseLeaving returns the basis position with the largest primal bound
// violation and its direction (-1 below lower, +1 above upper), or (-1,0)
// when the point is primal feasible.
func (s *Solver) chooseLeaving(x []float64) (int, int) {
	r, dir := -1, 0
	worst := s.set.FeasTol
	for i, j := range s.part.Basic {
		if v := s.lower[j] - x[j]; v > worst {
			worst, r, dir = v, i, -1
		}
		if v := x[j] - s.upper[j]; v > worst {
			worst, r, dir = v, i, +1
		}
	}

	return r, dir
}

// chooseEntering runs the dual ratio test over the pivot row: among
// sign-eligible nonbasic columns, the smallest |d_j|/|alpha_j| wins, with
// larger |alpha_j| (stability) then lower index (determinism) as
// tie-breakers.
func (s *Solver) chooseEntering(rho, y []float64, dir int, banned map[int]bool) (jstar, sIdx int, alphaStar float64) {
	jstar, sIdx = -1, -1
	bestRatio := math.Inf(1)
	for idx, j := range s.part.Nonbasic {
		if banned[j] || s.lower[j] == s.upper[j] {
			continue // fixed variables never enter
		}
		rows, vals := s.afull.Column(j)
		alpha := vecmath.ScatterDot(rows, vals, rho)
		alphaT := alpha * float64(dir)
		eligible := false
		switch s.status[j] {
		case AtLower:
			eligible = alphaT > ratioEps
		case AtUpper:
			eligible = alphaT < -ratioEps
		case AtZero:
			eligible = math.Abs(alphaT) > ratioEps
		case Basic:
			// a nonbasic-list entry can never be Basic
		}
		if !eligible {
			continue
		}
		d := s.cost[j] - vecmath.ScatterDot(rows, vals, y)
		ratio := d / alphaT
		if ratio < 0 {
			ratio = 0 // tolerance slack on dual feasibility
		}
		better := ratio < bestRatio-s.set.DualTol ||
			(ratio < bestRatio+s.set.DualTol && math.Abs(alpha) > math.Abs(alphaStar))
		if better {
			bestRatio = ratio
			jstar, sIdx, alphaStar = j, idx, alpha
		}
	}

	return jstar, sIdx, alphaStar
}

// finish assembles a Result for a terminal status, recomputing the current
// point so limit statuses still report the best available incumbent basis.
func (s *Solver) finish(st Status, iters int) (*Result, error) {
	x, err := s.primal()
	if err != nil {
		return nil, err
	}

	return &Result{
		Status:     st,
		Objective:  objective(s.cost[:s.n], x[:s.n]),
		X:          x[:s.n:s.n],
		Iterations: iters,
	}, nil
}

func (s *Solver) nonbasicValue(j int) float64 {
	switch s.status[j] {
	case AtLower:
		return s.lower[j]
	case AtUpper:
		return s.upper[j]
	default:
		return 0
	}
}

func (s *Solver) gatherBasicCost() []float64 {
	cb := make([]float64, s.m)
	for i, j := range s.part.Basic {
		cb[i] = s.cost[j]
	}

	return cb
}

func (s *Solver) scatterColumn(j int) []float64 {
	col := make([]float64, s.m)
	rows, vals := s.afull.Column(j)
	for p, i := range rows {
		col[i] += vals[p]
	}

	return col
}

// dualFeasibleStatus parks one nonbasic variable so its reduced cost (== c
// at the all-slack basis) is dual feasible, flipping bounds when necessary.
func dualFeasibleStatus(c, lo, hi, dualTol float64) (VStatus, error) {
	free := math.IsInf(lo, -1) && math.IsInf(hi, 1)
	switch {
	case c > dualTol:
		if math.IsInf(lo, -1) {
			return 0, ErrNotDualFeasible
		}
		return AtLower, nil
	case c < -dualTol:
		if math.IsInf(hi, 1) {
			return 0, ErrNotDualFeasible
		}
		return AtUpper, nil
	case free:
		return AtZero, nil
	case !math.IsInf(lo, -1):
		return AtLower, nil
	default:
		return AtUpper, nil
	}
}

func objective(c, x []float64) float64 {
	s := 0.0
	for k := range c {
		s += c[k] * x[k]
	}

	return s
}

// appendSlacks builds [A | -I] without touching A's storage.
func appendSlacks(a *sparse.CSC) *sparse.CSC {
	m, n, nnz := a.M, a.N, a.NNZ()
	full := &sparse.CSC{
		M:        m,
		N:        n + m,
		ColStart: make([]int, n+m+1),
		RowIndex: make([]int, 0, nnz+m),
		Values:   make([]float64, 0, nnz+m),
	}
	copy(full.ColStart, a.ColStart)
	full.RowIndex = append(full.RowIndex, a.RowIndex...)
	full.Values = append(full.Values, a.Values...)
	for i := 0; i < m; i++ {
		full.ColStart[n+i] = len(full.Values)
		full.RowIndex = append(full.RowIndex, i)
		full.Values = append(full.Values, -1.0)
	}
	full.ColStart[n+m] = len(full.Values)

	return full
}
