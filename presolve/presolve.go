// Package presolve: activity-based bound strengthening.

package presolve

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dusim/lp"
	"github.com/katalvlaran/dusim/sparse"
)

// Strengthener holds the row-major constraint view and the row bounds it
// propagates against. Build one per worker; Strengthen is then allocation
// free and callable once per node.
type Strengthener struct {
	arow     *sparse.CSR
	rowLower []float64
	rowUpper []float64
	varTypes []lp.VarType

	// scratch, reused across calls
	minAct, maxAct []float64
	minInf, maxInf []int
}

// New prepares a Strengthener for the given problem. The row-major form is
// materialized once here; bounds vectors are passed per call since they are
// what the tree nodes mutate.
func New(p *lp.Problem) (*Strengthener, error) {
	arow, err := p.A.ToCSR()
	if err != nil {
		return nil, fmt.Errorf("presolve: %w", err)
	}

	return &Strengthener{
		arow:     arow,
		rowLower: p.RowLower,
		rowUpper: p.RowUpper,
		varTypes: p.VarTypes,
		minAct:   make([]float64, p.NumRows()),
		maxAct:   make([]float64, p.NumRows()),
		minInf:   make([]int, p.NumRows()),
		maxInf:   make([]int, p.NumRows()),
	}, nil
}

// Strengthen propagates implied bounds through every row until a fixed
// point, proven infeasibility, or maxRounds sweeps. lower/upper are
// tightened in place; changed[j] is set for every variable whose bounds
// moved (existing marks are kept, callers reset between nodes). Returns
// false when the node's feasible region is provably empty.
func (st *Strengthener) Strengthen(lower, upper []float64, changed []bool, feasTol float64, maxRounds int) bool {
	m := st.arow.M
	for round := 0; round < maxRounds; round++ {
		anyChange := false
		st.computeActivities(lower, upper)

		for i := 0; i < m; i++ {
			// A row whose minimal activity already exceeds its upper bound
			// (or maximal activity undershoots its lower bound) kills the node.
			if st.minInf[i] == 0 && st.minAct[i] > st.rowUpper[i]+feasTol {
				return false
			}
			if st.maxInf[i] == 0 && st.maxAct[i] < st.rowLower[i]-feasTol {
				return false
			}

			cols, vals := st.arow.Row(i)
			for p, j := range cols {
				a := vals[p]
				if a == 0 {
					continue
				}
				if !st.tightenVar(i, j, a, lower, upper, changed, feasTol, &anyChange) {
					return false
				}
			}
		}
		if !anyChange {
			break
		}
	}

	return true
}

// tightenVar applies the two implied bounds row i puts on variable j.
// Returns false on crossed bounds.
func (st *Strengthener) tightenVar(i, j int, a float64, lower, upper []float64, changed []bool, feasTol float64, anyChange *bool) bool {
	// Residual activities with variable j's own contribution removed; only
	// finite when j carries the row's sole unbounded contribution or none.
	resMin, okMin := st.residual(i, j, a, lower, upper, true)
	resMax, okMax := st.residual(i, j, a, lower, upper, false)

	var newLo, newHi float64
	hasLo, hasHi := false, false
	if a > 0 {
		if okMin && !math.IsInf(st.rowUpper[i], 1) {
			newHi, hasHi = (st.rowUpper[i]-resMin)/a, true
		}
		if okMax && !math.IsInf(st.rowLower[i], -1) {
			newLo, hasLo = (st.rowLower[i]-resMax)/a, true
		}
	} else {
		if okMin && !math.IsInf(st.rowUpper[i], 1) {
			newLo, hasLo = (st.rowUpper[i]-resMin)/a, true
		}
		if okMax && !math.IsInf(st.rowLower[i], -1) {
			newHi, hasHi = (st.rowLower[i]-resMax)/a, true
		}
	}

	if st.varTypes[j] != lp.Continuous {
		if hasLo {
			newLo = math.Ceil(newLo - feasTol)
		}
		if hasHi {
			newHi = math.Floor(newHi + feasTol)
		}
	}

	if hasLo && newLo > lower[j]+feasTol {
		lower[j] = newLo
		changed[j] = true
		*anyChange = true
	}
	if hasHi && newHi < upper[j]-feasTol {
		upper[j] = newHi
		changed[j] = true
		*anyChange = true
	}

	return lower[j] <= upper[j]+feasTol
}

// residual returns the row's min (or max) activity with variable j's
// contribution removed, and whether that residual is finite.
func (st *Strengthener) residual(i, j int, a float64, lower, upper []float64, wantMin bool) (float64, bool) {
	var contrib float64
	if (a > 0) == wantMin {
		contrib = a * lower[j]
	} else {
		contrib = a * upper[j]
	}
	act, inf := st.minAct[i], st.minInf[i]
	if !wantMin {
		act, inf = st.maxAct[i], st.maxInf[i]
	}
	if math.IsInf(contrib, 0) {
		if inf == 1 {
			return act, true // j was the only unbounded term
		}
		return 0, false
	}

	return act - contrib, inf == 0
}

// computeActivities fills the per-row minimal/maximal activities, counting
// unbounded contributions separately so residuals never see ±Inf sums.
func (st *Strengthener) computeActivities(lower, upper []float64) {
	for i := 0; i < st.arow.M; i++ {
		st.minAct[i], st.maxAct[i] = 0, 0
		st.minInf[i], st.maxInf[i] = 0, 0
		cols, vals := st.arow.Row(i)
		for p, j := range cols {
			a := vals[p]
			lo, hi := a*lower[j], a*upper[j]
			if a < 0 {
				lo, hi = hi, lo
			}
			if math.IsInf(lo, 0) {
				st.minInf[i]++
			} else {
				st.minAct[i] += lo
			}
			if math.IsInf(hi, 0) {
				st.maxInf[i]++
			} else {
				st.maxAct[i] += hi
			}
		}
	}
}
