package presolve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dusim/lp"
	"github.com/katalvlaran/dusim/presolve"
	"github.com/katalvlaran/dusim/sparse"
)

const feasTol = 1e-7

func problem(t *testing.T, m, n int, rows, cols []int, vals []float64,
	rowLo, rowHi, lo, hi []float64, types []lp.VarType) *lp.Problem {
	t.Helper()
	a, err := sparse.FromTriplets(m, n, rows, cols, vals)
	require.NoError(t, err)
	p := &lp.Problem{
		A:        a,
		RowLower: rowLo,
		RowUpper: rowHi,
		Lower:    lo,
		Upper:    hi,
		Obj:      make([]float64, n),
		VarTypes: types,
	}
	require.NoError(t, p.Validate())

	return p
}

func TestStrengthen_TightensFromRowUpper(t *testing.T) {
	// x0 + x1 <= 4, both in [0,10]: each upper bound drops to 4.
	p := problem(t, 1, 2,
		[]int{0, 0}, []int{0, 1}, []float64{1, 1},
		[]float64{math.Inf(-1)}, []float64{4},
		[]float64{0, 0}, []float64{10, 10},
		[]lp.VarType{lp.Continuous, lp.Continuous})

	st, err := presolve.New(p)
	require.NoError(t, err)

	changed := make([]bool, 2)
	ok := st.Strengthen(p.Lower, p.Upper, changed, feasTol, 16)
	require.True(t, ok)
	require.InDelta(t, 4.0, p.Upper[0], 1e-9)
	require.InDelta(t, 4.0, p.Upper[1], 1e-9)
	require.Equal(t, []bool{true, true}, changed)
}

func TestStrengthen_IntegerRounding(t *testing.T) {
	// 2*x0 <= 5 with x0 integer: the implied 2.5 rounds down to 2.
	p := problem(t, 1, 1,
		[]int{0}, []int{0}, []float64{2},
		[]float64{math.Inf(-1)}, []float64{5},
		[]float64{0}, []float64{10},
		[]lp.VarType{lp.Integer})

	st, err := presolve.New(p)
	require.NoError(t, err)

	changed := make([]bool, 1)
	require.True(t, st.Strengthen(p.Lower, p.Upper, changed, feasTol, 16))
	require.Equal(t, 2.0, p.Upper[0])
	require.True(t, changed[0])
}

func TestStrengthen_DetectsInfeasibleRow(t *testing.T) {
	// x0 + x1 >= 10 but both at most 3: max activity 6 can never reach 10.
	p := problem(t, 1, 2,
		[]int{0, 0}, []int{0, 1}, []float64{1, 1},
		[]float64{10}, []float64{math.Inf(1)},
		[]float64{0, 0}, []float64{3, 3},
		[]lp.VarType{lp.Continuous, lp.Continuous})

	st, err := presolve.New(p)
	require.NoError(t, err)

	require.False(t, st.Strengthen(p.Lower, p.Upper, make([]bool, 2), feasTol, 16))
}

func TestStrengthen_DetectsCrossedBounds(t *testing.T) {
	// Row 0 forces x0 <= 1, row 1 forces x0 >= 2.
	p := problem(t, 2, 1,
		[]int{0, 1}, []int{0, 0}, []float64{1, 1},
		[]float64{math.Inf(-1), 2}, []float64{1, math.Inf(1)},
		[]float64{0}, []float64{10},
		[]lp.VarType{lp.Continuous})

	st, err := presolve.New(p)
	require.NoError(t, err)

	require.False(t, st.Strengthen(p.Lower, p.Upper, make([]bool, 1), feasTol, 16))
}

func TestStrengthen_NegativeCoefficient(t *testing.T) {
	// x1 - x0 <= 0 (x1 <= x0) with x0 in [0,2]: x1's upper drops to 2.
	p := problem(t, 1, 2,
		[]int{0, 0}, []int{0, 1}, []float64{-1, 1},
		[]float64{math.Inf(-1)}, []float64{0},
		[]float64{0, 0}, []float64{2, 5},
		[]lp.VarType{lp.Continuous, lp.Continuous})

	st, err := presolve.New(p)
	require.NoError(t, err)

	changed := make([]bool, 2)
	require.True(t, st.Strengthen(p.Lower, p.Upper, changed, feasTol, 16))
	require.InDelta(t, 2.0, p.Upper[1], 1e-9)
	require.False(t, changed[0])
	require.True(t, changed[1])
}

func TestStrengthen_BoundsUnboundedVariable(t *testing.T) {
	// x0 + x1 <= 4 where x1 is free. x1 being the row's sole unbounded
	// contribution means it still receives an implied upper bound; x0 gets
	// nothing new.
	p := problem(t, 1, 2,
		[]int{0, 0}, []int{0, 1}, []float64{1, 1},
		[]float64{math.Inf(-1)}, []float64{4},
		[]float64{0, math.Inf(-1)}, []float64{3, math.Inf(1)},
		[]lp.VarType{lp.Continuous, lp.Continuous})

	st, err := presolve.New(p)
	require.NoError(t, err)

	changed := make([]bool, 2)
	require.True(t, st.Strengthen(p.Lower, p.Upper, changed, feasTol, 16))
	require.InDelta(t, 4.0, p.Upper[1], 1e-9)
	require.Equal(t, 3.0, p.Upper[0])
	require.False(t, changed[0])
	require.True(t, changed[1])
}

func TestStrengthen_FixpointStopsEarly(t *testing.T) {
	// Already-tight box: a fresh call must report feasible and change nothing.
	p := problem(t, 1, 2,
		[]int{0, 0}, []int{0, 1}, []float64{1, 1},
		[]float64{math.Inf(-1)}, []float64{4},
		[]float64{0, 0}, []float64{2, 2},
		[]lp.VarType{lp.Continuous, lp.Continuous})

	st, err := presolve.New(p)
	require.NoError(t, err)

	changed := make([]bool, 2)
	require.True(t, st.Strengthen(p.Lower, p.Upper, changed, feasTol, 16))
	require.Equal(t, []bool{false, false}, changed)
	require.Equal(t, []float64{2, 2}, p.Upper)
}

func TestStrengthen_ChainedRounds(t *testing.T) {
	// x0 <= 3 (row 0) and x1 <= x0 (row 1): the second row only tightens
	// after the first has fired, so a fixed point needs more than one sweep.
	p := problem(t, 2, 2,
		[]int{0, 1, 1}, []int{0, 0, 1}, []float64{1, -1, 1},
		[]float64{math.Inf(-1), math.Inf(-1)}, []float64{3, 0},
		[]float64{0, 0}, []float64{100, 100},
		[]lp.VarType{lp.Continuous, lp.Continuous})

	st, err := presolve.New(p)
	require.NoError(t, err)

	changed := make([]bool, 2)
	require.True(t, st.Strengthen(p.Lower, p.Upper, changed, feasTol, 16))
	require.InDelta(t, 3.0, p.Upper[0], 1e-9)
	require.InDelta(t, 3.0, p.Upper[1], 1e-9)
}
