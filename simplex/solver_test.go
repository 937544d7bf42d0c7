package simplex_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dusim/lp"
	"github.com/katalvlaran/dusim/simplex"
	"github.com/katalvlaran/dusim/sparse"
)

func boxProblem(t *testing.T) *lp.Problem {
	t.Helper()
	// min -x0 - 2*x1   s.t.  x0 + x1 <= 4,  x in [0,3]^2
	// Optimum at x = (1,3), objective -7.
	a, err := sparse.FromTriplets(1, 2,
		[]int{0, 0}, []int{0, 1}, []float64{1, 1})
	require.NoError(t, err)

	return &lp.Problem{
		A:        a,
		RowLower: []float64{math.Inf(-1)},
		RowUpper: []float64{4},
		Lower:    []float64{0, 0},
		Upper:    []float64{3, 3},
		Obj:      []float64{-1, -2},
		VarTypes: []lp.VarType{lp.Continuous, lp.Continuous},
	}
}

func TestSolve_BoxConstrained(t *testing.T) {
	s, err := simplex.New(boxProblem(t), simplex.Default())
	require.NoError(t, err)

	res, err := s.Solve(time.Time{})
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.InDelta(t, -7.0, res.Objective, 1e-7)
	require.InDelta(t, 1.0, res.X[0], 1e-7)
	require.InDelta(t, 3.0, res.X[1], 1e-7)
	require.Greater(t, res.Iterations, 0)
}

func TestSolve_EqualityRow(t *testing.T) {
	// min 3*x0 + x1   s.t.  x0 + x1 == 2,  x >= 0
	// Optimum at x = (0,2), objective 2.
	a, err := sparse.FromTriplets(1, 2,
		[]int{0, 0}, []int{0, 1}, []float64{1, 1})
	require.NoError(t, err)
	p := &lp.Problem{
		A:        a,
		RowLower: []float64{2},
		RowUpper: []float64{2},
		Lower:    []float64{0, 0},
		Upper:    []float64{math.Inf(1), math.Inf(1)},
		Obj:      []float64{3, 1},
		VarTypes: []lp.VarType{lp.Continuous, lp.Continuous},
	}

	s, err := simplex.New(p, simplex.Default())
	require.NoError(t, err)
	res, err := s.Solve(time.Time{})
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.InDelta(t, 2.0, res.Objective, 1e-7)
	require.InDelta(t, 0.0, res.X[0], 1e-7)
	require.InDelta(t, 2.0, res.X[1], 1e-7)
}

func TestSolve_TwoRows(t *testing.T) {
	// min -x0 - x1   s.t.  2*x0 + x1 <= 4,  x0 + 2*x1 <= 4,  x in [0,10]^2
	// Optimum at x = (4/3, 4/3), objective -8/3.
	a, err := sparse.FromTriplets(2, 2,
		[]int{0, 1, 0, 1}, []int{0, 0, 1, 1}, []float64{2, 1, 1, 2})
	require.NoError(t, err)
	p := &lp.Problem{
		A:        a,
		RowLower: []float64{math.Inf(-1), math.Inf(-1)},
		RowUpper: []float64{4, 4},
		Lower:    []float64{0, 0},
		Upper:    []float64{10, 10},
		Obj:      []float64{-1, -1},
		VarTypes: []lp.VarType{lp.Continuous, lp.Continuous},
	}

	s, err := simplex.New(p, simplex.Default())
	require.NoError(t, err)
	res, err := s.Solve(time.Time{})
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.InDelta(t, -8.0/3.0, res.Objective, 1e-7)
	require.InDelta(t, 4.0/3.0, res.X[0], 1e-7)
	require.InDelta(t, 4.0/3.0, res.X[1], 1e-7)
}

func TestSolve_Infeasible(t *testing.T) {
	// x0 + x1 <= -1 with x >= 0 has no feasible point.
	p := boxProblem(t)
	p.RowUpper[0] = -1
	p.Obj = []float64{1, 1}

	s, err := simplex.New(p, simplex.Default())
	require.NoError(t, err)
	res, err := s.Solve(time.Time{})
	require.NoError(t, err)
	require.Equal(t, simplex.StatusInfeasible, res.Status)
}

func TestSolve_DeadlineExpired(t *testing.T) {
	s, err := simplex.New(boxProblem(t), simplex.Default())
	require.NoError(t, err)

	res, err := s.Solve(time.Now().Add(-time.Second))
	require.NoError(t, err)
	require.Equal(t, simplex.StatusTimeLimit, res.Status)
}

func TestSolve_IterationLimit(t *testing.T) {
	set := simplex.Default()
	set.IterationLimit = 1

	s, err := simplex.New(boxProblem(t), set)
	require.NoError(t, err)
	res, err := s.Solve(time.Time{})
	require.NoError(t, err)
	require.Equal(t, simplex.StatusIterationLimit, res.Status)
	require.Equal(t, 1, res.Iterations)
}

func TestSolve_RecoversFromSingularBasis(t *testing.T) {
	// Same optimum as the box problem, plus an empty second row. Forcing
	// both structural columns basic leaves row 1 without a pivot, so the
	// refactorization at the head of Solve finds a structurally singular
	// basis and must restart from the all-slack basis instead of failing.
	a, err := sparse.FromTriplets(2, 2,
		[]int{0, 0}, []int{0, 1}, []float64{1, 1})
	require.NoError(t, err)
	p := &lp.Problem{
		A:        a,
		RowLower: []float64{math.Inf(-1), math.Inf(-1)},
		RowUpper: []float64{4, 4},
		Lower:    []float64{0, 0},
		Upper:    []float64{3, 3},
		Obj:      []float64{-1, -2},
		VarTypes: []lp.VarType{lp.Continuous, lp.Continuous},
	}
	set := simplex.Default()
	set.RefactorInterval = 0 // rebuild before every pivot

	s, err := simplex.New(p, set)
	require.NoError(t, err)
	pt := s.Basis()
	require.NoError(t, pt.Swap(0, 0))
	require.NoError(t, pt.Swap(1, 1))
	require.Equal(t, []int{0, 1}, pt.Basic)

	res, err := s.Solve(time.Time{})
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.InDelta(t, -7.0, res.Objective, 1e-7)
	require.InDelta(t, 1.0, res.X[0], 1e-7)
	require.InDelta(t, 3.0, res.X[1], 1e-7)
}

func TestSolve_CompletesPivotRefusedByUpdateForm(t *testing.T) {
	// min -0.01*x0  s.t.  0.1*x0 <= 0.05,  x0 in [0,1]; optimum 0.5.
	// With PivotTol at 0.5 the product-form update refuses the only
	// entering column twice; the swap must then be absorbed through a
	// relaxed refactorization rather than reported as infeasible.
	a, err := sparse.FromTriplets(1, 1, []int{0}, []int{0}, []float64{0.1})
	require.NoError(t, err)
	p := &lp.Problem{
		A:        a,
		RowLower: []float64{math.Inf(-1)},
		RowUpper: []float64{0.05},
		Lower:    []float64{0},
		Upper:    []float64{1},
		Obj:      []float64{-0.01},
		VarTypes: []lp.VarType{lp.Continuous},
	}
	set := simplex.Default()
	set.PivotTol = 0.5

	s, err := simplex.New(p, set)
	require.NoError(t, err)
	res, err := s.Solve(time.Time{})
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.InDelta(t, -0.005, res.Objective, 1e-9)
	require.InDelta(t, 0.5, res.X[0], 1e-9)
}

func TestNew_RejectsDualInfeasibleStart(t *testing.T) {
	// An attractive cost on a variable without an upper bound cannot be
	// parked dual feasibly.
	p := boxProblem(t)
	p.Upper[1] = math.Inf(1)

	_, err := simplex.New(p, simplex.Default())
	require.ErrorIs(t, err, simplex.ErrNotDualFeasible)
}

func TestSolve_WarmRestartAfterBoundChange(t *testing.T) {
	p := boxProblem(t)
	s, err := simplex.New(p, simplex.Default())
	require.NoError(t, err)

	res, err := s.Solve(time.Time{})
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)

	// Tighten x1 (a branching-style change) and re-solve on the warm basis.
	p.Upper[1] = 2
	s.RefreshBounds()
	res, err = s.Solve(time.Time{})
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.InDelta(t, -6.0, res.Objective, 1e-7)
	require.InDelta(t, 2.0, res.X[0], 1e-7)
	require.InDelta(t, 2.0, res.X[1], 1e-7)
}

func TestStatusStrings(t *testing.T) {
	require.Equal(t, "optimal", simplex.StatusOptimal.String())
	require.Equal(t, "infeasible", simplex.StatusInfeasible.String())
	require.Equal(t, "iteration-limit", simplex.StatusIterationLimit.String())
	require.Equal(t, "time-limit", simplex.StatusTimeLimit.String())
}

func TestSettings_Defaults(t *testing.T) {
	set := simplex.Default()
	require.Equal(t, 1e-11, set.PivotTol)
	require.Equal(t, 1e-7, set.FeasTol)
	require.Equal(t, 64, set.RefactorInterval)
	require.Equal(t, 1, set.Workers)
	require.Zero(t, set.TimeLimit)
}

func TestSettings_LoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.toml")
	cfg := `
feas_tol = 1e-6
iteration_limit = 500
workers = 4
time_limit = 30000000000 # nanoseconds
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	set, err := simplex.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1e-6, set.FeasTol)
	require.Equal(t, 500, set.IterationLimit)
	require.Equal(t, 4, set.Workers)
	require.Equal(t, 30*time.Second, set.TimeLimit)

	// Untouched fields keep their defaults.
	require.Equal(t, 1e-11, set.PivotTol)
	require.Equal(t, 64, set.RefactorInterval)
}

func TestSettings_LoadMissingFile(t *testing.T) {
	_, err := simplex.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestSettings_Deadline(t *testing.T) {
	set := simplex.Default()
	require.True(t, set.Deadline(time.Now()).IsZero())

	set.TimeLimit = time.Minute
	start := time.Now()
	require.Equal(t, start.Add(time.Minute), set.Deadline(start))
}
