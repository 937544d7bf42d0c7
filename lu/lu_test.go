package lu_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dusim/lu"
	"github.com/katalvlaran/dusim/singletons"
	"github.com/katalvlaran/dusim/sparse"
	"github.com/katalvlaran/dusim/vecmath"
)

// dense expands a CSC matrix for residual arithmetic in tests.
func dense(a *sparse.CSC) [][]float64 {
	d := make([][]float64, a.M)
	for i := range d {
		d[i] = make([]float64, a.N)
	}
	for j := 0; j < a.N; j++ {
		rows, vals := a.Column(j)
		for p, i := range rows {
			d[i][j] += vals[p]
		}
	}

	return d
}

func testMatrix(t *testing.T) *sparse.CSC {
	t.Helper()
	// [ 4 3 0 ]
	// [ 2 1 5 ]
	// [ 0 6 7 ]
	a, err := sparse.FromTriplets(3, 3,
		[]int{0, 1, 0, 1, 2, 1, 2},
		[]int{0, 0, 1, 1, 1, 2, 2},
		[]float64{4, 2, 3, 1, 6, 5, 7})
	require.NoError(t, err)

	return a
}

func TestFactorize_ResidualAgainstPermutedMatrix(t *testing.T) {
	a := testMatrix(t)

	f, err := lu.Factorize(a, []int{0, 1, 2}, 1e-12)
	require.NoError(t, err)
	require.True(t, vecmath.IsPermutation(f.PInv))
	require.True(t, vecmath.IsPermutation(f.Q))

	// L*U must reproduce P*A*Q entry for entry.
	ad := dense(a)
	ld := dense(f.L)
	ud := dense(f.U)
	rowOf := vecmath.InversePermutation(f.PInv)
	n := f.N
	for k := 0; k < n; k++ {
		for l := 0; l < n; l++ {
			prod := 0.0
			for s := 0; s < n; s++ {
				prod += ld[k][s] * ud[s][l]
			}
			require.InDelta(t, ad[rowOf[k]][f.Q[l]], prod, 1e-9,
				"entry (%d,%d)", k, l)
		}
	}
}

func TestFactorize_TriangularShape(t *testing.T) {
	a := testMatrix(t)

	f, err := lu.Factorize(a, []int{0, 1, 2}, 1e-12)
	require.NoError(t, err)

	// L: unit diagonal first per column, strictly lower below it.
	for k := 0; k < f.N; k++ {
		rows, vals := f.L.Column(k)
		require.Equal(t, k, rows[0])
		require.Equal(t, 1.0, vals[0])
		for _, i := range rows[1:] {
			require.Greater(t, i, k)
		}
	}
	// U: diagonal last per column, everything else above it.
	for k := 0; k < f.N; k++ {
		rows, vals := f.U.Column(k)
		last := len(rows) - 1
		require.Equal(t, k, rows[last])
		require.NotZero(t, vals[last])
		for _, i := range rows[:last] {
			require.Less(t, i, k)
		}
	}
}

func TestFactorize_HonorsColumnList(t *testing.T) {
	a := testMatrix(t)
	order := []int{2, 0, 1}

	f, err := lu.Factorize(a, order, 1e-12)
	require.NoError(t, err)
	require.Equal(t, order, f.Q)
}

func TestFactorize_InputErrors(t *testing.T) {
	rect, err := sparse.FromTriplets(2, 3,
		[]int{0, 1, 0}, []int{0, 1, 2}, []float64{1, 1, 1})
	require.NoError(t, err)
	_, err = lu.Factorize(rect, []int{0, 1, 2}, 1e-12)
	require.ErrorIs(t, err, lu.ErrNotSquare)

	a := testMatrix(t)
	_, err = lu.Factorize(a, []int{0, 1}, 1e-12)
	require.ErrorIs(t, err, lu.ErrBadColumnList)
	_, err = lu.Factorize(a, []int{0, 1, 1}, 1e-12)
	require.ErrorIs(t, err, lu.ErrBadColumnList)
}

func TestFactorize_StructurallySingular(t *testing.T) {
	// Column 1 holds no entries.
	a, err := sparse.FromTriplets(2, 2,
		[]int{0, 1}, []int{0, 0}, []float64{1, 2})
	require.NoError(t, err)

	_, err = lu.Factorize(a, []int{0, 1}, 1e-12)
	require.ErrorIs(t, err, lu.ErrSingular)

	var sce *lu.SingularColumnError
	require.ErrorAs(t, err, &sce)
	require.Equal(t, 1, sce.Column)
	require.Equal(t, 1, sce.Position)
}

func TestFactorize_NumericallySingular(t *testing.T) {
	// Rank one: the second column vanishes after one elimination step.
	a, err := sparse.FromTriplets(2, 2,
		[]int{0, 1, 0, 1}, []int{0, 0, 1, 1}, []float64{1, 2, 2, 4})
	require.NoError(t, err)

	_, err = lu.Factorize(a, []int{0, 1}, 1e-12)
	require.ErrorIs(t, err, lu.ErrSingular)

	var sce *lu.SingularColumnError
	require.ErrorAs(t, err, &sce)
	require.Equal(t, 1, sce.Column)
}

func TestFTran_SolvesLinearSystem(t *testing.T) {
	a := testMatrix(t)
	f, err := lu.Factorize(a, []int{0, 1, 2}, 1e-12)
	require.NoError(t, err)

	// b = A * [1, -2, 3]
	x, err := f.FTran([]float64{-2, 15, 9})
	require.NoError(t, err)
	require.InDelta(t, 1.0, x[0], 1e-9)
	require.InDelta(t, -2.0, x[1], 1e-9)
	require.InDelta(t, 3.0, x[2], 1e-9)

	_, err = f.FTran([]float64{1, 2})
	require.ErrorIs(t, err, lu.ErrVectorLength)
}

func TestBTran_SolvesTransposedSystem(t *testing.T) {
	a := testMatrix(t)
	f, err := lu.Factorize(a, []int{0, 1, 2}, 1e-12)
	require.NoError(t, err)

	// c = Aᵀ * [1, 1, 1] (column sums of A)
	y, err := f.BTran([]float64{6, 10, 12})
	require.NoError(t, err)
	require.InDelta(t, 1.0, y[0], 1e-9)
	require.InDelta(t, 1.0, y[1], 1e-9)
	require.InDelta(t, 1.0, y[2], 1e-9)

	_, err = f.BTran([]float64{1})
	require.ErrorIs(t, err, lu.ErrVectorLength)
}

func TestFactorize_WithSingletonOrdering(t *testing.T) {
	// [ 2 0 0 0 ]
	// [ 0 3 4 0 ]
	// [ 0 5 6 0 ]
	// [ 1 0 0 7 ]
	// The orderer eliminates (col3,row3) and the cascaded (col0,row0), then
	// LU finishes the coupled 2x2 block. Hand-computed pivots: 7, 2, 3, -2/3.
	a, err := sparse.FromTriplets(4, 4,
		[]int{0, 3, 1, 2, 1, 2, 3},
		[]int{0, 0, 1, 1, 2, 2, 3},
		[]float64{2, 1, 3, 5, 4, 6, 7})
	require.NoError(t, err)

	ord, err := singletons.FindSingletons(a)
	require.NoError(t, err)
	require.Equal(t, 2, ord.Singletons)
	require.Equal(t, []int{3, 0, 1, 2}, ord.ColPerm)

	f, err := lu.Factorize(a, ord.ColPerm, 1e-12)
	require.NoError(t, err)
	require.Equal(t, ord.ColPerm, f.Q)

	want := []float64{7, 2, 3, -2.0 / 3.0}
	for k := 0; k < 4; k++ {
		rows, vals := f.U.Column(k)
		last := len(rows) - 1
		require.Equal(t, k, rows[last])
		require.InDelta(t, want[k], vals[last], 1e-9, "pivot %d", k)
	}

	// Singleton pivots produce no fill: the first two L columns stay unit.
	r0, _ := f.L.Column(0)
	require.Equal(t, []int{0}, r0)
	r1, _ := f.L.Column(1)
	require.Equal(t, []int{1}, r1)
}

func TestFactorize_ArrowMatrixPeelsCompletely(t *testing.T) {
	// [ 4 0 1 ]
	// [ 0 3 0 ]
	// [ 0 5 2 ]
	// Column 0 and row 1 each hold a single nonzero. Peeling column 0 drops
	// column 2 to a singleton, which in turn exposes column 1: the cascade
	// resolves the whole matrix, so the factorizer sees only singleton
	// pivots and U carries the original entries untouched.
	a, err := sparse.FromTriplets(3, 3,
		[]int{0, 1, 2, 0, 2},
		[]int{0, 1, 1, 2, 2},
		[]float64{4, 3, 5, 1, 2})
	require.NoError(t, err)

	ord, err := singletons.FindSingletons(a)
	require.NoError(t, err)
	require.Equal(t, 3, ord.Singletons)
	require.Equal(t, []int{0, 2, 1}, ord.ColPerm)
	require.Equal(t, []int{0, 2, 1}, ord.RowPerm)

	f, err := lu.Factorize(a, ord.ColPerm, 1e-12)
	require.NoError(t, err)

	want := []float64{4, 2, 3}
	for k := 0; k < 3; k++ {
		rows, vals := f.U.Column(k)
		last := len(rows) - 1
		require.Equal(t, k, rows[last])
		require.InDelta(t, want[k], vals[last], 1e-9, "pivot %d", k)

		lrows, _ := f.L.Column(k)
		require.Equal(t, []int{k}, lrows, "L column %d stays unit", k)
	}
}

func TestRowPermutationOnly(t *testing.T) {
	a := testMatrix(t)

	q, pinv, err := lu.RowPermutationOnly(a, []int{0, 1, 2}, 1e-12, time.Time{})
	require.NoError(t, err)
	require.True(t, vecmath.IsPermutation(q))
	require.True(t, vecmath.IsPermutation(pinv))

	// The permutations must agree with the full factorization's.
	f, err := lu.Factorize(a, []int{0, 1, 2}, 1e-12)
	require.NoError(t, err)
	require.Equal(t, f.Q, q)
	require.Equal(t, f.PInv, pinv)
}

func TestRowPermutationOnly_Deadline(t *testing.T) {
	a := testMatrix(t)
	past := time.Now().Add(-time.Second)

	_, _, err := lu.RowPermutationOnly(a, []int{0, 1, 2}, 1e-12, past)
	require.ErrorIs(t, err, lu.ErrTimeLimit)
}
