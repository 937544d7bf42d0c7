package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dusim/sparse"
)

func TestNewCSC_RejectsBadShape(t *testing.T) {
	_, err := sparse.NewCSC(0, 3, 0)
	require.ErrorIs(t, err, sparse.ErrBadShape)

	_, err = sparse.NewCSC(3, -1, 0)
	require.ErrorIs(t, err, sparse.ErrBadShape)

	a, err := sparse.NewCSC(3, 2, 4)
	require.NoError(t, err)
	require.Equal(t, 0, a.NNZ())
	require.NoError(t, a.Validate())
}

func TestFromTriplets_BuildsColumnsInOrder(t *testing.T) {
	// 3x3:
	//   [ 2 0 1 ]
	//   [ 0 3 0 ]
	//   [ 4 0 5 ]
	rows := []int{0, 2, 1, 0, 2}
	cols := []int{0, 0, 1, 2, 2}
	vals := []float64{2, 4, 3, 1, 5}

	a, err := sparse.FromTriplets(3, 3, rows, cols, vals)
	require.NoError(t, err)
	require.NoError(t, a.Validate())
	require.Equal(t, 5, a.NNZ())

	r0, v0 := a.Column(0)
	require.Equal(t, []int{0, 2}, r0)
	require.Equal(t, []float64{2, 4}, v0)

	r2, v2 := a.Column(2)
	require.Equal(t, []int{0, 2}, r2)
	require.Equal(t, []float64{1, 5}, v2)
}

func TestFromTriplets_SumsDuplicates(t *testing.T) {
	// (1,1) appears three times and must collapse to a single entry.
	rows := []int{1, 0, 1, 1}
	cols := []int{1, 0, 1, 1}
	vals := []float64{1.5, 7, 2.5, -1}

	a, err := sparse.FromTriplets(2, 2, rows, cols, vals)
	require.NoError(t, err)
	require.Equal(t, 2, a.NNZ())

	r1, v1 := a.Column(1)
	require.Equal(t, []int{1}, r1)
	require.InDelta(t, 3.0, v1[0], 1e-15)
}

func TestFromTriplets_Errors(t *testing.T) {
	_, err := sparse.FromTriplets(2, 2, []int{0}, []int{0, 1}, []float64{1, 2})
	require.ErrorIs(t, err, sparse.ErrTripletMismatch)

	_, err = sparse.FromTriplets(2, 2, []int{2}, []int{0}, []float64{1})
	require.ErrorIs(t, err, sparse.ErrIndexOutOfRange)

	_, err = sparse.FromTriplets(2, 2, []int{0}, []int{-1}, []float64{1})
	require.ErrorIs(t, err, sparse.ErrIndexOutOfRange)
}

func TestIdentity(t *testing.T) {
	a, err := sparse.Identity(4)
	require.NoError(t, err)
	require.NoError(t, a.Validate())
	require.Equal(t, 4, a.NNZ())
	for j := 0; j < 4; j++ {
		r, v := a.Column(j)
		require.Equal(t, []int{j}, r)
		require.Equal(t, []float64{1}, v)
	}
}

func TestClone_Independent(t *testing.T) {
	a, err := sparse.FromTriplets(2, 2,
		[]int{0, 1}, []int{0, 1}, []float64{1, 2})
	require.NoError(t, err)

	b := a.Clone()
	b.Values[0] = 99
	_, v := a.Column(0)
	require.Equal(t, 1.0, v[0])
}

func TestValidate_CatchesCorruption(t *testing.T) {
	a, err := sparse.FromTriplets(2, 2,
		[]int{0, 1}, []int{0, 1}, []float64{1, 2})
	require.NoError(t, err)

	a.ColStart[1] = 5 // beyond ColStart[2]
	require.ErrorIs(t, a.Validate(), sparse.ErrBadOffsets)

	a.ColStart[1] = 1
	a.RowIndex[0] = 7
	require.ErrorIs(t, a.Validate(), sparse.ErrIndexOutOfRange)
}

func TestToCSR_RoundTripValues(t *testing.T) {
	// 2x3:
	//   [ 1 0 2 ]
	//   [ 0 3 4 ]
	a, err := sparse.FromTriplets(2, 3,
		[]int{0, 1, 0, 1}, []int{0, 1, 2, 2}, []float64{1, 3, 2, 4})
	require.NoError(t, err)

	r, err := a.ToCSR()
	require.NoError(t, err)
	require.Equal(t, a.NNZ(), r.NNZ())

	c0, v0 := r.Row(0)
	require.Equal(t, []int{0, 2}, c0)
	require.Equal(t, []float64{1, 2}, v0)

	c1, v1 := r.Row(1)
	require.Equal(t, []int{1, 2}, c1)
	require.Equal(t, []float64{3, 4}, v1)
}
