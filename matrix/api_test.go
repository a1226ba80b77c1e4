// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/chokepoint/matrix"
	"github.com/stretchr/testify/require"
)

func TestRowSums(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	rs, err := matrix.RowSums(m)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 15}, rs)
}

func TestDivCols_ZeroOverZeroIsZero(t *testing.T) {
	z := mustDense(t, [][]float64{{2, 0}, {4, 0}})
	a, err := matrix.DivCols(z, []float64{8, 0})
	require.NoError(t, err)
	requireMatrix(t, [][]float64{{0.25, 0}, {0.5, 0}}, a)
}

func TestDivRows_ZeroOverZeroIsZero(t *testing.T) {
	w := mustDense(t, [][]float64{{2, 6}, {0, 0}})
	v, err := matrix.DivRows(w, []float64{4, 0})
	require.NoError(t, err)
	requireMatrix(t, [][]float64{{0.5, 1.5}, {0, 0}}, v)

	_, err = matrix.DivRows(w, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestScaleRows(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	s, err := matrix.ScaleRows(m, []float64{2, 0.5})
	require.NoError(t, err)
	requireMatrix(t, [][]float64{{2, 4}, {1.5, 2}}, s)
}

func TestIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	requireMatrix(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, id)
}

func TestFirstBeyond(t *testing.T) {
	i, err := matrix.FirstBeyond([]float64{1, 2, 3}, []float64{1, 2.5, 3}, 0.1)
	require.NoError(t, err)
	require.Equal(t, 1, i)

	i, err = matrix.FirstBeyond([]float64{1, 2}, []float64{1, 2}, 1e-9)
	require.NoError(t, err)
	require.Equal(t, -1, i)

	_, err = matrix.FirstBeyond([]float64{1}, []float64{1, 2}, 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.FirstBeyond(nil, nil, -1)
	require.ErrorIs(t, err, matrix.ErrBadTolerance)
}

func TestMaxAbsDiff(t *testing.T) {
	d, at, err := matrix.MaxAbsDiff([]float64{1, 5, 2}, []float64{1, 2, 2})
	require.NoError(t, err)
	require.Equal(t, 3.0, d)
	require.Equal(t, 1, at)
}
