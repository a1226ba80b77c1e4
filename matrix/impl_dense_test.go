// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/chokepoint/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense(2, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestNewDenseFrom_Ragged(t *testing.T) {
	_, err := matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDense_AtSetBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 0, 4.5))
	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 4.5, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 2, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
}

func TestDense_CloneIsDeep(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))

	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)
}

func TestDense_BlockAndInduced(t *testing.T) {
	m := mustDense(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	b, err := m.Block(1, 3, 0, 2)
	require.NoError(t, err)
	requireMatrix(t, [][]float64{{4, 5}, {7, 8}}, b)

	ind, err := m.Induced([]int{2, 0}, []int{1})
	require.NoError(t, err)
	requireMatrix(t, [][]float64{{8}, {2}}, ind)

	empty, err := m.Block(0, 3, 3, 3)
	require.NoError(t, err)
	require.Equal(t, 3, empty.Rows())
	require.Equal(t, 0, empty.Cols())

	_, err = m.Block(0, 4, 0, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Induced([]int{0}, []int{5})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_RowCol(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	r, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, r)
	c, err := m.Col(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, c)

	_, err = m.Row(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}
