// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Thin public helpers built on the kernels: constructors, reductions,
// broadcast scaling and tolerance comparisons.
// Policy:
//   - No hidden state; deterministic loops only.
//   - Every helper documents its complexity.

package matrix

import (
	"fmt"
	"math"
)

const (
	opRowSums   = "RowSums"
	opDivCols   = "DivCols"
	opDivRows   = "DivRows"
	opScaleRows = "ScaleRows"
	opMaxAbs    = "MaxAbsDiff"
)

// NewZeros returns an r×c zero matrix.
func NewZeros(rows, cols int) (*Dense, error) { return NewDense(rows, cols) }

// NewIdentity returns the n×n identity matrix.
// Complexity: O(n²).
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Ones returns a vector of n ones.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1.0
	}

	return out
}

// RowSums returns r where r[i] = sum_j m[i,j], computed as m·1.
// Complexity: O(rc).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}

	return MatVec(m, Ones(m.Cols()))
}

// safeDiv returns num/den, mapping any division by zero to 0.
// Input-output coefficients treat a sector without output as having no inputs.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}

	return num / den
}

// DivCols returns out[i,j] = m[i,j] / d[j] (d broadcast over columns),
// with division by zero mapped to 0.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(d) != m.Cols()).
// Complexity: O(rc).
func DivCols(m Matrix, d []float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDivCols, err)
	}
	if err := ValidateVecLen(d, m.Cols()); err != nil {
		return nil, matrixErrorf(opDivCols, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opDivCols, err)
	}
	out, err := newDenseZeroOK(src.r, src.c)
	if err != nil {
		return nil, matrixErrorf(opDivCols, err)
	}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			out.data[i*src.c+j] = safeDiv(src.data[i*src.c+j], d[j])
		}
	}

	return out, nil
}

// DivRows returns out[i,j] = m[i,j] / d[i] (d broadcast over rows),
// with division by zero mapped to 0.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(d) != m.Rows()).
// Complexity: O(rc).
func DivRows(m Matrix, d []float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDivRows, err)
	}
	if err := ValidateVecLen(d, m.Rows()); err != nil {
		return nil, matrixErrorf(opDivRows, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opDivRows, err)
	}
	out, err := newDenseZeroOK(src.r, src.c)
	if err != nil {
		return nil, matrixErrorf(opDivRows, err)
	}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			out.data[i*src.c+j] = safeDiv(src.data[i*src.c+j], d[i])
		}
	}

	return out, nil
}

// ScaleRows returns diag(s)·m, i.e. out[i,j] = s[i]*m[i,j], without
// materializing the diagonal matrix.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(s) != m.Rows()).
// Complexity: O(rc).
func ScaleRows(m Matrix, s []float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	if err := ValidateVecLen(s, m.Rows()); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	out, err := newDenseZeroOK(src.r, src.c)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			out.data[i*src.c+j] = s[i] * src.data[i*src.c+j]
		}
	}

	return out, nil
}

// MaxAbsDiff returns the largest |a[i]-b[i]| and the index where it occurs
// (-1 for empty vectors).
//
// Errors: ErrDimensionMismatch when lengths differ.
// Complexity: O(n).
func MaxAbsDiff(a, b []float64) (float64, int, error) {
	if len(a) != len(b) {
		return 0, -1, matrixErrorf(opMaxAbs, fmt.Errorf("len %d vs %d: %w", len(a), len(b), ErrDimensionMismatch))
	}
	worst, at := 0.0, -1
	var d float64
	for i := range a {
		d = math.Abs(a[i] - b[i])
		if at < 0 || d > worst || math.IsNaN(d) {
			worst, at = d, i
		}
	}

	return worst, at, nil
}

// FirstBeyond returns the first index i with |a[i]-b[i]| >= tol (or NaN),
// or -1 when every element agrees strictly within tol.
//
// Errors: ErrDimensionMismatch, ErrBadTolerance.
// Complexity: O(n).
func FirstBeyond(a, b []float64, tol float64) (int, error) {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		return -1, ErrBadTolerance
	}
	if len(a) != len(b) {
		return -1, fmt.Errorf("FirstBeyond: len %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	var d float64
	for i := range a {
		d = math.Abs(a[i] - b[i])
		if !(d < tol) {
			return i, nil
		}
	}

	return -1, nil
}
