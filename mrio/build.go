// SPDX-License-Identifier: MIT

package mrio

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/chokepoint/iotable"
	"github.com/katalvlaran/chokepoint/matrix"
)

// Matrices holds the structural matrices of one economy.
//
//	Z  N×N   intermediate flows
//	F  N×CU  final use
//	W  N×K'  value added (net-tax rows dropped), sector-major
//	X  N     total output
//	A  N×N   technical coefficients Z/X
//	V  N×K'  value-added coefficients W/X
//	L  N×N   Leontief inverse (I − A)⁻¹
type Matrices struct {
	Z, F, W, A, V, L *matrix.Dense
	X                []float64

	Sectors    []iotable.Key
	FinalUse   []iotable.Key
	ValueAdded []iotable.Key
}

// Build slices t positionally and derives A, V and L.
//
// Errors:
//   - ErrConsistency when |X_c − X_r| exceeds the consistency tolerance.
//   - ErrSingular (also matching matrix.ErrSingular) when I − A cannot be inverted.
func Build(t *iotable.Table, opts ...Option) (*Matrices, error) {
	if t == nil || t.Data == nil {
		return nil, fmt.Errorf("mrio: Build: %w", matrix.ErrNilMatrix)
	}
	o := gatherOptions(opts...)
	d := t.Dims
	n := d.Sectors()

	Z, err := t.Data.Block(0, n, 0, n)
	if err != nil {
		return nil, fmt.Errorf("mrio: Z: %w", err)
	}
	F, err := t.Data.Block(0, n, n, n+d.FinalUseCols())
	if err != nil {
		return nil, fmt.Errorf("mrio: F: %w", err)
	}
	wRows, err := t.Data.Block(n+d.TaxRows, n+d.ValueAdded, 0, n)
	if err != nil {
		return nil, fmt.Errorf("mrio: W: %w", err)
	}
	W, err := matrix.Transpose(wRows)
	if err != nil {
		return nil, fmt.Errorf("mrio: W: %w", err)
	}
	xc, err := t.Data.Col(d.TotalCol())
	if err != nil {
		return nil, fmt.Errorf("mrio: X_c: %w", err)
	}
	xr, err := t.Data.Row(d.TotalRow())
	if err != nil {
		return nil, fmt.Errorf("mrio: X_r: %w", err)
	}
	X := xc[:n]
	for i := 0; i < n; i++ {
		if diff := math.Abs(X[i] - xr[i]); diff > o.consistencyTol {
			return nil, fmt.Errorf("%w: sector %s: column %g, row %g", ErrConsistency, t.Rows[i], X[i], xr[i])
		}
	}

	A, err := matrix.DivCols(Z, X)
	if err != nil {
		return nil, fmt.Errorf("mrio: A: %w", err)
	}
	V, err := matrix.DivRows(W, X)
	if err != nil {
		return nil, fmt.Errorf("mrio: V: %w", err)
	}
	L, err := leontief(A, o.pivotTol)
	if err != nil {
		return nil, err
	}

	return &Matrices{
		Z: Z, F: F, W: W, A: A, V: V, L: L, X: X,
		Sectors:    t.Sectors(),
		FinalUse:   t.FinalUse(),
		ValueAdded: t.ValueAdded(),
	}, nil
}

// leontief returns (I − A)⁻¹.
func leontief(A *matrix.Dense, pivotTol float64) (*matrix.Dense, error) {
	I, err := matrix.NewIdentity(A.Rows())
	if err != nil {
		return nil, fmt.Errorf("mrio: identity: %w", err)
	}
	IA, err := matrix.Sub(I, A)
	if err != nil {
		return nil, fmt.Errorf("mrio: I-A: %w", err)
	}
	L, err := matrix.Inverse(IA, matrix.WithPivotTolerance(pivotTol))
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) || errors.Is(err, matrix.ErrNaNInf) {
			return nil, fmt.Errorf("%w: %w", ErrSingular, err)
		}

		return nil, fmt.Errorf("mrio: inverse: %w", err)
	}

	return L, nil
}
