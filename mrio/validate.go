// SPDX-License-Identifier: MIT

package mrio

import (
	"fmt"
	"math"

	"github.com/katalvlaran/chokepoint/iotable"
	"github.com/katalvlaran/chokepoint/matrix"
)

// Validate checks, element-wise with |diff| < tol, in this order:
//
//	row-balance              Z·1 + F·1        ≈ X
//	coefficient-consistency  A·X              ≈ Z·1
//	leontief-closure         L·F·1            ≈ X
//	value-added-balance      diag(V·1)·L·F·1  ≈ W·1
//
// The first failure is returned as *ValidationError, which also carries the
// largest difference for that identity.
func Validate(m *Matrices, tol float64) error {
	if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		return fmt.Errorf("%w: %g", ErrBadTolerance, tol)
	}
	if m == nil {
		return fmt.Errorf("mrio: Validate: %w", matrix.ErrNilMatrix)
	}

	zRow, err := matrix.RowSums(m.Z)
	if err != nil {
		return err
	}
	fRow, err := matrix.RowSums(m.F)
	if err != nil {
		return err
	}
	wRow, err := matrix.RowSums(m.W)
	if err != nil {
		return err
	}
	vRow, err := matrix.RowSums(m.V)
	if err != nil {
		return err
	}

	supply := make([]float64, len(zRow))
	for i := range zRow {
		supply[i] = zRow[i] + fRow[i]
	}
	if err = check(IdentityRowBalance, supply, m.X, tol, m.Sectors); err != nil {
		return err
	}

	ax, err := matrix.MatVec(m.A, m.X)
	if err != nil {
		return err
	}
	if err = check(IdentityCoefficients, ax, zRow, tol, m.Sectors); err != nil {
		return err
	}

	lf, err := matrix.MatVec(m.L, fRow)
	if err != nil {
		return err
	}
	if err = check(IdentityLeontief, lf, m.X, tol, m.Sectors); err != nil {
		return err
	}

	va := make([]float64, len(lf))
	for i := range lf {
		va[i] = vRow[i] * lf[i]
	}

	return check(IdentityValueAdded, va, wRow, tol, m.Sectors)
}

func check(identity string, got, want []float64, tol float64, sectors []iotable.Key) error {
	at, err := matrix.FirstBeyond(got, want, tol)
	if err != nil {
		return fmt.Errorf("mrio: %s: %w", identity, err)
	}
	if at < 0 {
		return nil
	}
	worst, worstAt, err := matrix.MaxAbsDiff(got, want)
	if err != nil {
		return fmt.Errorf("mrio: %s: %w", identity, err)
	}
	ve := &ValidationError{
		Identity:   identity,
		Index:      at,
		Diff:       got[at] - want[at],
		Worst:      worst,
		WorstIndex: worstAt,
	}
	if at < len(sectors) {
		ve.Sector = sectors[at]
	}

	return ve
}
