// SPDX-License-Identifier: MIT

package mrio

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/chokepoint/iotable"
)

var (
	// ErrConsistency indicates that the two total-output views disagree.
	ErrConsistency = errors.New("mrio: total output row and column disagree")

	// ErrSingular indicates that I − A has no usable inverse.
	ErrSingular = errors.New("mrio: leontief system is singular")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("mrio: accounting identity violated")

	// ErrBadTolerance indicates a non-positive or non-finite tolerance.
	ErrBadTolerance = errors.New("mrio: tolerance must be positive and finite")
)

// Identity names reported by ValidationError.
const (
	IdentityRowBalance   = "row-balance"
	IdentityCoefficients = "coefficient-consistency"
	IdentityLeontief     = "leontief-closure"
	IdentityValueAdded   = "value-added-balance"
)

// ValidationError reports the first sector at which an identity fails.
// Worst is the largest absolute difference over all sectors, at WorstIndex.
type ValidationError struct {
	Identity   string
	Index      int
	Sector     iotable.Key
	Diff       float64
	Worst      float64
	WorstIndex int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mrio: identity %s violated at %s (index %d, diff %g, worst %g at index %d)",
		e.Identity, e.Sector, e.Index, e.Diff, e.Worst, e.WorstIndex)
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
