// SPDX-License-Identifier: MIT

package mrio

import (
	"math"

	"github.com/katalvlaran/chokepoint/matrix"
)

// DefaultConsistencyTolerance bounds |X_c − X_r| per sector in Build.
const DefaultConsistencyTolerance = 1e-6

// Options for Build.
type Options struct {
	consistencyTol float64
	pivotTol       float64
}

// Option mutates Options.
type Option func(*Options)

// WithConsistencyTolerance sets the X_c/X_r agreement bound.
// Panics on a negative or non-finite value; zero requires exact agreement.
func WithConsistencyTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("mrio: WithConsistencyTolerance: tolerance must be finite and >= 0")
	}

	return func(o *Options) { o.consistencyTol = tol }
}

// WithPivotTolerance forwards to the LU factorization.
func WithPivotTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("mrio: WithPivotTolerance: tolerance must be finite and >= 0")
	}

	return func(o *Options) { o.pivotTol = tol }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		consistencyTol: DefaultConsistencyTolerance,
		pivotTol:       matrix.DefaultPivotTolerance,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
