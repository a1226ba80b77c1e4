// SPDX-License-Identifier: MIT

package exposure

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/chokepoint/maybe"
	"github.com/katalvlaran/chokepoint/mrio"
)

var (
	// ErrNilInput indicates a nil value-chain matrix or reliance source.
	ErrNilInput = errors.New("exposure: nil input")

	// ErrBadParams indicates non-positive or non-finite day counts.
	ErrBadParams = errors.New("exposure: day counts must be positive and finite")
)

// Reliance yields the chokepoint score of a country pair.
// *reliance.Matrix satisfies it.
type Reliance interface {
	Lookup(c1, c2 string) (maybe.Float, bool)
}

// Params sets the disruption proration.
type Params struct {
	DisruptionDays float64
	YearDays       float64
}

// DefaultParams is a six-day closure over a 365-day year.
func DefaultParams() Params {
	return Params{DisruptionDays: 6, YearDays: 365}
}

func (p Params) validate() error {
	for _, v := range []float64{p.DisruptionDays, p.YearDays} {
		if !(v > 0) || math.IsInf(v, 1) {
			return fmt.Errorf("%w: %+v", ErrBadParams, p)
		}
	}

	return nil
}

// CountryStats is the exposure of one destination country.
//
// VTotal      – value added absorbed by final demand in Country.
// VThrough    – the part of VTotal routed through the chokepoint.
// PctThrough  – 100·VThrough/VTotal.
// VBlocked    – VThrough prorated to the disruption window.
// PctBlocked  – PctThrough prorated the same way.
//
// Undefined fields encode to JSON null.
type CountryStats struct {
	Country    string      `json:"country"`
	VTotal     maybe.Float `json:"v_total"`
	VThrough   maybe.Float `json:"v_through"`
	PctThrough maybe.Float `json:"pct_through"`
	VBlocked   maybe.Float `json:"v_blocked"`
	PctBlocked maybe.Float `json:"pct_blocked"`
}

// Compute derives CountryStats for every country of vc, in vc order.
//
// VThrough[d] = Σ_o rel(o,d)·vc(o,d), skipping undefined scores. It is
// undefined when no score is defined or the sum is exactly zero: a zero here
// cannot be told apart from missing data. Percentages over a zero VTotal are
// undefined.
func Compute(vc *mrio.CountryMatrix, rel Reliance, p Params) ([]CountryStats, error) {
	if vc == nil || vc.Values == nil || rel == nil {
		return nil, ErrNilInput
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	share := p.DisruptionDays / p.YearDays

	out := make([]CountryStats, 0, len(vc.Countries))
	for d, dest := range vc.Countries {
		col, err := vc.Values.Col(d)
		if err != nil {
			return nil, fmt.Errorf("exposure: %s: %w", dest, err)
		}
		var total float64
		terms := make([]maybe.Float, 0, len(col))
		for o, v := range col {
			total += v
			r, _ := rel.Lookup(vc.Countries[o], dest)
			terms = append(terms, r.Scale(v))
		}

		through := maybe.Sum(terms...)
		if through.IsZero() {
			through = maybe.Undefined()
		}
		vTotal := maybe.Of(total)
		pct := through.Scale(100).Div(vTotal)

		out = append(out, CountryStats{
			Country:    dest,
			VTotal:     vTotal,
			VThrough:   through,
			PctThrough: pct,
			VBlocked:   through.Scale(share),
			PctBlocked: pct.Scale(share),
		})
	}

	return out, nil
}
