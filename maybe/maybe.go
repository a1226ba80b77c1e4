// Package maybe provides Float, a tri-state numeric value that is either a
// defined float64 or explicitly undefined.
//
// Undefined marks "no data" (a landlocked country, a zero denominator) and
// must never be confused with a measured zero. Arithmetic follows one rule:
// any operation with an undefined operand yields undefined. Aggregation
// (Sum) skips undefined terms and is itself undefined when no term is defined.
package maybe

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// Float is a float64 that may be undefined. The zero value is undefined.
type Float struct {
	v  float64
	ok bool
}

// Of returns a defined Float. NaN and ±Inf are mapped to undefined.
func Of(v float64) Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Float{}
	}

	return Float{v: v, ok: true}
}

// Undefined returns the undefined Float.
func Undefined() Float { return Float{} }

// Defined reports whether f carries a value.
func (f Float) Defined() bool { return f.ok }

// Get returns the value and whether it is defined.
func (f Float) Get() (float64, bool) { return f.v, f.ok }

// Or returns the value, or fallback when undefined.
func (f Float) Or(fallback float64) float64 {
	if !f.ok {
		return fallback
	}

	return f.v
}

// Add returns f+g.
func (f Float) Add(g Float) Float {
	if !f.ok || !g.ok {
		return Float{}
	}

	return Of(f.v + g.v)
}

// Mul returns f*g.
func (f Float) Mul(g Float) Float {
	if !f.ok || !g.ok {
		return Float{}
	}

	return Of(f.v * g.v)
}

// Scale returns f*k for a plain scalar k.
func (f Float) Scale(k float64) Float {
	if !f.ok {
		return Float{}
	}

	return Of(f.v * k)
}

// Div returns f/g; division by zero is undefined.
func (f Float) Div(g Float) Float {
	if !f.ok || !g.ok || g.v == 0 {
		return Float{}
	}

	return Of(f.v / g.v)
}

// IsZero reports whether f is defined and exactly zero.
func (f Float) IsZero() bool { return f.ok && f.v == 0 }

// Equal reports whether f and g are both undefined, or both defined with equal values.
func (f Float) Equal(g Float) bool {
	if f.ok != g.ok {
		return false
	}

	return !f.ok || f.v == g.v
}

// String renders the value, or "undefined".
func (f Float) String() string {
	if !f.ok {
		return "undefined"
	}

	return strconv.FormatFloat(f.v, 'g', -1, 64)
}

// MarshalJSON renders undefined as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.ok {
		return []byte("null"), nil
	}

	return json.Marshal(f.v)
}

// Sum adds the defined terms in ascending value order, so the result does
// not depend on argument order. It is undefined when no term is defined.
func Sum(terms ...Float) Float {
	vals := make([]float64, 0, len(terms))
	for _, t := range terms {
		if t.ok {
			vals = append(vals, t.v)
		}
	}
	if len(vals) == 0 {
		return Float{}
	}
	sort.Float64s(vals)

	var acc float64
	for _, v := range vals {
		acc += v
	}

	return Of(acc)
}
