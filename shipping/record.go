// SPDX-License-Identifier: MIT

package shipping

import (
	"fmt"
	"math"
)

// Standard edge-list column names.
const (
	FieldFrom     = "from_id"
	FieldTo       = "to_id"
	FieldDistance = "distance"
	FieldLength   = "length"
	FieldGeometry = "geometry"
	FieldVFlow    = "v_sea_flow"
	FieldQFlow    = "q_sea_flow"
)

// Record is one raw edge-list row keyed by column name.
// Numeric columns hold float64 (other Go number types are accepted);
// a nil value is treated as missing.
type Record map[string]any

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}

	return out
}

// Text returns a string field.
func (r Record) Text(key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %q missing", ErrField, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string", ErrField, key, v)
	}

	return s, nil
}

// Number returns a numeric field. present is false when the field is
// missing or nil; a non-numeric or non-finite value is an error.
func (r Record) Number(key string) (value float64, present bool, err error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		value = n
	case float32:
		value = float64(n)
	case int:
		value = float64(n)
	case int32:
		value = float64(n)
	case int64:
		value = float64(n)
	case uint64:
		value = float64(n)
	default:
		return 0, false, fmt.Errorf("%w: %q is %T, want number", ErrField, key, v)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false, fmt.Errorf("%w: %q is not finite", ErrField, key)
	}

	return value, true, nil
}
