// SPDX-License-Identifier: MIT

package shipping

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// Leg is one maritime connection between two network nodes.
// Distance is the routing weight; Length is the geometric length as
// recorded in the source data.
type Leg struct {
	From, To string
	Distance float64
	Length   float64
	Geometry orb.LineString
}

// LegsFromRecords converts edge rows into legs.
//
// from_id, to_id and distance are required; length defaults to 0. geometry
// may be an orb.LineString, a single-line orb.MultiLineString, a WKT string,
// or absent.
func LegsFromRecords(rows []Record) ([]Leg, error) {
	out := make([]Leg, 0, len(rows))
	for i, row := range rows {
		leg, err := legFromRecord(row)
		if err != nil {
			return nil, fmt.Errorf("shipping: edge row %d: %w", i, err)
		}
		out = append(out, leg)
	}

	return out, nil
}

func legFromRecord(row Record) (Leg, error) {
	var (
		leg Leg
		err error
		ok  bool
	)
	if leg.From, err = row.Text(FieldFrom); err != nil {
		return leg, err
	}
	if leg.To, err = row.Text(FieldTo); err != nil {
		return leg, err
	}
	if leg.Distance, ok, err = row.Number(FieldDistance); err != nil {
		return leg, err
	} else if !ok {
		return leg, fmt.Errorf("%w: %q missing", ErrField, FieldDistance)
	}
	if leg.Length, _, err = row.Number(FieldLength); err != nil {
		return leg, err
	}
	leg.Geometry, err = lineString(row[FieldGeometry])

	return leg, err
}

func lineString(v any) (orb.LineString, error) {
	switch g := v.(type) {
	case nil:
		return nil, nil
	case orb.LineString:
		return g, nil
	case orb.MultiLineString:
		if len(g) == 1 {
			return g[0], nil
		}
		return nil, fmt.Errorf("%w: geometry has %d lines, want 1", ErrField, len(g))
	case string:
		if g == "" {
			return nil, nil
		}
		geom, err := wkt.Unmarshal(g)
		if err != nil {
			return nil, fmt.Errorf("%w: geometry: %v", ErrField, err)
		}
		return lineString(geom)
	default:
		return nil, fmt.Errorf("%w: geometry is %T", ErrField, v)
	}
}
