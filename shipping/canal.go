// SPDX-License-Identifier: MIT

package shipping

import (
	"fmt"

	"github.com/katalvlaran/chokepoint/maybe"
)

// CanalFields names the columns AttachCanalShare adds for a canal.
type CanalFields struct {
	VFlow, QFlow   string // flows through the canal
	VRatio, QRatio string // share of the edge's flow that uses the canal
}

// CanalFieldNames returns the column names for canal, e.g. "v_ratio_suez".
func CanalFieldNames(canal string) CanalFields {
	return CanalFields{
		VFlow:  FieldVFlow + "_" + canal,
		QFlow:  FieldQFlow + "_" + canal,
		VRatio: "v_ratio_" + canal,
		QRatio: "q_ratio_" + canal,
	}
}

// AttachCanalShare joins the flows routed through a canal onto the full
// network edge list.
//
// Rows are matched on the directed (from_id, to_id) pair; an edge with no
// canal row gets zero canal flow. The ratio columns hold maybe.Float values,
// undefined where the edge's own flow is zero. Input rows are not modified.
func AttachCanalShare(network, throughCanal []Record, canal string) ([]Record, error) {
	if canal == "" {
		return nil, fmt.Errorf("%w: empty canal name", ErrField)
	}
	f := CanalFieldNames(canal)

	type flows struct{ v, q float64 }
	canalFlow := make(map[[2]string]flows, len(throughCanal))
	for i, row := range throughCanal {
		key, err := directedKey(row)
		if err != nil {
			return nil, fmt.Errorf("shipping: canal row %d: %w", i, err)
		}
		v, _, err := row.Number(FieldVFlow)
		if err != nil {
			return nil, fmt.Errorf("shipping: canal row %d: %w", i, err)
		}
		q, _, err := row.Number(FieldQFlow)
		if err != nil {
			return nil, fmt.Errorf("shipping: canal row %d: %w", i, err)
		}
		prev := canalFlow[key]
		canalFlow[key] = flows{v: prev.v + v, q: prev.q + q}
	}

	out := make([]Record, 0, len(network))
	for i, row := range network {
		key, err := directedKey(row)
		if err != nil {
			return nil, fmt.Errorf("shipping: network row %d: %w", i, err)
		}
		baseV, _, err := row.Number(FieldVFlow)
		if err != nil {
			return nil, fmt.Errorf("shipping: network row %d: %w", i, err)
		}
		baseQ, _, err := row.Number(FieldQFlow)
		if err != nil {
			return nil, fmt.Errorf("shipping: network row %d: %w", i, err)
		}
		cf := canalFlow[key]

		merged := row.Clone()
		merged[f.VFlow] = cf.v
		merged[f.QFlow] = cf.q
		merged[f.VRatio] = maybe.Of(cf.v).Div(maybe.Of(baseV))
		merged[f.QRatio] = maybe.Of(cf.q).Div(maybe.Of(baseQ))
		out = append(out, merged)
	}

	return out, nil
}

func directedKey(row Record) ([2]string, error) {
	from, err := row.Text(FieldFrom)
	if err != nil {
		return [2]string{}, err
	}
	to, err := row.Text(FieldTo)
	if err != nil {
		return [2]string{}, err
	}

	return [2]string{from, to}, nil
}
