// SPDX-License-Identifier: MIT

package iotable

import (
	"fmt"

	"github.com/katalvlaran/chokepoint/matrix"
)

const totalPrefix = TotalCountry + "_"

// Parse labels a raw table according to dims.
//
// Rows from index Countries*Industries on are aggregate rows; their labels are
// prefixed with "TOT_" before splitting so they never collide with a sector of
// the same code. The last column is always Key{TOT, OUT}.
//
// Errors (all wrap ErrSchema):
//   - non-positive dims, or TaxRows outside [0, ValueAdded);
//   - label or row counts that do not partition the table exactly;
//   - ragged rows;
//   - duplicate sector labels, or sector row labels that differ from sector
//     column labels.
//
// Sector columns listed in a different order from the sector rows are moved
// into row order, so column j of the result always belongs to row sector j.
// raw is not modified.
//
// A NaN or infinite cell is rejected with matrix.ErrNaNInf.
func Parse(raw Raw, dims Dims, opts ...Option) (*Table, error) {
	if err := checkDims(dims); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)

	wantRows, wantCols := dims.TotalRow()+1, dims.TotalCol()+1
	if len(raw.RowLabels) != wantRows || len(raw.Values) != wantRows {
		return nil, fmt.Errorf("%w: %d rows (%d labels), want %d", ErrSchema, len(raw.Values), len(raw.RowLabels), wantRows)
	}
	if len(raw.ColLabels) != wantCols {
		return nil, fmt.Errorf("%w: %d column labels, want %d", ErrSchema, len(raw.ColLabels), wantCols)
	}
	for i, row := range raw.Values {
		if len(row) != wantCols {
			return nil, fmt.Errorf("%w: row %q has %d values, want %d", ErrSchema, raw.RowLabels[i], len(row), wantCols)
		}
	}

	n := dims.Sectors()
	rows := make([]Key, wantRows)
	for i, label := range raw.RowLabels {
		if i >= n {
			label = totalPrefix + label
		}
		rows[i] = o.Labels.Split(label)
	}
	cols := make([]Key, wantCols)
	for j, label := range raw.ColLabels[:wantCols-1] {
		cols[j] = o.Labels.Split(label)
	}
	cols[wantCols-1] = Key{Country: TotalCountry, Code: TotalOutput}

	if err := checkSectors(rows[:n], cols[:n]); err != nil {
		return nil, err
	}

	values := alignSectors(raw.Values, rows[:n], cols)
	data, err := matrix.NewDenseFrom(values)
	if err != nil {
		return nil, fmt.Errorf("iotable: %w", err)
	}

	return &Table{Dims: dims, Rows: rows, Cols: cols, Data: data}, nil
}

func checkDims(d Dims) error {
	if d.Countries <= 0 || d.Industries <= 0 || d.FinalUse <= 0 || d.ValueAdded <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %+v", ErrSchema, d)
	}
	if d.TaxRows < 0 || d.TaxRows >= d.ValueAdded {
		return fmt.Errorf("%w: tax rows %d outside [0,%d)", ErrSchema, d.TaxRows, d.ValueAdded)
	}

	return nil
}

// checkSectors requires both sector label lists to name the same set of
// distinct keys.
func checkSectors(rows, cols []Key) error {
	set := make(map[Key]struct{}, len(rows))
	for _, k := range rows {
		if _, dup := set[k]; dup {
			return fmt.Errorf("%w: duplicate sector row %s", ErrSchema, k)
		}
		set[k] = struct{}{}
	}
	seen := make(map[Key]struct{}, len(cols))
	for _, k := range cols {
		if _, ok := set[k]; !ok {
			return fmt.Errorf("%w: sector column %s has no matching row", ErrSchema, k)
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: duplicate sector column %s", ErrSchema, k)
		}
		seen[k] = struct{}{}
	}

	return nil
}

// alignSectors permutes the first len(sectors) entries of cols, and the
// matching column of every row, into the order of sectors. checkSectors must
// have passed. Returns values unchanged when the order already agrees.
func alignSectors(values [][]float64, sectors, cols []Key) [][]float64 {
	pos := make(map[Key]int, len(sectors))
	for j, k := range cols[:len(sectors)] {
		pos[k] = j
	}
	perm := make([]int, len(sectors))
	aligned := true
	for i, k := range sectors {
		perm[i] = pos[k]
		if perm[i] != i {
			aligned = false
		}
	}
	if aligned {
		return values
	}

	out := make([][]float64, len(values))
	for r, row := range values {
		moved := append([]float64(nil), row...)
		for i, j := range perm {
			moved[i] = row[j]
		}
		out[r] = moved
	}
	copy(cols, sectors)

	return out
}
