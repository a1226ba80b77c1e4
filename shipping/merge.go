// SPDX-License-Identifier: MIT

package shipping

import (
	"fmt"
	"math"
	"sort"
)

// MergeSpec controls MergeDuplicateEdges.
//
//	MergeOn   the two endpoint columns; rows group by the unordered pair.
//	Sum       columns summed across a group (missing counts as 0).
//	Keep      columns taken from the preferred row that has them.
//	PreferBy  numeric column ranking rows within a group, ascending;
//	          rows without it rank last, ties go to input order.
//	          Empty means input order only.
type MergeSpec struct {
	MergeOn  []string
	Sum      []string
	Keep     []string
	PreferBy string
}

// DefaultMergeSpec merges a maritime edge list: flows are summed, and the
// shortest leg's distance, length and geometry are kept.
func DefaultMergeSpec() MergeSpec {
	return MergeSpec{
		MergeOn:  []string{FieldFrom, FieldTo},
		Sum:      []string{FieldVFlow, FieldQFlow},
		Keep:     []string{FieldDistance, FieldLength, FieldGeometry},
		PreferBy: FieldDistance,
	}
}

type mergeGroup struct {
	lo, hi string
	rows   []int
	rank   []float64
}

// MergeDuplicateEdges collapses rows that join the same two nodes in either
// direction into one row per unordered pair.
//
// Each output row carries the endpoints in ascending order under
// MergeOn[0] and MergeOn[1], the float64 sum of every Sum column, and every
// Keep column that some row of the group defines. Columns not named in the
// spec are dropped. Output is sorted by endpoint pair.
//
// The result does not depend on the direction of input rows, and merging an
// already merged list returns it unchanged.
//
// Errors: ErrMergeSpec, ErrField (missing endpoints, non-numeric Sum or
// PreferBy values).
func MergeDuplicateEdges(rows []Record, spec MergeSpec) ([]Record, error) {
	if len(spec.MergeOn) != 2 || spec.MergeOn[0] == "" || spec.MergeOn[1] == "" || spec.MergeOn[0] == spec.MergeOn[1] {
		return nil, fmt.Errorf("%w: MergeOn must name two distinct columns, got %q", ErrMergeSpec, spec.MergeOn)
	}

	groups := make(map[[2]string]*mergeGroup)
	for i, row := range rows {
		a, err := row.Text(spec.MergeOn[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		b, err := row.Text(spec.MergeOn[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if b < a {
			a, b = b, a
		}
		rank := math.Inf(1)
		if spec.PreferBy != "" {
			v, ok, err := row.Number(spec.PreferBy)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			if ok {
				rank = v
			}
		}
		key := [2]string{a, b}
		g := groups[key]
		if g == nil {
			g = &mergeGroup{lo: a, hi: b}
			groups[key] = g
		}
		g.rows = append(g.rows, i)
		g.rank = append(g.rank, rank)
	}

	keys := make([][2]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}

		return keys[i][1] < keys[j][1]
	})

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		merged, err := mergeGroupRows(rows, groups[k], spec)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
	}

	return out, nil
}

func mergeGroupRows(rows []Record, g *mergeGroup, spec MergeSpec) (Record, error) {
	order := make([]int, len(g.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.rank[order[i]] < g.rank[order[j]]
	})

	out := Record{spec.MergeOn[0]: g.lo, spec.MergeOn[1]: g.hi}
	vals := make([]float64, len(g.rows))
	for _, col := range spec.Sum {
		for i, idx := range g.rows {
			v, _, err := rows[idx].Number(col)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", idx, err)
			}
			vals[i] = v
		}
		// Summing in value order makes the result independent of row order.
		sort.Float64s(vals)
		var total float64
		for _, v := range vals {
			total += v
		}
		out[col] = total
	}
	for _, col := range spec.Keep {
		for _, o := range order {
			if v, ok := rows[g.rows[o]][col]; ok && v != nil {
				out[col] = v
				break
			}
		}
	}

	return out, nil
}
