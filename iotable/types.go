// SPDX-License-Identifier: MIT

package iotable

import (
	"errors"
	"sort"

	"github.com/katalvlaran/chokepoint/matrix"
)

// ErrSchema indicates that a raw table does not match its declared dimensions.
var ErrSchema = errors.New("iotable: table does not match declared dimensions")

// Sentinel country code for aggregate rows and the total-output column.
const (
	TotalCountry = "TOT"
	TotalOutput  = "OUT"
)

// Key is a two-level label: a country code and an industry or category code.
type Key struct {
	Country string
	Code    string
}

// String joins the two levels with an underscore.
func (k Key) String() string {
	if k.Code == "" {
		return k.Country
	}

	return k.Country + "_" + k.Code
}

// Dims declares how a raw table is partitioned.
//
//	rows = Countries*Industries + ValueAdded + 1
//	cols = Countries*Industries + Countries*FinalUse + 1
//
// The first TaxRows of the value-added block are net taxes on products and
// are not counted as value added.
type Dims struct {
	Countries  int
	Industries int
	FinalUse   int
	ValueAdded int
	TaxRows    int
}

// Sectors returns Countries*Industries.
func (d Dims) Sectors() int { return d.Countries * d.Industries }

// FinalUseCols returns Countries*FinalUse.
func (d Dims) FinalUseCols() int { return d.Countries * d.FinalUse }

// TotalRow is the index of the total-output row.
func (d Dims) TotalRow() int { return d.Sectors() + d.ValueAdded }

// TotalCol is the index of the total-output column.
func (d Dims) TotalCol() int { return d.Sectors() + d.FinalUseCols() }

// Raw is an unlabeled rectangular table as read from disk.
// RowLabels[i] labels Values[i]; ColLabels[j] labels Values[*][j].
type Raw struct {
	RowLabels []string
	ColLabels []string
	Values    [][]float64
}

// Table is a parsed structural table.
type Table struct {
	Dims Dims
	Rows []Key
	Cols []Key
	Data *matrix.Dense
}

// Sectors returns the sector row keys in table order.
func (t *Table) Sectors() []Key {
	return t.Rows[:t.Dims.Sectors()]
}

// FinalUse returns the final-demand column keys in table order.
func (t *Table) FinalUse() []Key {
	n := t.Dims.Sectors()

	return t.Cols[n : n+t.Dims.FinalUseCols()]
}

// ValueAdded returns the value-added row keys, net-tax rows excluded.
func (t *Table) ValueAdded() []Key {
	n := t.Dims.Sectors()

	return t.Rows[n+t.Dims.TaxRows : n+t.Dims.ValueAdded]
}

// Countries returns the distinct sector countries in ascending order.
func (t *Table) Countries() []string {
	return distinctCountries(t.Sectors())
}

func distinctCountries(keys []Key) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0)
	for _, k := range keys {
		if _, ok := seen[k.Country]; ok {
			continue
		}
		seen[k.Country] = struct{}{}
		out = append(out, k.Country)
	}
	sort.Strings(out)

	return out
}
