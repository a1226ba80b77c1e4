// SPDX-License-Identifier: MIT

package mrio

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/chokepoint/iotable"
	"github.com/katalvlaran/chokepoint/matrix"
)

// CountryMatrix is a Country×Country table; Values[o][d] is the value added
// created in Countries[o] and absorbed by final demand in Countries[d].
type CountryMatrix struct {
	Countries []string
	Values    *matrix.Dense
}

// Index returns the position of country, or -1.
func (c *CountryMatrix) Index(country string) int {
	i := sort.SearchStrings(c.Countries, country)
	if i < len(c.Countries) && c.Countries[i] == country {
		return i
	}

	return -1
}

// At returns the value for origin o and destination d.
func (c *CountryMatrix) At(o, d string) (float64, error) {
	i, j := c.Index(o), c.Index(d)
	if i < 0 || j < 0 {
		return 0, fmt.Errorf("mrio: country pair (%s,%s): %w", o, d, matrix.ErrOutOfRange)
	}

	return c.Values.At(i, j)
}

// ValueChain computes diag(V·1)·L·F and sums rows by origin country and
// columns by destination country. Countries are sorted ascending.
func ValueChain(m *Matrices) (*CountryMatrix, error) {
	if m == nil {
		return nil, fmt.Errorf("mrio: ValueChain: %w", matrix.ErrNilMatrix)
	}
	vRow, err := matrix.RowSums(m.V)
	if err != nil {
		return nil, fmt.Errorf("mrio: value chain: %w", err)
	}
	vl, err := matrix.ScaleRows(m.L, vRow)
	if err != nil {
		return nil, fmt.Errorf("mrio: value chain: %w", err)
	}
	flow, err := matrix.Mul(vl, m.F)
	if err != nil {
		return nil, fmt.Errorf("mrio: value chain: %w", err)
	}

	countries := unionCountries(m.Sectors, m.FinalUse)
	pos := make(map[string]int, len(countries))
	for i, c := range countries {
		pos[c] = i
	}
	out, err := matrix.NewZeros(len(countries), len(countries))
	if err != nil {
		return nil, fmt.Errorf("mrio: value chain: %w", err)
	}

	// Dense has no accumulate, so sum into a flat buffer first.
	k := len(countries)
	acc := make([]float64, k*k)
	flow.Do(func(i, j int, v float64) bool {
		acc[pos[m.Sectors[i].Country]*k+pos[m.FinalUse[j].Country]] += v
		return true
	})
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			if err = out.Set(i, j, acc[i*k+j]); err != nil {
				return nil, fmt.Errorf("mrio: value chain: %w", err)
			}
		}
	}

	return &CountryMatrix{Countries: countries, Values: out}, nil
}

func unionCountries(a, b []iotable.Key) []string {
	seen := make(map[string]struct{}, len(a))
	var out []string
	for _, keys := range [][]iotable.Key{a, b} {
		for _, k := range keys {
			if _, ok := seen[k.Country]; ok {
				continue
			}
			seen[k.Country] = struct{}{}
			out = append(out, k.Country)
		}
	}
	sort.Strings(out)

	return out
}
