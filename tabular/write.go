// SPDX-License-Identifier: MIT

package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/katalvlaran/chokepoint/exposure"
	"github.com/katalvlaran/chokepoint/maybe"
	"github.com/katalvlaran/chokepoint/mrio"
	"github.com/katalvlaran/chokepoint/reliance"
	"github.com/katalvlaran/chokepoint/route"
	"github.com/katalvlaran/chokepoint/shipping"
)

// WriteFile creates path and hands it to write. The file is closed even
// when write fails; the first error wins.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tabular: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("tabular: %w", cerr)
		}
	}()

	return write(f)
}

// WriteCountryMatrix writes a value-chain matrix with origins as rows and
// destinations as columns.
func WriteCountryMatrix(w io.Writer, m *mrio.CountryMatrix) error {
	n := len(m.Countries)
	rows := make([][]string, 0, n+1)
	rows = append(rows, append([]string{""}, m.Countries...))
	for i, c := range m.Countries {
		vals, err := m.Values.Row(i)
		if err != nil {
			return fmt.Errorf("tabular: %s: %w", c, err)
		}
		row := make([]string, 0, n+1)
		row = append(row, c)
		for _, v := range vals {
			row = append(row, number(v))
		}
		rows = append(rows, row)
	}

	return writeAll(w, rows)
}

// WriteReliance writes a reliance matrix; undefined scores are empty cells.
func WriteReliance(w io.Writer, m *reliance.Matrix) error {
	n := m.Len()
	rows := make([][]string, 0, n+1)
	rows = append(rows, append([]string{""}, m.Countries...))
	for i, c := range m.Countries {
		row := make([]string, 0, n+1)
		row = append(row, c)
		for j := 0; j < n; j++ {
			row = append(row, cell(m.At(i, j)))
		}
		rows = append(rows, row)
	}

	return writeAll(w, rows)
}

// WriteCountryStats writes one row per country.
func WriteCountryStats(w io.Writer, stats []exposure.CountryStats) error {
	rows := make([][]string, 0, len(stats)+1)
	rows = append(rows, []string{"country", "v_total", "v_through", "pct_through", "v_blocked", "pct_blocked"})
	for _, s := range stats {
		rows = append(rows, []string{
			s.Country,
			cell(s.VTotal),
			cell(s.VThrough),
			cell(s.PctThrough),
			cell(s.VBlocked),
			cell(s.PctBlocked),
		})
	}

	return writeAll(w, rows)
}

// WriteCountryStatsJSON writes stats as an indented JSON array. Undefined
// values are null.
func WriteCountryStatsJSON(w io.Writer, stats []exposure.CountryStats) error {
	if stats == nil {
		stats = []exposure.CountryStats{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stats); err != nil {
		return fmt.Errorf("tabular: %w", err)
	}

	return nil
}

// WriteProjections writes route projections with geometry as WKT.
// Unreachable ports have empty distance, length and geometry.
func WriteProjections(w io.Writer, ps []route.Projection) error {
	rows := make([][]string, 0, len(ps)+1)
	rows = append(rows, []string{"id", "reachable", "distance", "length", "geometry"})
	for _, p := range ps {
		row := []string{p.PortID, strconv.FormatBool(p.Reachable), "", "", ""}
		if p.Reachable {
			row[2] = number(p.Distance)
			row[3] = number(p.Length)
			if len(p.Geometry) > 0 {
				row[4] = wkt.MarshalString(p.Geometry)
			}
		}
		rows = append(rows, row)
	}

	return writeAll(w, rows)
}

// WriteRecords writes edge records. from_id and to_id lead; the remaining
// columns follow in name order.
func WriteRecords(w io.Writer, recs []shipping.Record) error {
	seen := map[string]bool{shipping.FieldFrom: true, shipping.FieldTo: true}
	var rest []string
	for _, r := range recs {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	cols := append([]string{shipping.FieldFrom, shipping.FieldTo}, rest...)

	rows := make([][]string, 0, len(recs)+1)
	rows = append(rows, cols)
	for _, r := range recs {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = value(r[c])
		}
		rows = append(rows, row)
	}

	return writeAll(w, rows)
}

func value(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return number(x)
	case maybe.Float:
		return cell(x)
	case orb.Geometry:
		return wkt.MarshalString(x)
	default:
		return fmt.Sprint(x)
	}
}

func number(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func cell(f maybe.Float) string {
	v, ok := f.Get()
	if !ok {
		return ""
	}

	return number(v)
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("tabular: write: %w", err)
	}

	return nil
}
