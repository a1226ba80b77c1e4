// SPDX-License-Identifier: MIT

package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/chokepoint/iotable"
	"github.com/katalvlaran/chokepoint/shipping"
)

// ErrFormat indicates an input file that does not have the expected layout.
var ErrFormat = errors.New("tabular: malformed input")

// Port file columns.
const (
	ColID         = "id"
	ColName       = "name"
	ColCountry    = "iso3"
	ColLat        = "lat"
	ColLon        = "lon"
	ColExport     = "export"
	ColImport     = "import"
	ColThroughput = "throughput"
)

// ReadTable reads a labeled numeric table. The first row holds column
// labels (its first cell is ignored), the first column holds row labels.
// Files ending in .xlsx are read from their first sheet; anything else is
// parsed as CSV. Empty cells read as 0. A CSV row must carry as many cells as
// the header; an .xlsx row may stop early, its missing trailing cells read
// as 0.
func ReadTable(path string) (iotable.Raw, error) {
	var (
		rows [][]string
		err  error
	)
	xlsx := strings.EqualFold(filepath.Ext(path), ".xlsx")
	if xlsx {
		rows, err = readXLSX(path)
	} else {
		rows, err = readCSV(path)
	}
	if err != nil {
		return iotable.Raw{}, err
	}

	return toRaw(path, rows, xlsx)
}

// toRaw converts string rows to a Raw table. padShort fills rows shorter
// than the header with zeros; otherwise they are rejected.
func toRaw(path string, rows [][]string, padShort bool) (iotable.Raw, error) {
	if len(rows) < 2 || len(rows[0]) < 2 {
		return iotable.Raw{}, fmt.Errorf("%w: %s: need a header row and a label column", ErrFormat, path)
	}
	width := len(rows[0])
	raw := iotable.Raw{
		ColLabels: append([]string(nil), rows[0][1:]...),
		RowLabels: make([]string, 0, len(rows)-1),
		Values:    make([][]float64, 0, len(rows)-1),
	}
	for i, row := range rows[1:] {
		if len(row) > width || (len(row) < width && !padShort) {
			return iotable.Raw{}, fmt.Errorf("%w: %s: row %d has %d cells, header has %d", ErrFormat, path, i+2, len(row), width)
		}
		vals := make([]float64, width-1)
		for j := 1; j < len(row); j++ {
			v, err := parseCell(row[j])
			if err != nil {
				return iotable.Raw{}, fmt.Errorf("%w: %s: row %d col %d: %v", ErrFormat, path, i+2, j+1, err)
			}
			vals[j-1] = v
		}
		raw.RowLabels = append(raw.RowLabels, row[0])
		raw.Values = append(raw.Values, vals)
	}

	return raw, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	return strconv.ParseFloat(s, 64)
}

// ReadPorts reads a port registry CSV. id, iso3, export, import and
// throughput are required; name, lat and lon are optional. Extra columns
// are ignored.
func ReadPorts(path string) ([]shipping.Port, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	h, err := newHeader(path, rows, ColID, ColCountry, ColExport, ColImport, ColThroughput)
	if err != nil {
		return nil, err
	}

	out := make([]shipping.Port, 0, len(rows)-1)
	for i, row := range rows[1:] {
		p := shipping.Port{
			ID:      h.text(row, ColID),
			Name:    h.text(row, ColName),
			Country: h.text(row, ColCountry),
		}
		for _, f := range []struct {
			col string
			dst *float64
		}{
			{ColLat, &p.Lat}, {ColLon, &p.Lon},
			{ColExport, &p.Export}, {ColImport, &p.Import}, {ColThroughput, &p.Throughput},
		} {
			if *f.dst, err = parseCell(h.text(row, f.col)); err != nil {
				return nil, fmt.Errorf("%w: %s: row %d %s: %v", ErrFormat, path, i+2, f.col, err)
			}
		}
		out = append(out, p)
	}

	return out, nil
}

// ReadEdges reads an edge-list CSV into records. from_id and to_id stay
// strings, geometry is kept as WKT text, other cells become float64 when
// they parse as numbers and strings otherwise. Empty cells are omitted.
func ReadEdges(path string) ([]shipping.Record, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	h, err := newHeader(path, rows, shipping.FieldFrom, shipping.FieldTo)
	if err != nil {
		return nil, err
	}

	out := make([]shipping.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(shipping.Record, len(h.names))
		for j, name := range h.names {
			if j >= len(row) || row[j] == "" {
				continue
			}
			switch name {
			case shipping.FieldFrom, shipping.FieldTo, shipping.FieldGeometry:
				rec[name] = row[j]
			default:
				if v, err := strconv.ParseFloat(row[j], 64); err == nil {
					rec[name] = v
				} else {
					rec[name] = row[j]
				}
			}
		}
		out = append(out, rec)
	}

	return out, nil
}

// header maps column names to positions.
type header struct {
	names []string
	pos   map[string]int
}

func newHeader(path string, rows [][]string, required ...string) (*header, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrFormat, path)
	}
	h := &header{names: rows[0], pos: make(map[string]int, len(rows[0]))}
	for i, n := range rows[0] {
		h.pos[strings.TrimSpace(n)] = i
	}
	for _, r := range required {
		if _, ok := h.pos[r]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", ErrFormat, path, r)
		}
	}

	return h, nil
}

func (h *header) text(row []string, col string) string {
	i, ok := h.pos[col]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabular: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}

	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("tabular: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: no sheets", ErrFormat, path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}

	return rows, nil
}
