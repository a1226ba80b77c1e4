// SPDX-License-Identifier: MIT

package shipping

import (
	"fmt"
	"math"
	"sort"
)

// ThroughputKey selects the port metric used to weight port pairs.
type ThroughputKey string

const (
	KeyExport     ThroughputKey = "export"
	KeyImport     ThroughputKey = "import"
	KeyThroughput ThroughputKey = "throughput"
)

// ParseThroughputKey validates a metric name.
func ParseThroughputKey(s string) (ThroughputKey, error) {
	switch k := ThroughputKey(s); k {
	case KeyExport, KeyImport, KeyThroughput:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrThroughputKey, s)
	}
}

// Port is a seaport with its annual trade metrics.
type Port struct {
	ID      string
	Name    string
	Country string

	Lat, Lon float64

	Export     float64
	Import     float64
	Throughput float64
}

// Metric returns the value of k for p.
func (p Port) Metric(k ThroughputKey) (float64, error) {
	switch k {
	case KeyExport:
		return p.Export, nil
	case KeyImport:
		return p.Import, nil
	case KeyThroughput:
		return p.Throughput, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrThroughputKey, string(k))
	}
}

// Registry indexes ports by ID and by country.
// Ports of one country are ordered by ID.
type Registry struct {
	byID      map[string]Port
	byCountry map[string][]Port
	countries []string
}

// NewRegistry validates and indexes ports.
//
// Errors (ErrBadPort): empty ID or country, duplicate ID, negative or
// non-finite metric.
func NewRegistry(ports []Port) (*Registry, error) {
	r := &Registry{
		byID:      make(map[string]Port, len(ports)),
		byCountry: make(map[string][]Port),
	}
	for _, p := range ports {
		if p.ID == "" || p.Country == "" {
			return nil, fmt.Errorf("%w: id %q country %q", ErrBadPort, p.ID, p.Country)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrBadPort, p.ID)
		}
		for _, v := range []float64{p.Export, p.Import, p.Throughput} {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %q has metric %g", ErrBadPort, p.ID, v)
			}
		}
		r.byID[p.ID] = p
		r.byCountry[p.Country] = append(r.byCountry[p.Country], p)
	}
	for c, list := range r.byCountry {
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		r.countries = append(r.countries, c)
	}
	sort.Strings(r.countries)

	return r, nil
}

// ByCountry returns the ports of a country ordered by ID.
// The slice is shared; do not modify it.
func (r *Registry) ByCountry(country string) []Port {
	return r.byCountry[country]
}

// Countries returns every country with at least one port, ascending.
func (r *Registry) Countries() []string {
	return r.countries
}

// Ports returns every port ordered by country, then ID.
func (r *Registry) Ports() []Port {
	out := make([]Port, 0, len(r.byID))
	for _, c := range r.countries {
		out = append(out, r.byCountry[c]...)
	}

	return out
}

// Total returns the sum of k over the ports of country.
func (r *Registry) Total(country string, k ThroughputKey) (float64, error) {
	var total float64
	for _, p := range r.byCountry[country] {
		v, err := p.Metric(k)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}

// Throughput returns metric k for a port ID.
func (r *Registry) Throughput(portID string, k ThroughputKey) (float64, error) {
	p, ok := r.byID[portID]
	if !ok {
		return 0, fmt.Errorf("%w: unknown id %q", ErrBadPort, portID)
	}

	return p.Metric(k)
}
