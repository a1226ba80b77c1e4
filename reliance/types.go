// SPDX-License-Identifier: MIT

package reliance

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/chokepoint/maybe"
	"github.com/katalvlaran/chokepoint/metrics"
)

// Sentinel errors for NodeReliance.
var (
	// ErrNilNetwork indicates that a nil *shipping.Network was passed.
	ErrNilNetwork = errors.New("reliance: network is nil")

	// ErrNilRegistry indicates that a nil *shipping.Registry was passed.
	ErrNilRegistry = errors.New("reliance: port registry is nil")

	// ErrNodeNotFound indicates that the chokepoint is not a node of the network.
	ErrNodeNotFound = errors.New("reliance: chokepoint node not in network")

	// ErrDuplicateCountry indicates a repeated country code in the input list.
	ErrDuplicateCountry = errors.New("reliance: duplicate country")
)

// Matrix is a symmetric country×country matrix of reliance scores.
// Rows and columns follow Countries. An entry is undefined when either
// country has zero total throughput.
type Matrix struct {
	Countries []string
	vals      []maybe.Float
}

func newMatrix(countries []string) *Matrix {
	n := len(countries)

	return &Matrix{Countries: countries, vals: make([]maybe.Float, n*n)}
}

// Len returns the number of countries.
func (m *Matrix) Len() int { return len(m.Countries) }

// At returns the score at (i, j). Panics when out of range.
func (m *Matrix) At(i, j int) maybe.Float {
	n := len(m.Countries)
	if i < 0 || j < 0 || i >= n || j >= n {
		panic(fmt.Sprintf("reliance: index (%d,%d) out of range %d", i, j, n))
	}

	return m.vals[i*n+j]
}

func (m *Matrix) setPair(i, j int, v maybe.Float) {
	n := len(m.Countries)
	m.vals[i*n+j] = v
	m.vals[j*n+i] = v
}

// Index returns the position of country. Countries are sorted ascending.
func (m *Matrix) Index(country string) (int, bool) {
	i := sort.SearchStrings(m.Countries, country)
	if i < len(m.Countries) && m.Countries[i] == country {
		return i, true
	}

	return -1, false
}

// Lookup returns the score of a country pair by code.
func (m *Matrix) Lookup(c1, c2 string) (maybe.Float, bool) {
	i, ok := m.Index(c1)
	if !ok {
		return maybe.Undefined(), false
	}
	j, ok := m.Index(c2)
	if !ok {
		return maybe.Undefined(), false
	}

	return m.At(i, j), true
}

// Options configures NodeReliance.
//
// Workers – maximum concurrent shortest-path trees. Default GOMAXPROCS.
// Logger  – receives skipped-port and summary lines. Default no-op.
// Metrics – optional per-run registry.
type Options struct {
	Workers int
	Logger  *zap.Logger
	Metrics *metrics.Registry
}

// Option represents a functional option for configuring NodeReliance.
type Option func(*Options)

// DefaultOptions returns the defaults described on Options.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  zap.NewNop(),
	}
}

// WithWorkers bounds parallelism. Panics when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("reliance: WithWorkers(%d): must be at least 1", n))
	}

	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics records trees and skipped ports into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *Options) { o.Metrics = r }
}

// checkCountries rejects duplicates and returns a sorted copy.
func checkCountries(countries []string) ([]string, error) {
	out := append([]string(nil), countries...)
	sort.Strings(out)
	for i := 1; i < len(out); i++ {
		if out[i] == out[i-1] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCountry, out[i])
		}
	}

	return out, nil
}
