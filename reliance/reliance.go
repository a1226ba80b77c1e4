// SPDX-License-Identifier: MIT

package reliance

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/chokepoint/dijkstra"
	"github.com/katalvlaran/chokepoint/maybe"
	"github.com/katalvlaran/chokepoint/metrics"
	"github.com/katalvlaran/chokepoint/shipping"
)

// origin is one unit of work: a shortest-path tree from a single port.
type origin struct {
	row    int
	portID string
	weight float64
}

// dest is a port scored against every origin tree.
type dest struct {
	portID string
	weight float64
}

// NodeReliance scores, for every pair of countries, the throughput-weighted
// share of port-to-port shortest paths that pass through node.
//
// For countries c1 ≤ c2 (by position in the sorted country list):
//
//	R(c1,c2) = Σ_{p1∈c1, p2∈c2} [node ∈ path(p1,p2)] · w(p1)·w(p2) / (W(c1)·W(c2))
//
// where w is the key metric of a port and W its country total. R is written
// to both (c1,c2) and (c2,c1). A country with W = 0 (no ports, or ports
// without traffic) has an undefined row and column. Paths include their
// endpoints, so a port that is itself the chokepoint counts as on-path.
//
// Ports missing from the network are unreachable: they contribute 0 and are
// logged and counted. One tree is computed per origin port, in parallel up
// to Options.Workers; partial rows are reduced in origin order so the result
// does not depend on scheduling.
//
// Errors: ErrNilNetwork, ErrNilRegistry, shipping.ErrThroughputKey,
// ErrNodeNotFound, ErrDuplicateCountry, or ctx.Err() on cancellation.
//
// Complexity: Time O(P·(V+E) log V + P·Q) for P origin ports and Q ports in
// total, Space O(workers·V + C²).
func NodeReliance(
	ctx context.Context,
	countries []string,
	reg *shipping.Registry,
	net *shipping.Network,
	node string,
	key shipping.ThroughputKey,
	opts ...Option,
) (*Matrix, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if net == nil {
		return nil, ErrNilNetwork
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if _, err := shipping.ParseThroughputKey(string(key)); err != nil {
		return nil, err
	}
	if !net.HasNode(node) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, node)
	}
	sorted, err := checkCountries(countries)
	if err != nil {
		return nil, err
	}

	s := &scorer{
		cfg:    cfg,
		net:    net,
		node:   node,
		totals: make([]float64, len(sorted)),
		dests:  make([][]dest, len(sorted)),
		matrix: newMatrix(sorted),
	}
	if err = s.collect(reg, key); err != nil {
		return nil, err
	}
	if err = s.run(ctx); err != nil {
		return nil, err
	}

	cfg.Logger.Info("node reliance computed",
		zap.String("node", node),
		zap.String("key", string(key)),
		zap.Int("countries", len(sorted)),
		zap.Int("trees", len(s.origins)),
		zap.Int("skipped_ports", s.skipped),
		zap.Int("undefined_countries", s.undefined),
	)

	return s.matrix, nil
}

// scorer holds the state of one NodeReliance call.
type scorer struct {
	cfg  Options
	net  *shipping.Network
	node string

	totals  []float64
	dests   [][]dest
	origins []origin

	skipped   int
	undefined int

	matrix *Matrix
}

// collect computes country totals and lists origin and destination ports.
func (s *scorer) collect(reg *shipping.Registry, key shipping.ThroughputKey) error {
	for i, c := range s.matrix.Countries {
		total, err := reg.Total(c, key)
		if err != nil {
			return err
		}
		s.totals[i] = total
		if total == 0 {
			s.undefined++
			continue
		}
		for _, p := range reg.ByCountry(c) {
			w, err := reg.Throughput(p.ID, key)
			if err != nil {
				return err
			}
			if w == 0 {
				s.cfg.Metrics.RecordSkippedPort(metrics.SkipNoMetric)
				continue
			}
			if !s.net.HasNode(p.ID) {
				s.skipped++
				s.cfg.Metrics.RecordSkippedPort(metrics.SkipNotInGraph)
				s.cfg.Logger.Warn("port not in network",
					zap.String("port", p.ID),
					zap.String("country", c),
				)
				continue
			}
			s.dests[i] = append(s.dests[i], dest{portID: p.ID, weight: w})
			s.origins = append(s.origins, origin{row: i, portID: p.ID, weight: w})
		}
	}
	s.cfg.Metrics.SetUndefinedCountries(s.undefined)

	return nil
}

// run fans out one tree per origin and reduces the partial rows.
func (s *scorer) run(ctx context.Context) error {
	parts := make([][]float64, len(s.origins))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for k := range s.origins {
		if gctx.Err() != nil {
			break
		}
		k := k
		g.Go(func() error {
			row, err := s.score(gctx, s.origins[k])
			if err != nil {
				return err
			}
			parts[k] = row
			s.cfg.Metrics.RecordTree()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	n := s.matrix.Len()
	acc := make([][]float64, n)
	for i := range acc {
		acc[i] = make([]float64, n)
	}
	for k, o := range s.origins {
		for j := o.row; j < n; j++ {
			acc[o.row][j] += parts[k][j]
		}
	}
	for i := 0; i < n; i++ {
		if s.totals[i] == 0 {
			continue
		}
		for j := i; j < n; j++ {
			if s.totals[j] == 0 {
				continue
			}
			s.matrix.setPair(i, j, maybe.Of(acc[i][j]))
		}
	}

	return nil
}

// score builds the tree of o and returns its contributions to row o.row.
// Only entries at j ≥ o.row are filled.
func (s *scorer) score(ctx context.Context, o origin) ([]float64, error) {
	tree, err := dijkstra.Dijkstra(ctx, s.net.Graph, dijkstra.Source(o.portID))
	if err != nil {
		return nil, fmt.Errorf("reliance: tree from %q: %w", o.portID, err)
	}
	via := newOnPath(tree, s.node)
	row := make([]float64, s.matrix.Len())
	for j := o.row; j < len(row); j++ {
		if s.totals[j] == 0 {
			continue
		}
		for _, d := range s.dests[j] {
			if via.contains(d.portID) {
				row[j] += o.weight * d.weight / (s.totals[o.row] * s.totals[j])
			}
		}
	}

	return row, nil
}
