// SPDX-License-Identifier: MIT

package pipeline

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/chokepoint/iotable"
	"github.com/katalvlaran/chokepoint/mrio"
	"github.com/katalvlaran/chokepoint/shipping"
	"github.com/katalvlaran/chokepoint/tabular"
)

// Economy reads the structural table, builds and validates the matrices,
// and derives the country value-chain matrix.
func (r *Runner) Economy() (*mrio.Matrices, *mrio.CountryMatrix, error) {
	tc := r.cfg.Table
	raw, err := tabular.ReadTable(tc.Path)
	if err != nil {
		return nil, nil, err
	}
	table, err := iotable.Parse(raw, tc.Dims(), iotable.WithLabelFormat(tc.Separator, tc.CountryWidth))
	if err != nil {
		return nil, nil, err
	}

	vc := r.cfg.Validation
	m, err := mrio.Build(table,
		mrio.WithConsistencyTolerance(vc.ConsistencyTolerance),
		mrio.WithPivotTolerance(vc.PivotTolerance),
	)
	if err != nil {
		return nil, nil, err
	}
	if err = mrio.Validate(m, vc.IdentityTolerance); err != nil {
		return nil, nil, err
	}
	chain, err := mrio.ValueChain(m)
	if err != nil {
		return nil, nil, err
	}
	r.log.Info("economy loaded",
		zap.String("table", tc.Path),
		zap.Int("sectors", len(m.Sectors)),
		zap.Int("countries", len(chain.Countries)),
	)

	return m, chain, nil
}

// Network reads the port registry and the edge list and builds the graph.
func (r *Runner) Network() (*shipping.Registry, *shipping.Network, error) {
	nc := r.cfg.Network
	ports, err := tabular.ReadPorts(nc.Ports)
	if err != nil {
		return nil, nil, err
	}
	reg, err := shipping.NewRegistry(ports)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.edges(nc.Edges)
	if err != nil {
		return nil, nil, err
	}
	legs, err := shipping.LegsFromRecords(rows)
	if err != nil {
		return nil, nil, err
	}
	net, err := shipping.BuildNetwork(legs)
	if err != nil {
		return nil, nil, err
	}
	r.log.Info("network built",
		zap.Int("ports", len(ports)),
		zap.Int("nodes", net.Graph.VertexCount()),
		zap.Int("legs", net.Graph.EdgeCount()),
	)

	return reg, net, nil
}

// CanalShare joins the flows through the configured canal onto the network
// edge list.
func (r *Runner) CanalShare() ([]shipping.Record, error) {
	all, err := r.edges(r.cfg.Network.Edges)
	if err != nil {
		return nil, err
	}
	through, err := r.edges(r.cfg.Canal.Edges)
	if err != nil {
		return nil, err
	}

	return shipping.AttachCanalShare(all, through, r.cfg.Canal.Name)
}

// edges reads an edge list, merging duplicate legs when configured.
func (r *Runner) edges(path string) ([]shipping.Record, error) {
	rows, err := tabular.ReadEdges(path)
	if err != nil {
		return nil, err
	}
	if !r.cfg.Network.MergeDuplicates {
		return rows, nil
	}
	merged, err := shipping.MergeDuplicateEdges(rows, shipping.DefaultMergeSpec())
	if err != nil {
		return nil, err
	}
	r.log.Debug("edges merged", zap.String("path", path), zap.Int("raw", len(rows)), zap.Int("merged", len(merged)))

	return merged, nil
}
