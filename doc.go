// SPDX-License-Identifier: MIT

// Package chokepoint measures how exposed each country's consumption of
// value added is to the closure of a single maritime chokepoint.
//
// Two models meet here:
//
//	iotable/  parse a multi-regional input-output table into labeled blocks
//	mrio/     Leontief matrices, accounting identities, value-chain decomposition
//	shipping/ port registry, edge merging, the maritime network, canal flow shares
//	reliance/ throughput-weighted share of port-pair shortest paths via the chokepoint
//	exposure/ per-country value routed through, and blocked by, the chokepoint
//	route/    shortest routes from one node to every port, with geometry
//
// supported by:
//
//	matrix/   dense float64 matrices and LU inversion
//	core/     thread-safe undirected weighted graph
//	dijkstra/ deterministic single-source shortest-path trees
//	maybe/    tri-state float: a value, or explicitly undefined
//	tabular/  CSV / XLSX input, CSV output
//	pipeline/ the batch run, with config/ and metrics/; cmd/chokepoint is its CLI
//
// Quick start:
//
//	chokepoint run --config chokepoint.yaml
package chokepoint
