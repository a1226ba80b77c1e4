// SPDX-License-Identifier: MIT

// Package core provides the thread-safe in-memory Graph behind the shipping
// network.
//
// The Graph G = (V,E) is undirected and simple:
//
//   - every edge is mirrored as adjacencyList[to][from];
//   - non-negative float64 weights (WithWeighted);
//   - self-loops and parallel edges are rejected, since a maritime leg joins
//     two distinct nodes once;
//   - atomic Edge.ID generation ("e1", "e2", ...);
//   - separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj), so many shortest-path workers can read concurrently.
//
// Determinism: Vertices(), Edges() and Neighbors() return sorted results,
// which makes every traversal built on them reproducible.
//
// Example:
//
//	g := core.NewGraph(core.WithWeighted())
//	_, _ = g.AddEdge("SGSIN", "MYTPP", 52.5)
//	nb, _ := g.Neighbors("SGSIN") // [e1: SGSIN-MYTPP]
package core
