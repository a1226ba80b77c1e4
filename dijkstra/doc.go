// SPDX-License-Identifier: MIT

// Package dijkstra implements single-source shortest paths on core.Graph
// with non-negative float64 weights.
//
// The result is a Tree holding distances, predecessor vertices and the
// predecessor edge of every reached vertex, so callers can recover both the
// vertex path and the sequence of sea legs that realise it.
//
// Complexity:
//
//   - Time:  O((V + E) log V), lazy decrease-key on a binary heap.
//   - Space: O(V + E).
//
// Options:
//
//   - Source(id):              starting vertex (required).
//   - WithMaxDistance(x):      vertices beyond x stay unreached.
//   - WithInfEdgeThreshold(t): edges with weight ≥ t are impassable.
//
// Determinism: for a fixed graph the Tree is identical across runs and across
// goroutines. The heap breaks distance ties by vertex ID and neighbors are
// visited in sorted order.
//
// Example:
//
//	tree, err := dijkstra.Dijkstra(ctx, g, dijkstra.Source("SGSIN"))
//	if err != nil {
//	    return err
//	}
//	path, _ := tree.Path("NLRTM")
package dijkstra
