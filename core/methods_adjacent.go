// SPDX-License-Identifier: MIT

// File: methods_adjacent.go
// Role: neighborhood queries and adjacency helpers.
// Determinism:
//   - Neighbors() orders by neighbor ID, then by edge sequence.

package core

import "sort"

// Neighbors returns the edges incident to id.
//
// Ordering is by the opposite endpoint ID, then by edge sequence, so path
// searches that scan neighbors in this order break ties reproducibly.
//
// Errors: ErrEmptyVertexID, ErrVertexNotFound.
// Complexity: O(d log d).
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	var out []*Edge
	var eid string
	var e *Edge
	for _, edgeSet := range g.adjacencyList[id] {
		for eid = range edgeSet {
			e = g.edges[eid]
			if e != nil {
				out = append(out, e)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oj := out[i].Other(id), out[j].Other(id)
		if oi != oj {
			return oi < oj
		}

		return edgeLess(out[i].ID, out[j].ID)
	})

	return out, nil
}

// ensureAdjacency allocates the from→to bucket. Caller holds muEdgeAdj.
func ensureAdjacency(g *Graph, from, to string) {
	if g.adjacencyList[from] == nil {
		g.adjacencyList[from] = make(map[string]map[string]struct{})
	}
	if g.adjacencyList[from][to] == nil {
		g.adjacencyList[from][to] = make(map[string]struct{})
	}
}
