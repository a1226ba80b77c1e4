// SPDX-License-Identifier: MIT

package dijkstra

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/chokepoint/core"
)

// ctxCheckEvery is the number of heap pops between context checks.
const ctxCheckEvery = 256

// Tree is a single-source shortest-path tree.
//
// Dist[v] is +Inf for vertices not reached. Prev[v] and PrevEdge[v] name the
// predecessor vertex and the edge used to reach v; both are absent for the
// source and for unreached vertices.
type Tree struct {
	Source   string
	Dist     map[string]float64
	Prev     map[string]string
	PrevEdge map[string]string
}

// Reachable reports whether v was reached from the source.
func (t *Tree) Reachable(v string) bool {
	d, ok := t.Dist[v]

	return ok && !math.IsInf(d, 1)
}

// Path returns the vertex sequence source → … → target.
//
// Errors: ErrVertexNotFound for an unknown target, ErrUnreachable when no
// path exists.
func (t *Tree) Path(target string) ([]string, error) {
	if _, ok := t.Dist[target]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrVertexNotFound, target)
	}
	if !t.Reachable(target) {
		return nil, fmt.Errorf("%w: %q", ErrUnreachable, target)
	}
	var rev []string
	for v := target; ; {
		rev = append(rev, v)
		if v == t.Source {
			break
		}
		v = t.Prev[v]
	}
	out := make([]string, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}

	return out, nil
}

// PathEdges returns the edge IDs along the path to target, source side first.
func (t *Tree) PathEdges(target string) ([]string, error) {
	verts, err := t.Path(target)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(verts)-1)
	for _, v := range verts[1:] {
		out = append(out, t.PrevEdge[v])
	}

	return out, nil
}

// Dijkstra computes shortest distances from Options.Source to every vertex
// of the weighted graph g.
//
// Validation order: ErrEmptySource, ErrNilGraph, ErrUnweightedGraph,
// ErrVertexNotFound. Negative weights cannot occur; core.Graph rejects them.
//
// Ties are broken deterministically: the heap orders by (dist, id) and
// neighbors are scanned in core.Neighbors order, so for equal-length paths
// the first predecessor to reach a vertex is kept.
//
// The context is polled between heap pops; on cancellation ctx.Err() is
// returned.
//
// Complexity: Time O((V + E) log V), Space O(V + E).
func Dijkstra(ctx context.Context, g *core.Graph, opts ...Option) (*Tree, error) {
	cfg := DefaultOptions("")
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Source == "" {
		return nil, ErrEmptySource
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.Weighted() {
		return nil, ErrUnweightedGraph
	}
	if !g.HasVertex(cfg.Source) {
		return nil, ErrVertexNotFound
	}

	vertices := g.Vertices()
	r := &runner{
		g:       g,
		options: cfg,
		tree: &Tree{
			Source:   cfg.Source,
			Dist:     make(map[string]float64, len(vertices)),
			Prev:     make(map[string]string, len(vertices)),
			PrevEdge: make(map[string]string, len(vertices)),
		},
		visited: make(map[string]bool, len(vertices)),
		pq:      make(nodePQ, 0, len(vertices)),
	}
	r.init(vertices)
	if err := r.process(ctx); err != nil {
		return nil, err
	}

	return r.tree, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Graph
	options Options
	tree    *Tree
	visited map[string]bool
	pq      nodePQ
}

// init sets dist[v] = +Inf everywhere except the source and seeds the heap.
func (r *runner) init(vertices []string) {
	for _, v := range vertices {
		r.tree.Dist[v] = math.Inf(1)
	}
	r.tree.Dist[r.options.Source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process pops the closest unsettled vertex and relaxes its edges until the
// heap is empty or the next distance exceeds MaxDistance.
func (r *runner) process(ctx context.Context) error {
	var pops int
	for r.pq.Len() > 0 {
		if pops%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		pops++

		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.id] = true
		if err := r.relax(item.id); err != nil {
			return err
		}
	}

	return nil
}

// relax improves distances to the neighbors of the settled vertex u.
func (r *runner) relax(u string) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %q: %w", u, err)
	}

	var (
		e       *core.Edge
		v       string
		newDist float64
	)
	for _, e = range neighbors {
		if e.Weight >= r.options.InfEdgeThreshold {
			continue
		}
		v = e.Other(u)
		if r.visited[v] {
			continue
		}
		newDist = r.tree.Dist[u] + e.Weight
		if newDist > r.options.MaxDistance {
			continue
		}
		// Strict improvement only; the first predecessor at a given distance wins.
		if newDist >= r.tree.Dist[v] {
			continue
		}
		r.tree.Dist[v] = newDist
		r.tree.Prev[v] = u
		r.tree.PrevEdge[v] = e.ID
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}

	return nil
}

// nodeItem is a heap entry (lazy decrease-key: stale entries are skipped).
type nodeItem struct {
	id   string
	dist float64
}

// nodePQ is a min-heap ordered by (dist, id).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
