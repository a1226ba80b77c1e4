// SPDX-License-Identifier: MIT

package reliance

import "github.com/katalvlaran/chokepoint/dijkstra"

// onPath answers "is node on the tree path from the source to v?".
// Answers are memoized for every vertex walked, so each vertex of the tree
// is visited at most once over all queries.
type onPath struct {
	tree *dijkstra.Tree
	node string
	memo map[string]bool
}

func newOnPath(tree *dijkstra.Tree, node string) *onPath {
	return &onPath{tree: tree, node: node, memo: make(map[string]bool)}
}

func (p *onPath) contains(v string) bool {
	if !p.tree.Reachable(v) {
		return false
	}

	var (
		walked []string
		found  bool
	)
	for cur := v; ; cur = p.tree.Prev[cur] {
		if known, ok := p.memo[cur]; ok {
			found = known
			break
		}
		walked = append(walked, cur)
		if cur == p.node {
			found = true
			break
		}
		if cur == p.tree.Source {
			break
		}
	}
	for _, w := range walked {
		p.memo[w] = found
	}

	return found
}
