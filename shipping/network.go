// SPDX-License-Identifier: MIT

package shipping

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/chokepoint/core"
)

// Network is the undirected maritime graph plus the leg behind each edge.
// It is read-only after BuildNetwork and safe for concurrent use.
type Network struct {
	Graph *core.Graph
	legs  map[string]Leg
}

// BuildNetwork creates one weighted edge per leg (weight = Distance).
//
// Errors: ErrParallelLeg when two legs join the same nodes, ErrSelfLeg for a
// loop, core.ErrBadWeight for a negative distance, core.ErrEmptyVertexID.
func BuildNetwork(legs []Leg) (*Network, error) {
	g := core.NewGraph(core.WithWeighted())
	n := &Network{Graph: g, legs: make(map[string]Leg, len(legs))}
	for i, leg := range legs {
		eid, err := g.AddEdge(leg.From, leg.To, leg.Distance)
		switch {
		case errors.Is(err, core.ErrMultiEdgeNotAllowed):
			return nil, fmt.Errorf("%w: leg %d %s-%s", ErrParallelLeg, i, leg.From, leg.To)
		case errors.Is(err, core.ErrLoopNotAllowed):
			return nil, fmt.Errorf("%w: leg %d at %s", ErrSelfLeg, i, leg.From)
		case err != nil:
			return nil, fmt.Errorf("shipping: leg %d %s-%s: %w", i, leg.From, leg.To, err)
		}
		n.legs[eid] = leg
	}

	return n, nil
}

// Leg returns the leg stored under a graph edge ID.
func (n *Network) Leg(edgeID string) (Leg, bool) {
	leg, ok := n.legs[edgeID]

	return leg, ok
}

// HasNode reports whether id is a node of the network.
func (n *Network) HasNode(id string) bool {
	return n.Graph.HasVertex(id)
}
