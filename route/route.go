// SPDX-License-Identifier: MIT

// Package route projects shortest maritime routes from one origin node to
// every port, with the traversed geometry ready for mapping.
package route

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/chokepoint/dijkstra"
	"github.com/katalvlaran/chokepoint/shipping"
)

// DefaultSegmentLimit is the planar length, in degrees, above which a leg is
// taken to wrap across the antimeridian and is left out of the geometry.
const DefaultSegmentLimit = 359.0

var (
	// ErrNilNetwork indicates that a nil *shipping.Network was passed.
	ErrNilNetwork = errors.New("route: network is nil")

	// ErrOriginNotFound indicates that the origin is not a network node.
	ErrOriginNotFound = errors.New("route: origin not in network")
)

// Projection is the shortest route from the origin to one port.
// Distance, Length and Geometry are zero when Reachable is false.
type Projection struct {
	PortID    string
	Reachable bool
	Distance  float64
	Length    float64
	Geometry  orb.MultiLineString
}

// Options configures From.
//
// SegmentLimit – legs drawn longer than this are left out of the geometry.
// MaxDistance  – ports farther than this sea distance are unreachable. Zero
// means no cap.
// ClosedAbove  – legs at least this long are closed to traffic. Zero means
// every leg is open.
type Options struct {
	SegmentLimit float64
	MaxDistance  float64
	ClosedAbove  float64
}

// Option represents a functional option for configuring From.
type Option func(*Options)

// WithSegmentLimit overrides DefaultSegmentLimit. Panics unless limit > 0.
func WithSegmentLimit(limit float64) Option {
	if !(limit > 0) || math.IsInf(limit, 1) {
		panic(fmt.Sprintf("route: WithSegmentLimit(%g): must be positive and finite", limit))
	}

	return func(o *Options) { o.SegmentLimit = limit }
}

// WithMaxDistance bounds the search to routes of at most d. Zero removes the
// bound. Panics on a negative or NaN d.
func WithMaxDistance(d float64) Option {
	if d < 0 || math.IsNaN(d) {
		panic(fmt.Sprintf("route: WithMaxDistance(%g): must be non-negative", d))
	}

	return func(o *Options) { o.MaxDistance = d }
}

// WithClosedAbove closes every leg whose distance is at least d. Zero keeps
// all legs open. Panics on a negative or NaN d.
func WithClosedAbove(d float64) Option {
	if d < 0 || math.IsNaN(d) {
		panic(fmt.Sprintf("route: WithClosedAbove(%g): must be non-negative", d))
	}

	return func(o *Options) { o.ClosedAbove = d }
}

func (o Options) search(origin string) []dijkstra.Option {
	opts := []dijkstra.Option{dijkstra.Source(origin)}
	if o.MaxDistance > 0 {
		opts = append(opts, dijkstra.WithMaxDistance(o.MaxDistance))
	}
	if o.ClosedAbove > 0 {
		opts = append(opts, dijkstra.WithInfEdgeThreshold(o.ClosedAbove))
	}

	return opts
}

// From computes one Projection per port, in ports order.
//
// Distance and Length sum the legs of the path. Geometry collects the leg
// lines in path order, skipping legs without geometry and legs whose planar
// length exceeds the segment limit. A port missing from the network or not
// reachable from origin (within MaxDistance, over open legs) is reported
// with Reachable = false.
func From(ctx context.Context, origin string, net *shipping.Network, ports []shipping.Port, opts ...Option) ([]Projection, error) {
	cfg := Options{SegmentLimit: DefaultSegmentLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if net == nil {
		return nil, ErrNilNetwork
	}
	if !net.HasNode(origin) {
		return nil, fmt.Errorf("%w: %q", ErrOriginNotFound, origin)
	}
	tree, err := dijkstra.Dijkstra(ctx, net.Graph, cfg.search(origin)...)
	if err != nil {
		return nil, fmt.Errorf("route: from %q: %w", origin, err)
	}

	out := make([]Projection, 0, len(ports))
	for _, p := range ports {
		proj := Projection{PortID: p.ID}
		if tree.Reachable(p.ID) {
			edges, err := tree.PathEdges(p.ID)
			if err != nil {
				return nil, fmt.Errorf("route: to %q: %w", p.ID, err)
			}
			proj.Reachable = true
			for _, eid := range edges {
				leg, _ := net.Leg(eid)
				proj.Distance += leg.Distance
				proj.Length += leg.Length
				if len(leg.Geometry) > 0 && planar.Length(leg.Geometry) <= cfg.SegmentLimit {
					proj.Geometry = append(proj.Geometry, leg.Geometry)
				}
			}
		}
		out = append(out, proj)
	}

	return out, nil
}
