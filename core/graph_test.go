package core_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/chokepoint/core"
)

func neighborIDs(t *testing.T, g *core.Graph, id string) []string {
	t.Helper()
	nb, err := g.Neighbors(id)
	require.NoError(t, err)
	out := make([]string, 0, len(nb))
	for _, e := range nb {
		out = append(out, e.Other(id))
	}

	return out
}

type GraphSuite struct {
	suite.Suite
	g *core.Graph
}

func (s *GraphSuite) SetupTest() {
	s.g = core.NewGraph(core.WithWeighted())
}

func (s *GraphSuite) TestAddVertexIdempotent() {
	r := require.New(s.T())
	r.False(s.g.HasVertex("A"))
	r.NoError(s.g.AddVertex("A"))
	r.NoError(s.g.AddVertex("A"))
	r.Equal(1, s.g.VertexCount())
	r.ErrorIs(s.g.AddVertex(""), core.ErrEmptyVertexID)
	r.True(s.g.HasVertex("A"))
	r.False(s.g.HasVertex(""))
}

func (s *GraphSuite) TestUndirectedEdgeMirrored() {
	r := require.New(s.T())
	eid, err := s.g.AddEdge("A", "B", 2.5)
	r.NoError(err)
	r.Equal("e1", eid)
	r.True(s.g.HasEdge("A", "B"))
	r.True(s.g.HasEdge("B", "A"))

	nb, err := s.g.Neighbors("B")
	r.NoError(err)
	r.Len(nb, 1)
	e := nb[0]
	r.Equal(eid, e.ID)
	r.Equal(2.5, e.Weight)
	r.Equal("A", e.Other("B"))
	r.Equal("B", e.Other("A"))
}

func (s *GraphSuite) TestWeightChecks() {
	r := require.New(s.T())
	_, err := s.g.AddEdge("A", "B", -1)
	r.ErrorIs(err, core.ErrBadWeight)
	_, err = s.g.AddEdge("A", "B", math.NaN())
	r.ErrorIs(err, core.ErrBadWeight)
	_, err = s.g.AddEdge("A", "B", math.Inf(1))
	r.ErrorIs(err, core.ErrBadWeight)

	u := core.NewGraph()
	_, err = u.AddEdge("A", "B", 1)
	r.ErrorIs(err, core.ErrBadWeight)
	_, err = u.AddEdge("A", "B", 0)
	r.NoError(err)
}

func (s *GraphSuite) TestLoopsAndMultiEdges() {
	r := require.New(s.T())
	_, err := s.g.AddEdge("A", "A", 1)
	r.ErrorIs(err, core.ErrLoopNotAllowed)

	_, err = s.g.AddEdge("A", "B", 1)
	r.NoError(err)
	_, err = s.g.AddEdge("B", "A", 1)
	r.ErrorIs(err, core.ErrMultiEdgeNotAllowed)
	_, err = s.g.AddEdge("A", "B", 3)
	r.ErrorIs(err, core.ErrMultiEdgeNotAllowed)
	r.Equal(1, s.g.EdgeCount())
}

func (s *GraphSuite) TestNeighborsOrdering() {
	r := require.New(s.T())
	for _, to := range []string{"D", "B", "C"} {
		_, err := s.g.AddEdge("A", to, 1)
		r.NoError(err)
	}
	_, err := s.g.AddEdge("Z", "A", 1)
	r.NoError(err)

	r.Equal([]string{"B", "C", "D", "Z"}, neighborIDs(s.T(), s.g, "A"))

	_, err = s.g.Neighbors("nope")
	r.ErrorIs(err, core.ErrVertexNotFound)
	_, err = s.g.Neighbors("")
	r.ErrorIs(err, core.ErrEmptyVertexID)
}

func (s *GraphSuite) TestEdgesSequenceOrder() {
	r := require.New(s.T())
	for i := 0; i < 12; i++ {
		_, err := s.g.AddEdge("hub", fmt.Sprintf("n%02d", i), float64(i))
		r.NoError(err)
	}
	edges := s.g.Edges()
	r.Len(edges, 12)
	r.Equal("e1", edges[0].ID)
	r.Equal("e2", edges[1].ID)
	r.Equal("e12", edges[11].ID)
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}

func TestConcurrentReaders(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	for i := 0; i < 50; i++ {
		_, err := g.AddEdge("root", fmt.Sprintf("n%d", i), 1)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nb, err := g.Neighbors("root")
			require.NoError(t, err)
			require.Len(t, nb, 50)
		}()
	}
	wg.Wait()
}
