package shipping_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chokepoint/core"
	"github.com/katalvlaran/chokepoint/maybe"
	"github.com/katalvlaran/chokepoint/shipping"
)

func TestLegsFromRecords(t *testing.T) {
	rows := []shipping.Record{
		{"from_id": "A", "to_id": "B", "distance": 3.0, "length": 2.0, "geometry": "LINESTRING(0 0, 1 1)"},
		{"from_id": "B", "to_id": "C", "distance": 4, "geometry": orb.LineString{{1, 1}, {2, 2}}},
		{"from_id": "C", "to_id": "D", "distance": 1.0},
	}
	legs, err := shipping.LegsFromRecords(rows)
	require.NoError(t, err)
	require.Len(t, legs, 3)
	require.Equal(t, orb.LineString{{0, 0}, {1, 1}}, legs[0].Geometry)
	require.Equal(t, 2.0, legs[0].Length)
	require.Equal(t, 4.0, legs[1].Distance)
	require.Equal(t, 0.0, legs[2].Length)
	require.Nil(t, legs[2].Geometry)

	_, err = shipping.LegsFromRecords([]shipping.Record{{"from_id": "A", "to_id": "B"}})
	require.ErrorIs(t, err, shipping.ErrField)
	_, err = shipping.LegsFromRecords([]shipping.Record{{"from_id": "A", "to_id": "B", "distance": 1.0, "geometry": "POINT(1 2)"}})
	require.ErrorIs(t, err, shipping.ErrField)
}

func TestBuildNetwork(t *testing.T) {
	legs := []shipping.Leg{
		{From: "A", To: "B", Distance: 1, Length: 10},
		{From: "B", To: "C", Distance: 2, Length: 20},
	}
	net, err := shipping.BuildNetwork(legs)
	require.NoError(t, err)
	require.True(t, net.HasNode("C"))
	require.True(t, net.Graph.HasEdge("B", "A"))

	for _, e := range net.Graph.Edges() {
		leg, ok := net.Leg(e.ID)
		require.True(t, ok)
		require.Equal(t, leg.Distance, e.Weight)
	}
	_, ok := net.Leg("e99")
	require.False(t, ok)
}

func TestBuildNetwork_Rejects(t *testing.T) {
	_, err := shipping.BuildNetwork([]shipping.Leg{{From: "A", To: "B", Distance: 1}, {From: "B", To: "A", Distance: 2}})
	require.ErrorIs(t, err, shipping.ErrParallelLeg)

	_, err = shipping.BuildNetwork([]shipping.Leg{{From: "A", To: "A", Distance: 1}})
	require.ErrorIs(t, err, shipping.ErrSelfLeg)

	_, err = shipping.BuildNetwork([]shipping.Leg{{From: "A", To: "B", Distance: -1}})
	require.ErrorIs(t, err, core.ErrBadWeight)
}

func TestRegistry(t *testing.T) {
	reg, err := shipping.NewRegistry([]shipping.Port{
		{ID: "p2", Country: "AAA", Import: 3, Export: 1},
		{ID: "p1", Country: "AAA", Import: 1, Export: 1},
		{ID: "q1", Country: "BBB", Import: 5, Throughput: 7},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"AAA", "BBB"}, reg.Countries())

	aaa := reg.ByCountry("AAA")
	require.Len(t, aaa, 2)
	require.Equal(t, "p1", aaa[0].ID)
	require.Empty(t, reg.ByCountry("ZZZ"))

	total, err := reg.Total("AAA", shipping.KeyImport)
	require.NoError(t, err)
	require.Equal(t, 4.0, total)

	v, err := reg.Throughput("q1", shipping.KeyThroughput)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)
	_, err = reg.Throughput("nope", shipping.KeyImport)
	require.ErrorIs(t, err, shipping.ErrBadPort)
	_, err = reg.Throughput("q1", shipping.ThroughputKey("bogus"))
	require.ErrorIs(t, err, shipping.ErrThroughputKey)

	require.Len(t, reg.Ports(), 3)
}

func TestRegistry_Rejects(t *testing.T) {
	_, err := shipping.NewRegistry([]shipping.Port{{ID: "a", Country: "X"}, {ID: "a", Country: "Y"}})
	require.ErrorIs(t, err, shipping.ErrBadPort)
	_, err = shipping.NewRegistry([]shipping.Port{{ID: "a", Country: "X", Import: -1}})
	require.ErrorIs(t, err, shipping.ErrBadPort)
	_, err = shipping.NewRegistry([]shipping.Port{{ID: "a"}})
	require.ErrorIs(t, err, shipping.ErrBadPort)
}

func TestParseThroughputKey(t *testing.T) {
	k, err := shipping.ParseThroughputKey("export")
	require.NoError(t, err)
	require.Equal(t, shipping.KeyExport, k)
	_, err = shipping.ParseThroughputKey("tonnes")
	require.ErrorIs(t, err, shipping.ErrThroughputKey)
}

func TestAttachCanalShare(t *testing.T) {
	network := []shipping.Record{
		{"from_id": "A", "to_id": "B", "v_sea_flow": 100.0, "q_sea_flow": 10.0},
		{"from_id": "B", "to_id": "C", "v_sea_flow": 50.0, "q_sea_flow": 0.0},
		{"from_id": "C", "to_id": "D", "v_sea_flow": 0.0, "q_sea_flow": 0.0},
	}
	canal := []shipping.Record{
		{"from_id": "A", "to_id": "B", "v_sea_flow": 25.0, "q_sea_flow": 5.0},
		{"from_id": "B", "to_id": "C", "v_sea_flow": 50.0, "q_sea_flow": 0.0},
	}
	out, err := shipping.AttachCanalShare(network, canal, "suez")
	require.NoError(t, err)
	require.Len(t, out, 3)

	f := shipping.CanalFieldNames("suez")
	require.Equal(t, "v_ratio_suez", f.VRatio)
	require.Equal(t, 25.0, out[0][f.VFlow])
	require.True(t, maybe.Of(0.25).Equal(out[0][f.VRatio].(maybe.Float)))
	require.True(t, maybe.Of(0.5).Equal(out[0][f.QRatio].(maybe.Float)))
	require.True(t, maybe.Of(1).Equal(out[1][f.VRatio].(maybe.Float)))
	require.False(t, out[1][f.QRatio].(maybe.Float).Defined())
	require.Equal(t, 0.0, out[2][f.VFlow])
	require.False(t, out[2][f.VRatio].(maybe.Float).Defined())

	_, ok := network[0][f.VFlow]
	require.False(t, ok, "input rows must not be modified")

	_, err = shipping.AttachCanalShare(network, canal, "")
	require.ErrorIs(t, err, shipping.ErrField)
}
