// SPDX-License-Identifier: MIT

// Package shipping turns raw port and edge tables into the maritime network.
//
//	rows, _   := shipping.MergeDuplicateEdges(raw, shipping.DefaultMergeSpec())
//	legs, _   := shipping.LegsFromRecords(rows)
//	net, _    := shipping.BuildNetwork(legs)
//	ports, _  := shipping.NewRegistry(portList)
//
// Raw edge lists record many legs twice, once per direction, so merging
// is required before BuildNetwork, which rejects parallel legs.
package shipping
