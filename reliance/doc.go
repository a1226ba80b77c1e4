// SPDX-License-Identifier: MIT

// Package reliance measures how much port-to-port maritime traffic between
// countries is routed through a single chokepoint node.
//
//	m, err := reliance.NodeReliance(ctx, vc.Countries, ports, net, "maritime2927",
//		shipping.KeyImport, reliance.WithWorkers(8))
//	r, _ := m.Lookup("DEU", "CHN")
//
// Scores are throughput-weighted shares in [0,1]. Countries with no measured
// throughput get undefined scores rather than zeros.
package reliance
