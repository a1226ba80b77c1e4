// SPDX-License-Identifier: MIT

// Package mrio derives the structural matrices of a multi-regional
// input-output table and decomposes value added by origin and destination.
//
// Pipeline:
//
//	tbl, _ := iotable.Parse(raw, dims)
//	m, _   := mrio.Build(tbl)        // Z F W X A V L
//	_       = mrio.Validate(m, 1e-6) // four accounting identities
//	vc, _  := mrio.ValueChain(m)     // country × country value added
//
// Zero output is treated as "no inputs": A and V map 0/0 to 0.
package mrio
