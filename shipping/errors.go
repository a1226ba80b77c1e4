// SPDX-License-Identifier: MIT

package shipping

import "errors"

var (
	// ErrMergeSpec indicates an unusable MergeSpec.
	ErrMergeSpec = errors.New("shipping: invalid merge spec")

	// ErrField indicates a missing or mistyped record field.
	ErrField = errors.New("shipping: bad record field")

	// ErrParallelLeg indicates two legs between the same pair of nodes.
	// Merge duplicates before building a network.
	ErrParallelLeg = errors.New("shipping: parallel legs between the same nodes")

	// ErrSelfLeg indicates a leg whose endpoints coincide.
	ErrSelfLeg = errors.New("shipping: leg starts and ends at the same node")

	// ErrBadPort indicates an invalid port record.
	ErrBadPort = errors.New("shipping: invalid port")

	// ErrThroughputKey indicates an unknown throughput metric name.
	ErrThroughputKey = errors.New("shipping: unknown throughput key")
)
