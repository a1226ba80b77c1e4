// SPDX-License-Identifier: MIT

// Package exposure combines a value-chain matrix with chokepoint reliance
// scores into per-country exposure statistics.
package exposure
