// SPDX-License-Identifier: MIT

// Package tabular reads the run's input files and writes its result tables.
//
// Inputs: a structural table (CSV or .xlsx), a port registry CSV and an
// edge-list CSV with WKT geometry. Outputs are CSV with country labels on
// both axes; undefined values are written as empty cells.
package tabular
