// Package matrix provides the dense linear-algebra primitives behind the
// input-output engine.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and
//     copy-based block extraction (Induced, Block).
//   - Kernels: Sub, Mul, Transpose, MatVec, LU (Doolittle) and Inverse.
//   - Reductions and broadcasts: RowSums, DivCols, DivRows, ScaleRows.
//   - Tolerance helpers for identity checks: FirstBeyond, MaxAbsDiff.
//
// All errors are sentinels from errors.go, wrapped with the operation name.
package matrix
