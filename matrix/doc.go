// Package matrix provides the row-major Dense buffer every other package in
// distmul exchanges and computes on.
//
// The matrix package provides:
//
//   - Dense: an owning, flat, row-major float64 buffer with its dimensions,
//     bounds-checked At/Set/Row accessors and no-copy RowBlock views. Zero
//     rows or columns are legal shapes.
//   - Validators (ValidateMulCompatible, ValidateShape, ValidateBufferLen)
//     shared by the kernel and the orchestrator.
//   - Mul: the single-participant reference product with a fixed accumulation
//     order (row-major, k ascending, one accumulator per element).
//   - Preview: a bounded, human-readable dump of the top-left corner.
//
// All errors are sentinels from errors.go; match them with errors.Is.
package matrix
