// SPDX-License-Identifier: MIT

// Package matrix: the read/write contract shared by Dense and any operand
// handed to Mul or the validators.
package matrix

// Matrix is a rows × cols grid of float64 addressed by (row, col).
// Everything but Clone is O(1).
type Matrix interface {
	Rows() int
	Cols() int

	// At reads cell (row, col); ErrOutOfRange outside the grid.
	At(row, col int) (float64, error)

	// Set writes cell (row, col); ErrOutOfRange outside the grid.
	Set(row, col int, v float64) error

	// Clone is an independent deep copy.
	Clone() Matrix
}
