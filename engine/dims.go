// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"

	"github.com/katalvlaran/distmul/matrix"
)

// Dims are the public shapes of a run, known to every participant.
type Dims struct {
	ARows, ACols int
	BRows, BCols int
}

// DimsOf reads Dims off two operands.
func DimsOf(a, b matrix.Matrix) Dims {
	return Dims{ARows: a.Rows(), ACols: a.Cols(), BRows: b.Rows(), BCols: b.Cols()}
}

// Validate checks that no dimension is negative and that A's columns match
// B's rows. Zero-sized shapes are valid.
func (d Dims) Validate() error {
	if d.ARows < 0 || d.ACols < 0 || d.BRows < 0 || d.BCols < 0 {
		return fmt.Errorf("%s: %w", d, matrix.ErrInvalidDimensions)
	}
	if d.ACols != d.BRows {
		return fmt.Errorf("%s: A has %d columns, B has %d rows: %w", d, d.ACols, d.BRows, matrix.ErrDimensionMismatch)
	}

	return nil
}

// C is the shape of the product.
func (d Dims) C() (rows, cols int) { return d.ARows, d.BCols }

// String renders "A(RxC) B(RxC)".
func (d Dims) String() string {
	return fmt.Sprintf("A(%dx%d) B(%dx%d)", d.ARows, d.ACols, d.BRows, d.BCols)
}

// matches reports whether a and b have exactly the declared shapes.
func (d Dims) matches(a, b matrix.Matrix) error {
	if err := matrix.ValidateShape(a, d.ARows, d.ACols); err != nil {
		return fmt.Errorf("A: %w", err)
	}
	if err := matrix.ValidateShape(b, d.BRows, d.BCols); err != nil {
		return fmt.Errorf("B: %w", err)
	}

	return nil
}
