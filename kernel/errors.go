// SPDX-License-Identifier: MIT

package kernel

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/distmul/matrix"
)

// Shape and nil errors also match matrix.ErrDimensionMismatch and
// matrix.ErrNilMatrix respectively.
var (
	// ErrInnerDimension signals A_block.Cols != B.Rows.
	ErrInnerDimension = errors.New("kernel: inner dimensions differ")

	// ErrDestinationShape signals a destination that is not A_block.Rows × B.Cols.
	ErrDestinationShape = errors.New("kernel: destination has the wrong shape")

	// ErrInvalidWorkers signals a worker count below one.
	ErrInvalidWorkers = errors.New("kernel: workers must be >= 1")

	// ErrNilOperand signals a nil matrix argument.
	ErrNilOperand = errors.New("kernel: nil operand")
)

func errNil() error {
	return fmt.Errorf("%w: %w", ErrNilOperand, matrix.ErrNilMatrix)
}

func kernelErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
