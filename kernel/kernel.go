// SPDX-License-Identifier: MIT

package kernel

import (
	"context"
	"fmt"

	"github.com/katalvlaran/distmul/matrix"
	"github.com/katalvlaran/distmul/partition"
	"golang.org/x/sync/errgroup"
)

const (
	opMultiply     = "Multiply"
	opMultiplyInto = "MultiplyInto"
)

// Multiply returns a new aBlock.Rows() × b.Cols() matrix holding aBlock × b.
//
// A band with zero rows yields a 0×b.Cols() result without touching b's
// values. NaN and ±Inf propagate by IEEE-754 rules; nothing is skipped.
//
// Errors: ErrNilOperand, ErrInnerDimension, ErrInvalidWorkers, or ctx.Err()
// when ctx is done before every row is computed.
//
// Complexity: O(rows*inner*cols) time, O(rows*cols) space.
func Multiply(ctx context.Context, aBlock, b *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	if aBlock == nil || b == nil {
		return nil, kernelErrorf(opMultiply, errNil())
	}
	dst, err := matrix.NewDense(aBlock.Rows(), b.Cols(), matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, kernelErrorf(opMultiply, err)
	}
	if err = MultiplyInto(ctx, dst, aBlock, b, opts...); err != nil {
		return nil, err
	}

	return dst, nil
}

// MultiplyInto overwrites dst with aBlock × b. dst must be
// aBlock.Rows() × b.Cols() and must not share storage with either operand.
//
// Implementation:
//   - Stage 1: validate operands, shapes and options.
//   - Stage 2: split the rows with partition.New(rows, workers); each
//     non-empty share runs on its own goroutine.
//   - Stage 3: per row, per column, one accumulator over k ascending.
func MultiplyInto(ctx context.Context, dst, aBlock, b *matrix.Dense, opts ...Option) error {
	if dst == nil || aBlock == nil || b == nil {
		return kernelErrorf(opMultiplyInto, errNil())
	}
	o := gatherOptions(opts...)
	if err := o.Validate(); err != nil {
		return kernelErrorf(opMultiplyInto, err)
	}
	rows, inner, cols := aBlock.Rows(), aBlock.Cols(), b.Cols()
	if inner != b.Rows() {
		return kernelErrorf(opMultiplyInto,
			fmt.Errorf("A block %dx%d, B %dx%d: %w: %w", rows, inner, b.Rows(), cols, ErrInnerDimension, matrix.ErrDimensionMismatch))
	}
	if dst.Rows() != rows || dst.Cols() != cols {
		return kernelErrorf(opMultiplyInto,
			fmt.Errorf("dst %dx%d, want %dx%d: %w: %w", dst.Rows(), dst.Cols(), rows, cols, ErrDestinationShape, matrix.ErrDimensionMismatch))
	}
	if rows == 0 || cols == 0 {
		return nil
	}

	a, bd, c := aBlock.Data(), b.Data(), dst.Data()
	if o.workers == 1 || rows == 1 {
		if err := mulRows(ctx, c, a, bd, 0, rows, inner, cols); err != nil {
			return kernelErrorf(opMultiplyInto, err)
		}
		return nil
	}

	shares, err := partition.New(rows, o.workers)
	if err != nil {
		return kernelErrorf(opMultiplyInto, err)
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range shares {
		if s.Count == 0 {
			continue
		}
		g.Go(func() error {
			return mulRows(gctx, c, a, bd, s.Offset, s.Offset+s.Count, inner, cols)
		})
	}
	if err = g.Wait(); err != nil {
		return kernelErrorf(opMultiplyInto, err)
	}

	return nil
}

// mulRows computes output rows [from, to). It checks ctx once per row.
func mulRows(ctx context.Context, c, a, b []float64, from, to, inner, cols int) error {
	var (
		i, j, k int
		sum     float64
	)
	for i = from; i < to; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rowA := a[i*inner : (i+1)*inner]
		rowC := c[i*cols : (i+1)*cols]
		for j = 0; j < cols; j++ {
			sum = matrix.ZeroSum
			for k = 0; k < inner; k++ {
				sum += rowA[k] * b[k*cols+j]
			}
			rowC[j] = sum
		}
	}

	return nil
}
