// SPDX-License-Identifier: MIT

package kernel_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/distmul/builder"
	"github.com/katalvlaran/distmul/kernel"
	"github.com/katalvlaran/distmul/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func dense(t testing.TB, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

func TestMultiply_Small(t *testing.T) {
	a := dense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := dense(t, 3, 2, 7, 8, 9, 10, 11, 12)
	c, err := kernel.Multiply(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{58, 64, 139, 154}, c.Data())
}

// Every row band of A, multiplied alone, equals the same rows of the full product.
func TestMultiply_BandsMatchReference(t *testing.T) {
	a, err := builder.Dense(9, 7, builder.WithSeed(3))
	require.NoError(t, err)
	b, err := builder.Dense(7, 5, builder.WithSeed(4))
	require.NoError(t, err)
	ref, err := matrix.Mul(a, b)
	require.NoError(t, err)

	for offset := 0; offset <= a.Rows(); offset++ {
		for count := 0; offset+count <= a.Rows(); count++ {
			band, err := a.RowBlock(offset, count)
			require.NoError(t, err)
			got, err := kernel.Multiply(context.Background(), band, b)
			require.NoError(t, err)
			want, err := ref.RowBlock(offset, count)
			require.NoError(t, err)
			require.Equal(t, want.Data(), got.Data(), "offset=%d count=%d", offset, count)
		}
	}
}

func TestMultiply_WorkersDoNotChangeBits(t *testing.T) {
	a, err := builder.Dense(33, 17, builder.WithSeed(11))
	require.NoError(t, err)
	b, err := builder.Dense(17, 13, builder.WithSeed(12))
	require.NoError(t, err)
	ref, err := matrix.Mul(a, b)
	require.NoError(t, err)

	for _, w := range []int{1, 2, 3, 8, 64} {
		t.Run(fmt.Sprintf("workers=%d", w), func(t *testing.T) {
			got, err := kernel.Multiply(context.Background(), a, b, kernel.WithWorkers(w))
			require.NoError(t, err)
			assert.Equal(t, ref.Data(), got.Data())
		})
	}
}

func TestMultiply_AgreesWithGonum(t *testing.T) {
	a, err := builder.Dense(12, 8, builder.WithSeed(5))
	require.NoError(t, err)
	b, err := builder.Dense(8, 6, builder.WithSeed(6))
	require.NoError(t, err)
	got, err := kernel.Multiply(context.Background(), a, b, kernel.WithWorkers(4))
	require.NoError(t, err)

	var want mat.Dense
	want.Mul(mat.NewDense(12, 8, a.Data()), mat.NewDense(8, 6, b.Data()))
	assert.True(t, mat.EqualApprox(&want, mat.NewDense(12, 6, got.Data()), 1e-9))
}

func TestMultiply_EmptyShapes(t *testing.T) {
	cases := []struct{ r, n, c int }{{0, 3, 4}, {2, 0, 3}, {2, 3, 0}, {0, 0, 0}}
	for _, tc := range cases {
		a, err := matrix.NewDense(tc.r, tc.n)
		require.NoError(t, err)
		b, err := builder.Dense(tc.n, tc.c)
		require.NoError(t, err)
		got, err := kernel.Multiply(context.Background(), a, b, kernel.WithWorkers(3))
		require.NoError(t, err)
		assert.Equal(t, tc.r, got.Rows())
		assert.Equal(t, tc.c, got.Cols())
		for _, v := range got.Data() {
			assert.Zero(t, v) // inner dimension 0 gives zero sums
		}
	}
}

func TestMultiply_NonFinitePropagates(t *testing.T) {
	a, err := matrix.NewDenseFrom(1, 2, []float64{0, 1}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	b, err := matrix.NewDenseFrom(2, 1, []float64{math.Inf(1), 2}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	got, err := kernel.Multiply(context.Background(), a, b)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Data()[0]), "0*Inf must not be skipped")
}

func TestMultiply_Errors(t *testing.T) {
	ctx := context.Background()
	a := dense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := dense(t, 2, 2, 1, 2, 3, 4)

	_, err := kernel.Multiply(ctx, a, b)
	assert.ErrorIs(t, err, kernel.ErrInnerDimension)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = kernel.Multiply(ctx, nil, b)
	assert.ErrorIs(t, err, kernel.ErrNilOperand)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = kernel.Multiply(ctx, b, b, kernel.WithWorkers(0))
	assert.ErrorIs(t, err, kernel.ErrInvalidWorkers)

	dst := dense(t, 1, 2, 0, 0)
	err = kernel.MultiplyInto(ctx, dst, b, b)
	assert.ErrorIs(t, err, kernel.ErrDestinationShape)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = kernel.Multiply(cctx, b, b)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMultiplyInto_Overwrites(t *testing.T) {
	a := dense(t, 2, 2, 1, 0, 0, 1)
	b := dense(t, 2, 2, 5, 6, 7, 8)
	dst := dense(t, 2, 2, 9, 9, 9, 9)
	require.NoError(t, kernel.MultiplyInto(context.Background(), dst, a, b))
	assert.Equal(t, []float64{5, 6, 7, 8}, dst.Data())
}

func TestOptions(t *testing.T) {
	assert.Equal(t, kernel.DefaultWorkers, kernel.NewOptions().Workers())
	assert.Equal(t, 4, kernel.NewOptions(kernel.WithWorkers(2), nil, kernel.WithWorkers(4)).Workers())
}
