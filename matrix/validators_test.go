// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/distmul/matrix"
	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	a := MustDense(t, 2, 3)
	b := MustDense(t, 3, 4)

	assert.NoError(t, matrix.ValidateNotNil(a))
	assert.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)

	assert.NoError(t, matrix.ValidateShape(a, 2, 3))
	assert.ErrorIs(t, matrix.ValidateShape(a, 3, 2), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.ValidateShape(nil, 1, 1), matrix.ErrNilMatrix)

	assert.NoError(t, matrix.ValidateMulCompatible(a, b))
	assert.ErrorIs(t, matrix.ValidateMulCompatible(b, a), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.ValidateMulCompatible(a, nil), matrix.ErrNilMatrix)

	assert.NoError(t, matrix.ValidateBufferLen(make([]float64, 6), 2, 3))
	assert.NoError(t, matrix.ValidateBufferLen(nil, 0, 3))
	assert.ErrorIs(t, matrix.ValidateBufferLen(make([]float64, 5), 2, 3), matrix.ErrBufferLength)
	assert.ErrorIs(t, matrix.ValidateBufferLen(nil, -1, 3), matrix.ErrInvalidDimensions)
}

func TestOptions_Defaults(t *testing.T) {
	assert.True(t, matrix.NewMatrixOptions().ValidateNaNInf())
	assert.False(t, matrix.NewMatrixOptions(matrix.WithNoValidateNaNInf()).ValidateNaNInf())
	assert.True(t, matrix.NewMatrixOptions(matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf()).ValidateNaNInf(),
		"last writer wins")
}
