// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/distmul/matrix"
)

// Dense builds a rows × cols matrix, filling cells in row-major order with
// the configured ValueFn. Zero rows or cols give an empty matrix.
//
// Errors: ErrBadSize for negative dimensions.
// Complexity: O(rows*cols).
func Dense(rows, cols int, opts ...Option) (*matrix.Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, builderErrorf(MethodDense, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadSize))
	}
	cfg := newBuilderConfig(opts...)
	data := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = cfg.valueFn(cfg.rng, i, j, cols)
		}
	}
	m, err := matrix.NewDenseFrom(rows, cols, data, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, builderErrorf(MethodDense, err)
	}

	return m, nil
}

// Identity builds the n × n identity.
func Identity(n int) (*matrix.Dense, error) {
	if n < 0 {
		return nil, builderErrorf(MethodIdentity, fmt.Errorf("n=%d: %w", n, ErrBadSize))
	}
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	m, err := matrix.NewDenseFrom(n, n, data)
	if err != nil {
		return nil, builderErrorf(MethodIdentity, err)
	}

	return m, nil
}
