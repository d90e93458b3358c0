package kernel_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/distmul/kernel"
	"github.com/katalvlaran/distmul/matrix"
)

// ExampleMultiply computes the second row band of a 3×2 matrix times B.
func ExampleMultiply() {
	a, _ := matrix.NewDenseFrom(3, 2, []float64{1, 0, 0, 1, 2, 2})
	b, _ := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	band, _ := a.RowBlock(1, 2)

	c, _ := kernel.Multiply(context.Background(), band, b)
	fmt.Print(c)
	// Output:
	// [3, 4]
	// [8, 12]
}
