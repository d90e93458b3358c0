// SPDX-License-Identifier: MIT

package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/distmul/builder"
	"github.com/katalvlaran/distmul/engine"
)

func BenchmarkMultiply(b *testing.B) {
	x, err := builder.Dense(200, 200)
	if err != nil {
		b.Fatal(err)
	}
	y, err := builder.Dense(200, 160)
	if err != nil {
		b.Fatal(err)
	}
	for _, p := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("P=%d", p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := engine.Multiply(context.Background(), x, y, p); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
