// Package matrix_test provides benchmarks for the reference product and the
// zero-copy views, using deterministic random fill.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/distmul/matrix"
)

// benchSizes are the square sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkV []float64
)

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := RandFilledDense(b, n, n, 1337)
			B := RandFilledDense(b, n, n, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

// BenchmarkMul_Fallback measures the interface (At) path.
func BenchmarkMul_Fallback(b *testing.B) {
	b.ReportAllocs()
	A := RandFilledDense(b, 64, 64, 1)
	B := RandFilledDense(b, 64, 64, 2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m, err := matrix.Mul(hide{A}, hide{B})
		if err != nil {
			b.Fatal(err)
		}
		sinkM = m
	}
}

func BenchmarkNewDenseFrom(b *testing.B) {
	b.ReportAllocs()
	buf := RandFilledDense(b, 512, 512, 7).Data()
	for _, opt := range []struct {
		name string
		opt  matrix.Option
	}{
		{"validate", matrix.WithValidateNaNInf()},
		{"novalidate", matrix.WithNoValidateNaNInf()},
	} {
		b.Run(opt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m, err := matrix.NewDenseFrom(512, 512, buf, opt.opt)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkRowBlock(b *testing.B) {
	b.ReportAllocs()
	m := RandFilledDense(b, 1000, 100, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blk, err := m.RowBlock(i%900, 100)
		if err != nil {
			b.Fatal(err)
		}
		sinkV = blk.Data()
	}
}
