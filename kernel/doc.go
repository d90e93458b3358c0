// Package kernel computes one participant's share of a distributed product:
// C_block = A_block × B, where A_block is a contiguous band of A's rows and B
// is the full right-hand matrix every participant received by broadcast.
//
// The accumulation order is fixed: for every output element (i, j) a single
// accumulator starts at zero and adds A[i,k]*B[k,j] for k ascending. This is
// the order matrix.Mul uses, so any row partition of A, computed here and
// gathered back, is bit-identical to the single-participant product.
//
// WithWorkers splits the band's rows over goroutines. Each output row is
// still computed by exactly one goroutine in the same order, so the result
// does not depend on the worker count either.
package kernel
