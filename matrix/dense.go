// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j,
//     so no caller ever has to do that arithmetic by hand.
//   - Guarantee safety at the public surface: At/Set/Row/RowBlock return errors instead of panicking.
//   - Support no-copy row-block views (RowBlock) used to slice a matrix into partitions.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; NewDenseFrom: O(r*c) policy scan, no copy;
//     At/Set/Row: O(1); RowBlock: O(1); Clone: O(r*c); Equal: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxRow      = "Row"      // method tag used in error wrappers
	ctxRowBlock = "RowBlock" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w". Preserves the sentinel for errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols); zero is legal for either.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>= 0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and resolve numeric policy.
//
// Behavior highlights:
//   - 0×N and N×0 shapes are legal: a participant that owns no rows still
//     needs a well-formed (empty) block.
//
// Errors:
//   - ErrInvalidDimensions (negative rows or cols).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols), // make() zero-fills deterministically
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewDenseFrom adopts data as the row-major backing buffer of an r×c matrix.
//
// Implementation:
//   - Stage 1: validate shape (ErrInvalidDimensions) and len(data)==rows*cols (ErrBufferLength).
//   - Stage 2: when the finite-only policy is on, scan for NaN/±Inf (ErrNaNInf).
//
// Behavior highlights:
//   - No copy: the caller hands over ownership of data. This is how received
//     collective payloads become matrices without a second allocation.
//   - A nil data slice is accepted only for empty shapes.
//
// Complexity:
//   - Time O(r*c) when validating, O(1) otherwise; Space O(1).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	if err := ValidateBufferLen(data, rows, cols); err != nil {
		return nil, fmt.Errorf("NewDenseFrom(%d,%d): %w", rows, cols, err)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		for k, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("NewDenseFrom: %w", denseErrorf(ctxSet, k/cols, k%cols, ErrNaNInf))
			}
		}
	}
	if data == nil {
		data = []float64{}
	}

	return &Dense{r: rows, c: cols, data: data, validateNaNInf: o.validateNaNInf}, nil
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Len returns rows*cols, the number of stored elements.
func (m *Dense) Len() int { return len(m.data) }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap with coordinates and method name.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite values under the policy.
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Row returns row i as a slice aliasing the backing buffer.
// Writes through the slice bypass the numeric policy; treat it as a view.
// Complexity: O(1).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	start := i * m.c

	return m.data[start : start+m.c : start+m.c], nil
}

// RowBlock returns a no-copy view over rows [offset, offset+count).
//
// Behavior highlights:
//   - count==0 is legal for any offset in [0, Rows()] and yields a 0×Cols view.
//   - The view's capacity is clipped, so appends can never spill into the
//     neighbouring block.
//
// Errors:
//   - ErrOutOfRange when offset<0, count<0 or offset+count > Rows().
//
// Complexity: O(1).
func (m *Dense) RowBlock(offset, count int) (*Dense, error) {
	if offset < 0 || count < 0 || offset+count > m.r {
		return nil, denseErrorf(ctxRowBlock, offset, count, ErrOutOfRange)
	}
	lo, hi := offset*m.c, (offset+count)*m.c

	return &Dense{
		r:              count,
		c:              m.c,
		data:           m.data[lo:hi:hi],
		validateNaNInf: m.validateNaNInf,
	}, nil
}

// Data returns the row-major backing buffer (no copy).
// Callers that only read must not mutate it; it is the payload handed to
// collectives for broadcast and scatter.
func (m *Dense) Data() []float64 { return m.data }

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// Equal reports whether o has the same shape and bit-identical elements.
// NaN never equals NaN here, same as ==.
func (m *Dense) Equal(o *Dense) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c {
		return false
	}
	for k := range m.data {
		if m.data[k] != o.data[k] {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				sb.WriteString(_fmtSep)
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
