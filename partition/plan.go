// SPDX-License-Identifier: MIT

package partition

import "fmt"

// Block is one participant's contiguous share: Count units starting at Offset.
type Block struct {
	Count  int
	Offset int
}

// Plan assigns one Block per participant, in participant-index order.
type Plan []Block

// New splits rows over participants.
//
// Implementation:
//   - Stage 1: validate rows>=0 (ErrNegativeRows), participants>=1 (ErrNoParticipants).
//   - Stage 2: base = rows/participants; the first rows%participants blocks get base+1.
//   - Stage 3: offsets are the running prefix sum of counts.
//
// Behavior highlights:
//   - participants > rows is not an error: trailing blocks have Count 0 and
//     Offset == rows.
//   - participants == 1 yields a single block covering everything.
//
// Complexity: O(participants) time and space.
func New(rows, participants int) (Plan, error) {
	if rows < 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, participants, ErrNegativeRows)
	}
	if participants < 1 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, participants, ErrNoParticipants)
	}

	base, extra := rows/participants, rows%participants
	plan := make(Plan, participants)
	offset := 0
	for i := range plan {
		count := base
		if i < extra {
			count++
		}
		plan[i] = Block{Count: count, Offset: offset}
		offset += count
	}

	return plan, nil
}

// Size is the number of participants the plan covers.
func (p Plan) Size() int { return len(p) }

// Total is the sum of all counts, i.e. the length of the covered range.
func (p Plan) Total() int {
	total := 0
	for _, b := range p {
		total += b.Count
	}

	return total
}

// Block returns participant i's block; ok is false when i is out of range.
func (p Plan) Block(i int) (b Block, ok bool) {
	if i < 0 || i >= len(p) {
		return Block{}, false
	}

	return p[i], true
}

// Counts returns a fresh slice of per-participant counts.
func (p Plan) Counts() []int {
	out := make([]int, len(p))
	for i, b := range p {
		out[i] = b.Count
	}

	return out
}

// Offsets returns a fresh slice of per-participant offsets.
func (p Plan) Offsets() []int {
	out := make([]int, len(p))
	for i, b := range p {
		out[i] = b.Offset
	}

	return out
}

// Scale returns a new plan whose counts and offsets are multiplied by width.
// A row plan scaled by a column count is the element plan for a row-major
// buffer of that width. The receiver is not modified.
func (p Plan) Scale(width int) (Plan, error) {
	if width < 0 {
		return nil, fmt.Errorf("Scale(%d): %w", width, ErrNegativeWidth)
	}
	out := make(Plan, len(p))
	for i, b := range p {
		out[i] = Block{Count: b.Count * width, Offset: b.Offset * width}
	}

	return out, nil
}

// Validate checks that p covers [0, total) contiguously: at least one block,
// non-negative counts, Offsets[0]==0, each offset the prefix sum of the
// previous counts, and sum(counts)==total. It does not check balance; scaled
// plans are legitimately unbalanced by up to one row's width.
func (p Plan) Validate(total int) error {
	if len(p) == 0 {
		return fmt.Errorf("Validate: empty plan: %w", ErrInvalidPlan)
	}
	next := 0
	for i, b := range p {
		if b.Count < 0 {
			return fmt.Errorf("Validate: block %d count %d: %w", i, b.Count, ErrInvalidPlan)
		}
		if b.Offset != next {
			return fmt.Errorf("Validate: block %d offset %d, want %d: %w", i, b.Offset, next, ErrInvalidPlan)
		}
		next += b.Count
	}
	if next != total {
		return fmt.Errorf("Validate: covers %d, want %d: %w", next, total, ErrInvalidPlan)
	}

	return nil
}

// Balanced reports whether max(counts)-min(counts) <= 1.
func (p Plan) Balanced() bool {
	if len(p) == 0 {
		return true
	}
	lo, hi := p[0].Count, p[0].Count
	for _, b := range p[1:] {
		lo, hi = min(lo, b.Count), max(hi, b.Count)
	}

	return hi-lo <= 1
}

// Equal reports whether p and q assign identical blocks to every participant.
func (p Plan) Equal(q Plan) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}

	return true
}
