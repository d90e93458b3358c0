// Package partition computes how N rows are split over P participants.
//
// A Plan is an ordered list of (Count, Offset) blocks, one per participant,
// covering [0, rows) without gaps or overlaps:
//
//   - Offsets[0] == 0 and Offsets[i] == Offsets[i-1] + Counts[i-1];
//   - sum(Counts) == rows;
//   - max(Counts) - min(Counts) <= 1, the remainder going one row each to the
//     lowest-indexed participants.
//
// Planning is pure: every participant computes the identical plan from the
// public (rows, participants) pair, so no communication is needed to agree
// on it. More participants than rows is valid; the surplus participants get
// zero-length blocks.
//
// The same row plan drives two transfers with different element widths
// (A's rows have Ac columns, C's rows have Bc). Scale derives a fresh,
// element-level plan for each, instead of mutating one shared array.
//
//	plan, _ := partition.New(5, 3)  // Counts [2 2 1], Offsets [0 2 4]
//	elems, _ := plan.Scale(10)      // Counts [20 20 10], Offsets [0 20 40]
package partition
