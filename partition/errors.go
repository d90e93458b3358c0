// SPDX-License-Identifier: MIT

package partition

import "errors"

var (
	// ErrNegativeRows is returned when the row count to split is negative.
	ErrNegativeRows = errors.New("partition: rows must be >= 0")

	// ErrNoParticipants is returned when the participant count is < 1.
	ErrNoParticipants = errors.New("partition: participants must be >= 1")

	// ErrNegativeWidth is returned by Scale for a negative element width.
	ErrNegativeWidth = errors.New("partition: width must be >= 0")

	// ErrInvalidPlan signals a plan violating the covering/balance invariants.
	ErrInvalidPlan = errors.New("partition: invalid plan")
)
