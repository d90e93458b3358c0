// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks invalid run parameters: dimensions, participant count
	// or coordinator operands that do not match the declared Dims.
	ErrConfig = errors.New("engine: invalid configuration")

	// ErrCollective marks a failed broadcast, scatter or gather.
	ErrCollective = errors.New("engine: collective failed")

	// ErrCompute marks a failure of the local multiply.
	ErrCompute = errors.New("engine: local multiply failed")
)

// engineErrorf joins a class sentinel with the underlying cause under a phase tag.
func engineErrorf(phase Phase, class, err error) error {
	return fmt.Errorf("%s: %w: %w", phase, class, err)
}
