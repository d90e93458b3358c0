// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"
)

// ErrBadSize indicates a negative row or column count.
var ErrBadSize = errors.New("builder: invalid size")

// Method names used as error prefixes.
const (
	MethodDense    = "Dense"
	MethodIdentity = "Identity"
)

// builderErrorf prefixes err with the builder method that produced it.
func builderErrorf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
