// SPDX-License-Identifier: MIT

package config

import "errors"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")
