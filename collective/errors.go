// SPDX-License-Identifier: MIT

package collective

import "errors"

var (
	// ErrAborted is wrapped into every error returned after the channel broke.
	ErrAborted = errors.New("collective: aborted")

	// ErrMismatch signals participants entered different collectives, or the
	// same collective with a different root or plan.
	ErrMismatch = errors.New("collective: participants disagree on the call")

	// ErrPayloadLength signals a payload whose length does not match the plan.
	ErrPayloadLength = errors.New("collective: payload length does not match plan")

	// ErrBadRoot signals a root rank outside [0, Size()).
	ErrBadRoot = errors.New("collective: root out of range")

	// ErrBadPlan signals a plan that does not have one contiguous block per participant.
	ErrBadPlan = errors.New("collective: invalid plan")

	// ErrBadRank signals a rank or size that cannot form a group.
	ErrBadRank = errors.New("collective: invalid rank or size")

	// ErrClosed is returned by calls made after Close.
	ErrClosed = errors.New("collective: channel closed")
)
