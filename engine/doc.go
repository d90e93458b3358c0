// Package engine orchestrates one distributed product C = A × B over a
// collective.Channel.
//
// Every participant calls Run with the same Dims; the coordinator (rank 0)
// also passes A and B. The run proceeds in lock-step phases:
//
//	Start → ValidateDimensions → Broadcasting → Planning → Scattering →
//	Computing → Gathering → Done → Terminal
//
// Phase by phase:
//   - ValidateDimensions: each participant checks Dims on its own. Dims are
//     public parameters, so all participants reach the same decision and a
//     mismatch fails everyone before a single collective is entered.
//   - Broadcasting: B is sent in full to every participant.
//   - Planning: partition.New(A rows, Size) is computed locally everywhere,
//     then scaled to A's and C's row widths.
//   - Scattering / Computing / Gathering: each participant receives its band
//     of A, multiplies it with kernel.Multiply, and the coordinator gathers
//     C in original row order.
//
// The coordinator's Report carries C and the elapsed wall-clock time of the
// broadcast-through-gather section. Workers get a Report with a nil C.
//
// Multiply runs a whole in-process group and is the convenient entry point
// for library users; Run is the building block for multi-process setups
// over collective.Network.
//
// Failures are fatal and not retried. A participant that fails outside a
// collective aborts the channel, so its peers return promptly with an
// error wrapping ErrCollective and collective.ErrAborted.
package engine
