// Package collective provides the three synchronizing collectives the
// distributed multiply needs, behind one Channel interface:
//
//   - Broadcast: root's payload is delivered, as a private copy, to everyone.
//   - Scatter:   root's payload is cut along a partition.Plan; participant i
//     receives plan[i].Count elements starting at plan[i].Offset.
//   - Gather:    the inverse of Scatter; root receives every participant's
//     block laid out at its plan offset.
//
// Every call is a rendezvous, not an RPC: no participant returns from a
// collective until all Size() participants have entered the same call with
// the same root and plan. Disagreement is reported to everyone as
// ErrMismatch.
//
// Failures are fatal. When any participant fails inside a collective (its
// context is cancelled, a payload has the wrong length, a connection drops)
// the channel is broken: the failing participant gets its own error and
// every other participant, now or in any later call, gets an error wrapping
// ErrAborted and the original cause. There is no retry and no partial
// result.
//
// Implementations:
//
//   - Group / Member: participants are goroutines in one process.
//   - Network: participants are OS processes connected in a TCP star around
//     rank 0; every collective is one enter/release round trip with the hub.
//   - Counter: wraps any Channel and counts calls per Kind.
//
// Payloads are row-major float64 buffers. Results are always freshly
// allocated; no participant ever aliases another's memory.
package collective
