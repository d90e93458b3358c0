// SPDX-License-Identifier: MIT

package engine

import "fmt"

// Phase is a step of Run.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseValidateDimensions
	PhaseBroadcasting
	PhasePlanning
	PhaseScattering
	PhaseComputing
	PhaseGathering
	PhaseDone
	PhaseTerminal
)

var phaseNames = [...]string{
	PhaseStart:              "Start",
	PhaseValidateDimensions: "ValidateDimensions",
	PhaseBroadcasting:       "Broadcasting",
	PhasePlanning:           "Planning",
	PhaseScattering:         "Scattering",
	PhaseComputing:          "Computing",
	PhaseGathering:          "Gathering",
	PhaseDone:               "Done",
	PhaseTerminal:           "Terminal",
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}

	return fmt.Sprintf("Phase(%d)", uint8(p))
}
