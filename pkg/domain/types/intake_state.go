package types

import "fmt"

// IntakeState represents the current step of a multi-turn intake session
type IntakeState string

const (
	// IntakeStateInitial is the state right after photo acceptance,
	// before the resolution decision picks an entry branch
	IntakeStateInitial IntakeState = "initial"

	// IntakeStateAwaitingName waits for a name for a new stone
	IntakeStateAwaitingName IntakeState = "awaiting_name"

	// IntakeStateAwaitingDescription waits for an optional description
	IntakeStateAwaitingDescription IntakeState = "awaiting_description"

	// IntakeStateAwaitingLocation waits for coordinates, a postal code,
	// or a skip signal
	IntakeStateAwaitingLocation IntakeState = "awaiting_location"

	// IntakeStateDone is terminal; the session is no longer re-entrant
	IntakeStateDone IntakeState = "done"
)

// AllIntakeStates returns all valid intake states
func AllIntakeStates() []IntakeState {
	return []IntakeState{
		IntakeStateInitial,
		IntakeStateAwaitingName,
		IntakeStateAwaitingDescription,
		IntakeStateAwaitingLocation,
		IntakeStateDone,
	}
}

// IsValid checks if the intake state is valid
func (s IntakeState) IsValid() bool {
	switch s {
	case IntakeStateInitial,
		IntakeStateAwaitingName,
		IntakeStateAwaitingDescription,
		IntakeStateAwaitingLocation,
		IntakeStateDone:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the state accepts no further input
func (s IntakeState) IsTerminal() bool {
	return s == IntakeStateDone
}

// String returns the string representation of the intake state
func (s IntakeState) String() string {
	return string(s)
}

// ParseIntakeState parses a string into an IntakeState
func ParseIntakeState(s string) (IntakeState, error) {
	state := IntakeState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid intake state: %s", s)
	}
	return state, nil
}
