package sim

import "fmt"

// State is a calculation-lifecycle state of the simulated machine.
type State int

// Calculation states.
const (
	// StatePending: the machine state has changed since the last
	// calculation (or none ran yet); derived results are stale.
	StatePending State = iota
	// StateExecuting: a calculation is in flight.
	StateExecuting
	// StateFinished: derived results are valid for the current state.
	StateFinished
	// StateError: the last calculation failed; Clear is required.
	StateError
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateExecuting:
		return "executing"
	case StateFinished:
		return "finished"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event drives the calculation state machine.
type Event int

// State machine events.
const (
	// EventCalculate starts a derived-result computation.
	EventCalculate Event = iota
	// EventFinished marks a computation as successfully completed.
	EventFinished
	// EventChanged records that a Set mutated the machine state.
	EventChanged
	// EventError records a failed computation.
	EventError
	// EventClear recovers from the error state.
	EventClear
)

// String returns the event's name.
func (e Event) String() string {
	switch e {
	case EventCalculate:
		return "calculate"
	case EventFinished:
		return "finished"
	case EventChanged:
		return "changed"
	case EventError:
		return "error"
	case EventClear:
		return "clear"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// transition returns the state reached by raising event in state.
// Illegal combinations fail with ErrInvalidTransition.
func transition(state State, event Event) (State, error) {
	switch event {
	case EventCalculate:
		if state == StatePending {
			return StateExecuting, nil
		}
	case EventFinished:
		if state == StateExecuting {
			return StateFinished, nil
		}
	case EventChanged:
		// Repeated sets while pending stay pending; a set after a
		// finished calculation invalidates it.
		if state == StatePending || state == StateFinished {
			return StatePending, nil
		}
	case EventClear:
		if state == StateError {
			return StatePending, nil
		}
	case EventError:
		// Reachable from any state.
		return StateError, nil
	}
	return state, fmt.Errorf("%w: %v in state %v", ErrInvalidTransition, event, state)
}
