package sim

import "errors"

// Domain errors for the sim package.
var (
	// ErrCalculationFailed wraps a simulator error raised during a
	// derived-result computation. The state machine stays in the error
	// state until Clear is called.
	ErrCalculationFailed = errors.New("sim: calculation failed")

	// ErrErrorState is returned when an operation is refused because the
	// machine sits in the error state and has not been cleared.
	ErrErrorState = errors.New("sim: machine in error state, clear required")

	// ErrInvalidTransition is returned when an event is not legal in the
	// current calculation state.
	ErrInvalidTransition = errors.New("sim: invalid state transition")

	// ErrUnknownElement is returned when the simulator knows no element
	// with the requested identifier.
	ErrUnknownElement = errors.New("sim: unknown element")

	// ErrUnknownProperty is returned when an element has no such property.
	ErrUnknownProperty = errors.New("sim: unknown property")
)
