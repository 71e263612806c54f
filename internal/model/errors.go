package model

import "errors"

// Domain errors for the model package.
//
// These errors can be checked using errors.Is() for error handling.
var (
	// ErrValueMismatch is returned when two Values of different kinds are
	// combined, e.g. a Scalar subtracted from a Tune.
	ErrValueMismatch = errors.New("model: value kind mismatch")

	// ErrInvalidValue is returned when a JSON payload decodes to no known
	// Value variant.
	ErrInvalidValue = errors.New("model: invalid value")

	// ErrInvalidBehaviour is returned when a behaviour-on-error tag is not
	// one of stop, ignore, roll_back.
	ErrInvalidBehaviour = errors.New("model: invalid behaviour on error")
)
