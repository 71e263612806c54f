package inventory

import "errors"

// Domain errors for the inventory package.
var (
	// ErrDuplicateDevice is returned by Build when two magnet records
	// share a device identifier.
	ErrDuplicateDevice = errors.New("inventory: duplicate device identifier")

	// ErrUnsupportedConversion is returned when a magnet record declares
	// a conversion type other than linear.
	ErrUnsupportedConversion = errors.New("inventory: unsupported conversion type")

	// ErrUnknownFormat is returned by FileRepository for file extensions
	// it cannot parse.
	ErrUnknownFormat = errors.New("inventory: unknown file format")
)
