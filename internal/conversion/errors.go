package conversion

import "errors"

// Domain errors for the conversion package.
var (
	// ErrZeroSlope is returned when a conversion is constructed with a
	// slope (or effective slope after brho scaling) of zero, which would
	// make the inverse divide by zero.
	ErrZeroSlope = errors.New("conversion: slope must be non-zero")
)
