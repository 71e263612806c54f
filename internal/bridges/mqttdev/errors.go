package mqttdev

import "errors"

var (
	// ErrNoReading indicates no readback has arrived yet for the device
	// property.
	ErrNoReading = errors.New("no reading received")
)
