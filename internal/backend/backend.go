package backend

import (
	"context"

	"github.com/openaccel/accml-core/internal/model"
)

// Reader is a read-only machine backend.
type Reader interface {
	// NaturalViewName names the identifier space this backend speaks
	// natively, e.g. "design" or "live".
	NaturalViewName() string

	// Trigger starts whatever acquisition or calculation the device needs
	// before a read. It may suspend while the backend round-trips.
	Trigger(ctx context.Context, devID, propID string) error

	// Read returns the current value of a device property. It may suspend
	// while the backend round-trips.
	Read(ctx context.Context, devID, propID string) (model.Value, error)
}

// ReadWriter is a backend that also accepts setpoints.
type ReadWriter interface {
	Reader

	// Set writes a device property. It may suspend while the backend
	// round-trips.
	Set(ctx context.Context, devID, propID string, value model.Value) error
}

// Filter normalises a value before the delta proxy does arithmetic on it.
// Returning (nil, nil) marks the value as unusable, which the proxy
// treats as "no reference".
type Filter interface {
	Process(v model.Value) (model.Value, error)
}

// NoopFilter is the identity Filter.
type NoopFilter struct{}

// Process implements Filter.
func (NoopFilter) Process(v model.Value) (model.Value, error) {
	return v, nil
}
