package sim

import (
	"context"

	"github.com/openaccel/accml-core/internal/model"
)

// Simulator is the physics oracle the backend drives. Implementations
// wrap an optics code (or, for Ring, a toy linear model); the backend
// treats them as opaque.
type Simulator interface {
	// Get returns a proxy for the named lattice element.
	Get(elementID string) (Element, error)

	// GetTune derives the machine tune from the current state. It is only
	// invoked under the backend's calculation lock.
	GetTune() (model.Tune, error)
}

// Element is a proxy for one lattice element inside the simulator.
type Element interface {
	// Name returns the element's identifier.
	Name() string

	// Peek reads a property without triggering any computation.
	Peek(propID string) (model.Value, error)

	// Update mutates a property of the element.
	Update(ctx context.Context, propID string, value model.Value) error
}
