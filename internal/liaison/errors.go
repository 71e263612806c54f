package liaison

import (
	"errors"
	"fmt"

	"github.com/openaccel/accml-core/internal/model"
)

// Domain errors for the liaison package.
var (
	// ErrNotFound is returned when an identifier is absent from a lookup
	// table. Check with errors.Is; the concrete error is a *NotFoundError
	// carrying diagnostics.
	ErrNotFound = errors.New("liaison: identifier not found")

	// ErrUnknownFamily is returned when a yellow-pages family name is not
	// registered.
	ErrUnknownFamily = errors.New("liaison: unknown family")
)

// NotFoundError reports a failed identifier lookup together with the
// nearby entries the manager does know, for operator diagnosis.
type NotFoundError struct {
	// Lattice is set for a failed forward lookup.
	Lattice *model.LatticeElementPropertyID
	// Device is set for a failed inverse lookup.
	Device *model.DevicePropertyID
	// Candidates lists known forward entries sharing the element name
	// (forward lookups) or known inverse entries sharing the device name
	// (inverse lookups).
	Candidates []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	var id fmt.Stringer
	switch {
	case e.Lattice != nil:
		id = *e.Lattice
	case e.Device != nil:
		id = *e.Device
	default:
		return ErrNotFound.Error()
	}
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%v: %v (no related entries known)", ErrNotFound, id)
	}
	return fmt.Sprintf("%v: %v (known related entries: %v)", ErrNotFound, id, e.Candidates)
}

// Unwrap lets errors.Is match ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
