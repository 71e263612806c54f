package rewriter

import (
	"context"
	"fmt"

	"github.com/openaccel/accml-core/internal/model"
)

// designBackend is the slice of backend.ReadWriter the facade wraps.
// Declared locally to avoid an import cycle with the backend package's
// consumers.
type designBackend interface {
	NaturalViewName() string
	Trigger(ctx context.Context, id, propID string) error
	Read(ctx context.Context, id, propID string) (model.Value, error)
	Set(ctx context.Context, id, propID string, value model.Value) error
}

// DeviceFacade exposes a design-space backend in the device identifier
// space. Every operation is inverse-rewritten through the liaison tables
// before it reaches the wrapped backend, and read values are converted
// forward so callers see device units.
//
// With the facade in place, the rest of the stack addresses any backend,
// simulated or live, by device name.
type DeviceFacade struct {
	inner designBackend
	rw    *Rewriter
}

// NewDeviceFacade wraps a design-space backend.
func NewDeviceFacade(inner designBackend, rw *Rewriter) *DeviceFacade {
	return &DeviceFacade{inner: inner, rw: rw}
}

// NaturalViewName implements backend.Reader. The wrapped backend's name
// is kept: the facade changes the address space, not the machine.
func (f *DeviceFacade) NaturalViewName() string {
	return f.inner.NaturalViewName()
}

// Set implements backend.ReadWriter. One device may drive several
// lattice targets; the set is applied to all of them and stops at the
// first failure.
func (f *DeviceFacade) Set(ctx context.Context, devID, propID string, value model.Value) error {
	latCmds, err := f.rw.Inverse(model.Command{ID: devID, Property: propID, Value: value, OnError: model.Stop})
	if err != nil {
		return err
	}
	for _, cmd := range latCmds {
		if err := f.inner.Set(ctx, cmd.ID, cmd.Property, cmd.Value); err != nil {
			return fmt.Errorf("applying %s/%s for device %s/%s: %w", cmd.ID, cmd.Property, devID, propID, err)
		}
	}
	return nil
}

// Read implements backend.Reader. The device's lattice targets hold one
// consistent value each; the first target is read and converted forward
// into device units.
func (f *DeviceFacade) Read(ctx context.Context, devID, propID string) (model.Value, error) {
	devRead := model.ReadCommand{ID: devID, Property: propID}
	latReads, err := f.rw.InverseRead(devRead)
	if err != nil {
		return nil, err
	}
	if len(latReads) == 0 {
		return nil, fmt.Errorf("device %s/%s drives no lattice targets", devID, propID)
	}

	latValue, err := f.inner.Read(ctx, latReads[0].ID, latReads[0].Property)
	if err != nil {
		return nil, err
	}

	return f.rw.ForwardValue(latReads[0], devRead, latValue)
}

// Trigger implements backend.Reader. Each lattice target the device
// drives is triggered.
func (f *DeviceFacade) Trigger(ctx context.Context, devID, propID string) error {
	latReads, err := f.rw.InverseRead(model.ReadCommand{ID: devID, Property: propID})
	if err != nil {
		return err
	}
	for _, lr := range latReads {
		if err := f.inner.Trigger(ctx, lr.ID, lr.Property); err != nil {
			return err
		}
	}
	return nil
}
