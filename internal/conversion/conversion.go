package conversion

import (
	"fmt"

	"github.com/openaccel/accml-core/internal/model"
)

// Conversion transforms a value between the lattice (physics) space and
// the device space. Forward maps physics -> device, Inverse maps
// device -> physics. Implementations are stateless after construction.
type Conversion interface {
	Forward(v model.Value) (model.Value, error)
	Inverse(v model.Value) (model.Value, error)
}

// Linear applies y = intercept + slope*x.
type Linear struct {
	slope     float64
	intercept float64
}

// NewLinear creates a Linear conversion. A zero slope is rejected because
// it has no inverse.
func NewLinear(slope, intercept float64) (*Linear, error) {
	if slope == 0 {
		return nil, fmt.Errorf("%w: intercept %g", ErrZeroSlope, intercept)
	}
	return &Linear{slope: slope, intercept: intercept}, nil
}

// Forward implements Conversion.
func (l *Linear) Forward(v model.Value) (model.Value, error) {
	x, err := scalar(v)
	if err != nil {
		return nil, err
	}
	return model.Scalar(l.intercept + l.slope*x), nil
}

// Inverse implements Conversion.
func (l *Linear) Inverse(v model.Value) (model.Value, error) {
	y, err := scalar(v)
	if err != nil {
		return nil, err
	}
	return model.Scalar((y - l.intercept) / l.slope), nil
}

// EnergyScaledLinear applies the linear law with intercept and slope each
// scaled by a fixed brho factor:
//
//	forward(x) = intercept*brho + slope*brho*x
//
// Brho relates magnetic field integral to particle momentum and is a
// function of beam energy. It is fixed at construction on the assumption
// that the energy is constant for the lifetime of this object; rescaling
// requires a new instance.
type EnergyScaledLinear struct {
	slope     float64
	intercept float64
	brho      float64
}

// NewEnergyScaledLinear creates an EnergyScaledLinear conversion. The
// effective slope slope*brho must be non-zero.
func NewEnergyScaledLinear(slope, intercept, brho float64) (*EnergyScaledLinear, error) {
	if slope*brho == 0 {
		return nil, fmt.Errorf("%w: slope %g, brho %g", ErrZeroSlope, slope, brho)
	}
	return &EnergyScaledLinear{slope: slope, intercept: intercept, brho: brho}, nil
}

// Forward implements Conversion.
func (e *EnergyScaledLinear) Forward(v model.Value) (model.Value, error) {
	x, err := scalar(v)
	if err != nil {
		return nil, err
	}
	return model.Scalar(e.intercept*e.brho + e.slope*e.brho*x), nil
}

// Inverse implements Conversion.
func (e *EnergyScaledLinear) Inverse(v model.Value) (model.Value, error) {
	y, err := scalar(v)
	if err != nil {
		return nil, err
	}
	return model.Scalar((y - e.intercept*e.brho) / (e.slope * e.brho)), nil
}

// PerAxis lifts a scalar conversion to Tune values, applying it to the
// horizontal and vertical planes independently.
type PerAxis struct {
	inner Conversion
}

// NewPerAxis wraps a scalar conversion for componentwise application.
func NewPerAxis(inner Conversion) *PerAxis {
	return &PerAxis{inner: inner}
}

// Forward implements Conversion.
func (p *PerAxis) Forward(v model.Value) (model.Value, error) {
	return p.apply(v, p.inner.Forward)
}

// Inverse implements Conversion.
func (p *PerAxis) Inverse(v model.Value) (model.Value, error) {
	return p.apply(v, p.inner.Inverse)
}

func (p *PerAxis) apply(v model.Value, f func(model.Value) (model.Value, error)) (model.Value, error) {
	t, ok := v.(model.Tune)
	if !ok {
		return nil, fmt.Errorf("%w: PerAxis conversion got %T", model.ErrValueMismatch, v)
	}
	x, err := f(model.Scalar(t.X))
	if err != nil {
		return nil, err
	}
	y, err := f(model.Scalar(t.Y))
	if err != nil {
		return nil, err
	}
	return model.Tune{X: float64(x.(model.Scalar)), Y: float64(y.(model.Scalar))}, nil
}

// scalar extracts the float behind a Scalar value.
func scalar(v model.Value) (float64, error) {
	s, ok := v.(model.Scalar)
	if !ok {
		return 0, fmt.Errorf("%w: expected Scalar, got %T", model.ErrValueMismatch, v)
	}
	return float64(s), nil
}
