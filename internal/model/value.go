package model

import (
	"encoding/json"
	"fmt"
)

// Value is a reading or setpoint travelling through a backend.
//
// It is a closed set of variants rather than an open interface: the delta
// backend does arithmetic on whatever a backend returns, so every variant
// must support Add and Sub against its own kind. Combining different kinds
// fails with ErrValueMismatch.
type Value interface {
	// Add returns the sum of the receiver and other.
	Add(other Value) (Value, error)

	// Sub returns the receiver minus other.
	Sub(other Value) (Value, error)
}

// Scalar is a plain numeric value, the common case for setpoints and
// readbacks (currents, strengths, kick angles).
type Scalar float64

// Add implements Value.
func (s Scalar) Add(other Value) (Value, error) {
	o, ok := other.(Scalar)
	if !ok {
		return nil, fmt.Errorf("%w: Scalar + %T", ErrValueMismatch, other)
	}
	return s + o, nil
}

// Sub implements Value.
func (s Scalar) Sub(other Value) (Value, error) {
	o, ok := other.(Scalar)
	if !ok {
		return nil, fmt.Errorf("%w: Scalar - %T", ErrValueMismatch, other)
	}
	return s - o, nil
}

func (s Scalar) String() string {
	return fmt.Sprintf("%g", float64(s))
}

// Tune is the two-component optics summary delivered by the accelerator
// simulator: fractional oscillation numbers per turn in both planes.
type Tune struct {
	// X is the horizontal plane.
	X float64 `json:"x"`
	// Y is the vertical plane.
	Y float64 `json:"y"`
}

// Add implements Value. Addition is componentwise.
func (t Tune) Add(other Value) (Value, error) {
	o, ok := other.(Tune)
	if !ok {
		return nil, fmt.Errorf("%w: Tune + %T", ErrValueMismatch, other)
	}
	return Tune{X: t.X + o.X, Y: t.Y + o.Y}, nil
}

// Sub implements Value. Subtraction is componentwise.
func (t Tune) Sub(other Value) (Value, error) {
	o, ok := other.(Tune)
	if !ok {
		return nil, fmt.Errorf("%w: Tune - %T", ErrValueMismatch, other)
	}
	return Tune{X: t.X - o.X, Y: t.Y - o.Y}, nil
}

// Neg returns the tune with both components negated.
func (t Tune) Neg() Tune {
	return Tune{X: -t.X, Y: -t.Y}
}

func (t Tune) String() string {
	return fmt.Sprintf("Tune(x=%.4f, y=%.4f)", t.X, t.Y)
}

// MarshalValue encodes a Value for a JSON payload: Scalar as a bare
// number, Tune as an {"x","y"} object.
func MarshalValue(v Value) (json.RawMessage, error) {
	switch val := v.(type) {
	case Scalar:
		return json.Marshal(float64(val))
	case Tune:
		return json.Marshal(val)
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrInvalidValue)
	default:
		return nil, fmt.Errorf("%w: unknown kind %T", ErrInvalidValue, v)
	}
}

// UnmarshalValue decodes a JSON payload into a Value. A bare number
// becomes a Scalar; an object with "x" and "y" becomes a Tune.
func UnmarshalValue(data json.RawMessage) (Value, error) {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		return Scalar(f), nil
	}

	var t Tune
	if err := json.Unmarshal(data, &t); err == nil {
		return t, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrInvalidValue, string(data))
}
