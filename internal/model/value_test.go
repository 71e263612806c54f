package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestScalarArithmetic(t *testing.T) {
	sum, err := Scalar(10).Add(Scalar(5))
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if sum != Scalar(15) {
		t.Errorf("Add = %v, want 15", sum)
	}

	diff, err := Scalar(10).Sub(Scalar(5))
	if err != nil {
		t.Fatalf("Sub returned error: %v", err)
	}
	if diff != Scalar(5) {
		t.Errorf("Sub = %v, want 5", diff)
	}
}

func TestScalarKindMismatch(t *testing.T) {
	if _, err := Scalar(1).Add(Tune{X: 1, Y: 2}); !errors.Is(err, ErrValueMismatch) {
		t.Errorf("Scalar + Tune error = %v, want ErrValueMismatch", err)
	}
	if _, err := Scalar(1).Sub(Tune{}); !errors.Is(err, ErrValueMismatch) {
		t.Errorf("Scalar - Tune error = %v, want ErrValueMismatch", err)
	}
}

func TestTuneArithmetic(t *testing.T) {
	a := Tune{X: 0.31, Y: 0.27}
	b := Tune{X: 0.01, Y: 0.02}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub returned error: %v", err)
	}
	got := diff.(Tune)
	if math.Abs(got.X-0.30) > 1e-12 || math.Abs(got.Y-0.25) > 1e-12 {
		t.Errorf("Sub = %+v, want {0.30 0.25}", got)
	}

	if _, err := a.Add(Scalar(1)); !errors.Is(err, ErrValueMismatch) {
		t.Errorf("Tune + Scalar error = %v, want ErrValueMismatch", err)
	}

	neg := a.Neg()
	if neg.X != -a.X || neg.Y != -a.Y {
		t.Errorf("Neg = %+v", neg)
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{"scalar", Scalar(42.5)},
		{"tune", Tune{X: 0.31, Y: 0.27}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := MarshalValue(tt.value)
			if err != nil {
				t.Fatalf("MarshalValue: %v", err)
			}
			back, err := UnmarshalValue(raw)
			if err != nil {
				t.Fatalf("UnmarshalValue: %v", err)
			}
			if back != tt.value {
				t.Errorf("round trip = %v, want %v", back, tt.value)
			}
		})
	}
}

func TestUnmarshalValueRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalValue(json.RawMessage(`"nope"`)); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
}
