package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/openaccel/accml-core/internal/model"
)

// MainStrengthProperty is the element property every ring magnet carries.
const MainStrengthProperty = "main_strength"

// RingElement describes one magnet in the toy ring model.
type RingElement struct {
	// Name is the lattice element identifier.
	Name string
	// Strength is the current integrated strength.
	Strength float64
	// Reference is the design strength the tune response is linearised
	// around.
	Reference float64
	// TuneResponse is the tune shift per unit strength deviation, per
	// plane.
	TuneResponse model.Tune
}

// Ring is a deterministic in-memory accelerator simulator with a linear
// tune response: tune = base + sum over elements of
// response*(strength - reference). It stands in for a real optics code
// so the stack can run and be tested end to end.
//
// All methods are safe for concurrent use.
type Ring struct {
	mu       sync.RWMutex
	baseTune model.Tune
	elements map[string]*RingElement

	// failTune, when set, makes GetTune fail. Used to exercise the
	// backend's error path.
	failTune error
}

// NewRing creates a ring with the given design tune.
func NewRing(baseTune model.Tune) *Ring {
	return &Ring{
		baseTune: baseTune,
		elements: make(map[string]*RingElement),
	}
}

// AddElement registers a magnet. A later registration under the same
// name replaces the earlier one.
func (r *Ring) AddElement(elem RingElement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := elem
	r.elements[elem.Name] = &e
}

// FailTuneWith makes the next GetTune calls fail with err; nil restores
// normal operation.
func (r *Ring) FailTuneWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failTune = err
}

// Get implements Simulator.
func (r *Ring) Get(elementID string) (Element, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.elements[elementID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, elementID)
	}
	return &ringElementProxy{ring: r, name: elementID}, nil
}

// GetTune implements Simulator.
func (r *Ring) GetTune() (model.Tune, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failTune != nil {
		return model.Tune{}, r.failTune
	}

	tune := r.baseTune
	for _, e := range r.elements {
		dk := e.Strength - e.Reference
		tune.X += e.TuneResponse.X * dk
		tune.Y += e.TuneResponse.Y * dk
	}
	return tune, nil
}

// ringElementProxy adapts one ring magnet to the Element interface.
type ringElementProxy struct {
	ring *Ring
	name string
}

// Name implements Element.
func (p *ringElementProxy) Name() string {
	return p.name
}

// Peek implements Element.
func (p *ringElementProxy) Peek(propID string) (model.Value, error) {
	p.ring.mu.RLock()
	defer p.ring.mu.RUnlock()

	elem, ok := p.ring.elements[p.name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, p.name)
	}
	if propID != MainStrengthProperty {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownProperty, p.name, propID)
	}
	return model.Scalar(elem.Strength), nil
}

// Update implements Element.
func (p *ringElementProxy) Update(_ context.Context, propID string, value model.Value) error {
	scalar, ok := value.(model.Scalar)
	if !ok {
		return fmt.Errorf("%w: %s expects a scalar, got %T", model.ErrValueMismatch, propID, value)
	}

	p.ring.mu.Lock()
	defer p.ring.mu.Unlock()

	elem, ok := p.ring.elements[p.name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownElement, p.name)
	}
	if propID != MainStrengthProperty {
		return fmt.Errorf("%w: %s/%s", ErrUnknownProperty, p.name, propID)
	}
	elem.Strength = float64(scalar)
	return nil
}
