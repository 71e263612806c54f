package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/openaccel/accml-core/internal/model"
)

// Logger defines the logging interface used by this package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}

// tuneDeviceID is the pseudo-device whose reads deliver derived results.
const tuneDeviceID = "tune"

// transversalProperty is the only tune property served today.
const transversalProperty = "transversal"

// Backend serves reads and sets against an accelerator simulator,
// guarding derived-result computation with the calculation state machine.
//
// It implements backend.ReadWriter. The zero value is not usable; create
// instances with NewBackend.
type Backend struct {
	acc    Simulator
	name   string
	logger Logger

	// mu serialises state transitions, Set, and the calculate-or-fetch
	// path of Tune. Plain element reads do not take it.
	mu    sync.Mutex
	state State
	tune  *model.Tune
}

// NewBackend creates a simulation backend over the given simulator.
func NewBackend(acc Simulator, name string) *Backend {
	return &Backend{
		acc:    acc,
		name:   name,
		logger: noopLogger{},
		state:  StatePending,
	}
}

// SetLogger sets the logger for the backend.
func (b *Backend) SetLogger(logger Logger) {
	b.logger = logger
}

// NaturalViewName implements backend.Reader. The simulator speaks the
// design (lattice) identifier space.
func (b *Backend) NaturalViewName() string {
	return "design"
}

// State returns the current calculation state.
func (b *Backend) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Trigger implements backend.Reader. The simulator computes on demand,
// so triggering is a no-op.
func (b *Backend) Trigger(_ context.Context, devID, propID string) error {
	b.logger.Debug("no trigger needed", "backend", b.name, "dev_id", devID, "prop_id", propID)
	return nil
}

// Read implements backend.Reader. Reads addressed to the tune
// pseudo-device deliver the derived result, computing it if required;
// anything else peeks at the element without taking the calculation lock.
func (b *Backend) Read(ctx context.Context, devID, propID string) (model.Value, error) {
	if devID == tuneDeviceID {
		if propID != transversalProperty {
			return nil, fmt.Errorf("%w: tune property %q (only %q is served)", ErrUnknownProperty, propID, transversalProperty)
		}
		tune, err := b.Tune(ctx)
		if err != nil {
			return nil, err
		}
		return tune, nil
	}

	elem, err := b.acc.Get(devID)
	if err != nil {
		return nil, err
	}
	return elem.Peek(propID)
}

// Set implements backend.ReadWriter. It raises the changed event before
// touching the simulator, so a finished calculation is invalidated and a
// concurrent calculation can never interleave with the mutation. A
// machine in the error state refuses sets until cleared.
func (b *Backend) Set(ctx context.Context, devID, propID string, value model.Value) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateError {
		return fmt.Errorf("%w: refusing set of %s/%s", ErrErrorState, devID, propID)
	}

	next, err := transition(b.state, EventChanged)
	if err != nil {
		return err
	}
	b.state = next
	// Exit action of changed: stored results are stale now.
	b.tune = nil

	elem, err := b.acc.Get(devID)
	if err != nil {
		return err
	}
	return elem.Update(ctx, propID, value)
}

// Tune returns the machine tune, computing it when the machine state has
// changed since the last calculation. A previous failure parks the
// machine in the error state; Tune then fails with ErrErrorState until
// Clear is called. There is no silent recovery.
func (b *Backend) Tune(_ context.Context) (model.Tune, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateFinished:
		// Valid cached result.
	case StatePending:
		if err := b.calculateTune(); err != nil {
			return model.Tune{}, err
		}
	case StateError:
		return model.Tune{}, fmt.Errorf("%w: tune unavailable", ErrErrorState)
	default:
		// Executing is unobservable while mu is held.
		return model.Tune{}, fmt.Errorf("%w: tune requested in state %v", ErrInvalidTransition, b.state)
	}

	if b.tune == nil {
		return model.Tune{}, fmt.Errorf("%w: finished without stored tune", ErrCalculationFailed)
	}
	return *b.tune, nil
}

// calculateTune runs one computation. Callers hold mu and have checked
// the state is pending.
func (b *Backend) calculateTune() error {
	b.logger.Debug("calculating tune", "backend", b.name)

	next, err := transition(b.state, EventCalculate)
	if err != nil {
		return err
	}
	b.state = next
	// Entry action of calculate: drop any partial result.
	b.tune = nil

	tune, err := b.acc.GetTune()
	if err != nil {
		b.state, _ = transition(b.state, EventError)
		return fmt.Errorf("%w: %w", ErrCalculationFailed, err)
	}

	b.state, _ = transition(b.state, EventFinished)
	b.tune = &tune
	b.logger.Info("calculated tune", "backend", b.name, "x", tune.X, "y", tune.Y)
	return nil
}

// Clear recovers the machine from the error state. It is the only way
// out of error; calling it in any other state fails with
// ErrInvalidTransition.
func (b *Backend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := transition(b.state, EventClear)
	if err != nil {
		return err
	}
	b.state = next
	b.logger.Info("calculation error cleared", "backend", b.name)
	return nil
}

func (b *Backend) String() string {
	return fmt.Sprintf("SimulatorBackend(name=%s)", b.name)
}
