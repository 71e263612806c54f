package liaison

import (
	"github.com/openaccel/accml-core/internal/model"
)

// Logger defines the logging interface used by this package.
// This allows different logging implementations to be used.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Manager is the bidirectional identifier lookup table between the
// lattice space and the device space.
//
// The tables are immutable after construction; all methods are safe for
// concurrent use.
type Manager struct {
	forward map[model.LatticeElementPropertyID]model.DevicePropertyID
	inverse map[model.DevicePropertyID][]model.LatticeElementPropertyID
	logger  Logger
}

// NewManager creates a Manager over the given lookup tables. The maps are
// copied; later mutation of the arguments does not affect the manager.
func NewManager(
	forward map[model.LatticeElementPropertyID]model.DevicePropertyID,
	inverse map[model.DevicePropertyID][]model.LatticeElementPropertyID,
) *Manager {
	fwd := make(map[model.LatticeElementPropertyID]model.DevicePropertyID, len(forward))
	for k, v := range forward {
		fwd[k] = v
	}
	inv := make(map[model.DevicePropertyID][]model.LatticeElementPropertyID, len(inverse))
	for k, v := range inverse {
		targets := make([]model.LatticeElementPropertyID, len(v))
		copy(targets, v)
		inv[k] = targets
	}
	return &Manager{forward: fwd, inverse: inv, logger: noopLogger{}}
}

// SetLogger sets the logger for the manager.
func (m *Manager) SetLogger(logger Logger) {
	m.logger = logger
}

// Forward resolves a lattice-element-property to its single device
// target. The lookup is exact; absence is a *NotFoundError wrapping
// ErrNotFound, listing the known entries for the same element name.
func (m *Manager) Forward(id model.LatticeElementPropertyID) (model.DevicePropertyID, error) {
	dev, ok := m.forward[id]
	if !ok {
		err := &NotFoundError{Lattice: &id, Candidates: m.forwardCandidates(id.ElementName)}
		m.logger.Error("liaison forward lookup failed", "id", id.String(), "candidates", err.Candidates)
		return model.DevicePropertyID{}, err
	}
	return dev, nil
}

// Inverse resolves a device-property to the lattice targets it drives.
// One device may drive several lattice elements, so the result is a
// sequence. A wholly unknown device-property is a *NotFoundError wrapping
// ErrNotFound, listing the known entries for the same device name.
func (m *Manager) Inverse(id model.DevicePropertyID) ([]model.LatticeElementPropertyID, error) {
	targets, ok := m.inverse[id]
	if !ok {
		err := &NotFoundError{Device: &id, Candidates: m.inverseCandidates(id.DeviceName)}
		m.logger.Error("liaison inverse lookup failed", "id", id.String(), "candidates", err.Candidates)
		return nil, err
	}
	out := make([]model.LatticeElementPropertyID, len(targets))
	copy(out, targets)
	return out, nil
}

// forwardCandidates lists forward entries sharing the element name.
func (m *Manager) forwardCandidates(elementName string) []string {
	var candidates []string
	for k := range m.forward {
		if k.ElementName == elementName {
			candidates = append(candidates, k.String())
		}
	}
	return candidates
}

// inverseCandidates lists inverse entries sharing the device name.
func (m *Manager) inverseCandidates(deviceName string) []string {
	var candidates []string
	for k := range m.inverse {
		if k.DeviceName == deviceName {
			candidates = append(candidates, k.String())
		}
	}
	return candidates
}
