package translator

import (
	"github.com/openaccel/accml-core/internal/conversion"
	"github.com/openaccel/accml-core/internal/model"
)

// Logger defines the logging interface used by this package.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Service is the conversion registry. It is immutable after construction
// and safe for concurrent use.
type Service struct {
	lut    map[model.ConversionID]conversion.Conversion
	logger Logger
}

// NewService creates a Service over the given lookup table. The map is
// copied; later mutation of the argument does not affect the service.
func NewService(lut map[model.ConversionID]conversion.Conversion) *Service {
	table := make(map[model.ConversionID]conversion.Conversion, len(lut))
	for k, v := range lut {
		table[k] = v
	}
	return &Service{lut: table, logger: noopLogger{}}
}

// SetLogger sets the logger for the service.
func (s *Service) SetLogger(logger Logger) {
	s.logger = logger
}

// Get returns the conversion registered for the exact identifier pair.
// Absence is a *NotFoundError wrapping ErrNotFound; the error carries the
// registry subsets for the pair's element and device names, which are
// also logged for the operator.
func (s *Service) Get(id model.ConversionID) (conversion.Conversion, error) {
	conv, ok := s.lut[id]
	if !ok {
		err := &NotFoundError{
			ID:                id,
			ForLatticeElement: s.ForLatticeElement(id.Lattice.ElementName),
			ForDevice:         s.ForDevice(id.Device.DeviceName),
		}
		s.logger.Error("conversion lookup failed", "id", id.String())
		s.logger.Warn("known conversions for device", "device", id.Device.DeviceName, "entries", len(err.ForDevice))
		s.logger.Warn("known conversions for lattice element", "element", id.Lattice.ElementName, "entries", len(err.ForLatticeElement))
		return nil, err
	}
	return conv, nil
}

// ForLatticeElement returns the registered pairs whose lattice side has
// the given element name. Diagnostic use only.
func (s *Service) ForLatticeElement(elementName string) []model.ConversionID {
	var ids []model.ConversionID
	for k := range s.lut {
		if k.Lattice.ElementName == elementName {
			ids = append(ids, k)
		}
	}
	return ids
}

// ForDevice returns the registered pairs whose device side has the given
// device name. Diagnostic use only.
func (s *Service) ForDevice(deviceName string) []model.ConversionID {
	var ids []model.ConversionID
	for k := range s.lut {
		if k.Device.DeviceName == deviceName {
			ids = append(ids, k)
		}
	}
	return ids
}

// Len returns the number of registered conversions.
func (s *Service) Len() int {
	return len(s.lut)
}
