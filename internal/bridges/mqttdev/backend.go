package mqttdev

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openaccel/accml-core/internal/infrastructure/mqtt"
	"github.com/openaccel/accml-core/internal/model"
)

// Logger defines the logging interface used by this package.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Broker is the slice of the MQTT client this backend needs.
// *mqtt.Client satisfies it.
type Broker interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// reading is one cached readback.
type reading struct {
	value model.Value
	at    time.Time
}

// Backend is the live machine backend. It implements backend.ReadWriter
// against power converter gateways on the facility MQTT bus.
type Backend struct {
	broker Broker
	topics mqtt.Topics
	qos    byte
	logger Logger

	mu       sync.RWMutex
	readings map[model.DevicePropertyID]reading
}

// New creates a live backend and subscribes to the wildcard readback
// topic. The subscription stays active for the life of the client.
func New(broker Broker, qos byte) (*Backend, error) {
	b := &Backend{
		broker:   broker,
		qos:      qos,
		logger:   noopLogger{},
		readings: make(map[model.DevicePropertyID]reading),
	}

	if err := broker.Subscribe(b.topics.AllDeviceStates(), qos, b.onState); err != nil {
		return nil, fmt.Errorf("subscribing to device states: %w", err)
	}
	return b, nil
}

// SetLogger sets the logger for the backend.
func (b *Backend) SetLogger(logger Logger) {
	b.logger = logger
}

// NaturalViewName implements backend.Reader. Gateways speak the device
// identifier space.
func (b *Backend) NaturalViewName() string {
	return "live"
}

// Set implements backend.ReadWriter. The setpoint is published to the
// device's set topic; delivery beyond the broker is the gateway's
// responsibility.
func (b *Backend) Set(_ context.Context, devID, propID string, value model.Value) error {
	payload, err := model.MarshalValue(value)
	if err != nil {
		return err
	}

	topic := b.topics.DeviceSet(devID, propID)
	if err := b.broker.Publish(topic, payload, b.qos, false); err != nil {
		return fmt.Errorf("publishing setpoint to %s: %w", topic, err)
	}
	b.logger.Debug("setpoint published", "topic", topic, "value", value)
	return nil
}

// Read implements backend.Reader. It serves the last readback the
// gateway published; it never round-trips to the gateway itself.
func (b *Backend) Read(_ context.Context, devID, propID string) (model.Value, error) {
	b.mu.RLock()
	r, ok := b.readings[model.DevicePropertyID{DeviceName: devID, Property: propID}]
	b.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoReading, devID, propID)
	}
	return r.value, nil
}

// Trigger implements backend.Reader. An empty message on the trigger
// topic tells the gateway to start an acquisition; the result arrives
// later on the state topic.
func (b *Backend) Trigger(_ context.Context, devID, propID string) error {
	topic := b.topics.DeviceTrigger(devID, propID)
	if err := b.broker.Publish(topic, nil, b.qos, false); err != nil {
		return fmt.Errorf("publishing trigger to %s: %w", topic, err)
	}
	b.logger.Debug("trigger published", "topic", topic)
	return nil
}

// LastReadingTime reports when the property last published a readback.
// It returns the zero time if none has arrived.
func (b *Backend) LastReadingTime(devID, propID string) time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readings[model.DevicePropertyID{DeviceName: devID, Property: propID}].at
}

// ReadingCount returns how many device properties have reported.
func (b *Backend) ReadingCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.readings)
}

// onState handles one readback message. Malformed topics or payloads
// are dropped after logging.
func (b *Backend) onState(topic string, payload []byte) error {
	devID, propID, ok := b.topics.ParseDeviceState(topic)
	if !ok {
		b.logger.Warn("readback on unparseable topic", "topic", topic)
		return nil
	}

	value, err := model.UnmarshalValue(payload)
	if err != nil {
		b.logger.Warn("readback payload rejected", "topic", topic, "error", err)
		return nil
	}

	b.mu.Lock()
	b.readings[model.DevicePropertyID{DeviceName: devID, Property: propID}] = reading{
		value: value,
		at:    time.Now(),
	}
	b.mu.Unlock()

	b.logger.Debug("readback cached", "dev_id", devID, "prop_id", propID, "value", value)
	return nil
}

func (b *Backend) String() string {
	return fmt.Sprintf("MQTTBackend(readings=%d)", b.ReadingCount())
}
