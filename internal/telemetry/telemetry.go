package telemetry

import (
	"context"
	"time"

	"github.com/openaccel/accml-core/internal/backend"
	"github.com/openaccel/accml-core/internal/model"
)

// Writer receives telemetry points. *influxdb.Client satisfies it.
type Writer interface {
	WriteOperationMetric(op, devID, property string, duration time.Duration, success bool)
	WriteValueMetric(devID, property string, value float64)
}

// Backend wraps a backend.ReadWriter and records every operation to a
// Writer. A nil Writer disables recording entirely.
type Backend struct {
	inner  backend.ReadWriter
	writer Writer
}

// Wrap decorates inner with telemetry recording. writer may be nil, in
// which case operations pass through unrecorded.
func Wrap(inner backend.ReadWriter, writer Writer) *Backend {
	return &Backend{inner: inner, writer: writer}
}

// NaturalViewName implements backend.Reader.
func (b *Backend) NaturalViewName() string {
	return b.inner.NaturalViewName()
}

// Trigger implements backend.Reader.
func (b *Backend) Trigger(ctx context.Context, devID, propID string) error {
	start := time.Now()
	err := b.inner.Trigger(ctx, devID, propID)
	b.record("trigger", devID, propID, start, err)
	return err
}

// Read implements backend.Reader. Scalar results are additionally
// recorded as value points.
func (b *Backend) Read(ctx context.Context, devID, propID string) (model.Value, error) {
	start := time.Now()
	value, err := b.inner.Read(ctx, devID, propID)
	b.record("read", devID, propID, start, err)
	if err == nil {
		b.recordValue(devID, propID, value)
	}
	return value, err
}

// Set implements backend.ReadWriter. Scalar setpoints are additionally
// recorded as value points.
func (b *Backend) Set(ctx context.Context, devID, propID string, value model.Value) error {
	start := time.Now()
	err := b.inner.Set(ctx, devID, propID, value)
	b.record("set", devID, propID, start, err)
	if err == nil {
		b.recordValue(devID, propID, value)
	}
	return err
}

func (b *Backend) record(op, devID, propID string, start time.Time, err error) {
	if b.writer == nil {
		return
	}
	b.writer.WriteOperationMetric(op, devID, propID, time.Since(start), err == nil)
}

func (b *Backend) recordValue(devID, propID string, value model.Value) {
	if b.writer == nil {
		return
	}
	if s, ok := value.(model.Scalar); ok {
		b.writer.WriteValueMetric(devID, propID, float64(s))
	}
}
