// Package telemetry decorates a machine backend with time-series
// recording.
//
// The decorator wraps any backend.ReadWriter and records every set,
// read, and trigger as an InfluxDB point: one operation point carrying
// the duration and outcome, plus a value point when a scalar passed
// through. The wrapped backend's behaviour is otherwise untouched.
//
// # Design
//
// Recording is strictly fire-and-forget. The InfluxDB client batches
// writes off the hot path, and a missing or disconnected writer makes
// the decorator a pure pass-through. Telemetry must never change the
// result of a control operation.
//
// # Usage
//
//	be := telemetry.Wrap(inner, influxClient)
//	value, err := be.Read(ctx, "QF1PC", "set_current")
package telemetry
