// Package backend defines the capability interfaces every machine backend
// implements: the simulation backend, the live-device MQTT bridge, and
// the proxies that decorate them (delta, telemetry).
//
// A backend exposes a "natural view" name describing the space its
// identifiers live in ("design" for the simulator, "live" for real
// devices), plus Trigger/Read/Set operations that may suspend while
// waiting on the underlying device, network or simulation, hence the
// context on every call. Errors from these calls are never translated by
// the layers above; they propagate to the caller.
//
// Filter is the pluggable value-normalisation hook used by the delta
// proxy to adapt its generic arithmetic to heterogeneous value wrappers;
// NoopFilter is the identity default.
package backend
