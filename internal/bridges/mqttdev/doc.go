// Package mqttdev is the live machine backend over MQTT.
//
// Power converter gateways expose each device property as a trio of
// topics under accml/device/{dev_id}/{property}/:
//
//   - set: setpoints published by this backend
//   - state: readbacks published by the gateway
//   - trigger: measurement triggers published by this backend
//
// The backend subscribes once to the wildcard state topic and keeps the
// last readback per device property in memory. Reads serve from that
// cache; a property that has never reported fails with ErrNoReading
// rather than blocking on the gateway.
//
// # Payloads
//
// Values travel as JSON: a bare number for scalars, an {"x","y"} object
// for tunes. Unparseable state payloads are logged and dropped so one
// misbehaving gateway cannot poison the cache.
package mqttdev
