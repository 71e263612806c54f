// Package translator provides the registry of unit conversions keyed by
// identifier pairs.
//
// A conversion is looked up by the full ConversionID: both the lattice
// side and the device side must match exactly, property names included.
// Conversions are never derived by composing unrelated forward/inverse
// pairs, and a conversion registered for "main_strength" does not satisfy
// a lookup for "delta_main_strength"; delta pairs are distinct entries.
//
// On a failed lookup the service scans its registry for entries sharing
// the lattice element name and entries sharing the device name and
// attaches both subsets to the returned error. The scan is linear in the
// registry size, which is acceptable for the few hundred properties a
// facility registers; it only runs on the failure path.
//
// The registry is immutable after construction.
package translator
