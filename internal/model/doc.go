// Package model defines the value types shared by every layer of accml-core.
//
// The model is split into three families:
//
//   - Identifiers: LatticeElementPropertyID names a physics quantity on a
//     lattice element, DevicePropertyID names a set/readback channel on a
//     control-system device, and ConversionID pairs the two to key the
//     translator registry. All three are comparable structs; equality is
//     exact string equality with no normalisation.
//
//   - Commands: ReadCommand addresses a read target (and doubles as the
//     delta backend's cache key), Command carries a mutation together with
//     a BehaviourOnError tag that is forwarded through every translation
//     but never interpreted here. Transaction and CommandSequence group
//     commands for execution engines downstream.
//
//   - Values: readings and setpoints travel as Value, a closed set of
//     variants (Scalar, Tune) that support Add/Sub with explicit
//     type-mismatch errors. The delta backend relies on this algebra to
//     stay generic over heterogeneous readings.
//
// All types marshal to JSON for the HTTP surface; Value fields round-trip
// through a small tagged codec (a bare number decodes as Scalar, an
// {"x","y"} object as Tune).
package model
