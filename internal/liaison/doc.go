// Package liaison provides the identifier lookup tables that mediate
// between the lattice view and the device view of the machine.
//
// The Manager holds a bidirectional mapping:
//
//   - Forward: lattice-element-property -> device-property. At most one
//     device target per lattice id (a function).
//   - Inverse: device-property -> zero or more lattice-element-properties
//     (a relation). The asymmetry is deliberate: one power converter may
//     drive several magnets, so rewriting a device-side command can fan
//     out to multiple physics quantities.
//
// Lookups are exact and case-sensitive; there is no normalisation and no
// fuzzy matching. A failed lookup returns a NotFoundError that carries
// the known entries sharing the element or device name, to help an
// operator spot a near-miss.
//
// YellowPages is the named-group registry mapping a family name such as
// "quadrupoles" to its member identifiers.
package liaison
