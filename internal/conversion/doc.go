// Package conversion provides the stateless forward/inverse transforms
// between physics quantities and device quantities.
//
// Two linear laws cover the magnets handled today:
//
//   - Linear: y = intercept + slope*x. Typical example: tune shifts
//     mapped to clock frequency offsets.
//   - EnergyScaledLinear: the same law with intercept and slope pre-scaled
//     by a fixed brho (magnetic rigidity). Typical example: quadrupole
//     strength to power-converter current. Brho is fixed at construction;
//     a machine-energy change requires a new conversion object.
//
// PerAxis lifts a scalar conversion to the Tune value kind by applying it
// to both planes.
//
// Forward and Inverse are exact mathematical inverses of each other for
// any non-zero slope; zero slopes are rejected at construction.
package conversion
