// Package rewriter translates commands between the lattice space and the
// device space.
//
// It composes a liaison manager (identifier resolution) with a translator
// service (value conversion) and is stateless beyond those two handles.
// Forward maps a lattice-element command to its device command; Inverse
// maps a device command to one command per lattice target the device
// drives; callers must be prepared for more than one. ForwardRead and
// InverseRead rewrite only the address, for the case where no value
// exists yet.
//
// Failures from either collaborator propagate unmodified: a command is
// either fully rewritten or not produced at all, with no partial
// application.
package rewriter
