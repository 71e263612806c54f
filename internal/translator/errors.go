package translator

import (
	"errors"
	"fmt"

	"github.com/openaccel/accml-core/internal/model"
)

// Domain errors for the translator package.
var (
	// ErrNotFound is returned when no conversion is registered for an
	// identifier pair. The concrete error is a *NotFoundError carrying
	// the diagnostic registry subsets.
	ErrNotFound = errors.New("translator: conversion not found")
)

// NotFoundError reports a failed conversion lookup together with the
// registry entries related to either side of the pair. The subsets exist
// purely for operator visibility; they are not a fallback.
type NotFoundError struct {
	ID model.ConversionID
	// ForLatticeElement lists registered pairs sharing the lattice
	// element name.
	ForLatticeElement []model.ConversionID
	// ForDevice lists registered pairs sharing the device name.
	ForDevice []model.ConversionID
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %v (%d entries for element %q, %d entries for device %q)",
		ErrNotFound, e.ID,
		len(e.ForLatticeElement), e.ID.Lattice.ElementName,
		len(e.ForDevice), e.ID.Device.DeviceName)
}

// Unwrap lets errors.Is match ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
