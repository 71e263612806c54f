package model

import "fmt"

// LatticeElementPropertyID identifies a physics-space quantity of a named
// lattice element, e.g. ("Q1M1D1R", "main_strength").
//
// Instances are comparable; two IDs are equal iff both fields match exactly.
type LatticeElementPropertyID struct {
	ElementName string `json:"element_name"`
	Property    string `json:"property"`
}

// Known reports whether both fields are populated.
func (id LatticeElementPropertyID) Known() bool {
	return id.ElementName != "" && id.Property != ""
}

func (id LatticeElementPropertyID) String() string {
	return fmt.Sprintf("lattice(%s/%s)", id.ElementName, id.Property)
}

// DevicePropertyID identifies a device-space quantity, e.g. a power
// converter's ("PC_Q1", "set_current").
type DevicePropertyID struct {
	DeviceName string `json:"device_name"`
	Property   string `json:"property"`
}

// Known reports whether both fields are populated.
func (id DevicePropertyID) Known() bool {
	return id.DeviceName != "" && id.Property != ""
}

func (id DevicePropertyID) String() string {
	return fmt.Sprintf("device(%s/%s)", id.DeviceName, id.Property)
}

// ConversionID keys the translator registry. Both sides must match exactly
// for a lookup to succeed: a conversion registered for "main_strength"
// never satisfies a lookup for "delta_main_strength".
type ConversionID struct {
	Lattice LatticeElementPropertyID `json:"lattice_property_id"`
	Device  DevicePropertyID         `json:"device_property_id"`
}

func (id ConversionID) String() string {
	return fmt.Sprintf("conversion(%s -> %s)", id.Lattice, id.Device)
}
