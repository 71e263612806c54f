// Package inventory loads the facility equipment catalogue and builds
// the mediation services from it.
//
// # Overview
//
// The inventory describes the installed hardware: magnets with their
// calibration curves, and the power converters feeding them. Records are
// loaded through the Repository interface, with two implementations:
//
//   - FileRepository reads YAML or JSON files, the format operators
//     maintain by hand.
//   - SQLiteRepository reads the same records from the relational store,
//     for facilities that manage the catalogue centrally.
//
// Build assembles the loaded records into the runtime triad: the yellow
// pages (family membership), the liaison manager (identifier mapping)
// and the translator service (unit conversions). The catalogue is built
// once at startup and passed by handle; nothing in this package caches.
//
// # Integrity
//
// Device identifiers must be unique across the magnet records. Every
// later lookup depends on this, so Build fails with ErrDuplicateDevice
// rather than letting one record shadow another.
package inventory
