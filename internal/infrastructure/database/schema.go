package database

import (
	"context"
	"fmt"
)

// inventorySchema creates the equipment catalogue tables. The schema is
// static, so bootstrap is idempotent rather than versioned.
const inventorySchema = `
CREATE TABLE IF NOT EXISTS magnets (
	elem_id              TEXT NOT NULL,
	dev_id               TEXT NOT NULL PRIMARY KEY,
	type                 TEXT NOT NULL,
	family_member        TEXT NOT NULL DEFAULT '[]',
	power_converter_id   TEXT NOT NULL,
	conversion_slope     REAL NOT NULL,
	conversion_intercept REAL NOT NULL DEFAULT 0,
	conversion_type      TEXT NOT NULL DEFAULT 'linear'
);

CREATE INDEX IF NOT EXISTS idx_magnets_type ON magnets(type);
CREATE INDEX IF NOT EXISTS idx_magnets_pc ON magnets(power_converter_id);

CREATE TABLE IF NOT EXISTS power_converters (
	id          TEXT NOT NULL PRIMARY KEY,
	setpoint    TEXT NOT NULL,
	readback    TEXT NOT NULL,
	timeout     REAL NOT NULL DEFAULT 0,
	settle_time REAL NOT NULL DEFAULT 0
);
`

// EnsureSchema applies the inventory schema. Safe to call on every
// startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, inventorySchema); err != nil {
		return fmt.Errorf("applying inventory schema: %w", err)
	}
	return nil
}
