package inventory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLiteRepository implements Repository using SQLite. It reads the same
// records the file repository does, for facilities that keep the
// catalogue in the relational store.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection with the
// inventory schema applied.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Magnets loads all magnet records.
func (r *SQLiteRepository) Magnets(ctx context.Context) ([]MagnetRecord, error) {
	query := `
		SELECT elem_id, dev_id, type, family_member, power_converter_id,
			conversion_slope, conversion_intercept, conversion_type
		FROM magnets
		ORDER BY dev_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying magnets: %w", err)
	}
	defer rows.Close()

	var records []MagnetRecord
	for rows.Next() {
		var m MagnetRecord
		var familyJSON string
		err := rows.Scan(
			&m.ElemID,
			&m.DevID,
			&m.Type,
			&familyJSON,
			&m.PowerConverterID,
			&m.Conversion.Slope,
			&m.Conversion.Intercept,
			&m.Conversion.Type,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning magnet: %w", err)
		}
		if familyJSON != "" {
			if err := json.Unmarshal([]byte(familyJSON), &m.FamilyMember); err != nil {
				return nil, fmt.Errorf("unmarshalling family_member: %w", err)
			}
		}
		records = append(records, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating magnets: %w", err)
	}
	return records, nil
}

// PowerConverters loads all power converter records.
func (r *SQLiteRepository) PowerConverters(ctx context.Context) ([]PowerConverterRecord, error) {
	query := `
		SELECT id, setpoint, readback, timeout, settle_time
		FROM power_converters
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying power converters: %w", err)
	}
	defer rows.Close()

	var records []PowerConverterRecord
	for rows.Next() {
		var p PowerConverterRecord
		err := rows.Scan(
			&p.ID,
			&p.Interface.Setpoint,
			&p.Interface.Readback,
			&p.Response.Timeout,
			&p.Response.SettleTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning power converter: %w", err)
		}
		records = append(records, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating power converters: %w", err)
	}
	return records, nil
}

// Import replaces the stored catalogue with the given records inside a
// single transaction. Used to seed the database from file records.
func (r *SQLiteRepository) Import(ctx context.Context, magnets []MagnetRecord, pcs []PowerConverterRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting import transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op if committed

	if _, err := tx.ExecContext(ctx, "DELETE FROM magnets"); err != nil {
		return fmt.Errorf("clearing magnets: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM power_converters"); err != nil {
		return fmt.Errorf("clearing power converters: %w", err)
	}

	for _, m := range magnets {
		familyJSON, err := json.Marshal(m.FamilyMember)
		if err != nil {
			return fmt.Errorf("marshalling family_member: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO magnets (
				elem_id, dev_id, type, family_member, power_converter_id,
				conversion_slope, conversion_intercept, conversion_type
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ElemID,
			m.DevID,
			m.Type,
			string(familyJSON),
			m.PowerConverterID,
			m.Conversion.Slope,
			m.Conversion.Intercept,
			m.Conversion.Type,
		)
		if err != nil {
			return fmt.Errorf("inserting magnet %s: %w", m.DevID, err)
		}
	}

	for _, p := range pcs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO power_converters (
				id, setpoint, readback, timeout, settle_time
			) VALUES (?, ?, ?, ?, ?)`,
			p.ID,
			p.Interface.Setpoint,
			p.Interface.Readback,
			p.Response.Timeout,
			p.Response.SettleTime,
		)
		if err != nil {
			return fmt.Errorf("inserting power converter %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}
