package inventory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/openaccel/accml-core/internal/infrastructure/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "catalogue.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return db
}

func seedRecords() ([]MagnetRecord, []PowerConverterRecord) {
	magnets := []MagnetRecord{
		{
			ElemID:           "Q1M1T8R",
			DevID:            "QF1C01A",
			Type:             "quadrupole",
			FamilyMember:     []string{"tune_correction"},
			PowerConverterID: "QF1PC",
			Conversion:       ConversionRecord{Slope: 0.5, Intercept: 0.1, Type: "linear"},
		},
		{
			ElemID:           "B1M1T8R",
			DevID:            "BM1C01A",
			Type:             "bend",
			FamilyMember:     nil,
			PowerConverterID: "BM1PC",
			Conversion:       ConversionRecord{Slope: 1.2, Intercept: 0, Type: "linear"},
		},
	}
	pcs := []PowerConverterRecord{
		{
			ID: "QF1PC",
			Interface: InterfaceRecord{
				Setpoint: "set_current",
				Readback: "current",
			},
			Response: ResponseRecord{Timeout: 5.0, SettleTime: 0.5},
		},
	}
	return magnets, pcs
}

func TestSQLiteRepositoryEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteRepository(db.DB)
	ctx := context.Background()

	magnets, err := repo.Magnets(ctx)
	if err != nil {
		t.Fatalf("Magnets() error: %v", err)
	}
	if len(magnets) != 0 {
		t.Errorf("fresh schema holds %d magnets", len(magnets))
	}

	pcs, err := repo.PowerConverters(ctx)
	if err != nil {
		t.Fatalf("PowerConverters() error: %v", err)
	}
	if len(pcs) != 0 {
		t.Errorf("fresh schema holds %d power converters", len(pcs))
	}
}

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteRepository(db.DB)
	ctx := context.Background()

	magnets, pcs := seedRecords()
	if err := repo.Import(ctx, magnets, pcs); err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	// dev_id ordering puts the bend first.
	got, err := repo.Magnets(ctx)
	if err != nil {
		t.Fatalf("Magnets() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d magnets, want 2", len(got))
	}
	if got[0].DevID != "BM1C01A" || got[1].DevID != "QF1C01A" {
		t.Errorf("magnet order = %s, %s", got[0].DevID, got[1].DevID)
	}

	quad := got[1]
	if quad.ElemID != "Q1M1T8R" || quad.Type != "quadrupole" || quad.PowerConverterID != "QF1PC" {
		t.Errorf("quadrupole record = %+v", quad)
	}
	if quad.Conversion.Slope != 0.5 || quad.Conversion.Intercept != 0.1 || quad.Conversion.Type != "linear" {
		t.Errorf("quadrupole conversion = %+v", quad.Conversion)
	}

	// The family listing survives its JSON column encoding.
	if !quad.InFamily("tune_correction") {
		t.Error("QF1C01A should be in tune_correction family")
	}
	if got[0].InFamily("tune_correction") {
		t.Error("BM1C01A should not be in tune_correction family")
	}

	gotPCs, err := repo.PowerConverters(ctx)
	if err != nil {
		t.Fatalf("PowerConverters() error: %v", err)
	}
	if len(gotPCs) != 1 {
		t.Fatalf("loaded %d power converters, want 1", len(gotPCs))
	}
	pc := gotPCs[0]
	if pc.ID != "QF1PC" || pc.Interface.Setpoint != "set_current" || pc.Interface.Readback != "current" {
		t.Errorf("power converter record = %+v", pc)
	}
	if pc.Response.Timeout != 5.0 || pc.Response.SettleTime != 0.5 {
		t.Errorf("power converter response = %+v", pc.Response)
	}
}

func TestSQLiteRepositoryImportReplaces(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteRepository(db.DB)
	ctx := context.Background()

	magnets, pcs := seedRecords()
	if err := repo.Import(ctx, magnets, pcs); err != nil {
		t.Fatalf("first Import() error: %v", err)
	}

	replacement := []MagnetRecord{{
		ElemID:           "Q9M1T8R",
		DevID:            "QF9C01A",
		Type:             "quadrupole",
		FamilyMember:     []string{},
		PowerConverterID: "QF9PC",
		Conversion:       ConversionRecord{Slope: 0.7, Type: "linear"},
	}}
	if err := repo.Import(ctx, replacement, nil); err != nil {
		t.Fatalf("second Import() error: %v", err)
	}

	got, err := repo.Magnets(ctx)
	if err != nil {
		t.Fatalf("Magnets() error: %v", err)
	}
	if len(got) != 1 || got[0].DevID != "QF9C01A" {
		t.Errorf("magnets after re-import = %+v", got)
	}

	gotPCs, err := repo.PowerConverters(ctx)
	if err != nil {
		t.Fatalf("PowerConverters() error: %v", err)
	}
	if len(gotPCs) != 0 {
		t.Errorf("power converters after re-import = %+v", gotPCs)
	}
}
