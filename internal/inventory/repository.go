package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Repository loads the equipment catalogue.
// This abstraction allows for different implementations (file, SQLite,
// mock) and enables unit testing without filesystem dependencies.
type Repository interface {
	// Magnets loads all magnet records.
	Magnets(ctx context.Context) ([]MagnetRecord, error)

	// PowerConverters loads all power converter records.
	PowerConverters(ctx context.Context) ([]PowerConverterRecord, error)
}

// FileRepository implements Repository over YAML or JSON files, decided
// by extension per file.
type FileRepository struct {
	magnetPath string
	pcPath     string
}

// NewFileRepository creates a repository reading magnets from magnetPath
// and power converters from pcPath.
func NewFileRepository(magnetPath, pcPath string) *FileRepository {
	return &FileRepository{magnetPath: magnetPath, pcPath: pcPath}
}

// Magnets loads all magnet records.
func (r *FileRepository) Magnets(_ context.Context) ([]MagnetRecord, error) {
	var records []MagnetRecord
	if err := loadRecords(r.magnetPath, &records); err != nil {
		return nil, fmt.Errorf("loading magnets: %w", err)
	}
	return records, nil
}

// PowerConverters loads all power converter records.
func (r *FileRepository) PowerConverters(_ context.Context) ([]PowerConverterRecord, error) {
	var records []PowerConverterRecord
	if err := loadRecords(r.pcPath, &records); err != nil {
		return nil, fmt.Errorf("loading power converters: %w", err)
	}
	return records, nil
}

// loadRecords reads path into dest, choosing the codec by extension.
func loadRecords(path string, dest any) error {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from operator configuration
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, dest); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, dest); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
	return nil
}
