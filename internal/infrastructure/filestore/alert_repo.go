package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"ctabot/internal/domain"
	"ctabot/internal/domain/entities"
	"ctabot/internal/ports/output"
)

var _ output.AlertRepository = (*AlertRepository)(nil)

const filePerm = 0o644

// AlertRepository stores alerts as an indented JSON array in a single file.
type AlertRepository struct {
	fs   afero.Fs
	path string
}

// NewAlertRepository creates an AlertRepository writing path on fs.
func NewAlertRepository(fs afero.Fs, path string) *AlertRepository {
	return &AlertRepository{fs: fs, path: path}
}

// Path returns the backing file path.
func (r *AlertRepository) Path() string {
	return r.path
}

func (r *AlertRepository) Load(_ context.Context) ([]entities.Alert, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []entities.Alert{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read alert store %s: %w", r.path, err)
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptStore, r.path, err)
	}
	alerts := make([]entities.Alert, len(records))
	for i := range records {
		alerts[i] = records[i].toDomain()
	}
	return alerts, nil
}

// Save writes to a temporary sibling file and renames it over the store, so a
// crash mid-write leaves the previous contents intact.
func (r *AlertRepository) Save(_ context.Context, alerts []entities.Alert) error {
	data, err := encode(alerts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create alert store dir: %w", err)
		}
	}
	tmp := r.path + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, data, filePerm); err != nil {
		return fmt.Errorf("write alert store: %w", err)
	}
	if err := r.fs.Rename(tmp, r.path); err != nil {
		_ = r.fs.Remove(tmp)
		return fmt.Errorf("replace alert store: %w", err)
	}
	return nil
}

func encode(alerts []entities.Alert) ([]byte, error) {
	records := make([]record, len(alerts))
	for i := range alerts {
		records[i] = toRecord(alerts[i])
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode alert store: %w", err)
	}
	return data, nil
}
