package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"mythworld/internal/models"
	"mythworld/internal/validation"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData is the JSON document produced by Export
type BackupData struct {
	Version      string                 `json:"version"`
	ExportedAt   time.Time              `json:"exported_at"`
	DatabaseType string                 `json:"database_type"`
	Profiles     []models.ChildProfile  `json:"profiles"`
	Controls     *models.ParentControls `json:"controls,omitempty"`
}

// BackupProgressStore is the storage needed to export and restore progress.
// ReplaceProfiles must apply all writes or none.
type BackupProgressStore interface {
	ProgressStore
	ReplaceProfiles(profiles []models.ChildProfile, clearFirst bool) error
}

// BackupService exports and imports the persisted progress snapshot
type BackupService struct {
	progress     BackupProgressStore
	controls     ControlsStore
	databaseType string
}

// NewBackupService creates a new backup service
func NewBackupService(progress BackupProgressStore, controls ControlsStore, databaseType string) *BackupService {
	return &BackupService{
		progress:     progress,
		controls:     controls,
		databaseType: databaseType,
	}
}

// Export writes a backup of the stored progress to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	slog.Info("progress exported", "path", outputPath)
	return nil
}

// ExportToWriter writes a backup document to w
func (s *BackupService) ExportToWriter(w io.Writer) error {
	profiles, err := s.progress.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to export profiles: %w", err)
	}
	controls, err := s.controls.LoadControls()
	if err != nil {
		return fmt.Errorf("failed to export controls: %w", err)
	}

	backup := BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.databaseType,
		Profiles:     profiles,
		Controls:     controls,
	}
	if backup.Profiles == nil {
		backup.Profiles = []models.ChildProfile{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	slog.Info("export complete", "profiles", len(backup.Profiles), "controls", backup.Controls != nil)
	return nil
}

// Import restores a backup file. With clearFirst set, every stored profile is
// replaced by the ones in the backup.
func (s *BackupService) Import(inputPath string, clearFirst bool) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file, clearFirst)
}

// ImportFromReader restores a backup document read from r. The document is
// checked in full before anything is written.
func (s *BackupService) ImportFromReader(r io.Reader, clearFirst bool) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if err := checkBackup(backup); err != nil {
		return err
	}

	slog.Info("importing backup", "version", backup.Version, "exported_at", backup.ExportedAt, "clear", clearFirst)

	if err := s.progress.ReplaceProfiles(backup.Profiles, clearFirst); err != nil {
		return fmt.Errorf("failed to import profiles: %w", err)
	}

	if backup.Controls != nil {
		if err := s.controls.SaveControls(*backup.Controls); err != nil {
			return fmt.Errorf("failed to import controls: %w", err)
		}
	}

	slog.Info("import complete", "profiles", len(backup.Profiles))
	return nil
}

func checkBackup(backup BackupData) error {
	if backup.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}
	for i, p := range backup.Profiles {
		if err := validation.Struct(p); err != nil {
			return fmt.Errorf("profile %d (%s): %w", i, p.ID, err)
		}
	}
	if backup.Controls != nil {
		if err := validation.Struct(*backup.Controls); err != nil {
			return fmt.Errorf("controls: %w", err)
		}
	}
	return nil
}
