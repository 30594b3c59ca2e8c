package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"mythworld/internal/database"
	"mythworld/internal/models"
)

// controlsRowID is the single row holding the parent controls record
const controlsRowID = 1

// ControlsRepository stores the parent controls record
type ControlsRepository struct {
	db *database.DB
}

// NewControlsRepository creates a new controls repository
func NewControlsRepository(db *database.DB) *ControlsRepository {
	return &ControlsRepository{db: db}
}

// LoadControls returns the stored controls, or nil when none were saved yet
func (r *ControlsRepository) LoadControls() (*models.ParentControls, error) {
	var (
		c    models.ParentControls
		mode string
	)
	err := r.db.QueryRow(`
		SELECT games_enabled, audio_enabled, daily_minutes_limit, content_lock_by_age, progression_mode
		FROM parent_controls WHERE id = ?`, controlsRowID).Scan(
		&c.GamesEnabled,
		&c.AudioEnabled,
		&c.DailyMinutesLimit,
		&c.ContentLockByAge,
		&mode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load parent controls: %w", err)
	}
	c.ProgressionMode = models.ProgressionMode(mode)
	return &c, nil
}

// SaveControls replaces the stored controls record
func (r *ControlsRepository) SaveControls(c models.ParentControls) error {
	return r.db.WithTx(func(tx *database.Tx) error {
		if _, err := tx.Exec("DELETE FROM parent_controls WHERE id = ?", controlsRowID); err != nil {
			return fmt.Errorf("failed to clear parent controls: %w", err)
		}
		_, err := tx.Exec(`
			INSERT INTO parent_controls
				(id, games_enabled, audio_enabled, daily_minutes_limit, content_lock_by_age, progression_mode)
			VALUES (?, ?, ?, ?, ?, ?)`,
			controlsRowID, c.GamesEnabled, c.AudioEnabled, c.DailyMinutesLimit, c.ContentLockByAge, string(c.ProgressionMode))
		if err != nil {
			return fmt.Errorf("failed to save parent controls: %w", err)
		}
		return nil
	})
}
