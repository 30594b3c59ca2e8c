package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"mythworld/internal/database"
	"mythworld/internal/models"
)

// ProgressRepository stores child profiles and their counters
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const profileColumns = `id, name, age, age_group, points, stars, badges, streak_days,
	stories_completed, games_played, minutes_learned`

// LoadProfiles returns every stored profile in the order they were first saved
func (r *ProgressRepository) LoadProfiles() ([]models.ChildProfile, error) {
	rows, err := r.db.Query("SELECT " + profileColumns + " FROM profiles ORDER BY sort_order ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.ChildProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

// SaveProfile inserts or updates a profile. New profiles are appended after
// the existing ones.
func (r *ProgressRepository) SaveProfile(p models.ChildProfile) error {
	return r.db.WithTx(func(tx *database.Tx) error {
		return saveProfile(tx, p)
	})
}

// ReplaceProfiles writes every profile in one transaction. With clearFirst set
// all stored profiles are deleted before the writes. Nothing is kept when any
// write fails.
func (r *ProgressRepository) ReplaceProfiles(profiles []models.ChildProfile, clearFirst bool) error {
	return r.db.WithTx(func(tx *database.Tx) error {
		if clearFirst {
			if err := deleteAllProfiles(tx); err != nil {
				return err
			}
		}
		for _, p := range profiles {
			if err := saveProfile(tx, p); err != nil {
				return fmt.Errorf("profile %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

func saveProfile(q database.DBTX, p models.ChildProfile) error {
	badges, err := encodeBadges(p.Badges)
	if err != nil {
		return err
	}

	res, err := q.Exec(`
		UPDATE profiles
		SET name = ?, age = ?, age_group = ?, points = ?, stars = ?, badges = ?,
			streak_days = ?, stories_completed = ?, games_played = ?, minutes_learned = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Name, p.Age, string(p.AgeGroup), p.Points, p.Stars, badges,
		p.StreakDays, p.StoriesCompleted, p.GamesPlayed, p.MinutesLearned, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when nothing changed, so confirm absence
	var exists int
	if err := q.QueryRow("SELECT COUNT(*) FROM profiles WHERE id = ?", p.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check profile: %w", err)
	}
	if exists > 0 {
		return nil
	}

	var next int
	if err := q.QueryRow("SELECT COALESCE(MAX(sort_order), 0) + 1 FROM profiles").Scan(&next); err != nil {
		return fmt.Errorf("failed to compute profile order: %w", err)
	}

	_, err = q.Exec(`
		INSERT INTO profiles (`+profileColumns+`, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Age, string(p.AgeGroup), p.Points, p.Stars, badges,
		p.StreakDays, p.StoriesCompleted, p.GamesPlayed, p.MinutesLearned, next)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

func deleteAllProfiles(q database.DBTX) error {
	if _, err := q.Exec("DELETE FROM profiles"); err != nil {
		return fmt.Errorf("failed to delete profiles: %w", err)
	}
	return nil
}

func scanProfile(rows *sql.Rows) (models.ChildProfile, error) {
	var (
		p        models.ChildProfile
		ageGroup string
		badges   string
	)
	err := rows.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&ageGroup,
		&p.Points,
		&p.Stars,
		&badges,
		&p.StreakDays,
		&p.StoriesCompleted,
		&p.GamesPlayed,
		&p.MinutesLearned,
	)
	if err != nil {
		return p, fmt.Errorf("failed to scan profile: %w", err)
	}

	p.AgeGroup = models.AgeGroup(ageGroup)
	if err := json.Unmarshal([]byte(badges), &p.Badges); err != nil {
		return p, fmt.Errorf("failed to decode badges for %s: %w", p.ID, err)
	}
	return p, nil
}

func encodeBadges(badges []string) (string, error) {
	if badges == nil {
		badges = []string{}
	}
	b, err := json.Marshal(badges)
	if err != nil {
		return "", fmt.Errorf("failed to encode badges: %w", err)
	}
	return string(b), nil
}
