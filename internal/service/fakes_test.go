package service

import (
	"errors"

	"mythworld/internal/models"
)

type memoryProgressStore struct {
	rows       []models.ChildProfile
	saves      int
	saveErr    error
	replaceErr error
}

func (m *memoryProgressStore) LoadProfiles() ([]models.ChildProfile, error) {
	out := make([]models.ChildProfile, len(m.rows))
	for i, p := range m.rows {
		out[i] = p.Clone()
	}
	return out, nil
}

func (m *memoryProgressStore) SaveProfile(p models.ChildProfile) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	for i := range m.rows {
		if m.rows[i].ID == p.ID {
			m.rows[i] = p.Clone()
			return nil
		}
	}
	m.rows = append(m.rows, p.Clone())
	return nil
}

// ReplaceProfiles stages the writes on a copy and keeps them only on success
func (m *memoryProgressStore) ReplaceProfiles(profiles []models.ChildProfile, clearFirst bool) error {
	staged := &memoryProgressStore{}
	if !clearFirst {
		staged.rows, _ = m.LoadProfiles()
	}
	for _, p := range profiles {
		if err := staged.SaveProfile(p); err != nil {
			return err
		}
	}
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.rows = staged.rows
	return nil
}

type memoryControlsStore struct {
	controls *models.ParentControls
	saves    int
}

func (m *memoryControlsStore) LoadControls() (*models.ParentControls, error) {
	if m.controls == nil {
		return nil, nil
	}
	c := *m.controls
	return &c, nil
}

func (m *memoryControlsStore) SaveControls(c models.ParentControls) error {
	m.saves++
	m.controls = &c
	return nil
}

var errStoreDown = errors.New("store down")
