package service

import (
	"log/slog"

	"mythworld/internal/models"
)

// Rewards granted per event
const (
	StoryPoints = 20
	StoryStars  = 1
	GamePoints  = 15
)

// ProgressStore persists profile progress between sessions
type ProgressStore interface {
	LoadProfiles() ([]models.ChildProfile, error)
	SaveProfile(profile models.ChildProfile) error
}

// ProgressService holds the child profiles and the active selection.
// Profiles keep insertion order; the in-memory copy is authoritative and
// the optional store only mirrors it.
type ProgressService struct {
	profiles []models.ChildProfile
	activeID string
	store    ProgressStore
}

// NewProgressService creates a progress service seeded with profiles. The
// first profile becomes active.
func NewProgressService(profiles []models.ChildProfile, store ProgressStore) *ProgressService {
	s := &ProgressService{store: store}
	for _, p := range profiles {
		s.profiles = append(s.profiles, p.Clone())
	}
	if len(s.profiles) > 0 {
		s.activeID = s.profiles[0].ID
	}
	return s
}

// SelectActiveProfile makes the profile with id active. Unknown ids leave the
// selection unchanged; the return value reports whether the id was found.
func (s *ProgressService) SelectActiveProfile(id string) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.activeID = id
	return true
}

// ActiveProfile returns the selected profile, falling back to the first one
// when the active id no longer matches. ok is false only with no profiles.
func (s *ProgressService) ActiveProfile() (models.ChildProfile, bool) {
	i := s.activeIndex()
	if i < 0 {
		return models.ChildProfile{}, false
	}
	return s.profiles[i].Clone(), true
}

// Profiles returns every profile in insertion order
func (s *ProgressService) Profiles() []models.ChildProfile {
	out := make([]models.ChildProfile, len(s.profiles))
	for i, p := range s.profiles {
		out[i] = p.Clone()
	}
	return out
}

// CompleteStory credits the active profile with a finished story
func (s *ProgressService) CompleteStory() (models.ChildProfile, bool) {
	return s.mutateActive(func(p *models.ChildProfile) {
		p.StoriesCompleted++
		p.Points += StoryPoints
		p.Stars += StoryStars
	})
}

// RegisterGamePlay credits the active profile with a played game
func (s *ProgressService) RegisterGamePlay() (models.ChildProfile, bool) {
	return s.mutateActive(func(p *models.ChildProfile) {
		p.GamesPlayed++
		p.Points += GamePoints
	})
}

func (s *ProgressService) mutateActive(apply func(p *models.ChildProfile)) (models.ChildProfile, bool) {
	i := s.activeIndex()
	if i < 0 {
		return models.ChildProfile{}, false
	}
	apply(&s.profiles[i])

	updated := s.profiles[i].Clone()
	if s.store != nil {
		if err := s.store.SaveProfile(updated); err != nil {
			slog.Warn("failed to persist profile progress", "profile_id", updated.ID, "error", err)
		}
	}
	return updated, true
}

func (s *ProgressService) activeIndex() int {
	if i := s.indexOf(s.activeID); i >= 0 {
		return i
	}
	if len(s.profiles) > 0 {
		return 0
	}
	return -1
}

func (s *ProgressService) indexOf(id string) int {
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			return i
		}
	}
	return -1
}

// MergeStoredProfiles overlays stored progress on the seed list. Stored rows
// replace seed entries with the same id; unknown stored profiles are appended.
func MergeStoredProfiles(seed, stored []models.ChildProfile) []models.ChildProfile {
	byID := make(map[string]models.ChildProfile, len(stored))
	for _, p := range stored {
		byID[p.ID] = p
	}

	out := make([]models.ChildProfile, 0, len(seed)+len(stored))
	seen := make(map[string]bool, len(seed))
	for _, p := range seed {
		if s, ok := byID[p.ID]; ok {
			p = s
		}
		seen[p.ID] = true
		out = append(out, p.Clone())
	}
	for _, p := range stored {
		if !seen[p.ID] {
			seen[p.ID] = true
			out = append(out, p.Clone())
		}
	}
	return out
}
