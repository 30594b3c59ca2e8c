package service

import (
	"testing"

	"mythworld/internal/content"
	"mythworld/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteStoryOnEverySeedProfile(t *testing.T) {
	for _, seed := range content.StarterProfiles() {
		t.Run(seed.Name, func(t *testing.T) {
			s := NewProgressService(content.StarterProfiles(), nil)
			require.True(t, s.SelectActiveProfile(seed.ID))

			updated, ok := s.CompleteStory()
			require.True(t, ok)

			want := seed.Clone()
			want.StoriesCompleted++
			want.Points += 20
			want.Stars++
			assert.Equal(t, want, updated)
		})
	}
}

func TestRegisterGamePlayOnEverySeedProfile(t *testing.T) {
	for _, seed := range content.StarterProfiles() {
		t.Run(seed.Name, func(t *testing.T) {
			s := NewProgressService(content.StarterProfiles(), nil)
			require.True(t, s.SelectActiveProfile(seed.ID))

			updated, ok := s.RegisterGamePlay()
			require.True(t, ok)

			want := seed.Clone()
			want.GamesPlayed++
			want.Points += 15
			assert.Equal(t, want, updated)
		})
	}
}

func TestMutationsOnlyTouchActiveProfile(t *testing.T) {
	s := NewProgressService(content.StarterProfiles(), nil)
	require.True(t, s.SelectActiveProfile("child-2"))

	s.CompleteStory()
	s.RegisterGamePlay()

	profiles := s.Profiles()
	assert.Equal(t, content.StarterProfiles()[0], profiles[0])
	assert.Equal(t, 240+20+15, profiles[1].Points)
}

func TestAaravEndToEnd(t *testing.T) {
	s := NewProgressService(content.StarterProfiles(), nil)

	s.CompleteStory()
	s.CompleteStory()
	s.RegisterGamePlay()

	p, ok := s.ActiveProfile()
	require.True(t, ok)
	assert.Equal(t, "Aarav", p.Name)
	assert.Equal(t, 175, p.Points)
	assert.Equal(t, 10, p.Stars)
	assert.Equal(t, 7, p.StoriesCompleted)
	assert.Equal(t, 8, p.GamesPlayed)
}

func TestSelectUnknownProfileKeepsSelection(t *testing.T) {
	s := NewProgressService(content.StarterProfiles(), nil)
	require.True(t, s.SelectActiveProfile("child-2"))

	assert.False(t, s.SelectActiveProfile("child-99"))
	assert.False(t, s.SelectActiveProfile(""))

	p, ok := s.ActiveProfile()
	require.True(t, ok)
	assert.Equal(t, "child-2", p.ID)
}

func TestNoProfilesIsNoOp(t *testing.T) {
	s := NewProgressService(nil, nil)

	_, ok := s.ActiveProfile()
	assert.False(t, ok)

	_, ok = s.CompleteStory()
	assert.False(t, ok)

	_, ok = s.RegisterGamePlay()
	assert.False(t, ok)

	assert.Empty(t, s.Profiles())
}

func TestActiveProfileFallsBackToFirst(t *testing.T) {
	s := NewProgressService(content.StarterProfiles(), nil)
	s.activeID = "gone"

	p, ok := s.ActiveProfile()
	require.True(t, ok)
	assert.Equal(t, "child-1", p.ID)
}

func TestProfilesReturnsCopies(t *testing.T) {
	s := NewProgressService(content.StarterProfiles(), nil)

	profiles := s.Profiles()
	profiles[0].Points = 0
	profiles[0].Badges[0] = "Changed"

	p, _ := s.ActiveProfile()
	assert.Equal(t, 120, p.Points)
	assert.Equal(t, []string{"Listener"}, p.Badges)
}

func TestProgressIsMirroredToStore(t *testing.T) {
	store := &memoryProgressStore{}
	s := NewProgressService(content.StarterProfiles(), store)

	s.CompleteStory()
	s.RegisterGamePlay()

	require.Len(t, store.rows, 1)
	assert.Equal(t, 2, store.saves)
	assert.Equal(t, 155, store.rows[0].Points)
}

func TestStoreFailureDoesNotBlockProgress(t *testing.T) {
	store := &memoryProgressStore{saveErr: errStoreDown}
	s := NewProgressService(content.StarterProfiles(), store)

	updated, ok := s.CompleteStory()
	require.True(t, ok)
	assert.Equal(t, 140, updated.Points)
}

func TestMergeStoredProfiles(t *testing.T) {
	seed := content.StarterProfiles()
	stored := []models.ChildProfile{
		{ID: "child-3", Name: "Meera", AgeGroup: models.AgeGroupMiddle},
		{ID: "child-1", Name: "Aarav", AgeGroup: models.AgeGroupYoung, Points: 500},
	}

	merged := MergeStoredProfiles(seed, stored)
	require.Len(t, merged, 3)
	assert.Equal(t, "child-1", merged[0].ID)
	assert.Equal(t, 500, merged[0].Points)
	assert.Equal(t, "child-2", merged[1].ID)
	assert.Equal(t, 240, merged[1].Points)
	assert.Equal(t, "child-3", merged[2].ID)
}
